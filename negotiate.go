package halkit

import (
	"sort"
	"strconv"
	"strings"
)

// Media types the toolkit knows out of the box.
const (
	MediaJSON    = "application/json"
	MediaHAL     = "application/hal+json"
	MediaJSONAPI = "application/vnd.api+json"
	MediaHTML    = "text/html"
	MediaXML     = "application/xml"
	MediaText    = "text/plain"
)

// defaultFormats maps format-override names (e.g. a ?format= query
// parameter) to media types.
var defaultFormats = map[string]string{
	"json":    MediaJSON,
	"hal":     MediaHAL,
	"jsonapi": MediaJSONAPI,
	"html":    MediaHTML,
	"xml":     MediaXML,
	"text":    MediaText,
}

// Preference is one entry of an Accept-style header.
type Preference struct {
	MediaType string
	Quality   float64
}

// ParseAccept parses an Accept-style header into preferences sorted by
// descending quality. Sorting is stable, so entries with equal quality
// keep their original relative order. A missing or unparsable q value
// defaults to 1.0; parsed values are clamped to [0, 1].
func ParseAccept(header string) []Preference {
	var prefs []Preference
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		mediaType := strings.TrimSpace(fields[0])
		if mediaType == "" {
			continue
		}

		q := 1.0
		for _, f := range fields[1:] {
			val, ok := strings.CutPrefix(strings.TrimSpace(f), "q=")
			if !ok {
				continue
			}
			if parsed, err := strconv.ParseFloat(val, 64); err == nil {
				q = min(max(parsed, 0), 1)
			}
			break
		}

		prefs = append(prefs, Preference{MediaType: mediaType, Quality: q})
	}

	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Quality > prefs[j].Quality
	})
	return prefs
}

// Negotiator selects a renderer from an ordered registry based on the
// client's stated preferences. Selection is a pure function of the
// preferences, the optional format override, and the registry contents.
//
// Renderers must be registered during bootstrap; mutating the registry
// while requests are in flight is unsupported.
type Negotiator struct {
	renderers   []Renderer
	formats     map[string]string
	defaultType string
	strict      bool
}

// NegotiatorOption configures a Negotiator.
type NegotiatorOption func(*Negotiator)

// Strict disables the default-media-type fallback: if no preference
// matches, negotiation fails even when a default renderer exists.
func Strict() NegotiatorOption {
	return func(n *Negotiator) { n.strict = true }
}

// WithDefaultMediaType sets the media type used when no preference
// matches and the negotiator is not strict.
func WithDefaultMediaType(mediaType string) NegotiatorOption {
	return func(n *Negotiator) { n.defaultType = mediaType }
}

// WithFormat adds (or overrides) a format-override name mapping.
func WithFormat(name, mediaType string) NegotiatorOption {
	return func(n *Negotiator) { n.formats[name] = mediaType }
}

// NewNegotiator creates a negotiator with the standard format table and
// application/json as the non-strict fallback.
func NewNegotiator(opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{
		formats:     make(map[string]string, len(defaultFormats)),
		defaultType: MediaJSON,
	}
	for name, mt := range defaultFormats {
		n.formats[name] = mt
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Register appends renderers to the registry. Registration order is the
// tie-break for */* and for equal-quality preferences.
func (n *Negotiator) Register(renderers ...Renderer) {
	n.renderers = append(n.renderers, renderers...)
}

// MediaTypes returns the media types of all registered renderers, in
// registration order.
func (n *Negotiator) MediaTypes() []string {
	types := make([]string, len(n.renderers))
	for i, r := range n.renderers {
		types[i] = r.MediaType()
	}
	return types
}

// Negotiate picks exactly one renderer or fails with a KindNotAcceptable
// error.
//
// A non-empty format override is resolved through the format table and
// bypasses Accept parsing entirely: an unknown format name fails
// immediately, and a known name whose media type has no registered
// renderer fails as well; an explicit override is never silently
// substituted.
//
// Otherwise each Accept preference is tried in descending quality order:
// exact renderer match first, then a type wildcard such as text/*, then
// */* which selects the first-registered renderer. An empty Accept header
// is treated as */*. If nothing matched, the default media type's
// renderer is used unless the negotiator is strict.
func (n *Negotiator) Negotiate(accept, format string) (Renderer, error) {
	if format != "" {
		mediaType, ok := n.formats[format]
		if !ok {
			return nil, NotAcceptable(format, n.MediaTypes()).
				WithMessage("format not supported: " + format)
		}
		if r := n.exact(mediaType); r != nil {
			return r, nil
		}
		return nil, NotAcceptable(mediaType, n.MediaTypes())
	}

	if accept == "" {
		accept = "*/*"
	}

	for _, pref := range ParseAccept(accept) {
		if r := n.match(pref.MediaType); r != nil {
			return r, nil
		}
	}

	if !n.strict && n.defaultType != "" {
		if r := n.exact(n.defaultType); r != nil {
			return r, nil
		}
	}

	return nil, NotAcceptable(accept, n.MediaTypes())
}

// match resolves one preference entry against the registry.
func (n *Negotiator) match(mediaType string) Renderer {
	switch {
	case mediaType == "*/*":
		if len(n.renderers) > 0 {
			return n.renderers[0]
		}
		return nil
	case strings.HasSuffix(mediaType, "/*"):
		prefix := mediaType[:len(mediaType)-1]
		for _, r := range n.renderers {
			if strings.HasPrefix(r.MediaType(), prefix) {
				return r
			}
		}
		return nil
	default:
		return n.exact(mediaType)
	}
}

// exact returns the first renderer whose CanRender accepts the media type.
func (n *Negotiator) exact(mediaType string) Renderer {
	for _, r := range n.renderers {
		if r.CanRender(mediaType) {
			return r
		}
	}
	return nil
}
