package halkit

import (
	"encoding/xml"
	"fmt"
	"html/template"

	"github.com/a-h/templ"
)

// Renderer turns a domain object into a Response for one media type.
// Renderers are registered with a Negotiator during bootstrap.
type Renderer interface {
	// MediaType identifies the representation the renderer produces.
	MediaType() string

	// CanRender reports whether the renderer can serve the requested
	// media type. Most renderers accept exactly their own media type;
	// some accept aliases.
	CanRender(mediaType string) bool

	// Render produces a response from a domain object.
	Render(v any) (Response, error)
}

// jsonRenderer renders domain objects as JSON under a configurable
// media type, covering application/json and its hypermedia variants.
type jsonRenderer struct {
	mediaType string
}

func (r jsonRenderer) MediaType() string { return r.mediaType }

func (r jsonRenderer) CanRender(mediaType string) bool { return mediaType == r.mediaType }

func (r jsonRenderer) Render(v any) (Response, error) {
	return JSONAs(v, r.mediaType), nil
}

// JSONRenderer renders application/json.
func JSONRenderer() Renderer { return jsonRenderer{mediaType: MediaJSON} }

// HALRenderer renders application/hal+json. The domain model is expected
// to supply the HAL structure (_links, _embedded); this renderer only
// serializes it under the HAL media type.
func HALRenderer() Renderer { return jsonRenderer{mediaType: MediaHAL} }

// JSONAPIRenderer renders application/vnd.api+json.
func JSONAPIRenderer() Renderer { return jsonRenderer{mediaType: MediaJSONAPI} }

// xmlRenderer renders domain objects as application/xml.
type xmlRenderer struct{}

func (xmlRenderer) MediaType() string { return MediaXML }

func (xmlRenderer) CanRender(mediaType string) bool {
	return mediaType == MediaXML || mediaType == "text/xml"
}

func (xmlRenderer) Render(v any) (Response, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Bytes(append([]byte(xml.Header), body...), MediaXML+"; charset=utf-8"), nil
}

// XMLRenderer renders application/xml (also answering text/xml).
func XMLRenderer() Renderer { return xmlRenderer{} }

// textRenderer renders domain objects as text/plain using the Stringer
// interface or fmt formatting.
type textRenderer struct{}

func (textRenderer) MediaType() string { return MediaText }

func (textRenderer) CanRender(mediaType string) bool { return mediaType == MediaText }

func (textRenderer) Render(v any) (Response, error) {
	switch s := v.(type) {
	case string:
		return String(s), nil
	case fmt.Stringer:
		return String(s.String()), nil
	default:
		return String(fmt.Sprintf("%v", v)), nil
	}
}

// TextRenderer renders text/plain.
func TextRenderer() Renderer { return textRenderer{} }

// htmlRenderer renders domain objects as text/html. Values implementing
// templ.Component render themselves; other values go through the
// configured html/template.
type htmlRenderer struct {
	tmpl *template.Template
	name string
}

func (r htmlRenderer) MediaType() string { return MediaHTML }

func (r htmlRenderer) CanRender(mediaType string) bool { return mediaType == MediaHTML }

func (r htmlRenderer) Render(v any) (Response, error) {
	if c, ok := v.(templ.Component); ok {
		return Templ(c), nil
	}
	if r.tmpl == nil {
		return nil, ServerError("html renderer: no template configured for " +
			fmt.Sprintf("%T", v))
	}
	return Template(r.tmpl, r.name, v), nil
}

// HTMLRenderer renders text/html. Domain objects implementing
// templ.Component are rendered directly; everything else is executed
// through tmpl (or the named template when name is non-empty). tmpl may
// be nil when only templ components are served.
func HTMLRenderer(tmpl *template.Template, name string) Renderer {
	return htmlRenderer{tmpl: tmpl, name: name}
}

// RenderFunc builds a Renderer from a media type and a render function.
// It answers CanRender only for its exact media type.
func RenderFunc(mediaType string, render func(v any) (Response, error)) Renderer {
	return funcRenderer{mediaType: mediaType, render: render}
}

type funcRenderer struct {
	mediaType string
	render    func(v any) (Response, error)
}

func (r funcRenderer) MediaType() string { return r.mediaType }

func (r funcRenderer) CanRender(mediaType string) bool { return mediaType == r.mediaType }

func (r funcRenderer) Render(v any) (Response, error) { return r.render(v) }

// DefaultRenderers returns the standard renderer set in a deterministic
// registration order: JSON first (the */* choice), then HAL, JSON:API,
// XML, and plain text. The HTML renderer is not included: without a
// template it cannot serve arbitrary domain objects, so a browser's
// Accept: text/html falls through to the negotiator's default instead
// of failing mid-render. Register HTMLRenderer explicitly once a
// template (or templ components) exist.
func DefaultRenderers() []Renderer {
	return []Renderer{
		JSONRenderer(),
		HALRenderer(),
		JSONAPIRenderer(),
		XMLRenderer(),
		TextRenderer(),
	}
}
