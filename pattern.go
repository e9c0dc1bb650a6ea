package halkit

import (
	"fmt"
	"regexp"
	"strings"
)

// WildcardKey is the parameter key under which a `*` wildcard capture is
// stored. An empty wildcard capture yields no entry at all.
const WildcardKey = "*"

// Pattern is a compiled path template. Templates consist of literal
// segments, `:name` segments matching one or more non-slash characters,
// and a greedy `*` wildcard matching the remainder of the path. A
// trailing slash on the template is normalized away before compilation,
// and a trailing slash on the request path is tolerated.
//
// Literal segments are escaped before compilation, so characters that are
// special in regular expressions (`.`, `+`, `(`, ...) match themselves.
type Pattern struct {
	raw  string
	re   *regexp.Regexp
	keys []string
}

// CompilePattern compiles a path template. It accepts a template string,
// an already-compiled *regexp.Regexp (used verbatim, with named capture
// groups becoming parameters), or a *Pattern (returned unchanged).
func CompilePattern(pattern any) (*Pattern, error) {
	switch p := pattern.(type) {
	case *Pattern:
		return p, nil
	case *regexp.Regexp:
		return patternFromRegexp(p), nil
	case string:
		return compileTemplate(p)
	default:
		return nil, fmt.Errorf("%w: unsupported pattern type %T", ErrInvalidPattern, pattern)
	}
}

// MustCompilePattern is like CompilePattern but panics on error. Intended
// for route tables built at startup.
func MustCompilePattern(pattern any) *Pattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original template (or regexp source) the pattern was
// compiled from.
func (p *Pattern) String() string { return p.raw }

// Match tests the pattern against a concrete path. On success it returns
// the extracted parameters; parameter values are the raw captured strings.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.keys))
	for i, key := range p.keys {
		if key == "" {
			continue
		}
		val := m[i+1]
		if val == "" && key == WildcardKey {
			continue
		}
		params[key] = val
	}
	return params, true
}

// patternFromRegexp wraps a pre-compiled regexp verbatim. Named capture
// groups become parameters; unnamed groups are ignored.
func patternFromRegexp(re *regexp.Regexp) *Pattern {
	names := re.SubexpNames()
	keys := make([]string, len(names)-1)
	copy(keys, names[1:])
	return &Pattern{raw: re.String(), re: re, keys: keys}
}

// compileTemplate translates a path template into an anchored regexp.
func compileTemplate(tpl string) (*Pattern, error) {
	if tpl == "" || tpl[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, tpl)
	}

	raw := tpl
	// Trailing slash carries no meaning.
	if len(tpl) > 1 {
		tpl = strings.TrimSuffix(tpl, "/")
	}

	var (
		b    strings.Builder
		keys []string
	)
	b.WriteString("^")

	segments := strings.Split(tpl, "/")[1:]
	for i, seg := range segments {
		switch {
		case seg == "*":
			// The wildcard is only defined as the final segment; a `*`
			// in the middle would swallow the rest of the template.
			if i != len(segments)-1 {
				return nil, fmt.Errorf("%w: %q: wildcard must be the final segment", ErrInvalidPattern, raw)
			}
			// Greedy tail wildcard; the leading slash is optional so
			// "/files/*" also matches "/files".
			keys = append(keys, WildcardKey)
			b.WriteString("/?(.*)")
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: empty parameter name in %q", ErrInvalidPattern, raw)
			}
			keys = append(keys, name)
			b.WriteString("/([^/]+)")
		default:
			b.WriteString("/")
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}

	b.WriteString("/?$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, raw, err)
	}
	return &Pattern{raw: raw, re: re, keys: keys}, nil
}
