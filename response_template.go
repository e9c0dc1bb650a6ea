package halkit

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
)

// templateResponse renders an html/template. Output is buffered so a
// template failure surfaces as an error instead of a half-written body.
type templateResponse struct {
	tmpl       *template.Template
	name       string
	data       any
	statusCode int
}

// Render implements Response.
func (r *templateResponse) Render(w http.ResponseWriter, req *http.Request) error {
	var buf bytes.Buffer
	var err error
	if r.name != "" {
		err = r.tmpl.ExecuteTemplate(&buf, r.name, r.data)
	} else {
		err = r.tmpl.Execute(&buf, r.data)
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", MediaHTML+"; charset=utf-8")
	status := r.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, werr := w.Write(buf.Bytes())
	return werr
}

// Template creates a text/html response from an html/template with
// 200 OK status. Pass a non-empty name to execute a named template.
func Template(tmpl *template.Template, name string, data any) Response {
	return &templateResponse{tmpl: tmpl, name: name, data: data, statusCode: http.StatusOK}
}

// TemplateWithStatus creates an html/template response with a custom status.
func TemplateWithStatus(tmpl *template.Template, name string, data any, status int) Response {
	return &templateResponse{tmpl: tmpl, name: name, data: data, statusCode: status}
}

// templResponse renders a templ component as text/html.
type templResponse struct {
	component  templ.Component
	statusCode int
}

// Render implements Response. The component is rendered with the
// request's context so it can read request-scoped values.
func (r *templResponse) Render(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Content-Type", MediaHTML+"; charset=utf-8")

	status := r.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	return r.component.Render(req.Context(), w)
}

// Templ creates a text/html response from a templ component with
// 200 OK status.
func Templ(component templ.Component) Response {
	if component == nil {
		return nil
	}
	return &templResponse{component: component, statusCode: http.StatusOK}
}

// TemplWithStatus creates a templ component response with a custom status.
func TemplWithStatus(component templ.Component, status int) Response {
	if component == nil {
		return nil
	}
	return &templResponse{component: component, statusCode: status}
}
