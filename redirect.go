package halkit

import (
	"net/http"
)

// redirectResponse implements Response for HTTP redirects.
type redirectResponse struct {
	url    string
	status int
}

// Render implements Response. Status codes outside the 3xx range fall
// back to 302 Found.
func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	status := r.status
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	http.Redirect(w, req, r.url, status)
	return nil
}

// Redirect creates a 302 Found response.
func Redirect(url string) Response {
	return redirectResponse{url: url, status: http.StatusFound}
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) Response {
	return redirectResponse{url: url, status: http.StatusMovedPermanently}
}

// RedirectSeeOther creates a 303 See Other response, typically used
// after a POST that created a resource elsewhere.
func RedirectSeeOther(url string) Response {
	return redirectResponse{url: url, status: http.StatusSeeOther}
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
func RedirectWithStatus(url string, status int) Response {
	return redirectResponse{url: url, status: status}
}
