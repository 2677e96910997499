package mock

import (
	"net/http"
)

// Handler routes HTTP requests to the mock proxy endpoints.
type Handler struct {
	// Service is the mock proxy with endpoint handlers.
	Service *ProxyService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path and method.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case PathFrames:
		h.Service.record(r)
		switch r.Method {
		case http.MethodGet:
			if h.Service.GetHandler != nil {
				h.Service.GetHandler(w, r)
			} else {
				h.Service.defaultGetHandler(w, r)
			}
		case http.MethodPost:
			if h.Service.PostHandler != nil {
				h.Service.PostHandler(w, r)
			} else {
				h.Service.defaultPostHandler(w, r)
			}
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}
