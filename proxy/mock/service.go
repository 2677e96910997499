package mock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/viant/frames/schema"
)

// PathFrames is the mock proxy endpoint path.
const PathFrames = "/frames"

// Recorded is a request received by the mock proxy.
type Recorded struct {
	Method string
	Query  url.Values
	Header http.Header
	Body   map[string]any
}

// ProxyService is a mock frame proxy.
type ProxyService struct {
	GetHandler  http.HandlerFunc
	PostHandler http.HandlerFunc

	mux      sync.Mutex
	requests []*Recorded
}

// Server couples a ProxyService with a running httptest server.
type Server struct {
	*ProxyService
	HTTP *httptest.Server
}

// NewServer starts a mock proxy.
func NewServer() *Server {
	service := &ProxyService{}
	return &Server{ProxyService: service, HTTP: httptest.NewServer(&Handler{Service: service})}
}

// URL returns the proxy endpoint URL.
func (s *Server) URL() string {
	return s.HTTP.URL + PathFrames
}

// Close stops the server.
func (s *Server) Close() {
	s.HTTP.Close()
}

// Requests returns a copy of recorded requests.
func (s *ProxyService) Requests() []*Recorded {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]*Recorded(nil), s.requests...)
}

func (s *ProxyService) record(r *http.Request) {
	entry := &Recorded{Method: r.Method, Query: r.URL.Query(), Header: r.Header.Clone()}
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(data))
		if len(data) > 0 {
			_ = json.Unmarshal(data, &entry.Body)
		}
	}
	s.mux.Lock()
	s.requests = append(s.requests, entry)
	s.mux.Unlock()
}

// defaultGetHandler returns a single-button frame whose image is the requested URL.
func (s *ProxyService) defaultGetHandler(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	WriteJSON(w, http.StatusOK, Frame(&schema.Frame{
		Image:   target + "/image.png",
		PostURL: target,
		Buttons: []schema.Button{{Label: "Next", Action: schema.ActionPost}},
	}))
}

// defaultPostHandler returns a frame whose image names the button index pressed.
func (s *ProxyService) defaultPostHandler(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("postUrl")
	WriteJSON(w, http.StatusOK, Frame(&schema.Frame{
		Image:   target + "/pressed.png",
		PostURL: target,
		Buttons: []schema.Button{{Label: "Back", Action: schema.ActionPost}},
	}))
}

// Frame wraps frame into a successful multi-specification result.
func Frame(frame *schema.Frame) *schema.ParseResultWithSpecs {
	return &schema.ParseResultWithSpecs{Specs: map[string]*schema.ParseResult{
		schema.SpecificationOpenFrames: {Status: schema.StatusSuccess, Frame: frame, Specification: schema.SpecificationOpenFrames},
		schema.SpecificationFarcaster:  {Status: schema.StatusSuccess, Frame: frame, Specification: schema.SpecificationFarcaster},
	}}
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Redirect answers with a 302 and a {location} body.
func Redirect(w http.ResponseWriter, location string) {
	WriteJSON(w, http.StatusFound, &schema.RedirectBody{Location: location})
}

// Message answers with status and a {message} body.
func Message(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, &schema.ErrorMessageBody{Message: message})
}
