// Package boxtest runs fake boxes for tests.
package boxtest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"sync"
	"testing"
)

// Request is a request received by a fake box.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a fake box backed by httptest. Routes use http.ServeMux patterns
// such as "POST /textbox/check". Unrouted requests answer 404.
type Server struct {
	*httptest.Server

	t        testing.TB
	mux      *http.ServeMux
	mu       sync.Mutex
	requests []Request
}

// New starts a fake box that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{t: t, mux: http.NewServeMux()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Server.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	s.mux.ServeHTTP(w, r)
}

// Handle routes pattern to h.
func (s *Server) Handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, h)
}

// Reply routes pattern to a fixed JSON response.
func (s *Server) Reply(pattern string, status int, body string) {
	s.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request. It fails the test if there is none.
func (s *Server) Last() Request {
	s.t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		s.t.Fatal("boxtest: no request received")
	}
	return reqs[len(reqs)-1]
}

// JSON decodes the request body into v.
func (r Request) JSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("boxtest: request body is not JSON: %v (%s)", err, r.Body)
	}
}

// Form parses a urlencoded request body.
func (r Request) Form(t testing.TB) url.Values {
	t.Helper()
	if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("boxtest: Content-Type = %q, want form", ct)
	}
	values, err := url.ParseQuery(string(r.Body))
	if err != nil {
		t.Fatalf("boxtest: parse form: %v", err)
	}
	return values
}

// Part is one part of a multipart request.
type Part struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Multipart parses a multipart/form-data request body, keyed by part name.
func (r Request) Multipart(t testing.TB) map[string]Part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("boxtest: Content-Type = %q, want multipart/form-data", r.Header.Get("Content-Type"))
	}

	parts := make(map[string]Part)
	mr := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return parts
		}
		if err != nil {
			t.Fatalf("boxtest: read part: %v", err)
		}
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("boxtest: read part %s: %v", p.FormName(), err)
		}
		parts[p.FormName()] = Part{
			Filename:    p.FileName(),
			ContentType: p.Header.Get("Content-Type"),
			Data:        data,
		}
	}
}

// RoundTrip decodes wire into v, encodes v again and fails unless the result
// is the same JSON document as wire.
func RoundTrip(t testing.TB, wire string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(wire), v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var want, got any
	if err := json.Unmarshal([]byte(wire), &want); err != nil {
		t.Fatalf("decode wire: %v", err)
	}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("decode encoded: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the document\n got: %s\nwant: %s", encoded, wire)
	}
}
