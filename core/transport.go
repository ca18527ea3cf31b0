package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TransportRequest is one outgoing HTTP request.
type TransportRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
	// Timeout bounds the whole exchange. Zero means no bound beyond ctx.
	Timeout time.Duration
}

// TransportResponse is the raw outcome of a request that reached the box.
type TransportResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport sends requests to a box. An error means no HTTP response was
// obtained; any response, whatever its status, is returned without error.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// HTTPTransport is a Transport backed by an *http.Client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns a transport using client, or http.DefaultClient when nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Send performs the request and reads the full response body.
func (t *HTTPTransport) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &InvalidRequestError{Err: err}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &TransportResponse{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   respBody,
	}, nil
}

// InvalidRequestError reports a request that could not be built, such as one
// with a malformed base URL. Sending it again cannot succeed.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Err.Error()
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *TransportRequest) (*TransportResponse, error)

// Send calls f(ctx, req).
func (f TransportFunc) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	return f(ctx, req)
}

// Compile-time checks that the adapters implement Transport.
var (
	_ Transport = (*HTTPTransport)(nil)
	_ Transport = TransportFunc(nil)
)
