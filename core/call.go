package core

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	userAgent       = "machinebox-go"
	requestIDHeader = "X-Request-ID"
)

// Endpoint describes one box operation on the wire.
type Endpoint struct {
	// Op names the operation in errors and telemetry (e.g., "check").
	Op     string
	Method string
	// Path is appended to the client's base URL, e.g. "/textbox/check".
	Path  string
	Query url.Values
}

// Get returns a GET endpoint.
func Get(op, path string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodGet, Path: path}
}

// Post returns a POST endpoint.
func Post(op, path string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodPost, Path: path}
}

// Patch returns a PATCH endpoint.
func Patch(op, path string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodPatch, Path: path}
}

// Delete returns a DELETE endpoint.
func Delete(op, path string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodDelete, Path: path}
}

// WithQuery returns a copy of e with query parameters set.
func (e Endpoint) WithQuery(q url.Values) Endpoint {
	e.Query = q
	return e
}

// Call sends payload to the endpoint and decodes a successful response into T.
// The result is exactly one of a fully decoded *T or an *APIError:
//   - no response (refused, DNS, timeout, malformed URL): ErrTransport
//   - 2xx whose body does not match T: ErrDecode
//   - 2xx carrying the box envelope {"success": false}: ErrService
//   - non-2xx with an error payload {code, message}: ErrService
//   - non-2xx with anything else: ErrDecode, with Status and Body set
//
// Call never retries.
func Call[T any](ctx context.Context, c *Client, ep Endpoint, payload any) (*T, error) {
	var out T
	err := c.run(ctx, ep, payload, func(x *exchange) error {
		if err := x.checkEnvelope(); err != nil {
			return err
		}
		if err := c.config.Codec.Unmarshal(x.body, &out); err != nil {
			return x.decodeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Exec is Call for operations whose response carries no result. An empty
// body is accepted; a non-empty one must be valid JSON and must not report
// {"success": false}.
func Exec(ctx context.Context, c *Client, ep Endpoint, payload any) error {
	return c.run(ctx, ep, payload, func(x *exchange) error {
		if len(bytes.TrimSpace(x.body)) == 0 {
			return nil
		}
		if !gjson.ValidBytes(x.body) {
			return x.decodeError(errors.New("invalid JSON in response body"))
		}
		return x.checkEnvelope()
	})
}

// Download is Call for operations returning raw bytes, such as box state
// files. A successful body is copied to w and the byte count returned.
func Download(ctx context.Context, c *Client, ep Endpoint, w io.Writer) (int64, error) {
	var n int64
	err := c.run(ctx, ep, nil, func(x *exchange) error {
		written, err := io.Copy(w, bytes.NewReader(x.body))
		n = written
		if err != nil {
			return fmt.Errorf("write %s: %w", ep.Op, err)
		}
		return nil
	})
	return n, err
}

// exchange is one completed HTTP round trip.
type exchange struct {
	box       string
	op        string
	requestID string
	status    int
	body      []byte
}

func (x *exchange) ok() bool {
	return x.status >= 200 && x.status <= 299
}

func (x *exchange) decodeError(err error) error {
	return decodeError(x.box, x.op, x.requestID, x.status, x.body, err)
}

// checkEnvelope reports a box-level failure signalled inside a 2xx body.
func (x *exchange) checkEnvelope() error {
	if !gjson.ValidBytes(x.body) {
		return nil
	}
	if success := gjson.GetBytes(x.body, "success"); success.Type != gjson.False {
		return nil
	}
	msg := gjson.GetBytes(x.body, "error").String()
	if msg == "" {
		msg = "request failed"
	}
	return serviceError(x.box, x.op, x.requestID, x.status, gjson.GetBytes(x.body, "code").String(), msg)
}

// errorPayload is the body of a non-2xx response. Boxes report either
// {code, message} or their {success, error} envelope.
type errorPayload struct {
	Code    *string `json:"code"`
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// failure classifies a non-2xx response.
func (x *exchange) failure(codec Codec) error {
	var p errorPayload
	if err := codec.Unmarshal(x.body, &p); err != nil {
		return x.decodeError(fmt.Errorf("HTTP %d: invalid error payload: %w", x.status, err))
	}

	var message string
	switch {
	case p.Message != nil:
		message = *p.Message
	case p.Error != nil:
		message = *p.Error
	default:
		return x.decodeError(fmt.Errorf("HTTP %d: error payload has no message", x.status))
	}

	var code string
	if p.Code != nil {
		code = *p.Code
	}
	return serviceError(x.box, x.op, x.requestID, x.status, code, message)
}

// run executes one call: encode, send, classify, then hand 2xx bodies to handle.
func (c *Client) run(ctx context.Context, ep Endpoint, payload any, handle func(*exchange) error) error {
	return c.roundTrip(ctx, ep, payload, func(x *exchange) error {
		if !x.ok() {
			return x.failure(c.config.Codec)
		}
		return handle(x)
	})
}

// roundTrip is run without classification: every response reaches handle,
// whatever its status. Config.Timeout bounds the whole call.
func (c *Client) roundTrip(ctx context.Context, ep Endpoint, payload any, handle func(*exchange) error) (err error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	requestID := c.newRequestID()
	start := time.Now()
	status := 0

	c.config.Telemetry.OnCallStart(CallStartEvent{
		Context:   ctx,
		Box:       c.config.BoxID,
		Op:        ep.Op,
		Method:    ep.Method,
		Path:      ep.Path,
		RequestID: requestID,
		Start:     start,
	})
	defer func() {
		c.config.Telemetry.OnCallEnd(CallEndEvent{
			Context:   ctx,
			Box:       c.config.BoxID,
			Op:        ep.Op,
			Method:    ep.Method,
			Path:      ep.Path,
			RequestID: requestID,
			Status:    status,
			Start:     start,
			End:       time.Now(),
			Err:       err,
		})
	}()

	body, contentType, err := encodePayload(c.config.Codec, payload)
	if err != nil {
		return fmt.Errorf("%s.%s: failed to encode request: %w", c.config.BoxID, ep.Op, err)
	}

	resp, err := c.transport.Send(ctx, &TransportRequest{
		Method:  ep.Method,
		URL:     c.url(ep),
		Header:  c.buildHeaders(contentType, requestID),
		Body:    body,
		Timeout: c.config.Timeout,
	})
	if err != nil {
		return transportError(c.config.BoxID, ep.Op, requestID, err)
	}
	status = resp.Status

	if id := resp.Header.Get(requestIDHeader); id != "" {
		requestID = id
	}
	return handle(&exchange{
		box:       c.config.BoxID,
		op:        ep.Op,
		requestID: requestID,
		status:    resp.Status,
		body:      resp.Body,
	})
}

// statusOf sends a bodyless request and reports the status without classifying
// it. Only a failure to get any response is an error.
func (c *Client) statusOf(ctx context.Context, ep Endpoint) (status int, err error) {
	err = c.roundTrip(ctx, ep, nil, func(x *exchange) error {
		status = x.status
		return nil
	})
	return status, err
}

func (c *Client) url(ep Endpoint) string {
	u := c.config.BaseURL + ep.Path
	if len(ep.Query) > 0 {
		u += "?" + ep.Query.Encode()
	}
	return u
}

func (c *Client) newRequestID() string {
	if !c.config.RequestIDs {
		return ""
	}
	return uuid.NewString()
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
