package core

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAPIErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "service error with all fields",
			err: &APIError{
				Box: "textbox", Op: "check", Status: 400, RequestID: "req-1",
				Code: "bad_input", Message: "text is required", Kind: ErrService,
			},
			want: "textbox.check: service error: text is required (status=400, code=bad_input, request_id=req-1)",
		},
		{
			name: "transport error",
			err:  &APIError{Box: "facebox", Op: "check", Message: "connection refused", Kind: ErrTransport},
			want: "facebox.check: transport error: connection refused",
		},
		{
			name: "no box",
			err:  &APIError{Message: "oops", Kind: ErrDecode, Status: 200},
			want: "decode error: oops (status=200)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(transportError("textbox", "check", "", cause))

	if !errors.Is(err, ErrTransport) {
		t.Error("errors.Is(err, ErrTransport) = false, want true")
	}
	if errors.Is(err, ErrService) || errors.Is(err, ErrDecode) {
		t.Error("transport error must not match other kinds")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("errors.As(err, *APIError) = false")
	}
	if apiErr.Box != "textbox" || apiErr.Op != "check" {
		t.Errorf("Box.Op = %s.%s, want textbox.check", apiErr.Box, apiErr.Op)
	}
}

func TestServiceErrorClass(t *testing.T) {
	tests := []struct {
		status int
		class  error
	}{
		{400, ErrBadRequest},
		{422, ErrBadRequest},
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{404, ErrNotFound},
		{409, ErrBadRequest},
		{429, ErrRateLimited},
		{500, ErrServer},
		{503, ErrServer},
	}

	for _, tt := range tests {
		err := serviceError("tagbox", "check", "", tt.status, "", "")
		if !errors.Is(err, tt.class) {
			t.Errorf("status %d: errors.Is(err, %v) = false", tt.status, tt.class)
		}
		if !errors.Is(err, ErrService) {
			t.Errorf("status %d: errors.Is(err, ErrService) = false", tt.status)
		}
	}
}

func TestServiceErrorKeepsEmptyMessage(t *testing.T) {
	err := serviceError("tagbox", "check", "", 404, "", "")
	if err.Message != "" {
		t.Errorf("Message = %q, want empty", err.Message)
	}
	want := "tagbox.check: service error: Not Found (status=404)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEnvelopeFailureHasNoClass(t *testing.T) {
	err := serviceError("textbox", "check", "", 200, "", "bad text")
	if err.Class != nil {
		t.Errorf("Class = %v, want nil for a 2xx envelope failure", err.Class)
	}
}

func TestDecodeErrorBodyExcerpt(t *testing.T) {
	body := strings.Repeat("x", maxBodyExcerpt+100)
	err := decodeError("textbox", "check", "", 200, []byte(body), errors.New("bad"))

	if len(err.Body) != maxBodyExcerpt+len("...") {
		t.Errorf("len(Body) = %d, want %d", len(err.Body), maxBodyExcerpt+3)
	}
	if !errors.Is(err, ErrDecode) {
		t.Error("errors.Is(err, ErrDecode) = false")
	}
	if err.Class != nil {
		t.Errorf("Class = %v, want nil for 2xx", err.Class)
	}
}

func TestDecodeErrorExcerptKeepsRunes(t *testing.T) {
	// "é" is two bytes, so the cut lands inside a rune.
	body := strings.Repeat("x", maxBodyExcerpt-1) + strings.Repeat("é", 10)
	err := decodeError("textbox", "check", "", 200, []byte(body), errors.New("bad"))

	if !utf8.ValidString(err.Body) {
		t.Errorf("Body is not valid UTF-8: %q", err.Body[len(err.Body)-8:])
	}
	want := strings.Repeat("x", maxBodyExcerpt-1) + "..."
	if err.Body != want {
		t.Errorf("len(Body) = %d, want %d", len(err.Body), len(want))
	}
}

func TestTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want bool
	}{
		{"transport", transportError("b", "op", "", errors.New("refused")), true},
		{"rate limited", serviceError("b", "op", "", 429, "", ""), true},
		{"server", serviceError("b", "op", "", 502, "", ""), true},
		{"bad request", serviceError("b", "op", "", 400, "", ""), false},
		{"decode", decodeError("b", "op", "", 200, nil, errors.New("x")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Temporary(); got != tt.want {
				t.Errorf("Temporary() = %v, want %v", got, tt.want)
			}
		})
	}
}
