package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/machinebox/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitService    = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, core.ErrTransport):
		return ExitNetwork
	case errors.Is(err, core.ErrService), errors.Is(err, core.ErrDecode):
		return ExitService
	default:
		return ExitValidation
	}
}

// fail reports err on stderr and returns it with its exit code.
func (a *App) fail(err error) error {
	var apiErr *core.APIError
	isAPI := errors.As(err, &apiErr)

	if a.jsonOutput {
		a.writeErrorJSON(err, apiErr)
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		if isAPI && a.verbose && apiErr.Body != "" {
			fmt.Fprintf(a.stderr, "  Response body: %s\n", apiErr.Body)
		}
	}
	return exitWithCode(exitCode(err), err)
}

func (a *App) writeErrorJSON(err error, apiErr *core.APIError) {
	detail := map[string]any{
		"type":    errorType(err),
		"message": err.Error(),
	}
	if apiErr != nil {
		detail["box"] = apiErr.Box
		detail["op"] = apiErr.Op
		if apiErr.Status != 0 {
			detail["status"] = apiErr.Status
		}
		if apiErr.Code != "" {
			detail["code"] = apiErr.Code
		}
		if apiErr.RequestID != "" {
			detail["request_id"] = apiErr.RequestID
		}
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]any{"error": detail})
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrTransport):
		return "transport_error"
	case errors.Is(err, core.ErrDecode):
		return "decode_error"
	case errors.Is(err, core.ErrService):
		return "service_error"
	default:
		return "validation_error"
	}
}
