// Package core provides the shared client, call primitive and error model used
// by every machinebox box client.
//
// A box is one machinebox.io service (textbox, suggestionbox, facebox, ...).
// Each box package in boxes/ wraps a [Client] and adds the box's own typed
// operations. This package holds what they have in common.
//
// # Client
//
// [New] builds an immutable [Client] for a base URL. No I/O happens at
// construction and the URL is not checked; problems surface on first use:
//
//	c := core.New("http://localhost:8080",
//	    core.WithBoxID("textbox"),
//	    core.WithTimeout(5*time.Second),
//	)
//
// A Client is safe for concurrent use and holds no per-call state.
//
// # Calls
//
// [Call] is generic over the expected result type, so each operation decodes
// its own response shape:
//
//	type analysis struct {
//	    Sentences []sentence `json:"sentences" validate:"required"`
//	}
//	res, err := core.Call[analysis](ctx, c, core.Post("check", "/textbox/check"), req)
//
// Payloads are JSON by default; pass a [Form] or [*Multipart] to send form or
// file uploads. [Exec] runs operations with no result body and [Download]
// streams raw bytes such as state files.
//
// # Errors
//
// Every failure is an [*APIError] whose Kind is one of:
//   - [ErrTransport]: no HTTP response was obtained (refused, DNS, timeout)
//   - [ErrService]: the box reported a failure, Code and Message are verbatim
//   - [ErrDecode]: the body did not match the expected schema
//
// Failures carrying an HTTP status also match a status class such as
// [ErrNotFound] or [ErrServer]:
//
//	var apiErr *core.APIError
//	switch {
//	case errors.Is(err, core.ErrTransport):
//	    // box unreachable
//	case errors.As(err, &apiErr) && errors.Is(err, core.ErrService):
//	    log.Printf("box said %s: %s", apiErr.Code, apiErr.Message)
//	}
//
// Nothing in this package retries. [NewRetryTransport] can be installed with
// [WithTransport] to retry sends that got no response at all.
//
// # Telemetry
//
// Implement [TelemetryHook] to observe calls. See contrib/logrus and
// contrib/otel for ready-made hooks.
package core
