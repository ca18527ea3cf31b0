// Package logrus logs machinebox calls with github.com/sirupsen/logrus.
//
//	log := logrus.New()
//	log.SetLevel(logrus.DebugLevel)
//	sb := suggestionbox.New(url, core.WithTelemetry(mblogrus.NewHook(log)))
//
// Call starts are logged at debug level. Finished calls are logged at info
// level, or at warn level with the error when they fail.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/petal-labs/machinebox/core"
)

// Hook implements core.TelemetryHook.
type Hook struct {
	log logrus.FieldLogger
}

// NewHook creates a hook that writes to log.
func NewHook(log logrus.FieldLogger) *Hook {
	return &Hook{log: log}
}

func (h *Hook) fields(box, op, method, path, requestID string) logrus.Fields {
	f := logrus.Fields{
		"box":    box,
		"op":     op,
		"method": method,
		"path":   path,
	}
	if requestID != "" {
		f["request_id"] = requestID
	}
	return f
}

// OnCallStart logs the call at debug level.
func (h *Hook) OnCallStart(e core.CallStartEvent) {
	h.log.WithFields(h.fields(e.Box, e.Op, e.Method, e.Path, e.RequestID)).Debug("machinebox call started")
}

// OnCallEnd logs the outcome of the call.
func (h *Hook) OnCallEnd(e core.CallEndEvent) {
	f := h.fields(e.Box, e.Op, e.Method, e.Path, e.RequestID)
	f["duration"] = e.Duration()
	if e.Status != 0 {
		f["status"] = e.Status
	}

	entry := h.log.WithFields(f)
	if e.Err != nil {
		entry.WithError(e.Err).Warn("machinebox call failed")
		return
	}
	entry.Info("machinebox call finished")
}

// Compile-time check that Hook implements core.TelemetryHook.
var _ core.TelemetryHook = (*Hook)(nil)
