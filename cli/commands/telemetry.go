package commands

import (
	"github.com/hashicorp/go-hclog"

	"github.com/lightblue-platform/lightblue-client-go/core"
)

// newLogHook returns a telemetry hook that logs request lifecycle events to
// stderr. Installed by --verbose.
func (a *App) newLogHook() core.TelemetryHook {
	return &logHook{
		log: hclog.New(&hclog.LoggerOptions{
			Name:   "lbdata",
			Level:  hclog.Debug,
			Output: a.stderr,
		}),
	}
}

type logHook struct {
	log hclog.Logger
}

func (h *logHook) OnRequestStart(e core.RequestStartEvent) {
	h.log.Debug("request start",
		"op", e.Op,
		"method", e.Method,
		"path", e.Path,
	)
}

func (h *logHook) OnRequestEnd(e core.RequestEndEvent) {
	if e.Err != nil {
		h.log.Error("request failed",
			"op", e.Op,
			"method", e.Method,
			"path", e.Path,
			"status", e.Status,
			"duration", e.Duration(),
			"error", e.Err,
		)
		return
	}
	h.log.Debug("request done",
		"op", e.Op,
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration", e.Duration(),
	)
}
