// Package sentryhandler reports command bus errors to Sentry.
package sentryhandler

import (
	"errors"

	"github.com/getsentry/sentry-go"
	command "github.com/io-da/command-dbal"
	"github.com/io-da/command-dbal/dbal"
)

// ErrorHandler is a command.ErrorHandler capturing every error on a Sentry hub.
type ErrorHandler struct {
	hub    *sentry.Hub
	ignore []error
}

// NewErrorHandler creates an error handler reporting to hub, or to the current hub when hub is nil.
// Errors matching any of ignore (errors.Is) are not reported.
func NewErrorHandler(hub *sentry.Hub, ignore ...error) *ErrorHandler {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &ErrorHandler{
		hub:    hub,
		ignore: ignore,
	}
}

func (hdl *ErrorHandler) Handle(cmd command.Command, err error) {
	for _, ignored := range hdl.ignore {
		if errors.Is(err, ignored) {
			return
		}
	}

	hdl.hub.WithScope(func(scope *sentry.Scope) {
		if cmd != nil {
			scope.SetTag("command", string(cmd.Identifier()))
		}
		var reconnectErr *dbal.ReconnectError
		if errors.As(err, &reconnectErr) {
			scope.SetTag("dbal.reconnect", reconnectErr.Op)
			if reconnectErr.Probe != nil {
				scope.SetTag("dbal.probe", reconnectErr.Probe.Kind.String())
				scope.SetContext("dbal", sentry.Context{
					"probe_error": reconnectErr.Probe.Error(),
				})
			}
		}
		hdl.hub.CaptureException(err)
	})
}
