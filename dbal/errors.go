package dbal

import "fmt"

// Error is used to create errors originating from the dbal package
type Error string

// Error returns the string message of the error.
func (e Error) Error() string {
	return string(e)
}

const (
	// UnknownPlatformError will be returned when no platform is known for a driver name.
	UnknownPlatformError = Error("dbal: unknown database platform")
	// ConnectionClosedError will be returned when using a connection that is not connected.
	ConnectionClosedError = Error("dbal: connection is closed")
	// ConnectionLostError is wrapped by adapters when the driver reports the connection itself went away.
	ConnectionLostError = Error("dbal: connection lost")
	// UnsupportedAdapterError will be returned when the configuration names an adapter that does not exist.
	UnsupportedAdapterError = Error("dbal: unsupported adapter")
)

// ProbeKind tells how a probe failed.
type ProbeKind int

const (
	// ProbeFailure is an error returned by the platform lookup or the probe query.
	ProbeFailure ProbeKind = iota
	// ProbeWarning is a panic raised by the platform lookup or the probe query.
	ProbeWarning
)

func (k ProbeKind) String() string {
	switch k {
	case ProbeFailure:
		return "failure"
	case ProbeWarning:
		return "warning"
	default:
		return fmt.Sprintf("ProbeKind(%d)", int(k))
	}
}

// ProbeError describes a failed liveness probe.
type ProbeError struct {
	Kind ProbeKind
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("dbal: probe %s: %v", e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// ReconnectError is returned when closing or reopening a connection failed after a probe failure.
type ReconnectError struct {
	// Op is either "close" or "connect".
	Op string
	// Probe is the probe failure that triggered the reconnection.
	Probe *ProbeError
	Err   error
}

func (e *ReconnectError) Error() string {
	return fmt.Sprintf("dbal: reconnect failed on %s: %v", e.Op, e.Err)
}

func (e *ReconnectError) Unwrap() error {
	return e.Err
}

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
