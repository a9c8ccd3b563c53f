package command

import "context"

// InwardMiddleware must be implemented for a type to qualify as an inward command middleware.
// An inward middleware process a command before being provided to the respective command handler.
type InwardMiddleware interface {
	HandleInward(cmd Command) error
}

// OutwardMiddleware must be implemented for a type to qualify as an outward command middleware.
// An outward middleware process the command after being provided to the respective command handler.
type OutwardMiddleware interface {
	HandleOutward(cmd Command, data any, err error) (any, error)
}

// Next represents the remainder of the pipeline from the point of view of a Middleware.
type Next func(ctx context.Context, cmd Command) (data any, err error)

// Middleware must be implemented for a type to qualify as a wrapping command middleware.
// A wrapping middleware decides when (and whether) the rest of the pipeline runs by invoking next.
// Middlewares are applied in registration order, the first one being the outermost.
type Middleware interface {
	Handle(ctx context.Context, cmd Command, next Next) (data any, err error)
}

// MiddlewareFunc allows plain functions to be used as a Middleware.
type MiddlewareFunc func(ctx context.Context, cmd Command, next Next) (data any, err error)

// Handle calls fn(ctx, cmd, next).
func (fn MiddlewareFunc) Handle(ctx context.Context, cmd Command, next Next) (any, error) {
	return fn(ctx, cmd, next)
}

func chain(hdl Handler, mdls []Middleware) Next {
	next := Next(func(_ context.Context, cmd Command) (any, error) {
		return hdl.Handle(cmd)
	})
	for i := len(mdls) - 1; i >= 0; i-- {
		next = wrap(mdls[i], next)
	}
	return next
}

func wrap(mdl Middleware, next Next) Next {
	return func(ctx context.Context, cmd Command) (any, error) {
		return mdl.Handle(ctx, cmd, next)
	}
}
