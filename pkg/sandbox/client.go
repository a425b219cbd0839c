package sandbox

import "context"

// Client runs projects. Implementations own bundling and execution.
type Client interface {
	Dispatch(ctx context.Context, setup Setup) error
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, setup Setup) error

func (f ClientFunc) Dispatch(ctx context.Context, setup Setup) error {
	return f(ctx, setup)
}
