package interfaces

import "context"

// FunctionInvoker calls a named server-side function. The payload is encoded as
// JSON and the response decoded into out when out is non-nil.
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, payload any, out any) error
}
