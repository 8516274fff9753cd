package mediator

import "context"

// Request is a command or query. Handlers are looked up by its dynamic type,
// so requests are sent as pointers to structs.
type Request interface{}

// Response is whatever a handler returns; callers type-assert it
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc lets a plain function act as a RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps every dispatched request; it calls next to continue the chain
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
