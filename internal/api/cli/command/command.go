// Package command defines the request and handler types shared by the
// terminal boundary.
package command

import (
	"context"
	"io"
)

// Request is one parsed input line.
type Request struct {
	Name string
	Args []string
}

// Handler executes a request and writes its rendering to out.
type Handler func(ctx context.Context, out io.Writer, req Request) error

// Middleware decorates a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
