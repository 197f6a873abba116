package model

import (
	"context"
)

// Server is the interactive boundary driving the application.
type Server interface {
	Serve(ctx context.Context) error
	Stop()
}
