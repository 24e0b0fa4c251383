// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker) whose Serve
// blocks until the context is cancelled or the transport fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
