// Package delivery defines the contract every transport front (HTTP, workers)
// fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport serving the application.
type Delivery interface {
	Serve(ctx context.Context) error
}
