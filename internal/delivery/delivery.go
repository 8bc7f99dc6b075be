// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a transport entry point. Implementations block in Serve
// until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
