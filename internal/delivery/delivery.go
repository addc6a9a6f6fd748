// Package delivery defines the contract every transport binding implements.
package delivery

import "context"

// Delivery is a running transport surface (HTTP today; the protocol core does
// not depend on the binding).
type Delivery interface {
	Serve(ctx context.Context) error
}
