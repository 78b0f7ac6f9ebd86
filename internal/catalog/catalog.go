// Package catalog fetches "up next" recommendations from a remote catalog.
package catalog

import (
	"context"

	"github.com/llehouerou/upnext/internal/media"
)

// Client returns the items a remote catalog recommends after seed.
// Requests are keyed by seed.ID; the remaining fields carry the metadata a
// backend may need to resolve it.
type Client interface {
	Next(ctx context.Context, seed media.Item) ([]media.Item, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, seed media.Item) ([]media.Item, error)

// Next implements Client.
func (f ClientFunc) Next(ctx context.Context, seed media.Item) ([]media.Item, error) {
	return f(ctx, seed)
}
