package core

import "context"

// Store is the connection handle of a storage engine, shared by all of its repositories.
type Store interface {
	// CollectionNames lists the existing collections, sorted.
	CollectionNames(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}
