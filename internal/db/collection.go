package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection defines the read operations the maintenance source needs.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error)
}

// Cursor defines the interface for cursor operations.
type Cursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
