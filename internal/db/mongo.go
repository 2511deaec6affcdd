package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 10 * time.Second

var ErrNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoCollection adapts a *mongo.Collection to Collection.
type MongoCollection struct {
	Collection *mongo.Collection
}

// Find queries documents from the collection.
func (c *MongoCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoCursor{cursor: cursor}, nil
}

type mongoCursor struct {
	cursor *mongo.Cursor
}

func (m *mongoCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

func (m *mongoCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}
