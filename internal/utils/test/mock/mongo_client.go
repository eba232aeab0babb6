package mock

import (
	"context"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// MongoClient is a mocked MongoDB client
type MongoClient struct {
	mongodb.Client
	PingFn             func(ctx context.Context) error
	DisconnectFn       func(ctx context.Context) error
	FindUserFn         func(ctx context.Context, database, name string) (mongodb.User, bool, error)
	CreateUserFn       func(ctx context.Context, database string, user mongodb.User) error
	UpdateUserFn       func(ctx context.Context, database string, user mongodb.User) error
	CollectionNamesFn  func(ctx context.Context, database string) ([]string, error)
	CreateCollectionFn func(ctx context.Context, database, name string) error
	IndexesFn          func(ctx context.Context, database, collection string) ([]mongodb.Index, error)
	CreateIndexFn      func(ctx context.Context, database, collection string, index mongodb.Index) (string, error)
	DropIndexFn        func(ctx context.Context, database, collection, name string) error
}

// Ping calls the mocked Ping implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) Ping(ctx context.Context) error {
	if mc.PingFn != nil {
		return mc.PingFn(ctx)
	}
	return mc.Client.Ping(ctx)
}

// Disconnect calls the mocked Disconnect implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation
// or is a no-op if the underlying mongodb.Client is left undefined
func (mc MongoClient) Disconnect(ctx context.Context) error {
	if mc.DisconnectFn != nil {
		return mc.DisconnectFn(ctx)
	}
	if mc.Client == nil {
		return nil
	}
	return mc.Client.Disconnect(ctx)
}

// FindUser calls the mocked FindUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) FindUser(ctx context.Context, database, name string) (mongodb.User, bool, error) {
	if mc.FindUserFn != nil {
		return mc.FindUserFn(ctx, database, name)
	}
	return mc.Client.FindUser(ctx, database, name)
}

// CreateUser calls the mocked CreateUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CreateUser(ctx context.Context, database string, user mongodb.User) error {
	if mc.CreateUserFn != nil {
		return mc.CreateUserFn(ctx, database, user)
	}
	return mc.Client.CreateUser(ctx, database, user)
}

// UpdateUser calls the mocked UpdateUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) UpdateUser(ctx context.Context, database string, user mongodb.User) error {
	if mc.UpdateUserFn != nil {
		return mc.UpdateUserFn(ctx, database, user)
	}
	return mc.Client.UpdateUser(ctx, database, user)
}

// CollectionNames calls the mocked CollectionNames implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CollectionNames(ctx context.Context, database string) ([]string, error) {
	if mc.CollectionNamesFn != nil {
		return mc.CollectionNamesFn(ctx, database)
	}
	return mc.Client.CollectionNames(ctx, database)
}

// CreateCollection calls the mocked CreateCollection implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CreateCollection(ctx context.Context, database, name string) error {
	if mc.CreateCollectionFn != nil {
		return mc.CreateCollectionFn(ctx, database, name)
	}
	return mc.Client.CreateCollection(ctx, database, name)
}

// Indexes calls the mocked Indexes implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) Indexes(ctx context.Context, database, collection string) ([]mongodb.Index, error) {
	if mc.IndexesFn != nil {
		return mc.IndexesFn(ctx, database, collection)
	}
	return mc.Client.Indexes(ctx, database, collection)
}

// CreateIndex calls the mocked CreateIndex implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CreateIndex(ctx context.Context, database, collection string, index mongodb.Index) (string, error) {
	if mc.CreateIndexFn != nil {
		return mc.CreateIndexFn(ctx, database, collection, index)
	}
	return mc.Client.CreateIndex(ctx, database, collection, index)
}

// DropIndex calls the mocked DropIndex implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) DropIndex(ctx context.Context, database, collection, name string) error {
	if mc.DropIndexFn != nil {
		return mc.DropIndexFn(ctx, database, collection, name)
	}
	return mc.Client.DropIndex(ctx, database, collection, name)
}
