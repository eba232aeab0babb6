package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultURI is the connection string used when none is configured
const DefaultURI = "mongodb://localhost:27017"

// Client is a MongoDB administration client
type Client interface {
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error

	FindUser(ctx context.Context, database, name string) (User, bool, error)
	CreateUser(ctx context.Context, database string, user User) error
	UpdateUser(ctx context.Context, database string, user User) error

	CollectionNames(ctx context.Context, database string) ([]string, error)
	CreateCollection(ctx context.Context, database, name string) error

	Indexes(ctx context.Context, database, collection string) ([]Index, error)
	CreateIndex(ctx context.Context, database, collection string, index Index) (string, error)
	DropIndex(ctx context.Context, database, collection, name string) error
}

// ConnectOptions are the options used to connect to a MongoDB server
type ConnectOptions struct {
	URI            string
	AppName        string
	ConnectTimeout time.Duration
}

type client struct {
	mongo *mongo.Client
}

// Connect connects to the MongoDB server and verifies it is reachable
func Connect(ctx context.Context, opts ConnectOptions) (Client, error) {
	uri := opts.URI
	if uri == "" {
		uri = DefaultURI
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}

	mc, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, ConnectionError{err}
	}

	c := &client{mc}
	if err := c.Ping(ctx); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}
	return c, nil
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.mongo.Ping(ctx, readpref.Primary()); err != nil {
		return ConnectionError{err}
	}
	return nil
}

func (c *client) Disconnect(ctx context.Context) error {
	return c.mongo.Disconnect(ctx)
}

type usersInfoResponse struct {
	Users []struct {
		User  string `bson:"user"`
		DB    string `bson:"db"`
		Roles []Role `bson:"roles"`
	} `bson:"users"`
}

func (c *client) FindUser(ctx context.Context, database, name string) (User, bool, error) {
	cmd := bson.D{{Key: "usersInfo", Value: bson.D{
		{Key: "user", Value: name},
		{Key: "db", Value: database},
	}}}

	var res usersInfoResponse
	if err := c.mongo.Database(database).RunCommand(ctx, cmd).Decode(&res); err != nil {
		return User{}, false, err
	}

	for _, u := range res.Users {
		if u.User == name && u.DB == database {
			return User{Name: u.User, Roles: u.Roles}, true, nil
		}
	}
	return User{}, false, nil
}

func (c *client) CreateUser(ctx context.Context, database string, user User) error {
	return c.mongo.Database(database).RunCommand(ctx, bson.D{
		{Key: "createUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: user.Roles},
	}).Err()
}

func (c *client) UpdateUser(ctx context.Context, database string, user User) error {
	return c.mongo.Database(database).RunCommand(ctx, bson.D{
		{Key: "updateUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: user.Roles},
	}).Err()
}

func (c *client) CollectionNames(ctx context.Context, database string) ([]string, error) {
	return c.mongo.Database(database).ListCollectionNames(ctx, bson.D{})
}

func (c *client) CreateCollection(ctx context.Context, database, name string) error {
	return c.mongo.Database(database).CreateCollection(ctx, name)
}

type indexSpec struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique bool   `bson:"unique"`
}

func (c *client) Indexes(ctx context.Context, database, collection string) ([]Index, error) {
	cursor, err := c.mongo.Database(database).Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}

	var specs []indexSpec
	if err := cursor.All(ctx, &specs); err != nil {
		return nil, err
	}

	indexes := make([]Index, 0, len(specs))
	for _, spec := range specs {
		idx := Index{Name: spec.Name, Unique: spec.Unique}
		for _, e := range spec.Key {
			idx.Keys = append(idx.Keys, IndexKey{e.Key, parseDirection(e.Value)})
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func (c *client) CreateIndex(ctx context.Context, database, collection string, index Index) (string, error) {
	keys := make(bson.D, 0, len(index.Keys))
	for _, key := range index.Keys {
		keys = append(keys, bson.E{Key: key.Field, Value: key.Direction})
	}

	opts := options.Index()
	if index.Name != "" {
		opts.SetName(index.Name)
	}
	if index.Unique {
		opts.SetUnique(true)
	}

	return c.mongo.Database(database).Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	})
}

func (c *client) DropIndex(ctx context.Context, database, collection, name string) error {
	_, err := c.mongo.Database(database).Collection(collection).Indexes().DropOne(ctx, name)
	return err
}

// parseDirection normalizes the numeric types the server may return for a key direction;
// special index types (e.g. "text", "2dsphere") have no direction and report 0
func parseDirection(v interface{}) int32 {
	switch d := v.(type) {
	case int32:
		return d
	case int64:
		return int32(d)
	case float64:
		return int32(d)
	case int:
		return int32(d)
	}
	return 0
}

// ConnectionError is returned when the MongoDB server cannot be reached
type ConnectionError struct {
	Err error
}

func (err ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to MongoDB: %s", err.Err)
}

func (err ConnectionError) Unwrap() error { return err.Err }
