package mock

import (
	"context"
	"fmt"

	"github.com/dealpipeline/dbinit/internal/mongodb"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServer is an in-memory stand-in for the administrative
// state of a MongoDB server: users, collections and indexes
type MongoServer struct {
	Users       map[string]mongodb.User
	Collections map[string][]string
	IndexSets   map[string][]mongodb.Index
}

// NewMongoServer creates a new, empty MongoServer
func NewMongoServer() *MongoServer {
	return &MongoServer{
		Users:       map[string]mongodb.User{},
		Collections: map[string][]string{},
		IndexSets:   map[string][]mongodb.Index{},
	}
}

var idIndex = mongodb.Index{Name: "_id_", Keys: []mongodb.IndexKey{{Field: "_id", Direction: mongodb.Ascending}}}

func namespace(database, name string) string { return database + "." + name }

// Client returns a mocked MongoDB client operating on the server state
func (s *MongoServer) Client() MongoClient {
	return MongoClient{
		PingFn: func(ctx context.Context) error { return nil },
		FindUserFn: func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
			user, ok := s.Users[namespace(database, name)]
			return user, ok, nil
		},
		CreateUserFn: func(ctx context.Context, database string, user mongodb.User) error {
			if _, ok := s.Users[namespace(database, user.Name)]; ok {
				return mongo.CommandError{
					Code:    mongodb.CodeUserAlreadyExists,
					Name:    "Location51003",
					Message: fmt.Sprintf("User \"%s@%s\" already exists", user.Name, database),
				}
			}
			s.Users[namespace(database, user.Name)] = user
			return nil
		},
		UpdateUserFn: func(ctx context.Context, database string, user mongodb.User) error {
			if _, ok := s.Users[namespace(database, user.Name)]; !ok {
				return mongo.CommandError{Code: 11, Name: "UserNotFound", Message: "Could not find user"}
			}
			s.Users[namespace(database, user.Name)] = user
			return nil
		},
		CollectionNamesFn: func(ctx context.Context, database string) ([]string, error) {
			return s.Collections[database], nil
		},
		CreateCollectionFn: func(ctx context.Context, database, name string) error {
			if s.hasCollection(database, name) {
				return mongo.CommandError{
					Code:    mongodb.CodeNamespaceExists,
					Name:    "NamespaceExists",
					Message: fmt.Sprintf("Collection %s already exists.", namespace(database, name)),
				}
			}
			s.createCollection(database, name)
			return nil
		},
		IndexesFn: func(ctx context.Context, database, collection string) ([]mongodb.Index, error) {
			return s.IndexSets[namespace(database, collection)], nil
		},
		CreateIndexFn: func(ctx context.Context, database, collection string, index mongodb.Index) (string, error) {
			if !s.hasCollection(database, collection) {
				s.createCollection(database, collection)
			}
			ns := namespace(database, collection)
			for _, idx := range s.IndexSets[ns] {
				if idx.Name == index.Name && idx.Matches(index) {
					return idx.Name, nil
				}
				if idx.Name == index.Name || idx.SameKeys(index) {
					return "", mongo.CommandError{
						Code:    mongodb.CodeIndexOptionsConflict,
						Name:    "IndexOptionsConflict",
						Message: fmt.Sprintf("Index already exists with a different name or options: %s", idx.Name),
					}
				}
			}
			s.IndexSets[ns] = append(s.IndexSets[ns], index)
			return index.Name, nil
		},
		DropIndexFn: func(ctx context.Context, database, collection, name string) error {
			ns := namespace(database, collection)
			for i, idx := range s.IndexSets[ns] {
				if idx.Name == name {
					s.IndexSets[ns] = append(s.IndexSets[ns][:i], s.IndexSets[ns][i+1:]...)
					return nil
				}
			}
			return mongo.CommandError{Code: 27, Name: "IndexNotFound", Message: fmt.Sprintf("index not found with name [%s]", name)}
		},
	}
}

func (s *MongoServer) hasCollection(database, name string) bool {
	for _, coll := range s.Collections[database] {
		if coll == name {
			return true
		}
	}
	return false
}

func (s *MongoServer) createCollection(database, name string) {
	s.Collections[database] = append(s.Collections[database], name)
	s.IndexSets[namespace(database, name)] = []mongodb.Index{idIndex}
}
