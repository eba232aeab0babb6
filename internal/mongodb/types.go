package mongodb

import (
	"fmt"
	"strings"
)

// Role is a privilege level granted on a single database
type Role struct {
	Role string `bson:"role" mapstructure:"role" yaml:"role" json:"role"`
	DB   string `bson:"db" mapstructure:"db" yaml:"db,omitempty" json:"db"`
}

func (r Role) String() string { return fmt.Sprintf("%s@%s", r.Role, r.DB) }

// User is a database user
type User struct {
	Name     string
	Password string
	Roles    []Role
}

// set of supported index directions
const (
	Ascending  int32 = 1
	Descending int32 = -1
)

// IndexKey is a single field of an index key specification
type IndexKey struct {
	Field     string `mapstructure:"field" yaml:"field" json:"field"`
	Direction int32  `mapstructure:"direction" yaml:"direction" json:"direction"`
}

// Index is a collection index
type Index struct {
	Name   string
	Keys   []IndexKey
	Unique bool
}

// DefaultIndexName returns the name the server would generate
// for the provided key specification (e.g. "createdAt_1")
func DefaultIndexName(keys []IndexKey) string {
	parts := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		parts = append(parts, key.Field, fmt.Sprintf("%d", key.Direction))
	}
	return strings.Join(parts, "_")
}

// SameKeys reports whether the two indexes share the same ordered key specification
func (idx Index) SameKeys(other Index) bool {
	if len(idx.Keys) != len(other.Keys) {
		return false
	}
	for i, key := range idx.Keys {
		if key != other.Keys[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the two indexes share the same key specification and options
func (idx Index) Matches(other Index) bool {
	return idx.SameKeys(other) && idx.Unique == other.Unique
}

func (idx Index) String() string {
	keys := make([]string, 0, len(idx.Keys))
	for _, key := range idx.Keys {
		keys = append(keys, fmt.Sprintf("%s: %d", key.Field, key.Direction))
	}
	s := fmt.Sprintf("{ %s }", strings.Join(keys, ", "))
	if idx.Unique {
		s += " unique"
	}
	return s
}
