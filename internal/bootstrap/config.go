package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// set of default configuration values
const (
	DefaultDatabase       = "deal_pipeline_db"
	DefaultCredentialName = "app_user"
	DefaultRole           = "readWrite"
)

// Config is the full description of what the bootstrap creates
type Config struct {
	Database    string           `mapstructure:"database" yaml:"database" json:"database"`
	Credential  CredentialConfig `mapstructure:"credential" yaml:"credential" json:"credential"`
	Collections []CollectionSpec `mapstructure:"collections" yaml:"collections" json:"collections"`
	Indexes     []IndexSpec      `mapstructure:"indexes" yaml:"indexes" json:"indexes"`
}

// CredentialConfig is the application credential
type CredentialConfig struct {
	Name     string         `mapstructure:"name" yaml:"name" json:"name"`
	Password string         `mapstructure:"password" yaml:"password,omitempty" json:"password,omitempty"`
	Roles    []mongodb.Role `mapstructure:"roles" yaml:"roles" json:"roles"`
	IfExists Policy         `mapstructure:"if_exists" yaml:"if_exists" json:"if_exists"`
}

// CollectionSpec is a collection to create
type CollectionSpec struct {
	Name     string `mapstructure:"name" yaml:"name" json:"name"`
	IfExists Policy `mapstructure:"if_exists" yaml:"if_exists" json:"if_exists"`
}

// IndexSpec is an index to build on a collection
type IndexSpec struct {
	Collection string             `mapstructure:"collection" yaml:"collection" json:"collection"`
	Name       string             `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	Keys       []mongodb.IndexKey `mapstructure:"keys" yaml:"keys" json:"keys"`
	Unique     bool               `mapstructure:"unique" yaml:"unique" json:"unique"`
	IfExists   Policy             `mapstructure:"if_exists" yaml:"if_exists" json:"if_exists"`
}

// IndexName returns the configured index name or the server's default name
func (spec IndexSpec) IndexName() string {
	if spec.Name != "" {
		return spec.Name
	}
	return mongodb.DefaultIndexName(spec.Keys)
}

// Index returns the index model described by the IndexSpec
func (spec IndexSpec) Index() mongodb.Index {
	return mongodb.Index{Name: spec.IndexName(), Keys: spec.Keys, Unique: spec.Unique}
}

// DefaultConfig returns the deal pipeline configuration
func DefaultConfig() Config {
	ascending := func(collection, field string) IndexSpec {
		return IndexSpec{
			Collection: collection,
			Keys:       []mongodb.IndexKey{{Field: field, Direction: mongodb.Ascending}},
			IfExists:   PolicySkip,
		}
	}

	email := ascending("users", "email")
	email.Unique = true

	return Config{
		Database: DefaultDatabase,
		Credential: CredentialConfig{
			Name:     DefaultCredentialName,
			Roles:    []mongodb.Role{{Role: DefaultRole, DB: DefaultDatabase}},
			IfExists: PolicyReplace,
		},
		Collections: []CollectionSpec{
			{Name: "deals", IfExists: PolicySkip},
			{Name: "users", IfExists: PolicySkip},
			{Name: "stages", IfExists: PolicySkip},
		},
		Indexes: []IndexSpec{
			ascending("deals", "createdAt"),
			ascending("deals", "status"),
			email,
			ascending("stages", "pipelineId"),
		},
	}
}

// Normalize fills in values left blank: missing policies and role databases
func (c *Config) Normalize() {
	if c.Credential.IfExists == "" {
		c.Credential.IfExists = PolicyReplace
	}
	for i, role := range c.Credential.Roles {
		if role.DB == "" {
			c.Credential.Roles[i].DB = c.Database
		}
	}
	for i := range c.Collections {
		if c.Collections[i].IfExists == "" {
			c.Collections[i].IfExists = PolicySkip
		}
	}
	for i := range c.Indexes {
		if c.Indexes[i].IfExists == "" {
			c.Indexes[i].IfExists = PolicySkip
		}
	}
}

// RedactedPassword replaces a secret in displayed output
const RedactedPassword = "********"

const invalidDatabaseChars = `/\. "$`

// Validate checks the configuration can be applied
func (c Config) Validate() error {
	if err := c.ValidateLayout(); err != nil {
		return err
	}
	if c.Credential.Password == "" {
		return invalidConfig("credential password must not be empty")
	}
	return nil
}

// ValidateLayout checks everything but the credential secret,
// which is only needed once the bootstrap runs
func (c Config) ValidateLayout() error {
	if c.Database == "" {
		return invalidConfig("database name must not be empty")
	}
	if strings.ContainsAny(c.Database, invalidDatabaseChars) {
		return invalidConfig("database name %q must not contain any of %q", c.Database, invalidDatabaseChars)
	}

	if err := c.Credential.validate(); err != nil {
		return err
	}

	collections := make(map[string]struct{}, len(c.Collections))
	for _, coll := range c.Collections {
		if coll.Name == "" {
			return invalidConfig("collection name must not be empty")
		}
		if _, ok := collections[coll.Name]; ok {
			return invalidConfig("collection %q is listed more than once", coll.Name)
		}
		if !coll.IfExists.valid() {
			return invalidConfig("collection %q: %s", coll.Name, errUnsupportedPolicy)
		}
		if coll.IfExists == PolicyReplace {
			return invalidConfig("collection %q: policy %q would drop existing data", coll.Name, PolicyReplace)
		}
		collections[coll.Name] = struct{}{}
	}

	indexNames := map[string]struct{}{}
	for _, idx := range c.Indexes {
		if _, ok := collections[idx.Collection]; !ok {
			return invalidConfig("index on %q: collection is not configured", idx.Collection)
		}
		if len(idx.Keys) == 0 {
			return invalidConfig("index on %q: at least one key is required", idx.Collection)
		}
		for _, key := range idx.Keys {
			if key.Field == "" {
				return invalidConfig("index on %q: key field must not be empty", idx.Collection)
			}
			if key.Direction != mongodb.Ascending && key.Direction != mongodb.Descending {
				return invalidConfig("index on %q: direction for %q must be 1 or -1", idx.Collection, key.Field)
			}
		}
		if !idx.IfExists.valid() {
			return invalidConfig("index %s.%s: %s", idx.Collection, idx.IndexName(), errUnsupportedPolicy)
		}

		name := idx.Collection + "." + idx.IndexName()
		if _, ok := indexNames[name]; ok {
			return invalidConfig("index %s is listed more than once", name)
		}
		indexNames[name] = struct{}{}
	}
	return nil
}

func (c CredentialConfig) validate() error {
	if c.Name == "" {
		return invalidConfig("credential name must not be empty")
	}
	if len(c.Roles) == 0 {
		return invalidConfig("credential %q must be granted at least one role", c.Name)
	}
	for _, role := range c.Roles {
		if role.Role == "" {
			return invalidConfig("credential %q: role must not be empty", c.Name)
		}
	}
	if !c.IfExists.valid() {
		return invalidConfig("credential %q: %s", c.Name, errUnsupportedPolicy)
	}
	return nil
}

// Redacted returns a copy of the config safe to display
func (c Config) Redacted() Config {
	out := c
	if out.Credential.Password != "" {
		out.Credential.Password = RedactedPassword
	}
	return out
}

func invalidConfig(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
