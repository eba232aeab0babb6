package bootstrap_test

import (
	"testing"

	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/mongodb"
	"github.com/dealpipeline/dbinit/internal/utils/test/assert"
	"github.com/dealpipeline/dbinit/internal/utils/test/so"
)

func TestDefaultConfig(t *testing.T) {
	config := bootstrap.DefaultConfig()

	so.So(t, config.Database, so.ShouldEqual, "deal_pipeline_db")
	so.So(t, config.Credential.Name, so.ShouldEqual, "app_user")
	so.So(t, config.Credential.Password, so.ShouldBeBlank)
	so.So(t, config.Indexes, so.ShouldHaveLength, 4)
	so.So(t, config.Credential.Roles, so.ShouldResemble, []mongodb.Role{{Role: "readWrite", DB: "deal_pipeline_db"}})
	so.So(t, config.Collections, so.ShouldHaveLength, 3)

	var names []string
	for _, idx := range config.Indexes {
		names = append(names, idx.Collection+"."+idx.IndexName())
	}
	so.So(t, names, so.ShouldResemble, []string{
		"deals.createdAt_1",
		"deals.status_1",
		"users.email_1",
		"stages.pipelineId_1",
	})

	var unique []string
	for _, idx := range config.Indexes {
		if idx.Unique {
			unique = append(unique, idx.IndexName())
		}
	}
	so.So(t, unique, so.ShouldResemble, []string{"email_1"})

	so.So(t, config.ValidateLayout(), so.ShouldBeNil)
}

func TestConfigNormalize(t *testing.T) {
	config := bootstrap.Config{
		Database: "crm",
		Credential: bootstrap.CredentialConfig{
			Name:  "svc",
			Roles: []mongodb.Role{{Role: "readWrite"}, {Role: "read", DB: "reporting"}},
		},
		Collections: []bootstrap.CollectionSpec{{Name: "accounts"}},
		Indexes:     []bootstrap.IndexSpec{{Collection: "accounts", Keys: []mongodb.IndexKey{{Field: "name", Direction: 1}}}},
	}
	config.Normalize()

	assert.Equal(t, bootstrap.PolicyReplace, config.Credential.IfExists)
	assert.Equal(t, []mongodb.Role{{Role: "readWrite", DB: "crm"}, {Role: "read", DB: "reporting"}}, config.Credential.Roles)
	assert.Equal(t, bootstrap.PolicySkip, config.Collections[0].IfExists)
	assert.Equal(t, bootstrap.PolicySkip, config.Indexes[0].IfExists)
}

func TestConfigValidate(t *testing.T) {
	t.Run("Should require a credential password", func(t *testing.T) {
		config := bootstrap.DefaultConfig()
		assert.Nil(t, config.ValidateLayout())

		err := config.Validate()
		assert.ErrorIs(t, err, bootstrap.ErrInvalidConfig)
		assert.Equal(t, "invalid configuration: credential password must not be empty", err.Error())

		config.Credential.Password = "s3cret"
		assert.Nil(t, config.Validate())
	})

	for _, tc := range []struct {
		description string
		modify      func(c *bootstrap.Config)
		expectedErr string
	}{
		{
			description: "an empty database name",
			modify:      func(c *bootstrap.Config) { c.Database = "" },
			expectedErr: "database name must not be empty",
		},
		{
			description: "a database name with a dot",
			modify:      func(c *bootstrap.Config) { c.Database = "deal.pipeline" },
			expectedErr: `database name "deal.pipeline" must not contain any of "/\\. \"$"`,
		},
		{
			description: "an empty credential name",
			modify:      func(c *bootstrap.Config) { c.Credential.Name = "" },
			expectedErr: "credential name must not be empty",
		},
		{
			description: "a credential without roles",
			modify:      func(c *bootstrap.Config) { c.Credential.Roles = nil },
			expectedErr: `credential "app_user" must be granted at least one role`,
		},
		{
			description: "an unknown credential policy",
			modify:      func(c *bootstrap.Config) { c.Credential.IfExists = "overwrite" },
			expectedErr: `credential "app_user": unsupported value, use one of [skip, error, replace] instead`,
		},
		{
			description: "a duplicate collection",
			modify: func(c *bootstrap.Config) {
				c.Collections = append(c.Collections, bootstrap.CollectionSpec{Name: "deals", IfExists: bootstrap.PolicySkip})
			},
			expectedErr: `collection "deals" is listed more than once`,
		},
		{
			description: "a collection with the replace policy",
			modify:      func(c *bootstrap.Config) { c.Collections[0].IfExists = bootstrap.PolicyReplace },
			expectedErr: `collection "deals": policy "replace" would drop existing data`,
		},
		{
			description: "an index on an unknown collection",
			modify:      func(c *bootstrap.Config) { c.Indexes[0].Collection = "pipelines" },
			expectedErr: `index on "pipelines": collection is not configured`,
		},
		{
			description: "an index without keys",
			modify:      func(c *bootstrap.Config) { c.Indexes[1].Keys = nil },
			expectedErr: `index on "deals": at least one key is required`,
		},
		{
			description: "an index with an invalid direction",
			modify:      func(c *bootstrap.Config) { c.Indexes[3].Keys[0].Direction = 2 },
			expectedErr: `index on "stages": direction for "pipelineId" must be 1 or -1`,
		},
		{
			description: "a duplicate index",
			modify: func(c *bootstrap.Config) {
				c.Indexes = append(c.Indexes, c.Indexes[0])
			},
			expectedErr: "index deals.createdAt_1 is listed more than once",
		},
	} {
		t.Run("Should reject "+tc.description, func(t *testing.T) {
			config := bootstrap.DefaultConfig()
			tc.modify(&config)

			err := config.ValidateLayout()
			assert.ErrorIs(t, err, bootstrap.ErrInvalidConfig)
			assert.Equal(t, "invalid configuration: "+tc.expectedErr, err.Error())
		})
	}
}

func TestConfigRedacted(t *testing.T) {
	config := bootstrap.DefaultConfig()
	config.Credential.Password = "s3cret"

	redacted := config.Redacted()
	assert.Equal(t, "********", redacted.Credential.Password)
	assert.Equal(t, "s3cret", config.Credential.Password)
}

func TestPolicySet(t *testing.T) {
	var p bootstrap.Policy
	assert.Nil(t, p.Set("error"))
	assert.Equal(t, bootstrap.PolicyError, p)

	err := p.Set("overwrite")
	assert.Equal(t, "unsupported value, use one of [skip, error, replace] instead", err.Error())
	assert.Equal(t, bootstrap.PolicyError, p)

	assert.Equal(t, `Allowed values: "skip", "error", "replace"`, bootstrap.PolicyUsage())
}
