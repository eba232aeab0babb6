package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/mongodb"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultProfile is the default profile name
	DefaultProfile = "default"

	// DefaultConnectTimeout is the default server selection timeout
	DefaultConnectTimeout = 30 * time.Second

	profileDir  = ".config/dbinit"
	profileType = "yaml"
	envPrefix   = "dbinit"
)

// set of supported profile keys
const (
	keyURI                = "uri"
	keyConnectTimeout     = "connect_timeout"
	keyDatabase           = "database"
	keyCredentialName     = "credential.name"
	keyCredentialPassword = "credential.password"
	keyCredentialRoles    = "credential.roles"
	keyCredentialIfExists = "credential.if_exists"
	keyCollections        = "collections"
	keyIndexes            = "indexes"
)

// set of global profile flags
const (
	flagProfile      = "profile"
	flagProfileUsage = `Specify your profile (Default value: "default")`

	flagConfig      = "config"
	flagConfigUsage = "Specify the filepath of a configuration file to use instead of the profile"

	flagURI      = "uri"
	flagURIUsage = "Specify the MongoDB connection string"

	flagDatabase      = "database"
	flagDatabaseUsage = "Specify the name of the database to initialize"

	flagConnectTimeout      = "connect-timeout"
	flagConnectTimeoutUsage = "Specify how long to wait for the MongoDB server to become available"
)

// Profile is the CLI profile: the layered configuration
// of defaults, profile file, environment and flags
type Profile struct {
	Name       string
	ConfigFile string

	dir string
	fs  afero.Fs
	v   *viper.Viper
}

// NewDefaultProfile creates a new default CLI profile
func NewDefaultProfile() (*Profile, error) {
	return NewProfile(DefaultProfile)
}

// NewProfile creates a new CLI profile
func NewProfile(name string) (*Profile, error) {
	dir, err := homeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create CLI profile: %w", err)
	}
	return NewProfileWithFs(name, dir, afero.NewOsFs()), nil
}

// NewProfileWithFs creates a new CLI profile stored in dir on the provided filesystem
func NewProfileWithFs(name, dir string, fs afero.Fs) *Profile {
	v := viper.New()
	v.SetFs(fs)

	config := bootstrap.DefaultConfig()
	v.SetDefault(keyURI, mongodb.DefaultURI)
	v.SetDefault(keyConnectTimeout, DefaultConnectTimeout)
	v.SetDefault(keyDatabase, config.Database)
	v.SetDefault(keyCredentialName, config.Credential.Name)
	v.SetDefault(keyCredentialPassword, "")
	v.SetDefault(keyCredentialIfExists, string(config.Credential.IfExists))

	return &Profile{
		Name: name,
		dir:  dir,
		fs:   fs,
		v:    v,
	}
}

func homeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, profileDir), nil
}

// SetFlags registers the profile flags on the provided flag set
func (p *Profile) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&p.Name, flagProfile, DefaultProfile, flagProfileUsage)
	fs.StringVar(&p.ConfigFile, flagConfig, "", flagConfigUsage)

	fs.String(flagURI, mongodb.DefaultURI, flagURIUsage)
	fs.String(flagDatabase, bootstrap.DefaultDatabase, flagDatabaseUsage)
	fs.Duration(flagConnectTimeout, DefaultConnectTimeout, flagConnectTimeoutUsage)
}

// BindFlags binds the profile flags, once parsed, to the profile keys
func (p *Profile) BindFlags(fs *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		keyURI:            flagURI,
		keyDatabase:       flagDatabase,
		keyConnectTimeout: flagConnectTimeout,
	} {
		if f := fs.Lookup(flag); f != nil {
			if err := p.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Path returns the profile filepath
func (p Profile) Path() string {
	if p.ConfigFile != "" {
		return p.ConfigFile
	}
	return filepath.Join(p.dir, fmt.Sprintf("%s.%s", p.Name, profileType))
}

// Load loads the CLI profile
func (p *Profile) Load() error {
	p.v.SetConfigType(profileType)
	if p.ConfigFile != "" {
		p.v.SetConfigFile(p.ConfigFile)
	} else {
		p.v.SetConfigName(p.Name)
		p.v.AddConfigPath(p.dir)
	}

	p.v.SetEnvPrefix(envPrefix)
	p.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	p.v.AutomaticEnv()

	if err := p.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil // proceed if profile doesn't exist
		}
		return fmt.Errorf("failed to load CLI profile: %w", err)
	}
	return nil
}

// Set sets the specified profile property, overriding every other source
func (p *Profile) Set(key string, value interface{}) {
	p.v.Set(key, value)
}

// URI returns the MongoDB connection string
func (p Profile) URI() string {
	return p.v.GetString(keyURI)
}

// ConnectTimeout returns the MongoDB server selection timeout
func (p Profile) ConnectTimeout() time.Duration {
	return p.v.GetDuration(keyConnectTimeout)
}

// BootstrapConfig resolves the bootstrap configuration from the profile
func (p Profile) BootstrapConfig() (bootstrap.Config, error) {
	config := bootstrap.DefaultConfig()

	config.Database = p.v.GetString(keyDatabase)
	config.Credential.Name = p.v.GetString(keyCredentialName)
	config.Credential.Password = p.v.GetString(keyCredentialPassword)
	config.Credential.IfExists = bootstrap.Policy(p.v.GetString(keyCredentialIfExists))

	// the default role is scoped to whichever database ends up configured
	config.Credential.Roles = []mongodb.Role{{Role: bootstrap.DefaultRole, DB: config.Database}}

	if p.v.IsSet(keyCredentialRoles) {
		var roles []mongodb.Role
		if err := p.v.UnmarshalKey(keyCredentialRoles, &roles); err != nil {
			return bootstrap.Config{}, fmt.Errorf("failed to read %s: %w", keyCredentialRoles, err)
		}
		config.Credential.Roles = roles
	}

	if p.v.IsSet(keyCollections) {
		var collections []bootstrap.CollectionSpec
		if err := p.v.UnmarshalKey(keyCollections, &collections); err != nil {
			return bootstrap.Config{}, fmt.Errorf("failed to read %s: %w", keyCollections, err)
		}
		config.Collections = collections
	}

	if p.v.IsSet(keyIndexes) {
		var indexes []bootstrap.IndexSpec
		if err := p.v.UnmarshalKey(keyIndexes, &indexes); err != nil {
			return bootstrap.Config{}, fmt.Errorf("failed to read %s: %w", keyIndexes, err)
		}
		config.Indexes = indexes
	}

	config.Normalize()
	return config, nil
}

type profileFile struct {
	URI            string `yaml:"uri"`
	ConnectTimeout string `yaml:"connect_timeout"`

	bootstrap.Config `yaml:",inline"`
}

// Save writes the provided bootstrap configuration, along with the
// connection settings, to the profile file.
// Passwords are left out unless withSecrets is set, and roles scoped to the
// configured database are saved unscoped so they follow a later --database.
func (p *Profile) Save(config bootstrap.Config, withSecrets bool) error {
	dir := filepath.Dir(p.Path())

	exists, err := afero.DirExists(p.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}
	if !exists {
		if err := p.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to save CLI profile: %w", err)
		}
	}

	uri := p.URI()
	if !withSecrets {
		uri = mongodb.StripURIPassword(uri)
		config.Credential.Password = ""
	}

	roles := make([]mongodb.Role, len(config.Credential.Roles))
	for i, role := range config.Credential.Roles {
		if role.DB == config.Database {
			role.DB = ""
		}
		roles[i] = role
	}
	config.Credential.Roles = roles

	data, err := yaml.Marshal(profileFile{uri, p.ConnectTimeout().String(), config})
	if err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}

	if err := afero.WriteFile(p.fs, p.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}
	return nil
}
