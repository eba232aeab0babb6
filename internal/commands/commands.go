package commands

import (
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/commands/config"
	"github.com/dealpipeline/dbinit/internal/commands/initialize"
	"github.com/dealpipeline/dbinit/internal/commands/plan"
	"github.com/dealpipeline/dbinit/internal/commands/verify"
)

// set of commands
var (
	Init = cli.CommandDefinition{
		Command:     &initialize.Command{},
		Use:         "init",
		Aliases:     []string{"run", "apply"},
		Description: "Initialize the database, its application credential, collections and indexes",
		Help: `Initialize the database, its application credential, collections and indexes

	Selects the configured database, creates the application credential with its
	scoped roles, creates each collection and builds each index, in that order.
	Every step checks whether its target already exists and applies the target's
	if-exists policy ("skip", "error" or "replace"), so running init against an
	already initialized database leaves existing documents untouched.

	The first failing step stops the run; steps already completed are not undone.`,
	}

	Plan = cli.CommandDefinition{
		Command:     &plan.Command{},
		Use:         "plan",
		Description: "Display the ordered steps init would run",
		Help: `Display the ordered steps init would run

	Resolves the configuration and lists each step along with its target and
	if-exists policy. Does not connect to the database.`,
	}

	Verify = cli.CommandDefinition{
		Command:     &verify.Command{},
		Use:         "verify",
		Aliases:     []string{"check"},
		Description: "Check that the database matches the configuration",
		Help: `Check that the database matches the configuration

	Connects to the database and checks that the credential exists with exactly
	the configured roles, that every collection exists, and that every index
	exists with the configured keys and options.`,
	}

	Config = cli.CommandDefinition{
		Use:         "config",
		Description: "Manage the bootstrap configuration",
		Help:        "Display or save the configuration resolved from defaults, profile, environment and flags",
		SubCommands: []cli.CommandDefinition{
			{
				Command:     &config.CommandShow{},
				Use:         "show",
				Display:     "config show",
				Description: "Display the resolved configuration",
				Help:        "Display the resolved configuration with the credential secret redacted",
			},
			{
				Command:     &config.CommandWrite{},
				Use:         "write",
				Display:     "config write",
				Description: "Save the resolved configuration to the profile",
				Help: `Save the resolved configuration to the profile

	Writes the configuration as YAML to the profile file (or to the file named
	by --config) so it can be edited and reused by later runs. The credential
	secret is left out unless --with-password is set.`,
			},
		},
	}
)
