package config

import (
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/terminal"

	"github.com/spf13/pflag"
)

const (
	flagWithPassword      = "with-password"
	flagWithPasswordUsage = "Include the credential and connection passwords in the saved configuration"
)

// CommandWrite is the `config write` command
type CommandWrite struct {
	withPassword bool
}

// Flags is the command flags
func (cmd *CommandWrite) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&cmd.withPassword, flagWithPassword, false, flagWithPasswordUsage)
}

// Handler is the command handler
func (cmd *CommandWrite) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	config, err := profile.BootstrapConfig()
	if err != nil {
		return err
	}

	if err := config.ValidateLayout(); err != nil {
		return err
	}

	if err := profile.Save(config, cmd.withPassword); err != nil {
		return err
	}

	ui.Print(terminal.NewTextLog("Saved configuration to %s", profile.Path()))
	return nil
}
