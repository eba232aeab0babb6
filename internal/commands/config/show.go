package config

import (
	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/mongodb"
	"github.com/dealpipeline/dbinit/internal/terminal"
)

type connection struct {
	URI            string `json:"uri"`
	ConnectTimeout string `json:"connect_timeout"`
}

type resolvedConfig struct {
	Profile    string           `json:"profile"`
	Source     string           `json:"source"`
	Connection connection       `json:"connection"`
	Bootstrap  bootstrap.Config `json:"bootstrap"`
}

// CommandShow is the `config show` command
type CommandShow struct{}

// Handler is the command handler
func (cmd *CommandShow) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	config, err := profile.BootstrapConfig()
	if err != nil {
		return err
	}

	ui.Print(terminal.NewJSONLog("Resolved configuration", resolvedConfig{
		Profile: profile.Name,
		Source:  profile.Path(),
		Connection: connection{
			URI:            mongodb.RedactURI(profile.URI()),
			ConnectTimeout: profile.ConnectTimeout().String(),
		},
		Bootstrap: config.Redacted(),
	}))
	return nil
}
