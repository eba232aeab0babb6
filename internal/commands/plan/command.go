package plan

import (
	"fmt"

	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/terminal"
)

const (
	headerOrder    = "#"
	headerStep     = "Step"
	headerTarget   = "Target"
	headerIfExists = "If Exists"
)

// Command is the `plan` command
type Command struct{}

// Handler is the command handler
func (cmd *Command) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	config, err := profile.BootstrapConfig()
	if err != nil {
		return err
	}

	if err := config.ValidateLayout(); err != nil {
		return err
	}

	steps := bootstrap.Steps(config)

	rows := make([]map[string]interface{}, 0, len(steps))
	for i, step := range steps {
		ifExists := "-"
		if step.IfExists != "" {
			ifExists = step.IfExists.String()
		}
		rows = append(rows, map[string]interface{}{
			headerOrder:    i + 1,
			headerStep:     step.Name,
			headerTarget:   step.Target,
			headerIfExists: ifExists,
		})
	}

	ui.Print(terminal.NewTableLog(
		fmt.Sprintf("Plan for database %s (%d steps)", config.Database, len(steps)),
		[]string{headerOrder, headerStep, headerTarget, headerIfExists},
		rows...,
	))

	if config.Credential.Password == "" {
		ui.Print(terminal.NewWarningLog("No credential password is configured, init will prompt for one"))
	}
	return nil
}
