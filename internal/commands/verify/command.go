package verify

import (
	"context"
	"fmt"

	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/terminal"
)

const (
	headerCheck  = "Check"
	headerStatus = "Status"
	headerDetail = "Detail"

	statusPassed = "ok"
	statusFailed = "FAILED"
)

// Command is the `verify` command
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

	ctx := context.Background()

	client, err := clients.Mongo(ctx)
	if err != nil {
		return bootstrap.StepError{Step: "connect", Kind: bootstrap.ErrConnection, Err: err}
	}
	defer client.Disconnect(ctx)

	checks, err := bootstrap.Verify(ctx, client, config)
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, 0, len(checks))
	for _, check := range checks {
		status := statusPassed
		if !check.Passed {
			status = statusFailed
		}
		rows = append(rows, map[string]interface{}{
			headerCheck:  check.Name,
			headerStatus: status,
			headerDetail: check.Detail,
		})
	}

	ui.Print(terminal.NewTableLog(
		fmt.Sprintf("Verified database %s", config.Database),
		[]string{headerCheck, headerStatus, headerDetail},
		rows...,
	))

	if failed := bootstrap.Failed(checks); len(failed) > 0 {
		return fmt.Errorf("%d of %d checks failed", len(failed), len(checks))
	}
	return nil
}
