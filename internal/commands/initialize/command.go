package initialize

import (
	"context"
	"fmt"

	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/terminal"

	"github.com/spf13/pflag"
)

// set of init flags
const (
	flagCredentialName      = "credential-name"
	flagCredentialNameUsage = "Specify the name of the application credential"

	flagCredentialPassword      = "credential-password"
	flagCredentialPasswordUsage = "Specify the password of the application credential"

	flagCredentialPolicy      = "credential-policy"
	flagCredentialPolicyUsage = "Specify what to do when the credential already exists"

	flagCollectionPolicy      = "collection-policy"
	flagCollectionPolicyUsage = "Specify what to do when a collection already exists"

	flagIndexPolicy      = "index-policy"
	flagIndexPolicyUsage = "Specify what to do when an index already exists"
)

// SuccessMessage is printed once every step has completed
const SuccessMessage = "MongoDB initialized successfully"

// Command is the `init` command
type Command struct {
	inputs inputs
}

// Flags is the command flags
func (cmd *Command) Flags(fs *pflag.FlagSet) {
	fs.StringVar(&cmd.inputs.CredentialName, flagCredentialName, "", flagCredentialNameUsage)
	fs.StringVar(&cmd.inputs.CredentialPassword, flagCredentialPassword, "", flagCredentialPasswordUsage)
	fs.Var(&cmd.inputs.CredentialPolicy, flagCredentialPolicy, policyUsage(flagCredentialPolicyUsage))
	fs.Var(&cmd.inputs.CollectionPolicy, flagCollectionPolicy, policyUsage(flagCollectionPolicyUsage))
	fs.Var(&cmd.inputs.IndexPolicy, flagIndexPolicy, policyUsage(flagIndexPolicyUsage))
}

func policyUsage(usage string) string {
	return usage + " (" + bootstrap.PolicyUsage() + ")"
}

// Inputs is the command inputs
func (cmd *Command) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *Command) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	ctx := context.Background()

	client, err := clients.Mongo(ctx)
	if err != nil {
		return bootstrap.StepError{Step: "connect", Kind: bootstrap.ErrConnection, Err: err}
	}
	defer client.Disconnect(ctx)

	report, err := bootstrap.New(client, cmd.inputs.config).Run(ctx, func(res bootstrap.StepResult) {
		ui.Print(terminal.NewTextLog("%s: %s", res.Step.Name, res.Outcome))
	})
	if err != nil {
		return err
	}

	ui.Print(terminal.NewListLog(
		fmt.Sprintf("Completed %d steps on %s", len(report.Results), report.Database),
		fmt.Sprintf("%d created", report.Count(bootstrap.OutcomeCreated)),
		fmt.Sprintf("%d replaced", report.Count(bootstrap.OutcomeReplaced)),
		fmt.Sprintf("%d skipped", report.Count(bootstrap.OutcomeSkipped)),
	))
	ui.Print(terminal.NewTextLog(SuccessMessage))
	return nil
}
