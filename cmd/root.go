package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/commands"

	"github.com/spf13/cobra"
)

// Run runs the CLI
func Run() {
	// print commands in help/usage text in the order they are declared
	cobra.EnableCommandSorting = false

	cmd := &cobra.Command{
		Version:       cli.Version,
		Use:           cli.Name,
		Short:         "CLI tool to bootstrap the deal pipeline MongoDB database",
		Long:          fmt.Sprintf(`Use "%s [command] --help" for information on a specific command`, cli.Name),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	factory, err := cli.NewCommandFactory()
	if err != nil {
		log.Fatal(err)
	}

	cobra.OnInitialize(factory.Setup)

	cmd.Flags().SortFlags = false // ensures CLI help text displays global flags unsorted
	factory.SetGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(factory.Build(commands.Init))
	cmd.AddCommand(factory.Build(commands.Plan))
	cmd.AddCommand(factory.Build(commands.Verify))
	cmd.AddCommand(factory.Build(commands.Config))

	os.Exit(factory.Run(cmd))
}
