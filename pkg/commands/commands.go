package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// New assembles the reel command tree.
func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "reel",
		Short: base.Wrap80("A one-clip-a-day video diary on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every subcommand on the top level command.
func AddCommands(topLevel *cobra.Command) {
	addCalendar(topLevel)
	addFilms(topLevel)
	addSearch(topLevel)
	addAttach(topLevel)
	addDetach(topLevel)
	addSpeed(topLevel)
	addVersion(topLevel)
}
