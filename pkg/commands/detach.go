package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/film"
)

func addDetach(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "detach [day]",
		Aliases: []string{"rm"},
		Short:   "Remove the clip attached to a diary day (defaults to today).",
		Example: `
reel detach
reel detach 2024-06-01
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := film.DayOf(time.Now())
			if len(args) == 1 {
				parsed, err := film.ParseDay(args[0])
				if err != nil {
					return err
				}
				day = parsed
			}

			s, ctl, p, err := newEngine()
			if err != nil {
				return err
			}
			defer s.Close()
			defer ctl.Close()

			if err := p.Detach(day); err != nil {
				return err
			}
			fmt.Printf("detached %s\n", day.Key())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
