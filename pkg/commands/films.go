package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/printers"
)

func addFilms(topLevel *cobra.Command) {
	showMedia := false
	cmd := &cobra.Command{
		Use:   "films",
		Short: "List every diary day with footage, oldest first.",
		Example: `
reel films
reel films --media
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, ctl, p, err := newEngine()
			if err != nil {
				return err
			}
			defer s.Close()
			defer ctl.Close()

			entries, err := p.Films(ctx)
			if err != nil {
				return err
			}
			// Route through the shared day-list channel so the aggregator
			// derives the printed list the same way the calendar does.
			s.Bus.Days.Publish(entries)
			films, _ := s.Films().Latest()

			pp := &printers.PrettyPrint{ShowMedia: showMedia}
			pp.Title("Films")
			pp.Films(films...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMedia, "media", false, "Also print the opaque media refs.")

	topLevel.AddCommand(cmd)
}
