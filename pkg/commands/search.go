package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/bus"
	"tableflip.dev/reel/pkg/events"
	"tableflip.dev/reel/pkg/printers"
	"tableflip.dev/reel/pkg/search"
)

func addSearch(topLevel *cobra.Command) {
	choose := -1
	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search filmed days by label; no keyword lists everything.",
		Example: `
reel search june
reel search "january 2" --choose 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			keyword := strings.Join(args, " ")

			s, ctl, p, err := newEngine()
			if err != nil {
				return err
			}
			defer s.Close()
			defer ctl.Close()

			ix := search.New("cli", s.Films(), s.Bus.Events)
			defer ix.Close()

			entries, err := p.Films(ctx)
			if err != nil {
				return err
			}
			s.Bus.Days.Publish(entries)

			ix.OnSearch(keyword)
			results := ix.ResultList()

			pp := &printers.PrettyPrint{}
			if keyword == "" {
				pp.Title("Films")
			} else {
				pp.Title(fmt.Sprintf("Films matching %q", keyword))
			}
			pp.Films(results...)

			if choose < 0 {
				return nil
			}

			cancel := s.Bus.Events.Subscribe(func(ev bus.Event) {
				if msg, ok := ev.(events.FilmChosenMsg); ok {
					chosen := msg.Films[msg.Index]
					fmt.Printf("playing %s (%d of %d)\n", chosen.Day.Key(), msg.Index+1, len(msg.Films))
				}
			})
			defer cancel()
			return ix.Choose(choose)
		},
	}

	cmd.Flags().IntVar(&choose, "choose", -1, "Choose the n-th result for playback (0-based).")

	topLevel.AddCommand(cmd)
}
