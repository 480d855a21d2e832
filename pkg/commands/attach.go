package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/film"
)

func addAttach(topLevel *cobra.Command) {
	media := ""
	cmd := &cobra.Command{
		Use:     "attach [day]",
		Aliases: []string{"add"},
		Short:   "Attach a clip to a diary day (defaults to today).",
		Example: `
reel attach
reel attach 2024-06-01
reel attach 2024-06-01 --media clips/0601.mp4
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

			e, err := p.Attach(day, media)
			if err != nil {
				return err
			}
			ctl.UploadFinished(e)

			fmt.Printf("attached %s to %s\n", e.Media, e.Day.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&media, "media", "", "Opaque media ref to attach; minted when omitted.")

	topLevel.AddCommand(cmd)
}
