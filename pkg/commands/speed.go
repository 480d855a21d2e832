package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/film"
)

var speedByName = map[string]film.Speed{
	"slow":   film.Slow,
	"normal": film.Normal,
	"fast":   film.Fast,
}

func addSpeed(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "speed [slow|normal|fast]",
		Short: "Show or set the playback speed preference.",
		Example: `
reel speed
reel speed fast
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, ctl, _, err := newEngine()
			if err != nil {
				return err
			}
			defer s.Close()
			defer ctl.Close()

			if len(args) == 0 {
				ctl.LoadSpeed(ctx)
				speed, _ := s.Bus.Speed.Latest()
				fmt.Printf("%s (%.1fx)\n", speed, speed.Factor())
				return nil
			}

			speed, ok := speedByName[args[0]]
			if !ok {
				return fmt.Errorf("unknown speed %q", args[0])
			}
			if err := ctl.SetSpeed(ctx, speed); err != nil {
				return err
			}
			fmt.Printf("%s (%.1fx)\n", speed, speed.Factor())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
