package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/reel/pkg/film"
	"tableflip.dev/reel/pkg/paging"
	"tableflip.dev/reel/pkg/printers"
	"tableflip.dev/reel/pkg/session"
	"tableflip.dev/reel/pkg/store"
)

// loadTimeout bounds how long a one-shot command waits for the month load.
const loadTimeout = 5 * time.Second

func addCalendar(topLevel *cobra.Command) {
	offset := 0
	follow := false
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of the diary with footage markers.",
		Example: `
reel calendar
reel calendar --offset -1
reel calendar --follow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s, ctl, p, err := newEngine()
			if err != nil {
				return err
			}
			defer s.Close()
			defer ctl.Close()

			position := paging.StartPosition + offset
			month, err := s.Pager.Month(position)
			if err != nil {
				return err
			}

			pp := &printers.PrettyPrint{}
			rendered := make(chan struct{}, 1)
			cancelDays := s.Bus.Days.Subscribe(func(days []film.Entry) {
				label, _ := s.Bus.MonthLabel.Latest()
				pp.Title(label)
				pp.Month(month.Time, days)
				select {
				case rendered <- struct{}{}:
				default:
				}
			})
			defer cancelDays()

			ctl.LoadSpeed(ctx)
			if err := ctl.OnPageChanged(ctx, position); err != nil {
				return err
			}

			select {
			case <-rendered:
			case <-time.After(loadTimeout):
				return errors.New("timed out loading month")
			case <-ctx.Done():
				return ctx.Err()
			}

			if !follow {
				return nil
			}
			return followStore(ctx, ctl, p, position)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Months relative to the current month.")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep the month on screen and re-render when footage changes on disk.")

	topLevel.AddCommand(cmd)
}

// followStore re-publishes the visible page whenever the on-disk store
// reports a change, until ctx is cancelled.
func followStore(ctx context.Context, ctl *session.CalendarController, p store.Persistence, position int) error {
	events, err := p.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := ctl.OnPageChanged(ctx, position); err != nil {
				return err
			}
		}
	}
}

// newEngine builds the store-backed session and calendar controller shared
// by the CLI commands.
func newEngine() (*session.Session, *session.CalendarController, store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	s := session.New(time.Now())
	ctl := session.NewCalendarController("cli", s, session.Collaborators{
		Loader:  p,
		Prefs:   p,
		Auth:    store.NewAuth(cfg, p),
		Network: session.DialMonitor{},
	})
	return s, ctl, p, nil
}
