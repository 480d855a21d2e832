// Package store persists the video diary on disk with diskv: one JSON
// document per diary day under films/, plus the playback speed preference
// under prefs/. It is the production DayLoader and PreferenceStore for the
// calendar engine.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/reel/pkg/film"
)

const (
	filmsBucket = "films"
	prefsBucket = "prefs"
	speedKey    = prefsBucket + "/speed"
)

// Persistence is the on-disk contract for diary footage and preferences.
type Persistence interface {
	LoadMonth(ctx context.Context, month time.Time) ([]film.Entry, error)
	Films(ctx context.Context) ([]film.Entry, error)
	Get(day film.Day) (film.Entry, bool, error)
	Attach(day film.Day, media string) (film.Entry, error)
	Detach(day film.Day) error
	ReadSpeedIndex(ctx context.Context) (int, bool, error)
	WriteSpeedIndex(ctx context.Context, index int) error
	PurgeUserData(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// keyToPathTransform maps "films/2024-06-01" to films/ + file 2024-06-01.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	last := len(parts) - 1
	return &diskv.PathKey{
		Path:     parts[:last],
		FileName: parts[last],
	}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, "/") + "/" + pk.FileName
}

func filmKey(day film.Day) string {
	return filmsBucket + "/" + day.Key()
}

func (p *persistence) read(key string) (film.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return film.Entry{}, fmt.Errorf("store: read %s: %w", key, err)
	}
	var e film.Entry
	if err := json.Unmarshal(val, &e); err != nil {
		return film.Entry{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return e, nil
}

// LoadMonth returns one entry per day of the month containing the given
// instant, in calendar order, with media refs filled in from disk where a
// clip was attached.
func (p *persistence) LoadMonth(ctx context.Context, month time.Time) ([]film.Entry, error) {
	first := film.DayOf(time.Date(month.Year(), month.Month(), 1, 12, 0, 0, 0, month.Location()))
	days := daysIn(month)

	out := make([]film.Entry, 0, days)
	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := film.DayOf(first.AddDate(0, 0, i))
		e := film.New(day)
		if p.d.Has(filmKey(day)) {
			stored, err := p.read(filmKey(day))
			if err != nil {
				return nil, err
			}
			e = stored
		}
		out = append(out, e)
	}
	return out, nil
}

// Films lists every day with an attached clip, oldest first.
func (p *persistence) Films(ctx context.Context) ([]film.Entry, error) {
	all := make([]film.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, filmsBucket+"/") {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if e.HasMedia() {
			all = append(all, e)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Day.Before(all[j].Day.Time)
	})
	return all, nil
}

// Get reads the stored entry for a day, reporting whether one exists.
func (p *persistence) Get(day film.Day) (film.Entry, bool, error) {
	if !p.d.Has(filmKey(day)) {
		return film.Entry{}, false, nil
	}
	e, err := p.read(filmKey(day))
	if err != nil {
		return film.Entry{}, false, err
	}
	return e, true, nil
}

// Attach stores a clip reference for the day, minting an opaque ref when the
// caller does not supply one. One clip per day: attaching again replaces the
// previous ref.
func (p *persistence) Attach(day film.Day, media string) (film.Entry, error) {
	if day.IsZero() {
		return film.Entry{}, errors.New("store: day required")
	}
	if media == "" {
		media = uuid.NewString()
	}
	e := film.Entry{Day: day, Media: media}
	data, err := json.Marshal(e)
	if err != nil {
		return film.Entry{}, fmt.Errorf("store: encode %s: %w", day.Key(), err)
	}
	if err := p.d.Write(filmKey(day), data); err != nil {
		return film.Entry{}, fmt.Errorf("store: write %s: %w", day.Key(), err)
	}
	return e, nil
}

// Detach removes the stored clip for a day.
func (p *persistence) Detach(day film.Day) error {
	if !p.d.Has(filmKey(day)) {
		return nil
	}
	return p.d.Erase(filmKey(day))
}

// ReadSpeedIndex reads the persisted speed ordinal; ok is false when no
// preference has been written yet.
func (p *persistence) ReadSpeedIndex(ctx context.Context) (int, bool, error) {
	if !p.d.Has(speedKey) {
		return 0, false, nil
	}
	val, err := p.d.Read(speedKey)
	if err != nil {
		return 0, false, fmt.Errorf("store: read speed: %w", err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(string(val)))
	if err != nil {
		return 0, false, fmt.Errorf("store: decode speed: %w", err)
	}
	return index, true, nil
}

// WriteSpeedIndex persists the speed ordinal.
func (p *persistence) WriteSpeedIndex(ctx context.Context, index int) error {
	if err := p.d.Write(speedKey, []byte(strconv.Itoa(index))); err != nil {
		return fmt.Errorf("store: write speed: %w", err)
	}
	return nil
}

// PurgeUserData erases every stored film and preference.
func (p *persistence) PurgeUserData(ctx context.Context) error {
	if err := p.d.EraseAll(); err != nil {
		return fmt.Errorf("store: purge: %w", err)
	}
	return nil
}

// daysIn returns the number of days in the month containing t.
func daysIn(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
