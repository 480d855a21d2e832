package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/reel/pkg/film"
)

// PrettyPrint renders months and film lists for the terminal.
type PrettyPrint struct {
	ShowMedia bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a compact month grid. Days with footage are bright, the
// anchor day is bold.
func (pp *PrettyPrint) Month(then time.Time, days []film.Entry) {
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	d := StartDay(then)
	for i := time.Sunday; i < d; i++ {
		fmt.Print("   ")
	}

	empty := color.New(color.Faint, color.FgWhite)
	filmed := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.Underline, color.FgHiWhite)

	now := time.Now()
	total := DaysIn(then)
	for i := 0; i < total; i++ {
		printer := empty
		if i < len(days) && days[i].HasMedia() {
			printer = filmed
		}
		if now.Year() == then.Year() && now.Month() == then.Month() && now.Day() == i+1 {
			printer = today
		}
		_, _ = printer.Printf("%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// Films prints the aggregated film list as a table.
func (pp *PrettyPrint) Films(entries ...film.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowMedia {
		table.AddRow("DAY", "LABEL", "MEDIA")
		for _, e := range entries {
			table.AddRow(e.Day.Key(), e.Label(), e.Media)
		}
	} else {
		table.AddRow("DAY", "LABEL")
		for _, e := range entries {
			table.AddRow(e.Day.Key(), e.Label())
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// StartDay returns the weekday of the first of the month containing then.
func StartDay(then time.Time) time.Weekday {
	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	return first.Weekday()
}

// DaysIn returns the number of days in the month containing then.
func DaysIn(then time.Time) int {
	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	return first.AddDate(0, 1, -1).Day()
}
