package printers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/match"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendars prints a month grid for every month a dated match falls in, with
// the mentioned days in bold.
func (pp *PrettyPrint) Calendars(ms ...match.Match) {
	counts := make(map[time.Time][]int)
	for _, m := range ms {
		if !m.Kind().HasDate() {
			continue
		}
		month := time.Date(m.Value.Year(), m.Value.Month(), 1, 0, 0, 0, 0, time.UTC)
		if counts[month] == nil {
			counts[month] = make([]int, format.DaysIn(month.Year(), month.Month()))
		}
		counts[month][m.Value.Day()-1]++
	}

	months := make([]time.Time, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	for _, month := range months {
		pp.PrintMonthCount(month, counts[month])
		pp.NewLine()
	}
}

// PrintMonthCount prints the month of then; days with a count are bold.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := then.Weekday()

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := format.DaysIn(then.Year(), then.Month())

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprintln(w, "")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprintln(w, "")
	}
}
