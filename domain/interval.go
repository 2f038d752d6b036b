package domain

import (
	"fmt"
	"strings"
	"time"
)

// Interval is how often a loan is paid down: a named number of payments a
// year and the calendar step between two payment dates.
type Interval struct {
	Name    string
	Alias   string
	PerYear int

	months    int
	days      int
	halfMonth bool
}

var intervals = [...]Interval{
	{Name: "Årlig", Alias: "Yearly", PerYear: 1, months: 12},
	{Name: "Halvårlig", Alias: "Semi-annual", PerYear: 2, months: 6},
	{Name: "Kvartalsvis", Alias: "Quarterly", PerYear: 4, months: 3},
	{Name: "Annenhver måned", Alias: "Bi-monthly", PerYear: 6, months: 2},
	{Name: "Månedlig", Alias: "Monthly", PerYear: 12, months: 1},
	{Name: "Halvmånedlig", Alias: "Semi-monthly", PerYear: 24, halfMonth: true},
	{Name: "Annenhver uke", Alias: "Bi-weekly", PerYear: 26, days: 14},
	{Name: "Ukentlig", Alias: "Weekly", PerYear: 52, days: 7},
}

// Intervals lists the supported intervals, yearly first.
func Intervals() []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals[:])
	return out
}

// LookupInterval finds an interval by its Norwegian name or English alias,
// ignoring case and surrounding space.
func LookupInterval(name string) (Interval, error) {
	name = strings.TrimSpace(name)
	for _, iv := range intervals {
		if strings.EqualFold(iv.Name, name) || strings.EqualFold(iv.Alias, name) {
			return iv, nil
		}
	}
	return Interval{}, fmt.Errorf("%w: %q", ErrUnknownInterval, name)
}

func (iv Interval) String() string {
	return iv.Name
}

// Date returns the k-th payment date counted from start (k = 0 is start).
// Month steps keep the day of month, clamped to the month's last day.
// Half-month steps alternate between the start day and fourteen days later.
func (iv Interval) Date(start time.Time, k int) time.Time {
	switch {
	case iv.halfMonth:
		d := addMonths(start, k/2)
		if k%2 == 1 {
			d = d.AddDate(0, 0, 14)
		}
		return d
	case iv.months > 0:
		return addMonths(start, k*iv.months)
	default:
		return start.AddDate(0, 0, k*iv.days)
	}
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
