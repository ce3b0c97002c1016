package domain

import (
	"fmt"
)

// Source tags who owns a stored hours row. Reconciliation never overwrites
// rows a venue manager edited by hand.
type Source string

const (
	SourceManual   Source = "manual"
	SourceExternal Source = "external"
)

// DayHours is the stored open interval for one day of the week. A closed day
// carries empty clock values; an open day carries both.
type DayHours struct {
	Day    int    `json:"dayOfWeek" yaml:"day"`
	Closed bool   `json:"isClosed" yaml:"closed,omitempty"`
	Open   string `json:"openTime,omitempty" yaml:"open,omitempty"`
	Close  string `json:"closeTime,omitempty" yaml:"close,omitempty"`
	Source Source `json:"source" yaml:"source,omitempty"`
}

// OpenInterval returns the row's open range as minute bounds, with the closing
// sentinel promoted past the final minute. ok is false for closed or
// malformed rows.
func (d DayHours) OpenInterval() (openMin, closeMin int, ok bool) {
	if d.Closed || d.Open == "" || d.Close == "" {
		return 0, 0, false
	}
	openMin, err := ParseClock(d.Open)
	if err != nil {
		return 0, 0, false
	}
	closeMin, err = CloseMinutes(d.Close)
	if err != nil {
		return 0, 0, false
	}
	return openMin, closeMin, true
}

// DisplayRange renders the row for venue-facing screens ("9:00 AM - 5:00 PM",
// "Closed").
func (d DayHours) DisplayRange() string {
	openMin, closeMin, ok := d.OpenInterval()
	if !ok {
		return "Closed"
	}
	return FormatClock12(openMin) + " - " + FormatClock12(closeMin)
}

// Validate checks one row: day index, closed/open field pairing, and that an
// open day closes after it opens.
func (d DayHours) Validate() error {
	if d.Day < 0 || d.Day >= daysPerWeek {
		return fmt.Errorf("dayOfWeek %d out of range", d.Day)
	}
	if d.Closed {
		if d.Open != "" || d.Close != "" {
			return fmt.Errorf("closed day %d carries clock values", d.Day)
		}
		return nil
	}
	openMin, err := ParseClock(d.Open)
	if err != nil {
		return fmt.Errorf("day %d open: %w", d.Day, err)
	}
	closeMin, err := CloseMinutes(d.Close)
	if err != nil {
		return fmt.Errorf("day %d close: %w", d.Day, err)
	}
	if openMin >= closeMin {
		return fmt.Errorf("day %d closes before it opens", d.Day)
	}
	return nil
}

// WeekSchedule holds exactly one row per day of week, indexed 0=Sunday
// through 6=Saturday.
type WeekSchedule [daysPerWeek]DayHours

// NewClosedWeek returns the schedule a venue starts with before any feed or
// manual edit arrives: every day closed, externally sourced.
func NewClosedWeek() WeekSchedule {
	var week WeekSchedule
	for day := range week {
		week[day] = DayHours{Day: day, Closed: true, Source: SourceExternal}
	}
	return week
}

// Row returns the stored row for the instant's weekday.
func (w WeekSchedule) Row(at int) DayHours {
	return w[wrapDay(at)]
}

// Validate checks day indexing and every row's field pairing.
func (w WeekSchedule) Validate() error {
	for day, row := range w {
		if row.Day != day {
			return fmt.Errorf("row %d carries dayOfWeek %d", day, row.Day)
		}
		if err := row.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeSource maps loose provenance values onto the two known tags,
// defaulting unknown input to external so a bad feed can never lock a row.
func NormalizeSource(value string) Source {
	if Source(value) == SourceManual {
		return SourceManual
	}
	return SourceExternal
}
