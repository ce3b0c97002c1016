package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay bounds every minute-of-day computation.
	MinutesPerDay = 1440
	// CloseSentinel is the stored closing value meaning "until end of day";
	// containment math promotes it past the final minute so venues closing at
	// midnight keep 23:59 itself.
	CloseSentinel = "23:59"

	daysPerWeek = 7
)

var ErrInvalidClock = errors.New("invalid clock value")

// ParseClock converts an "HH:MM" wall-clock value into minutes since midnight.
func ParseClock(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as a zero padded "HH:MM" value.
// Minutes outside a single day wrap around.
func FormatClock(minutes int) string {
	minutes = wrapMinutes(minutes)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CloseMinutes converts a stored closing value into its minute bound,
// promoting the end-of-day sentinel to a full 1440.
func CloseMinutes(value string) (int, error) {
	if strings.TrimSpace(value) == CloseSentinel {
		return MinutesPerDay, nil
	}
	return ParseClock(value)
}

// FormatCloseMinutes is the inverse of CloseMinutes: a 1440 bound renders as
// the sentinel, everything else as plain "HH:MM".
func FormatCloseMinutes(minutes int) string {
	if minutes >= MinutesPerDay {
		return CloseSentinel
	}
	return FormatClock(minutes)
}

// MinuteOfDay returns the wall-clock minute of the instant in its own location.
func MinuteOfDay(at time.Time) int {
	return at.Hour()*60 + at.Minute()
}

// DayIndex returns the 0=Sunday through 6=Saturday weekday index of the instant.
func DayIndex(at time.Time) int {
	return int(at.Weekday())
}

// DayName returns the English weekday name for a 0=Sunday based index.
func DayName(day int) string {
	return time.Weekday(wrapDay(day)).String()
}

// FormatClock12 renders minutes since midnight on a 12 hour clock with no
// leading zero on the hour ("9:05 AM", "12:30 PM").
func FormatClock12(minutes int) string {
	minutes = wrapMinutes(minutes)
	hour := minutes / 60
	minute := minutes % 60
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// FormatTime12 renders the instant's wall clock on the 12 hour display format.
func FormatTime12(at time.Time) string {
	return FormatClock12(MinuteOfDay(at))
}

func wrapMinutes(minutes int) int {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return minutes
}

func wrapDay(day int) int {
	day %= daysPerWeek
	if day < 0 {
		day += daysPerWeek
	}
	return day
}
