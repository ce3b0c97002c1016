package domain

// PeriodPoint pins a feed event to a weekday and wall-clock position.
type PeriodPoint struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the point's wall-clock position as minutes since midnight.
func (p PeriodPoint) Minutes() int {
	return p.Hour*60 + p.Minute
}

// Valid reports whether the point sits inside a real week and day.
func (p PeriodPoint) Valid() bool {
	return p.Day >= 0 && p.Day < daysPerWeek &&
		p.Hour >= 0 && p.Hour < 24 &&
		p.Minute >= 0 && p.Minute < 60
}

// Period is one contiguous service span reported by the provider feed. A
// missing close marks a day the venue serves around the clock.
type Period struct {
	Open  PeriodPoint  `json:"open"`
	Close *PeriodPoint `json:"close,omitempty"`
}

// Valid reports whether both endpoints (when present) are inside range.
func (p Period) Valid() bool {
	if !p.Open.Valid() {
		return false
	}
	if p.Close != nil && !p.Close.Valid() {
		return false
	}
	return true
}

// AllDay reports a span without a close, meaning 24-hour service.
func (p Period) AllDay() bool {
	return p.Close == nil
}

// SameDay reports a span that opens and closes on the same weekday.
func (p Period) SameDay() bool {
	return p.Close != nil && p.Close.Day == p.Open.Day
}

// Overnight reports a span that closes on a different weekday than it opened.
func (p Period) Overnight() bool {
	return p.Close != nil && p.Close.Day != p.Open.Day
}
