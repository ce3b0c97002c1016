package domain

import "mesaYaHours/internal/shared/normalization"

// Feed carries the subset of a provider hours snapshot the engine consumes.
// WeekdayText entries are display-only prose; they never drive open/closed
// decisions.
type Feed struct {
	Periods     []Period `json:"periods"`
	WeekdayText []string `json:"weekdayText,omitempty"`
}

// HasPeriods reports whether the feed carries at least one structurally valid
// span. A prose-only feed is unusable for time checks.
func (f Feed) HasPeriods() bool {
	for _, period := range f.Periods {
		if period.Valid() {
			return true
		}
	}
	return false
}

// NormalizePeriodPoint constructs a PeriodPoint from a loosely typed map.
func NormalizePeriodPoint(raw map[string]any) (PeriodPoint, bool) {
	if raw == nil {
		return PeriodPoint{}, false
	}
	point := PeriodPoint{
		Day:    normalization.AsInt(raw["day"]),
		Hour:   normalization.AsInt(raw["hour"]),
		Minute: normalization.AsInt(raw["minute"]),
	}
	if !point.Valid() {
		return PeriodPoint{}, false
	}
	return point, true
}

// NormalizePeriod constructs a Period from a loosely typed map, dropping
// malformed entries instead of propagating them inward.
func NormalizePeriod(raw map[string]any) (Period, bool) {
	open, ok := raw["open"].(map[string]any)
	if !ok {
		return Period{}, false
	}
	openPoint, ok := NormalizePeriodPoint(open)
	if !ok {
		return Period{}, false
	}
	period := Period{Open: openPoint}
	if closeRaw, ok := raw["close"].(map[string]any); ok {
		closePoint, ok := NormalizePeriodPoint(closeRaw)
		if !ok {
			return Period{}, false
		}
		period.Close = &closePoint
	}
	return period, true
}

// NormalizeFeed projects a loose snapshot payload into a typed Feed. ok is
// false when the payload carries neither a period list nor display text.
// A present-but-empty period list is kept as non-nil: it is the provider
// stating the venue never opens, which is different from saying nothing.
func NormalizeFeed(payload any) (Feed, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return Feed{}, false
	}

	feed := Feed{}
	if rawPeriods, exists := container["periods"]; exists {
		feed.Periods = make([]Period, 0)
		for _, item := range normalization.AsInterfaceSlice(rawPeriods) {
			rawMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if period, ok := NormalizePeriod(rawMap); ok {
				feed.Periods = append(feed.Periods, period)
			}
		}
	}
	for _, item := range normalization.AsInterfaceSlice(container["weekdayText"]) {
		if text := normalization.AsString(item); text != "" {
			feed.WeekdayText = append(feed.WeekdayText, text)
		}
	}
	if feed.Periods == nil && len(feed.WeekdayText) == 0 {
		return Feed{}, false
	}
	return feed, true
}
