package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

// VenueSeed is the optional local bootstrap file. It lets an operator declare
// venues, a capacity fallback for when the inventory service is unreachable,
// and baseline hours rows.
type VenueSeed struct {
	Venues []SeedVenue `yaml:"venues"`
}

type SeedVenue struct {
	ID       string            `yaml:"id"`
	Capacity int               `yaml:"capacity"`
	Hours    []domain.DayHours `yaml:"hours"`
}

// LoadVenueSeed parses the YAML seed file at path.
func LoadVenueSeed(path string) (*VenueSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed VenueSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// Apply primes the repository with the seeded venues and returns the capacity
// fallback map. Rows without an explicit source are stamped external so the
// first real feed can replace them.
func (s *VenueSeed) Apply(ctx context.Context, repo port.ScheduleRepository) (map[string]int, error) {
	capacities := make(map[string]int)
	for _, venue := range s.Venues {
		venueID := strings.TrimSpace(venue.ID)
		if venueID == "" {
			return nil, fmt.Errorf("seed venue without id")
		}
		if _, err := repo.EnsureVenue(ctx, venueID); err != nil {
			return nil, fmt.Errorf("seed venue %s: %w", venueID, err)
		}
		if venue.Capacity > 0 {
			capacities[venueID] = venue.Capacity
		}
		for _, row := range venue.Hours {
			row.Source = domain.NormalizeSource(string(row.Source))
			if err := row.Validate(); err != nil {
				return nil, fmt.Errorf("seed venue %s: %w", venueID, err)
			}
			if _, err := repo.SetDay(ctx, venueID, row); err != nil {
				return nil, fmt.Errorf("seed venue %s day %d: %w", venueID, row.Day, err)
			}
		}
	}
	slog.Info("venue seed applied", slog.Int("venues", len(s.Venues)))
	return capacities, nil
}
