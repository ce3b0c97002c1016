package domain

import "strings"

// Status mirrors the reservation lifecycle as the booking service publishes
// it. The stream carries uppercase values; normalization tolerates case and
// the single-l "CANCELED" spelling some producers use.
type Status string

const (
	StatusUnknown   Status = ""
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusSeated    Status = "SEATED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

var allowedStatuses = map[string]Status{
	string(StatusPending):   StatusPending,
	string(StatusConfirmed): StatusConfirmed,
	string(StatusSeated):    StatusSeated,
	string(StatusCompleted): StatusCompleted,
	string(StatusCancelled): StatusCancelled,
	string(StatusNoShow):    StatusNoShow,
}

// NormalizeStatus returns the canonical Status for the given payload value.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeStatus(value any) Status {
	s, ok := value.(string)
	if !ok {
		return StatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return StatusUnknown
	}
	switch trimmed {
	case "CANCELED":
		return StatusCancelled
	case "NO-SHOW", "NOSHOW":
		return StatusNoShow
	}
	if status, ok := allowedStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

// HoldsSeats reports whether a reservation in this state still occupies
// capacity. Terminal states free their seats; anything unrecognized keeps
// them held so a new upstream state can never silently inflate availability.
func (s Status) HoldsSeats() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return false
	default:
		return true
	}
}
