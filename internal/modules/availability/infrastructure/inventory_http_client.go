package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mesaYaHours/internal/modules/availability/application/port"
	"mesaYaHours/internal/modules/availability/domain"
	"mesaYaHours/internal/shared/normalization"
)

// InventoryHTTPClient reads seat capacity and active bookings from the
// inventory REST API. It implements both CapacitySource and ReservationSource.
type InventoryHTTPClient struct {
	rest    *RESTClient
	token   string
	timeout time.Duration
}

func NewInventoryHTTPClient(baseURL, token string, timeout time.Duration, client *http.Client) *InventoryHTTPClient {
	return &InventoryHTTPClient{
		rest:    NewRESTClient(baseURL, timeout, client),
		token:   strings.TrimSpace(token),
		timeout: timeoutOrDefault(timeout),
	}
}

func (c *InventoryHTTPClient) Capacity(ctx context.Context, venueID string) (int, error) {
	payload, err := c.getJSON(ctx, venuePath(venueID, "capacity"), venueID)
	if err != nil {
		return 0, err
	}
	container := normalization.MapFromPayload(payload)
	value, ok := container["capacity"]
	if !ok {
		value, ok = container["totalCapacity"]
	}
	if !ok {
		return 0, fmt.Errorf("%w: capacity missing in response", port.ErrInventoryUnavailable)
	}
	return normalization.AsInt(value), nil
}

func (c *InventoryHTTPClient) ActiveReservations(ctx context.Context, venueID string) ([]port.ActiveReservation, error) {
	payload, err := c.getJSON(ctx, venuePath(venueID, "reservations/active"), venueID)
	if err != nil {
		return nil, err
	}

	reservations := make([]port.ActiveReservation, 0)
	for _, item := range reservationItems(payload) {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		interval, ok := domain.NormalizeReservationInterval(raw)
		if !ok {
			slog.Warn("inventory reservation dropped", slog.String("venueId", venueID))
			continue
		}
		reservations = append(reservations, port.ActiveReservation{
			ID:       normalization.AsString(raw["id"]),
			Interval: interval,
		})
	}
	return reservations, nil
}

func (c *InventoryHTTPClient) getJSON(ctx context.Context, endpoint, venueID string) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrInventoryUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, port.ErrInventoryForbidden
	case res.StatusCode == http.StatusNotFound:
		return nil, port.ErrInventoryNotFound
	case res.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Error("inventory unexpected status",
			slog.Int("status", res.StatusCode),
			slog.String("venueId", venueID),
			slog.String("body", strings.TrimSpace(string(body))),
		)
		return nil, fmt.Errorf("%w: status %d", port.ErrInventoryUnavailable, res.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrInventoryUnavailable, err)
	}
	return payload, nil
}

func venuePath(venueID, suffix string) string {
	return "/api/v1/venues/" + url.PathEscape(strings.TrimSpace(venueID)) + "/" + suffix
}

// reservationItems tolerates the envelope shapes the inventory API has used:
// a bare array, {items: [...]}, {reservations: [...]}, or {data: [...]}.
func reservationItems(payload any) []any {
	if items := normalization.AsInterfaceSlice(payload); items != nil {
		return items
	}
	container := normalization.MapFromPayload(payload)
	if container == nil {
		return nil
	}
	for _, key := range []string{"items", "reservations", "data"} {
		if items := normalization.AsInterfaceSlice(container[key]); items != nil {
			return items
		}
	}
	return nil
}

var (
	_ port.CapacitySource    = (*InventoryHTTPClient)(nil)
	_ port.ReservationSource = (*InventoryHTTPClient)(nil)
)
