package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/application/usecase"
	"mesaYaHours/internal/modules/hours/domain"
	"mesaYaHours/internal/shared/httputil"
)

// HoursHandler expone el horario semanal de un local y sus evaluaciones.
type HoursHandler struct {
	queries    *usecase.ScheduleQueryUseCase
	editor     *usecase.EditDayUseCase
	reconciler *usecase.ReconcileFeedUseCase
	errors     *httputil.ErrorMapper
	now        func() time.Time
}

func NewHoursHandler(
	queries *usecase.ScheduleQueryUseCase,
	editor *usecase.EditDayUseCase,
	reconciler *usecase.ReconcileFeedUseCase,
) *HoursHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(port.ErrVenueNotFound, http.StatusNotFound, "venue not found").
		WithMapping(usecase.ErrMissingVenue, http.StatusBadRequest, "missing venue id").
		WithMapping(usecase.ErrInvalidFeed, http.StatusBadRequest, "feed payload is not usable").
		WithMapping(usecase.ErrInvalidDay, http.StatusBadRequest, "invalid hours row").
		WithMapping(usecase.ErrInvalidWindow, http.StatusBadRequest, "window end must be after start")
	return &HoursHandler{
		queries:    queries,
		editor:     editor,
		reconciler: reconciler,
		errors:     mapper,
		now:        time.Now,
	}
}

type dayResponse struct {
	Day     int    `json:"dayOfWeek"`
	Closed  bool   `json:"isClosed"`
	Open    string `json:"openTime,omitempty"`
	Close   string `json:"closeTime,omitempty"`
	Source  string `json:"source"`
	Display string `json:"display"`
}

type weekResponse struct {
	VenueID   string        `json:"venueId"`
	Days      []dayResponse `json:"days"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type openStatusResponse struct {
	VenueID      string    `json:"venueId"`
	IsOpen       bool      `json:"isOpen"`
	CanDetermine bool      `json:"canDetermine"`
	CheckedAt    time.Time `json:"checkedAt"`
}

type nextOpenResponse struct {
	VenueID string     `json:"venueId"`
	Found   bool       `json:"found"`
	OpensAt *time.Time `json:"opensAt,omitempty"`
}

type validateWindowRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// GetWeek maneja GET /api/v1/venues/:venueId/hours.
func (h *HoursHandler) GetWeek(c echo.Context) error {
	schedule, err := h.queries.Week(c.Request().Context(), c.Param("venueId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, toWeekResponse(schedule))
}

// PutDay maneja PUT /api/v1/venues/:venueId/hours/:day con edición manual.
func (h *HoursHandler) PutDay(c echo.Context) error {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "day must be 0 (Sunday) through 6 (Saturday)")
	}

	var input usecase.DayEditInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	input.Day = day

	schedule, err := h.editor.Execute(c.Request().Context(), c.Param("venueId"), input)
	if err != nil {
		return h.httpError(err)
	}
	slog.Info("manual hours edit accepted",
		slog.String("venueId", schedule.VenueID),
		slog.Int("dayOfWeek", day),
	)
	return c.JSON(http.StatusOK, toWeekResponse(schedule))
}

// PostFeed maneja POST /api/v1/venues/:venueId/hours/feed para reconciliar un
// snapshot del proveedor fuera del stream.
func (h *HoursHandler) PostFeed(c echo.Context) error {
	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	schedule, err := h.reconciler.Execute(c.Request().Context(), c.Param("venueId"), payload)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, toWeekResponse(schedule))
}

// GetOpen maneja GET /api/v1/venues/:venueId/hours/open?at=RFC3339.
func (h *HoursHandler) GetOpen(c echo.Context) error {
	at, err := h.instantParam(c)
	if err != nil {
		return err
	}
	status, err := h.queries.OpenStatus(c.Request().Context(), c.Param("venueId"), at)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, openStatusResponse{
		VenueID:      c.Param("venueId"),
		IsOpen:       status.Open,
		CanDetermine: status.Determinable,
		CheckedAt:    at,
	})
}

// GetNextOpen maneja GET /api/v1/venues/:venueId/hours/next-open?at=RFC3339.
func (h *HoursHandler) GetNextOpen(c echo.Context) error {
	at, err := h.instantParam(c)
	if err != nil {
		return err
	}
	next, found, err := h.queries.NextOpening(c.Request().Context(), c.Param("venueId"), at)
	if err != nil {
		return h.httpError(err)
	}
	response := nextOpenResponse{VenueID: c.Param("venueId"), Found: found}
	if found {
		response.OpensAt = &next
	}
	return c.JSON(http.StatusOK, response)
}

// PostValidate maneja POST /api/v1/venues/:venueId/reservations/validate.
func (h *HoursHandler) PostValidate(c echo.Context) error {
	var req validateWindowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startAt and endAt must be RFC3339 instants")
	}
	check, err := h.queries.CheckWindow(c.Request().Context(), c.Param("venueId"), req.StartAt, req.EndAt)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, check)
}

func (h *HoursHandler) instantParam(c echo.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam("at"))
	if raw == "" {
		return h.now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "at must be an RFC3339 instant")
	}
	return at, nil
}

func (h *HoursHandler) httpError(err error) *echo.HTTPError {
	info := h.errors.Map(err)
	return echo.NewHTTPError(info.Status, info.Message)
}

func toWeekResponse(schedule port.VenueSchedule) weekResponse {
	days := make([]dayResponse, 0, len(schedule.Week))
	for _, row := range schedule.Week {
		days = append(days, toDayResponse(row))
	}
	return weekResponse{
		VenueID:   schedule.VenueID,
		Days:      days,
		UpdatedAt: schedule.UpdatedAt,
	}
}

func toDayResponse(row domain.DayHours) dayResponse {
	return dayResponse{
		Day:     row.Day,
		Closed:  row.Closed,
		Open:    row.Open,
		Close:   row.Close,
		Source:  string(row.Source),
		Display: row.DisplayRange(),
	}
}
