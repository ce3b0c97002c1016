package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaHours/internal/modules/availability/application/port"
	"mesaYaHours/internal/modules/availability/application/usecase"
	"mesaYaHours/internal/shared/httputil"
)

// AvailabilityHandler expone la evaluación de disponibilidad por REST; la
// misma evaluación viaja por websocket cuando cambian reservas u horarios.
type AvailabilityHandler struct {
	evaluator *usecase.EvaluateVenueUseCase
	errors    *httputil.ErrorMapper
	now       func() time.Time
}

func NewAvailabilityHandler(evaluator *usecase.EvaluateVenueUseCase) *AvailabilityHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(usecase.ErrMissingVenue, http.StatusBadRequest, "missing venue id").
		WithMapping(port.ErrInventoryNotFound, http.StatusNotFound, "venue not found in inventory").
		WithMapping(port.ErrInventoryForbidden, http.StatusBadGateway, "inventory rejected service credentials").
		WithMapping(port.ErrInventoryUnavailable, http.StatusBadGateway, "inventory service unavailable")
	return &AvailabilityHandler{
		evaluator: evaluator,
		errors:    mapper,
		now:       time.Now,
	}
}

// GetAvailability maneja GET /api/v1/venues/:venueId/availability?at=RFC3339.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("at"))
	at := h.now()
	if raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "at must be an RFC3339 instant")
		}
		at = parsed
	}

	assessment, err := h.evaluator.Execute(c.Request().Context(), c.Param("venueId"), at)
	if err != nil {
		info := h.errors.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}
	return c.JSON(http.StatusOK, assessment)
}
