package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	availport "mesaYaHours/internal/modules/availability/application/port"
	availusecase "mesaYaHours/internal/modules/availability/application/usecase"
	"mesaYaHours/internal/modules/realtime/application/usecase"
	"mesaYaHours/internal/shared/httputil"
)

// PushResponse acknowledges a forced availability push.
type PushResponse struct {
	Success    bool                    `json:"success"`
	VenueID    string                  `json:"venueId"`
	Assessment availusecase.Assessment `json:"assessment"`
}

// NewAvailabilityPushHandler crea el endpoint REST que fuerza una reevaluación
// del local y la difunde a sus clientes conectados. Backend services call it
// after changes the Kafka stream does not carry, such as a capacity edit in
// the inventory panel.
func NewAvailabilityPushHandler(notifyUC *usecase.NotifyAvailabilityUseCase) echo.HandlerFunc {
	errors := httputil.NewErrorMapper().
		WithMapping(availusecase.ErrMissingVenue, http.StatusBadRequest, "missing venue id").
		WithMapping(availport.ErrInventoryNotFound, http.StatusNotFound, "venue not found in inventory").
		WithMapping(availport.ErrInventoryForbidden, http.StatusBadGateway, "inventory rejected service credentials").
		WithMapping(availport.ErrInventoryUnavailable, http.StatusBadGateway, "inventory service unavailable")

	return func(c echo.Context) error {
		venueID := c.Param("venueId")
		assessment, err := notifyUC.Refresh(c.Request().Context(), venueID)
		if err != nil {
			info := errors.Map(err)
			return echo.NewHTTPError(info.Status, info.Message)
		}

		slog.Info("availability push sent",
			slog.String("venueId", venueID),
			slog.String("label", assessment.Label),
		)
		return c.JSON(http.StatusOK, PushResponse{
			Success:    true,
			VenueID:    venueID,
			Assessment: assessment,
		})
	}
}
