package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaHours/internal/modules/realtime/domain"
	"mesaYaHours/internal/modules/realtime/infrastructure"
	"mesaYaHours/internal/shared/auth"
)

var monitorCounter atomic.Uint64

// NewMonitorWebsocketHandler expone /ws/monitor para paneles internos: exige
// un rol de administración y engancha al cliente a todo el hub, de modo que ve
// los horarios y la disponibilidad de todos los locales a la vez.
func NewMonitorWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator) func(echo.Context) error {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		token := c.QueryParam("token")
		if token == "" {
			token = auth.ExtractBearerTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		}
		claims, err := validator.Validate(token)
		if err != nil {
			slog.Warn("monitor ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		}
		if !claims.HasAnyRole("admin", "manager") {
			slog.Warn("monitor ws role rejected", slog.String("userId", claims.Subject), slog.String("ip", peerIP))
			return echo.NewHTTPError(http.StatusForbidden, "monitor stream requires an admin role")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("monitor ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return err
		}

		userID := claims.Subject
		sessionID := fmt.Sprintf("monitor-%d", monitorCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, userID, sessionID, "", token, 8, nil)
		hub.AttachClientToAll(client)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId": sessionID,
				"userId":    userID,
			},
			Data: map[string]any{
				"mode":   "monitor",
				"topics": []string{"*"},
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)

		slog.Info("monitor ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}
