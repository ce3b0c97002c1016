package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	availusecase "mesaYaHours/internal/modules/availability/application/usecase"
	"mesaYaHours/internal/modules/realtime/domain"
	"mesaYaHours/internal/modules/realtime/infrastructure"
	"mesaYaHours/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewWebsocketHandler expone /ws/venues/:venue/:token y valida el JWT localmente.
// Connected clients receive the current availability verdict right away, then
// every availability.updated and hours.updated broadcast scoped to their venue.
func NewWebsocketHandler(
	hub *infrastructure.Hub,
	validator auth.TokenValidator,
	evaluateUC *availusecase.EvaluateVenueUseCase,
) func(echo.Context) error {
	return func(c echo.Context) error {
		venueID := strings.TrimSpace(c.Param("venue"))
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = strings.TrimSpace(c.QueryParams().Get("token"))
			if token != "" {
				slog.Debug("ws handler token sourced from query", slog.String("venueId", venueID), slog.Int("tokenLen", len(token)))
			}
		}
		if token == "" {
			token = auth.ExtractBearerTokenFromHeader(c.Request().Header.Get("Authorization"))
			if token != "" {
				slog.Debug("ws handler token sourced from authorization header", slog.String("venueId", venueID), slog.Int("tokenLen", len(token)))
			}
		}
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		if venueID == "" {
			slog.Warn("ws handler missing venue", slog.Int("tokenLen", len(token)))
			logger.Warnf("ws rejected: missing venue ip=%s reqID=%s", peerIP, requestID)
			return echo.NewHTTPError(http.StatusBadRequest, "missing venue")
		}
		if token == "" {
			slog.Warn("ws handler missing token", slog.String("venueId", venueID))
			logger.Warnf("ws rejected: missing token venue=%s ip=%s reqID=%s", venueID, peerIP, requestID)
			return echo.NewHTTPError(http.StatusBadRequest, "missing token")
		}

		claims, err := validator.Validate(token)
		if err != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			if errors.Is(err, auth.ErrMissingToken) {
				status = http.StatusBadRequest
				message = "missing token"
			}
			slog.Warn("ws handler token rejected", slog.String("venueId", venueID), slog.Int("status", status), slog.Any("error", err))
			logger.Warnf("ws rejected: %s venue=%s ip=%s reqID=%s: %v", message, venueID, peerIP, requestID, err)
			return echo.NewHTTPError(status, message)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("venueId", venueID), slog.Any("error", err))
			logger.Errorf("ws upgrade failed venue=%s ip=%s reqID=%s: %v", venueID, peerIP, requestID, err)
			return err
		}

		userID := claims.RegisteredClaims.Subject
		sessionID := claims.SessionID
		roles := claims.Roles
		slog.Info("ws handler upgrade success", slog.String("venueId", venueID), slog.String("userId", userID), slog.String("sessionId", sessionID), slog.Any("roles", roles))

		commandHandler := newAvailabilityCommandHandler(venueID, evaluateUC)
		client := infrastructure.NewClient(hub, conn, userID, sessionID, venueID, token, 8, commandHandler)

		topics := venueTopics()
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: domain.Metadata{
				"userId":           userID,
				"sessionId":        sessionID,
				domain.MetaVenueID: venueID,
			},
			Data: map[string]interface{}{
				"venueId":       venueID,
				"allowedTopics": topics,
				"roles":         roles,
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)

		sendInitialAssessment(c.Request().Context(), client, venueID, evaluateUC)

		logger.Infof("ws connected venue=%s user=%s session=%s roles=%v ip=%s reqID=%s",
			venueID, userID, sessionID, roles, peerIP, requestID)
		return nil
	}
}

// venueTopics lists the broadcasts a venue watcher is subscribed to on attach.
func venueTopics() []string {
	return []string{
		domain.TopicAvailabilityUpdated,
		domain.TopicHoursUpdated,
		domain.ErrorTopic(domain.AvailabilityEntity),
		domain.TopicSystemError,
	}
}

// sendInitialAssessment pushes the connect-time verdict straight to one
// client. Failures degrade to log noise; the stream still delivers updates.
func sendInitialAssessment(ctx context.Context, client *infrastructure.Client, venueID string, evaluateUC *availusecase.EvaluateVenueUseCase) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	assessment, err := evaluateUC.Execute(ctx, venueID, time.Now())
	if err != nil {
		slog.Warn("ws handler initial assessment failed", slog.String("venueId", venueID), slog.Any("error", err))
		return
	}
	snapshot := domain.NewMessage(domain.AvailabilityEntity, domain.ActionSnapshot, venueID, assessment).
		WithMeta(domain.MetaVenueID, venueID)
	client.SendDomainMessage(snapshot)
}

type availabilityQuery struct {
	At string `json:"at"`
}

// newAvailabilityCommandHandler atiende los comandos get_availability del
// cliente, con un instante opcional en el payload.
func newAvailabilityCommandHandler(venueID string, evaluateUC *availusecase.EvaluateVenueUseCase) infrastructure.CommandHandler {
	return func(cmdCtx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		switch action {
		case "get_availability", "availability", "refresh":
			at := time.Now()
			if len(cmd.Payload) > 0 {
				var query availabilityQuery
				if err := json.Unmarshal(cmd.Payload, &query); err != nil {
					slog.Warn("ws handler availability decode failed", slog.String("venueId", venueID), slog.Any("error", err))
					sendCommandError(client, venueID, action, "invalid payload")
					return
				}
				if raw := strings.TrimSpace(query.At); raw != "" {
					parsed, err := time.Parse(time.RFC3339, raw)
					if err != nil {
						sendCommandError(client, venueID, action, "at must be an RFC3339 instant")
						return
					}
					at = parsed
				}
			}
			assessment, err := evaluateUC.Execute(cmdCtx, venueID, at)
			if err != nil {
				slog.Warn("ws handler availability failed", slog.String("venueId", venueID), slog.Any("error", err))
				sendCommandError(client, venueID, action, "availability unavailable")
				return
			}
			message := domain.NewMessage(domain.AvailabilityEntity, domain.ActionUpdated, venueID, assessment).
				WithMeta(domain.MetaVenueID, venueID)
			client.SendDomainMessage(message)
		default:
			slog.Debug("ws handler unknown action", slog.String("venueId", venueID), slog.String("action", cmd.Action))
			sendCommandError(client, venueID, action, "unsupported action")
		}
	}
}

func sendCommandError(client *infrastructure.Client, venueID, action, reason string) {
	message := &domain.Message{
		Topic:      domain.ErrorTopic(domain.AvailabilityEntity),
		Entity:     domain.AvailabilityEntity,
		Action:     domain.ActionError,
		ResourceID: venueID,
		Metadata: domain.Metadata{
			domain.MetaVenueID: venueID,
			"action":           action,
		},
		Data: map[string]string{
			"error": reason,
		},
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(message)
}
