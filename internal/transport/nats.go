package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/galeriku/gallery-assistant/internal/assistant"
	"github.com/galeriku/gallery-assistant/internal/config"
	"github.com/galeriku/gallery-assistant/internal/logger"
	"github.com/galeriku/gallery-assistant/internal/models"
)

// NATSTransport exposes the assistant over NATS request/reply on the
// ask, history and analytics subjects.
type NATSTransport struct {
	conn    *nats.Conn
	config  *config.Config
	service *assistant.Service
	logger  logger.Logger

	subs []*nats.Subscription
}

func NewNATSTransport(cfg *config.Config, service *assistant.Service, log logger.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("connected to NATS server", map[string]interface{}{
		"url": cfg.NatsURL,
	})

	return &NATSTransport{
		conn:    conn,
		config:  cfg,
		service: service,
		logger: log.With(map[string]interface{}{
			"component": "transport",
		}),
	}, nil
}

func (nt *NATSTransport) Start() error {
	subjects := map[string]nats.MsgHandler{
		nt.config.NatsAskSubject:       nt.handleAsk,
		nt.config.NatsHistorySubject:   nt.handleHistory,
		nt.config.NatsAnalyticsSubject: nt.handleAnalytics,
	}
	for subject, handler := range subjects {
		sub, err := nt.conn.Subscribe(subject, handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		nt.subs = append(nt.subs, sub)
		nt.logger.Info("subscribed to subject", map[string]interface{}{
			"subject": subject,
		})
	}
	return nil
}

func (nt *NATSTransport) handleAsk(msg *nats.Msg) {
	var request models.AskRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.logger.WithError(err).Error("failed to parse ask request", nil)
		nt.respond(msg, parseErrorResponse(request.SessionID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	nt.respond(msg, nt.service.ProcessQuery(ctx, request))
}

func (nt *NATSTransport) handleHistory(msg *nats.Msg) {
	var request models.HistoryRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.logger.WithError(err).Error("failed to parse history request", nil)
		code := models.ErrorParseError
		nt.respond(msg, &models.HistoryResponse{ErrorCode: &code})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	entries, err := nt.service.History(ctx, request.SessionID, request.Limit)
	if err != nil {
		nt.logger.WithError(err).Error("failed to load history", map[string]interface{}{
			"session_id": request.SessionID,
		})
		code := models.ErrorStoreFailed
		nt.respond(msg, &models.HistoryResponse{SessionID: request.SessionID, ErrorCode: &code})
		return
	}

	nt.respond(msg, &models.HistoryResponse{
		SessionID: request.SessionID,
		Entries:   entries,
	})
}

func (nt *NATSTransport) handleAnalytics(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	stats, err := nt.service.Analytics(ctx)
	if err != nil {
		nt.logger.WithError(err).Error("failed to compute analytics", nil)
		code := models.ErrorStoreFailed
		nt.respond(msg, &models.AnalyticsResponse{ErrorCode: &code})
		return
	}

	nt.respond(msg, stats)
}

func (nt *NATSTransport) respond(msg *nats.Msg, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		nt.logger.WithError(err).Error("failed to marshal response", nil)
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.WithError(err).Error("failed to send response", nil)
	}
}

func parseErrorResponse(sessionID string) *models.AskResponse {
	code := models.ErrorParseError
	message := "Invalid request format"
	return &models.AskResponse{
		SessionID:    sessionID,
		ErrorCode:    &code,
		ErrorMessage: &message,
	}
}

func (nt *NATSTransport) Close() error {
	for _, sub := range nt.subs {
		if err := sub.Unsubscribe(); err != nil {
			nt.logger.WithError(err).Warn("failed to unsubscribe", map[string]interface{}{
				"subject": sub.Subject,
			})
		}
	}
	if nt.conn != nil {
		nt.conn.Close()
		nt.logger.Info("NATS connection closed", nil)
	}
	return nil
}
