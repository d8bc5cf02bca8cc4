package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"jira_webhook_mock/internal/config"
	"jira_webhook_mock/internal/domain"
	"jira_webhook_mock/internal/http/dto"
	"jira_webhook_mock/internal/metrics"
	"jira_webhook_mock/internal/model"
	"jira_webhook_mock/internal/service/capture"
	"jira_webhook_mock/internal/sse"
)

type Handler struct {
	cfg *config.Config
	svc *capture.Service
	hub *sse.Hub
	log *zap.Logger
}

func NewHandler(cfg *config.Config, svc *capture.Service, hub *sse.Hub, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, hub: hub, log: logger}
}

func (h *Handler) CaptureWebhook(c *gin.Context) {
	if contentType := c.GetHeader("Content-Type"); !domain.IsJSONContentType(contentType) {
		metrics.WebhooksRejected.WithLabelValues(metrics.ReasonContentType).Inc()
		h.log.Warn("rejected webhook content type", zap.String("content_type", contentType))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeBadRequest, Message: "content type must be application/json"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, domain.MaxBodyBytes)
	body, err := domain.DecodeBody(c.Request.Body)
	if errors.Is(err, domain.ErrBodyTooLarge) {
		metrics.WebhooksRejected.WithLabelValues(metrics.ReasonTooLarge).Inc()
		h.log.Warn("rejected webhook body", zap.Int64("limit", domain.MaxBodyBytes), zap.Error(err))
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Code: dto.CodePayloadTooLarge, Message: "payload too large"})
		return
	}
	if err != nil {
		metrics.WebhooksRejected.WithLabelValues(metrics.ReasonInvalidJSON).Inc()
		h.log.Warn("rejected webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeBadRequest, Message: "invalid json"})
		return
	}

	if _, err := h.svc.Capture(c.Request.Context(), domain.RequestHeader(c.Request), body); err != nil {
		metrics.WebhooksRejected.WithLabelValues(metrics.ReasonStoreError).Inc()
		h.log.Error("capture webhook failed", zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusSuccess})
}

func (h *Handler) ListWebhooks(c *gin.Context) {
	webhooks, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list webhooks failed", zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, webhooks)
}

// StreamWebhooks replays the captured webhooks as server-sent events, then
// pushes each new capture until the client goes away. The watcher registers
// before the snapshot is taken, so live events already covered by the
// snapshot are skipped by position.
func (h *Handler) StreamWebhooks(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	client := &sse.Client{Ch: make(chan sse.Event, 16)}
	if !h.hub.Register(client) {
		h.log.Warn("stream hub stopped")
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	defer h.hub.Unregister(client)

	history, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list webhooks for stream failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for _, webhook := range history {
		if err := writeWebhook(c.Writer, webhook); err != nil {
			h.log.Error("write history webhook failed", zap.Error(err))
			return
		}
	}
	flusher.Flush()
	replayed := len(history)

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		case event, ok := <-client.Ch:
			if !ok {
				return
			}
			if event.Seq <= replayed {
				continue
			}
			if err := writeWebhook(c.Writer, event.Webhook); err != nil {
				h.log.Error("write webhook failed", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeWebhook(w http.ResponseWriter, webhook model.CapturedWebhook) error {
	payload, err := json.Marshal(webhook)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: webhook\ndata: %s\n\n", payload)
	return err
}
