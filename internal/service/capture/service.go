package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"jira_webhook_mock/internal/config"
	"jira_webhook_mock/internal/domain"
	"jira_webhook_mock/internal/metrics"
	"jira_webhook_mock/internal/model"
	"jira_webhook_mock/internal/queue"
	"jira_webhook_mock/internal/repository"
	"jira_webhook_mock/internal/sse"
)

const defaultPublishTimeout = 5 * time.Second

type Service struct {
	store          repository.WebhookRepository
	hub            *sse.Hub
	pub            queue.Publisher
	routingKey     string
	publishTimeout time.Duration
	log            *zap.Logger
	now            func() time.Time

	// mirrors tracks in-flight queue publishes; draining stops new ones.
	mu       sync.Mutex
	draining bool
	mirrors  sync.WaitGroup
}

func NewService(cfg *config.Config, store repository.WebhookRepository, hub *sse.Hub, publisher queue.Publisher, logger *zap.Logger) *Service {
	timeout := cfg.RabbitPublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Service{
		store:          store,
		hub:            hub,
		pub:            publisher,
		routingKey:     cfg.RabbitRoutingKey,
		publishTimeout: timeout,
		log:            logger,
		now:            time.Now,
	}
}

// Capture records one inbound webhook. The timestamp comes from the server
// clock; callers cannot supply it.
func (s *Service) Capture(ctx context.Context, header http.Header, body any) (model.CapturedWebhook, error) {
	webhook := model.CapturedWebhook{
		Timestamp: domain.CaptureTimestamp(s.now()),
		Headers:   domain.HeaderPairs(header),
		Body:      body,
	}

	s.log.Info("received webhook", zap.Any("webhook", webhook))

	seq, err := s.store.AppendWebhook(ctx, webhook)
	if err != nil {
		s.log.Error("store append webhook failed", zap.String("timestamp", webhook.Timestamp), zap.Error(err))
		return model.CapturedWebhook{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	metrics.WebhooksCaptured.Inc()
	metrics.StoredWebhooks.Inc()

	if !s.hub.Broadcast(sse.Event{Seq: seq, Webhook: webhook}) {
		metrics.StreamDropped.Inc()
		s.log.Warn("stream hub full, webhook not broadcast", zap.String("timestamp", webhook.Timestamp))
	}
	s.startMirror(ctx, webhook)

	return webhook, nil
}

// List returns every captured webhook in capture order.
func (s *Service) List(ctx context.Context) ([]model.CapturedWebhook, error) {
	webhooks, err := s.store.ListWebhooks(ctx)
	if err != nil {
		s.log.Error("store list webhooks failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return webhooks, nil
}

// Drain waits for in-flight queue publishes. Captures arriving afterwards are
// not mirrored.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.mirrors.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain queue mirror: %w", ctx.Err())
	}
}

// startMirror publishes in the background so a slow broker never holds the
// response.
func (s *Service) startMirror(ctx context.Context, webhook model.CapturedWebhook) {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		metrics.QueuePublished.WithLabelValues("skipped").Inc()
		s.log.Warn("shutting down, webhook not mirrored", zap.String("timestamp", webhook.Timestamp))
		return
	}
	s.mirrors.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.mirrors.Done()
		s.mirror(context.WithoutCancel(ctx), webhook)
	}()
}

func (s *Service) mirror(ctx context.Context, webhook model.CapturedWebhook) {
	payload, err := json.Marshal(webhook)
	if err != nil {
		metrics.QueuePublished.WithLabelValues("error").Inc()
		s.log.Error("mirror payload marshal failed", zap.Error(err))
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.pub.Publish(publishCtx, payload, s.routingKey); err != nil {
		metrics.QueuePublished.WithLabelValues("error").Inc()
		s.log.Error("mirror publish failed", zap.String("routing_key", s.routingKey), zap.Error(err))
		return
	}
	metrics.QueuePublished.WithLabelValues("ok").Inc()
}
