package memory

import (
	"context"

	"go.uber.org/zap"
	"jira_webhook_mock/internal/model"
)

func (s *Store) AppendWebhook(_ context.Context, webhook model.CapturedWebhook) (int, error) {
	s.mu.Lock()
	s.records = append(s.records, webhook)
	seq := len(s.records)
	s.mu.Unlock()

	s.log.Debug("webhook stored", zap.Int("seq", seq))
	return seq, nil
}

func (s *Store) ListWebhooks(_ context.Context) ([]model.CapturedWebhook, error) {
	s.mu.Lock()
	snapshot := make([]model.CapturedWebhook, len(s.records))
	copy(snapshot, s.records)
	s.mu.Unlock()
	return snapshot, nil
}
