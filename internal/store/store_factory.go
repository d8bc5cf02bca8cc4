package store

import (
	"go.uber.org/zap"
	"jira_webhook_mock/internal/repository"
	"jira_webhook_mock/internal/store/memory"
)

// NewStore builds the process-wide webhook store. Captures live in memory only
// and are lost on restart.
func NewStore(logger *zap.Logger) repository.WebhookRepository {
	logger.Info("webhook store ready", zap.String("backend", "memory"))
	return memory.New(logger)
}
