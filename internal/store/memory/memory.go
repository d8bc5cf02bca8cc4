package memory

import (
	"sync"

	"go.uber.org/zap"
	"jira_webhook_mock/internal/model"
)

// Store is an append-only, process-lifetime list of captured webhooks.
// One mutex guards both appends and snapshots.
type Store struct {
	mu      sync.Mutex
	records []model.CapturedWebhook
	log     *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{records: make([]model.CapturedWebhook, 0), log: logger}
}
