package repository

import (
	"context"

	"jira_webhook_mock/internal/model"
)

type WebhookRepository interface {
	// AppendWebhook stores webhook and returns its 1-based position.
	AppendWebhook(ctx context.Context, webhook model.CapturedWebhook) (int, error)
	// ListWebhooks returns every captured webhook in insertion order.
	ListWebhooks(ctx context.Context) ([]model.CapturedWebhook, error)
}
