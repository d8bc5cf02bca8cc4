//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"jira_webhook_mock/internal/app"
	"jira_webhook_mock/internal/config"
	"jira_webhook_mock/internal/http"
	"jira_webhook_mock/internal/http/controller"
	"jira_webhook_mock/internal/logging"
	"jira_webhook_mock/internal/queue/rabbitmq"
	"jira_webhook_mock/internal/service/capture"
	"jira_webhook_mock/internal/sse"
	"jira_webhook_mock/internal/store"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewStore,
		sse.NewHub,
		rabbitmq.NewPublisher,
		capture.NewService,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
