package e2e

import (
	"bufio"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"jira_webhook_mock/internal/config"
	httpserver "jira_webhook_mock/internal/http"
	"jira_webhook_mock/internal/http/controller"
	"jira_webhook_mock/internal/queue"
	"jira_webhook_mock/internal/service/capture"
	"jira_webhook_mock/internal/sse"
	"jira_webhook_mock/internal/store/memory"
)

type noopPublisher struct{}

func (n *noopPublisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	_ = ctx
	_ = payload
	_ = routingKey
	return nil
}

type testServer struct {
	*httptest.Server
	hub *sse.Hub
}

func newTestServer(t *testing.T, cfg *config.Config, publisher queue.Publisher) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.SSEHeartbeat == 0 {
		cfg.SSEHeartbeat = 5 * time.Second
	}
	if publisher == nil {
		publisher = &noopPublisher{}
	}

	logger := zap.NewNop()
	repo := memory.New(logger)
	hub := sse.NewHub()
	svc := capture.NewService(cfg, repo, hub, publisher, logger)
	handler := controller.NewHandler(cfg, svc, hub, logger)
	router := httpserver.NewRouter(cfg, handler, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()
		_ = svc.Drain(drainCtx)
		cancel()
	})
	return &testServer{Server: server, hub: hub}
}

type sseEvent struct {
	name string
	data string
}

func readSSEEvent(reader *bufio.Reader, timeout time.Duration) (sseEvent, error) {
	type result struct {
		event sseEvent
		err   error
	}
	ch := make(chan result, 1)

	go func() {
		var event sseEvent
		var dataLines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				ch <- result{sseEvent{}, err}
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				if len(dataLines) > 0 {
					event.data = strings.Join(dataLines, "\n")
					ch <- result{event, nil}
					return
				}
				continue
			}
			if strings.HasPrefix(line, ":") {
				continue
			}
			if strings.HasPrefix(line, "event:") {
				event.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()

	select {
	case res := <-ch:
		return res.event, res.err
	case <-time.After(timeout):
		return sseEvent{}, context.DeadlineExceeded
	}
}
