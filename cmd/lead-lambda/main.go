package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/wolfman30/lead-webhook/cmd/mainconfig"
	appconfig "github.com/wolfman30/lead-webhook/internal/config"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/internal/webhook"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	hook, cleanup, err := buildHandler(context.Background(), cfg, logger, metrics.NewLeadMetrics(nil, cfg.MetricsOrigins...))
	if err != nil {
		logger.Error("failed to initialize lead webhook", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("lead webhook lambda ready",
		"persist", cfg.PersistLeads,
		"backend", cfg.LedgerBackend,
		"timezone", cfg.Timezone,
	)
	lambda.Start(func(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
		return handle(ctx, hook, raw), nil
	})
}

// buildHandler opens the ledger only when leads are persisted.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, m *metrics.LeadMetrics) (*webhook.Handler, func(), error) {
	cleanup := func() {}
	loc, err := cfg.Location()
	if err != nil {
		return nil, cleanup, err
	}

	opts := webhook.Options{Persist: cfg.PersistLeads, Location: loc}
	if !cfg.PersistLeads {
		return webhook.NewHandler(nil, opts, logger, m), cleanup, nil
	}

	store, cleanup, err := mainconfig.BuildLedgerStore(ctx, cfg, logger, m)
	if err != nil {
		return nil, cleanup, err
	}
	return webhook.NewHandler(store, opts, logger, m), cleanup, nil
}

func handle(ctx context.Context, hook *webhook.Handler, raw json.RawMessage) events.APIGatewayProxyResponse {
	resp := hook.Handle(ctx, raw)
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
