package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/lead-webhook/internal/config"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

func testDeps() (*logging.Logger, *metrics.LeadMetrics) {
	return logging.NewWithWriter("error", io.Discard), metrics.NewLeadMetrics(prometheus.NewRegistry())
}

func TestHandleReturnsEnrichedRecordWithoutPersistence(t *testing.T) {
	logger, m := testDeps()
	cfg := &appconfig.Config{PersistLeads: false, Timezone: "UTC"}
	hook, cleanup, err := buildHandler(context.Background(), cfg, logger, m)
	require.NoError(t, err)
	defer cleanup()

	body, err := json.Marshal(`{"field_name":[{"name":"email","values":["ana@example.com"]}]}`)
	require.NoError(t, err)
	raw := json.RawMessage(`{"path":"/webhooks/facebook","body":` + string(body) + `}`)

	resp := handle(context.Background(), hook, raw)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &record))
	assert.Equal(t, "facebook", record["origem"])
	assert.Equal(t, []any{"ana@example.com"}, record["emails"])
}

func TestHandlePersistsToMemoryLedger(t *testing.T) {
	logger, m := testDeps()
	cfg := &appconfig.Config{
		PersistLeads:  true,
		LedgerBackend: appconfig.BackendMemory,
		LeadsPrefix:   "leads/",
		Timezone:      "UTC",
	}
	hook, cleanup, err := buildHandler(context.Background(), cfg, logger, m)
	require.NoError(t, err)
	defer cleanup()

	resp := handle(context.Background(), hook, json.RawMessage(`{"nome":"Ana"}`))

	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Equal(t, "Lead salvo com sucesso", out["message"])
	assert.Contains(t, out["s3_location"], "memory://leads/leads_")
}

func TestHandleMalformedBodyIs500(t *testing.T) {
	logger, m := testDeps()
	cfg := &appconfig.Config{PersistLeads: false, Timezone: "UTC"}
	hook, cleanup, err := buildHandler(context.Background(), cfg, logger, m)
	require.NoError(t, err)
	defer cleanup()

	var resp events.APIGatewayProxyResponse = handle(context.Background(), hook, json.RawMessage(`{"body":"{not json"}`))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "Erro ao processar lead")
}

func TestBuildHandlerRejectsBadTimezone(t *testing.T) {
	logger, m := testDeps()
	cfg := &appconfig.Config{PersistLeads: false, Timezone: "Mars/Olympus"}
	_, cleanup, err := buildHandler(context.Background(), cfg, logger, m)
	require.NotNil(t, cleanup)
	assert.Error(t, err)
}
