package mainconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfman30/lead-webhook/internal/app/bootstrap"
	appconfig "github.com/wolfman30/lead-webhook/internal/config"
	"github.com/wolfman30/lead-webhook/internal/ledger"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

// BuildLedgerStore wires the ledger backend selected by LEDGER_BACKEND. The
// backend settings are checked even when PERSIST_LEADS is off, since the
// store also serves reads. The returned cleanup closes whatever connections
// were opened and is never nil.
func BuildLedgerStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, m *metrics.LeadMetrics) (*ledger.Store, func(), error) {
	noop := func() {}
	if err := cfg.ValidateBackend(); err != nil {
		return nil, noop, err
	}

	switch cfg.LedgerBackend {
	case appconfig.BackendS3:
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("load aws config: %w", err)
		}
		backend := ledger.NewS3Backend(NewS3Client(awsCfg, cfg), cfg.LeadsBucket)
		return ledger.NewStore(backend, cfg.LeadsPrefix, logger, m), noop, nil

	case appconfig.BackendRedis:
		client := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
		if client == nil {
			return nil, noop, errors.New("redis ledger backend not available")
		}
		backend := ledger.NewRedisBackend(client)
		return ledger.NewStore(backend, cfg.LeadsPrefix, logger, m), func() { _ = client.Close() }, nil

	case appconfig.BackendPostgres:
		pool, err := bootstrap.BuildPostgresPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		backend := ledger.NewPostgresBackend(pool)
		return ledger.NewStore(backend, cfg.LeadsPrefix, logger, m), pool.Close, nil

	case appconfig.BackendMemory:
		logger.Warn("using in-memory lead ledger; records are lost on exit")
		return ledger.NewStore(ledger.NewMemoryBackend(), cfg.LeadsPrefix, logger, m), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
}
