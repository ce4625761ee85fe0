package mainconfig

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	appconfig "github.com/wolfman30/lead-webhook/internal/config"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

func TestBuildLedgerStore_Memory(t *testing.T) {
	cfg := &appconfig.Config{PersistLeads: true, LedgerBackend: appconfig.BackendMemory, LeadsPrefix: "leads/"}
	store, cleanup, err := BuildLedgerStore(context.Background(), cfg, logging.Default(), nil)
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	defer cleanup()

	loc, err := store.Append(context.Background(), "2025-03-07", map[string]int{"rating": 2})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if loc != "memory://leads/leads_2025-03-07.json" {
		t.Fatalf("unexpected location %s", loc)
	}
}

func TestBuildLedgerStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{PersistLeads: true, LedgerBackend: appconfig.BackendRedis, RedisAddr: mr.Addr()}
	store, cleanup, err := BuildLedgerStore(context.Background(), cfg, logging.Default(), nil)
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	defer cleanup()

	if _, err := store.Append(context.Background(), "2025-03-07", map[string]int{"rating": 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !mr.Exists("leads_2025-03-07.json") {
		t.Fatalf("expected ledger key in redis, keys=%v", mr.Keys())
	}
}

func TestBuildLedgerStore_S3(t *testing.T) {
	cfg := &appconfig.Config{
		PersistLeads:        true,
		LedgerBackend:       appconfig.BackendS3,
		LeadsBucket:         "crm-leads",
		LeadsPrefix:         "leads/",
		AWSRegion:           "us-east-1",
		AWSAccessKeyID:      "test",
		AWSSecretAccessKey:  "test",
		AWSEndpointOverride: "http://localhost:4566",
	}
	store, cleanup, err := BuildLedgerStore(context.Background(), cfg, logging.Default(), nil)
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	defer cleanup()
	if store.Key("2025-03-07") != "leads/leads_2025-03-07.json" {
		t.Fatalf("unexpected key %s", store.Key("2025-03-07"))
	}
}

func TestBuildLedgerStore_InvalidConfig(t *testing.T) {
	cfg := &appconfig.Config{PersistLeads: true, LedgerBackend: appconfig.BackendS3}
	_, cleanup, err := BuildLedgerStore(context.Background(), cfg, logging.Default(), nil)
	if err == nil {
		t.Fatalf("expected error for missing bucket")
	}
	cleanup()
}

func TestBuildLedgerStore_ReadOnlyStillNeedsBucket(t *testing.T) {
	cfg := &appconfig.Config{PersistLeads: false, LedgerBackend: appconfig.BackendS3}
	store, cleanup, err := BuildLedgerStore(context.Background(), cfg, logging.Default(), nil)
	defer cleanup()
	if err == nil || store != nil {
		t.Fatalf("expected missing bucket to fail even without persistence, got store=%v err=%v", store, err)
	}
}
