package config

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "PERSIST_LEADS", "LEDGER_BACKEND", "LEADS_BUCKET", "LEADS_PREFIX", "LEADS_TIMEZONE", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if !cfg.PersistLeads {
		t.Fatalf("expected persistence enabled by default")
	}
	if cfg.LedgerBackend != BackendS3 {
		t.Fatalf("expected s3 ledger by default, got %s", cfg.LedgerBackend)
	}
	if cfg.LeadsPrefix != "leads/" {
		t.Fatalf("expected default prefix, got %s", cfg.LeadsPrefix)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit defaults %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local zone, got %v (%v)", loc, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PERSIST_LEADS", "false")
	t.Setenv("LEDGER_BACKEND", " Redis ")
	t.Setenv("LEADS_BUCKET", "crm-leads")
	t.Setenv("LEADS_PREFIX", "webhook/")
	t.Setenv("LEADS_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.PersistLeads {
		t.Fatalf("expected persistence disabled")
	}
	if cfg.LedgerBackend != BackendRedis {
		t.Fatalf("expected normalized backend, got %q", cfg.LedgerBackend)
	}
	if cfg.LeadsBucket != "crm-leads" || cfg.LeadsPrefix != "webhook/" {
		t.Fatalf("unexpected bucket/prefix %s %s", cfg.LeadsBucket, cfg.LeadsPrefix)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("expected zone to load: %v", err)
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected zone %s", loc)
	}
}

func TestLocationInvalid(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus_Mons"}
	if _, err := cfg.Location(); err == nil {
		t.Fatalf("expected invalid zone error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"s3 needs bucket", Config{PersistLeads: true, LedgerBackend: BackendS3}, true},
		{"s3 ok", Config{PersistLeads: true, LedgerBackend: BackendS3, LeadsBucket: "b"}, false},
		{"redis needs addr", Config{PersistLeads: true, LedgerBackend: BackendRedis}, true},
		{"postgres needs url", Config{PersistLeads: true, LedgerBackend: BackendPostgres}, true},
		{"postgres ok", Config{PersistLeads: true, LedgerBackend: BackendPostgres, DatabaseURL: "postgres://x"}, false},
		{"memory ok", Config{PersistLeads: true, LedgerBackend: BackendMemory}, false},
		{"unknown backend", Config{PersistLeads: true, LedgerBackend: "dynamo"}, true},
		{"not persisting skips checks", Config{LedgerBackend: "dynamo"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBackendIgnoresPersistFlag(t *testing.T) {
	cfg := Config{PersistLeads: false, LedgerBackend: BackendS3}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() should skip backend checks when not persisting: %v", err)
	}
	if err := cfg.ValidateBackend(); err == nil {
		t.Fatalf("ValidateBackend() should require LEADS_BUCKET for s3")
	}
	cfg.LeadsBucket = "crm-leads"
	if err := cfg.ValidateBackend(); err != nil {
		t.Fatalf("ValidateBackend() error = %v", err)
	}
}
