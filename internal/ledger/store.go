package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wolfman30/lead-webhook/internal/leads"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "leads/"

// Store keeps one JSON array of lead records per calendar day.
//
// Appends are read-modify-write against the backend with no locking or
// conditional write: two concurrent appends to the same day can lose one of
// the records.
type Store struct {
	backend Backend
	prefix  string
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
}

// NewStore creates a ledger Store on top of backend.
func NewStore(backend Backend, prefix string, logger *logging.Logger, m *metrics.LeadMetrics) *Store {
	if backend == nil {
		panic("ledger: backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{backend: backend, prefix: prefix, logger: logger, metrics: m}
}

// Key returns the object key of the ledger for day (YYYY-MM-DD).
func (s *Store) Key(day string) string {
	return s.prefix + "leads_" + day + ".json"
}

// Append adds record as the last element of the day's ledger and returns the
// ledger's location. Previously stored elements are written back unchanged.
func (s *Store) Append(ctx context.Context, day string, record any) (string, error) {
	start := time.Now()
	if err := checkDay(day); err != nil {
		return "", err
	}

	data, err := marshalRecord(record)
	if err != nil {
		return "", fmt.Errorf("ledger: marshal record: %w", err)
	}

	key := s.Key(day)
	entries, err := s.load(ctx, key)
	if err != nil {
		return "", err
	}
	entries = append(entries, data)

	if err := s.backend.Put(ctx, key, encodeLedger(entries)); err != nil {
		return "", fmt.Errorf("ledger: %s put %s: %w", s.backend.Name(), key, err)
	}

	s.metrics.ObserveLedgerAppend(s.backend.Name(), time.Since(start).Seconds())
	s.logger.Info("lead appended to ledger",
		"backend", s.backend.Name(),
		"key", key,
		"records", len(entries),
	)
	return s.backend.Location(key), nil
}

// Read returns the stored records for day. A day with no ledger yields an
// empty slice.
func (s *Store) Read(ctx context.Context, day string) ([]json.RawMessage, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	entries, err := s.load(ctx, s.Key(day))
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}
	return entries, nil
}

func (s *Store) load(ctx context.Context, key string) ([]json.RawMessage, error) {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("ledger not found, starting new", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: %s get %s: %w", s.backend.Name(), key, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s", ErrCorruptLedger, key)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, key, err)
	}
	return entries, nil
}

func checkDay(day string) error {
	if _, err := time.Parse(leads.DayLayout, day); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return nil
}

func marshalRecord(record any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeLedger joins entries into a JSON array without re-encoding them.
func encodeLedger(entries []json.RawMessage) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(entry)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
