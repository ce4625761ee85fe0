package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/lead-webhook/internal/leads"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

var tracer = otel.Tracer("leadhook.internal.webhook")

const (
	successMessage = "Lead salvo com sucesso"
	failureMessage = "Erro ao processar lead"
)

var errNoStore = errors.New("webhook: persistence enabled but no ledger store configured")

// Appender persists a record in the ledger for day and returns its location.
type Appender interface {
	Append(ctx context.Context, day string, record any) (string, error)
}

// Response is the proxy-integration shaped result of an invocation.
type Response struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// Options configures a Handler.
type Options struct {
	// Persist appends every record to the ledger and answers with its
	// location instead of the record itself.
	Persist bool
	// Location is the zone timestamps and day keys are computed in.
	// Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler turns inbound lead events into enriched records.
type Handler struct {
	store   Appender
	persist bool
	loc     *time.Location
	now     func() time.Time
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
}

// NewHandler creates a webhook handler. store may be nil when opts.Persist
// is false.
func NewHandler(store Appender, opts Options, logger *logging.Logger, m *metrics.LeadMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		store:   store,
		persist: opts.Persist,
		loc:     opts.Location,
		now:     opts.Now,
		logger:  logger,
		metrics: m,
	}
}

type persistedResponse struct {
	Message  string `json:"message"`
	Location string `json:"s3_location"`
}

type failureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Handle runs one invocation. It never returns an error: every failure,
// including a panic, becomes a 500 response.
func (h *Handler) Handle(ctx context.Context, raw []byte) Response {
	return h.invoke(ctx, func() (Event, error) { return ParseEvent(raw) })
}

func (h *Handler) invoke(ctx context.Context, parse func() (Event, error)) (resp Response) {
	ctx, span := tracer.Start(ctx, "webhook.lead")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			resp = h.fail(span, "panic", fmt.Errorf("panic: %v", r))
		}
	}()

	event, err := parse()
	if err != nil {
		return h.fail(span, "parse", err)
	}

	at := h.now().In(h.loc)
	record := leads.Enrich(event.Payload, event.Path, at)
	span.SetAttributes(
		attribute.String("leadhook.origin", record.Origin),
		attribute.Int("leadhook.rating", record.Rating),
	)
	h.logger.Debug("lead extracted",
		"origin", record.Origin,
		"contacts", leads.ContactFingerprints(record),
		"names", len(record.Names)+len(record.LastNames),
	)

	if !h.persist {
		h.logger.Info("lead processed", "origin", record.Origin, "rating", record.Rating)
		h.metrics.ObserveLead(record.Origin, record.Rating)
		return h.respond(span, http.StatusOK, record)
	}

	if h.store == nil {
		return h.fail(span, "store", errNoStore)
	}
	location, err := h.store.Append(ctx, at.Format(leads.DayLayout), record)
	if err != nil {
		return h.fail(span, "store", err)
	}

	h.logger.Info("lead stored", "origin", record.Origin, "rating", record.Rating, "location", location)
	h.metrics.ObserveLead(record.Origin, record.Rating)
	return h.respond(span, http.StatusOK, persistedResponse{Message: successMessage, Location: location})
}

func (h *Handler) respond(span trace.Span, status int, payload any) Response {
	body, err := encode(payload)
	if err != nil {
		return h.fail(span, "encode", err)
	}
	return Response{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func (h *Handler) fail(span trace.Span, stage string, err error) Response {
	h.logger.Error("failed to process lead", "stage", stage, "error", err)
	h.metrics.ObserveFailure(stage)
	span.RecordError(err)
	span.SetStatus(codes.Error, stage)

	body, encErr := encode(failureResponse{Message: failureMessage, Error: err.Error()})
	if encErr != nil {
		body = `{"message":"` + failureMessage + `","error":"internal error"}`
	}
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
