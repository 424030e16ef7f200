package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"keypad-calculator/internal/keypad"
)

// tracer is the keypad domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("keypad")

// API serves calculator sessions from a Store.
type API struct {
	store *Store
}

func NewAPI(store *Store) *API {
	return &API{store: store}
}

// ---------------------------------------------------------------------------
// Handlers: session lifecycle
// ---------------------------------------------------------------------------

// Create handles POST /keypad. It starts a fresh calculator session.
func (a *API) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	_, span := tracer.Start(ctx, "keypad.session.create",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	sess := a.store.Create()
	span.SetAttributes(attribute.String("keypad.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("keypad session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestID),
	)

	resp := SessionResponse{
		SessionID: sess.ID,
		Display:   sess.Display(),
		RequestID: requestID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Read handles GET /keypad/{sessionID}. It reports the current display.
func (a *API) Read(w http.ResponseWriter, r *http.Request) {
	requestID := observability.RequestIDFromContext(r.Context())

	sess, ok := a.lookup(w, r)
	if !ok {
		return
	}

	resp := SessionResponse{
		SessionID: sess.ID,
		Display:   sess.Display(),
		RequestID: requestID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Remove handles DELETE /keypad/{sessionID}.
func (a *API) Remove(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithTrace(r.Context())

	id := chi.URLParam(r, "sessionID")
	if !a.store.Delete(id) {
		handlers.WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	logger.Info("keypad session removed", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers: input events
// ---------------------------------------------------------------------------

// Press handles POST /keypad/{sessionID}/press. It applies one input
// event: child span with key attributes and events, press metrics,
// trace-correlated structured logging, and request-ID propagation.
func (a *API) Press(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "keypad.press",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	sess, ok := a.lookup(w, r)
	if !ok {
		span.SetStatus(codes.Error, "session not found")
		return
	}
	span.SetAttributes(attribute.String("keypad.session.id", sess.ID))

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	key, err := keypad.ParseKey(req.Key)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "unsupported key", err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("keypad.key", req.Key))

	start := time.Now()
	before, display := sess.Apply(key)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	recordPress(ctx, req.Key, elapsed, before, display)

	span.AddEvent("press.applied", trace.WithAttributes(
		attribute.String("display", display.Text),
		attribute.Bool("error_state", display.Error),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key press applied",
		zap.String("session_id", sess.ID),
		zap.String("key", req.Key),
		zap.String("display", display.Text),
		zap.Bool("error_state", display.Error),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	resp := PressResponse{
		SessionID: sess.ID,
		Key:       req.Key,
		Display:   display,
		RequestID: requestID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Keys handles POST /keypad/{sessionID}/keys. It applies a batch of
// single-character keys in order, creating a child span for every key.
func (a *API) Keys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "keypad.keys",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	sess, ok := a.lookup(w, r)
	if !ok {
		span.SetStatus(codes.Error, "session not found")
		return
	}
	span.SetAttributes(attribute.String("keypad.session.id", sess.ID))

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if req.Keys == "" {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no keys provided", fmt.Errorf("keys string is empty"), http.StatusBadRequest, w)
		return
	}

	// Reject the whole batch up front so a bad key cannot leave the
	// session half-applied.
	tokens := make([]keypad.Key, 0, len(req.Keys))
	names := make([]string, 0, len(req.Keys))
	for i, c := range req.Keys {
		key, err := keypad.ParseKey(string(c))
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, "keys", fmt.Sprintf("unsupported key at position %d", i), err, http.StatusBadRequest, w)
			return
		}
		tokens = append(tokens, key)
		names = append(names, string(c))
	}

	span.SetAttributes(attribute.Int("keypad.keys_count", len(tokens)))

	var display DisplayState
	for i, key := range tokens {
		_, keySpan := tracer.Start(ctx, fmt.Sprintf("keypad.keys.%d", i),
			trace.WithAttributes(
				attribute.Int("keypad.key.index", i),
				attribute.String("keypad.key", names[i]),
			),
		)

		start := time.Now()
		var before DisplayState
		before, display = sess.Apply(key)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		recordPress(ctx, names[i], elapsed, before, display)

		keySpan.AddEvent("press.applied", trace.WithAttributes(
			attribute.String("display", display.Text),
			attribute.Bool("error_state", display.Error),
		))
		keySpan.SetStatus(codes.Ok, "")
		keySpan.End()
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", display.Text),
		attribute.Bool("error_state", display.Error),
		attribute.Int("applied", len(tokens)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key batch applied",
		zap.String("session_id", sess.ID),
		zap.Int("applied", len(tokens)),
		zap.String("display", display.Text),
		zap.Bool("error_state", display.Error),
		zap.String("request_id", requestID),
	)

	resp := KeysResponse{
		SessionID: sess.ID,
		Applied:   len(tokens),
		Display:   display,
		RequestID: requestID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// recordPress updates the press metrics for one applied key. The error
// counter only counts the transition into the error display, not every
// press made while it is showing.
func recordPress(ctx context.Context, keyName string, elapsedMS float64, before, after DisplayState) {
	attrs := metric.WithAttributes(attribute.String("key", keyName))
	pressCounter.Add(ctx, 1, attrs)
	pressHistogram.Record(ctx, elapsedMS, attrs)

	if after.Error && !before.Error {
		errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "evaluate")))
		return
	}
	if v, err := strconv.ParseFloat(after.Text, 64); err == nil {
		displayGauge.Record(ctx, v, attrs)
	}
}

// lookup resolves {sessionID}, writing a 404 when it does not exist.
func (a *API) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := a.store.Get(id)
	if !ok {
		handlers.WriteError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}
