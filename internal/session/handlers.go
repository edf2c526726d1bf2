package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calcpad/internal/engine"
	"calcpad/internal/handlers"
	"calcpad/internal/keymap"
	"calcpad/internal/observability"
)

// tracer is the session domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("session")

// API exposes the session registry over HTTP.
type API struct {
	mgr *Manager
}

func NewAPI(mgr *Manager) *API {
	return &API{mgr: mgr}
}

// Create handles POST /sessions
func (a *API) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "session.create",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	s := a.mgr.Create()
	sessionsActive.Add(ctx, 1)

	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, sessionResponse(s.ID, s.Snapshot(), 0))
}

// Show handles GET /sessions/{sessionID}
func (a *API) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "session.show")
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	s, ok := a.mgr.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "show", "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, sessionResponse(s.ID, s.Snapshot(), 0))
}

// Remove handles DELETE /sessions/{sessionID}
func (a *API) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "session.remove")
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	if !a.mgr.Delete(id) {
		observability.RecordError(ctx, span, logger, errorCounter, "remove", "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}
	sessionsActive.Add(ctx, -1)

	span.SetAttributes(attribute.String("session.id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("session removed",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ApplyEvents handles POST /sessions/{sessionID}/events
func (a *API) ApplyEvents(w http.ResponseWriter, r *http.Request) {
	a.handleApply(w, r, "apply_events", func(r *http.Request) ([]engine.Event, error) {
		var req EventsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return req.Events, nil
	})
}

// ApplyKeys handles POST /sessions/{sessionID}/keys — the raw-key
// variant; names pass through the keymap adapter before the engine
// sees them.
func (a *API) ApplyKeys(w http.ResponseWriter, r *http.Request) {
	a.handleApply(w, r, "apply_keys", func(r *http.Request) ([]engine.Event, error) {
		var req KeysRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		events := make([]engine.Event, 0, len(req.Keys))
		for _, key := range req.Keys {
			ev, err := keymap.Translate(key)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		return events, nil
	})
}

// handleApply is the shared implementation for both event-submission
// endpoints: child span, decode, apply, metrics, trace-correlated log,
// JSON response.
func (a *API) handleApply(w http.ResponseWriter, r *http.Request, opName string, decode func(*http.Request) ([]engine.Event, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("session.%s", opName),
		trace.WithAttributes(
			attribute.String("session.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	s, ok := a.mgr.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}
	span.SetAttributes(attribute.String("session.id", s.ID))

	events, err := decode(r)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if len(events) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no events provided", fmt.Errorf("events array is empty"), http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Int("session.events_count", len(events)))

	start := time.Now()
	snap, err := s.Apply(events)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	eventsCounter.Add(ctx, int64(len(events)), attrs)
	applyHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("events.applied", trace.WithAttributes(
		attribute.Int("count", len(events)),
		attribute.String("primary", snap.Primary),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Bool("session.error_state", snap.Error))
	span.SetStatus(codes.Ok, "")

	logger.Info("session events applied",
		zap.String("operation", opName),
		zap.String("session_id", s.ID),
		zap.Int("events", len(events)),
		zap.String("primary", snap.Primary),
		zap.Bool("error_state", snap.Error),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, sessionResponse(s.ID, snap, len(events)))
}
