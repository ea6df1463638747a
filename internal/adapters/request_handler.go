package adapters

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/architeacher/svc-amqp-relay/internal/adapters/http/mappers"
	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/usecases"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/commands"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/queries"
)

const (
	headerCorrelationID = "X-Correlation-ID"
	headerMessageID     = "X-Message-ID"
	headerMessageTTL    = "X-Message-TTL"

	// Request headers with this prefix are copied onto the AMQP message without it.
	headerPrefix = "X-Amqp-Header-"
)

type (
	RequestHandler struct {
		app          *usecases.RelayApplication
		logger       infrastructure.Logger
		maxBodyBytes int64
	}

	publishResponse struct {
		MessageID string `json:"message_id"`
		Accepted  bool   `json:"accepted"`
		Buffered  int    `json:"buffered"`
	}

	healthResponse struct {
		*domain.HealthResult
		Buffer *domain.BufferStatus `json:"buffer,omitempty"`
	}

	errorResponse struct {
		Error     string         `json:"error"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details,omitempty"`
		RequestID string         `json:"request_id,omitempty"`
	}
)

func NewRequestHandler(
	app *usecases.RelayApplication,
	logger infrastructure.Logger,
	maxBodyBytes int64,
) *RequestHandler {
	return &RequestHandler{
		app:          app,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// PublishMessage handles POST /v1/messages/{routingKey}. The body is relayed verbatim.
func (h *RequestHandler) PublishMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, r, domain.NewPayloadTooLargeError(int(maxBytesErr.Limit)+1, int(maxBytesErr.Limit)))

			return
		}

		h.writeError(w, r, domain.NewInvalidRequestError("Invalid request body", err))

		return
	}

	msg := domain.OutboundMessage{
		RoutingKey:    chi.URLParam(r, "routingKey"),
		Payload:       body,
		ContentType:   r.Header.Get("Content-Type"),
		MessageID:     r.Header.Get(headerMessageID),
		CorrelationID: r.Header.Get(headerCorrelationID),
		Headers:       amqpHeaders(r.Header),
	}

	if ttl := r.Header.Get(headerMessageTTL); ttl != "" {
		parsed, err := parseTTL(ttl)
		if err != nil {
			h.writeError(w, r, domain.NewInvalidRequestError("Invalid "+headerMessageTTL+" header", err))

			return
		}

		msg.TTL = parsed
	}

	result, err := h.app.Commands.PublishMessageHandler.Handle(r.Context(), commands.PublishMessageCommand{Message: msg})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusAccepted, publishResponse{
		MessageID: result.MessageID,
		Accepted:  result.Accepted,
		Buffered:  result.Buffered,
	})
}

// GetHealth handles GET /v1/health.
func (h *RequestHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Queries.FetchHealthReportQueryHandler.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	buffer, err := h.app.Queries.FetchBufferStatusQueryHandler.Execute(r.Context(), queries.FetchBufferStatusQuery{})
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to fetch buffer status")
	}

	writeJSON(w, mappers.HealthStatusToHTTP(report.OverallStatus), healthResponse{
		HealthResult: report,
		Buffer:       buffer,
	})
}

// NotFound and MethodNotAllowed keep chi's fallbacks in the JSON error format.
func (h *RequestHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, domain.NewDomainError("NOT_FOUND", "Resource not found", http.StatusNotFound, nil))
}

func (h *RequestHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, domain.NewDomainError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed, nil))
}

func (h *RequestHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mappers.ErrorToHTTPStatus(err)

	resp := errorResponse{
		Error:     "internal_server_error",
		Message:   "Internal server error",
		RequestID: middleware.GetReqID(r.Context()),
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		resp.Error = strings.ToLower(domainErr.Code)
		resp.Message = domainErr.Message

		if len(domainErr.Details) > 0 {
			resp.Details = domainErr.Details
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func amqpHeaders(header http.Header) map[string]any {
	var headers map[string]any

	for key, values := range header {
		canonical := http.CanonicalHeaderKey(key)
		if !strings.HasPrefix(canonical, headerPrefix) || len(values) == 0 {
			continue
		}

		name := strings.ToLower(strings.TrimPrefix(canonical, headerPrefix))
		if name == "" {
			continue
		}

		if headers == nil {
			headers = make(map[string]any)
		}

		headers[name] = values[0]
	}

	return headers
}

// parseTTL accepts a Go duration ("30s") or a bare number of milliseconds.
func parseTTL(raw string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms < 0 {
			return 0, errors.New("ttl must not be negative")
		}

		return time.Duration(ms) * time.Millisecond, nil
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}

	if ttl < 0 {
		return 0, errors.New("ttl must not be negative")
	}

	return ttl, nil
}
