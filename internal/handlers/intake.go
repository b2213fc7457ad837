package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/md-rashed-zaman/apptintake/internal/httpx"
	"github.com/md-rashed-zaman/apptintake/internal/intake"
	"github.com/md-rashed-zaman/apptintake/internal/metrics"
	"github.com/md-rashed-zaman/apptintake/internal/model"
)

// IntakeHandlerConfig gates the boundary behavior that differs per
// environment.
type IntakeHandlerConfig struct {
	// ExposeTokens echoes the generated identifiers in the acceptance
	// response for testing convenience. The caller must keep this off
	// in production.
	ExposeTokens bool
	// Production redacts internal fault detail from responses.
	Production bool
}

type IntakeHandler struct {
	svc     *intake.Service
	logger  *slog.Logger
	metrics metrics.Recorder
	cfg     IntakeHandlerConfig
}

func NewIntakeHandler(svc *intake.Service, logger *slog.Logger, rec metrics.Recorder, cfg IntakeHandlerConfig) *IntakeHandler {
	return &IntakeHandler{svc: svc, logger: logger, metrics: rec, cfg: cfg}
}

type rejectionResponse struct {
	Errors []string `json:"errors"`
}

type acceptanceResponse struct {
	Message string           `json:"message"`
	Debug   *acceptanceDebug `json:"debug,omitempty"`
}

type acceptanceDebug struct {
	ID           string `json:"id"`
	ConfirmToken string `json:"confirmToken"`
	CancelToken  string `json:"cancelToken"`
}

type faultResponse struct {
	Error string `json:"error"`
}

// Book handles POST /api/v1/public/book.
func (h *IntakeHandler) Book(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, faultResponse{Error: "method not allowed"})
		return
	}

	var req model.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordRejected("malformed")
		h.writeJSON(w, http.StatusBadRequest, rejectionResponse{Errors: []string{"request body must be a JSON object"}})
		return
	}

	res, err := h.svc.Process(r.Context(), req)
	if err != nil {
		h.fault(w, r, err)
		return
	}

	switch {
	case len(res.ValidationErrors) > 0:
		h.metrics.RecordRejected("validation")
		h.writeJSON(w, http.StatusBadRequest, rejectionResponse{Errors: res.ValidationErrors})
	case res.PolicyError != "":
		h.metrics.RecordRejected("policy")
		h.writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{Errors: []string{res.PolicyError}})
	default:
		h.metrics.RecordAccepted()
		resp := acceptanceResponse{Message: "appointment request accepted"}
		if h.cfg.ExposeTokens && !h.cfg.Production {
			resp.Debug = &acceptanceDebug{
				ID:           res.Record.ID,
				ConfirmToken: res.Record.ConfirmToken,
				CancelToken:  res.Record.CancelToken,
			}
		}
		h.writeJSON(w, http.StatusCreated, resp)
	}
}

// fault is the single boundary for unexpected failures: always logged
// with the underlying cause, never retried, detail redacted in
// production.
func (h *IntakeHandler) fault(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.RecordFault()
	h.logger.Error("intake failed",
		"request_id", httpx.RequestIDFromContext(r.Context()),
		"err", err,
	)

	msg := "internal server error"
	if !h.cfg.Production {
		msg = err.Error()
	}
	h.writeJSON(w, http.StatusInternalServerError, faultResponse{Error: msg})
}

func (h *IntakeHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	h.metrics.RecordHTTPStatus(status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encode failed", "err", err)
	}
}
