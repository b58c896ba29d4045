package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jpher/readiness-funnel/internal/infra/http/middleware"
	"github.com/jpher/readiness-funnel/internal/usecase"
)

type AssessmentSubmitter interface {
	Execute(ctx context.Context, input usecase.SubmitAssessmentInput) (*usecase.SubmitAssessmentOutput, error)
}

type AssessmentHandler struct {
	submitUC    AssessmentSubmitter
	rateLimiter *RateLimiter
}

func NewAssessmentHandler(submitUC AssessmentSubmitter) *AssessmentHandler {
	return &AssessmentHandler{
		submitUC:    submitUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handle processa POST /submit-assessment. Validação falha com 400 e
// nada é gravado; falha no email de boas-vindas NÃO falha a requisição
// (o aviso volta no campo warning do próprio output).
func (h *AssessmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.SubmitAssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	output, err := h.submitUC.Execute(ctx, input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Failed to process assessment. Please try again.",
		})
		return
	}

	middleware.RecordLeadCaptured()
	writeJSON(w, http.StatusOK, output)
}

// HandleStatus é o ping de saúde do formulário (GET /submit-assessment)
func (h *AssessmentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "Assessment API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
