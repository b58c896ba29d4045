package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jpher/readiness-funnel/internal/infra/http/middleware"
	"github.com/jpher/readiness-funnel/internal/usecase"
)

type SequenceRunner interface {
	Execute(ctx context.Context) *usecase.SequenceReport
}

// CronHandler expõe o disparo da sequência para o agendador externo
// (GET /cron/send-emails), protegido por segredo compartilhado.
type CronHandler struct {
	runUC  SequenceRunner
	secret string
}

func NewCronHandler(runUC SequenceRunner, secret string) *CronHandler {
	return &CronHandler{runUC: runUC, secret: secret}
}

type cronResponse struct {
	Success   bool                 `json:"success"`
	Timestamp string               `json:"timestamp"`
	Results   []usecase.StepReport `json:"results"`
}

func (h *CronHandler) Handle(w http.ResponseWriter, r *http.Request) {

	// Autorização antes de qualquer trabalho
	if r.Header.Get("Authorization") != "Bearer "+h.secret {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	report := h.runUC.Execute(r.Context())

	// Falha por lead entra na contagem failed; erro de passo inteiro
	// (ex: banco fora) derruba o success para o monitoramento externo.
	success := true
	for _, step := range report.Steps {
		if step.Error != "" {
			success = false
		}
		label := strconv.Itoa(step.TargetStep)
		middleware.RecordSequenceEmails(label, "sent", step.Sent)
		middleware.RecordSequenceEmails(label, "skipped", step.Skipped)
		middleware.RecordSequenceEmails(label, "failed", step.Failed)
	}

	writeJSON(w, http.StatusOK, cronResponse{
		Success:   success,
		Timestamp: report.Timestamp.UTC().Format(time.RFC3339),
		Results:   report.Steps,
	})
}
