package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/jpher/readiness-funnel/internal/infra/http/middleware"
	"github.com/jpher/readiness-funnel/internal/usecase"
)

type Unsubscriber interface {
	Execute(ctx context.Context, email string) *usecase.UnsubscribeOutput
}

type UnsubscribeHandler struct {
	unsubscribeUC Unsubscriber
	tmpl          *template.Template
}

func NewUnsubscribeHandler(unsubscribeUC Unsubscriber, templatesDir string) (*UnsubscribeHandler, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, "unsubscribed.html"))
	if err != nil {
		return nil, err
	}
	return &UnsubscribeHandler{unsubscribeUC: unsubscribeUC, tmpl: tmpl}, nil
}

type unsubscribePageData struct {
	Title   string
	Message string
	Email   string
}

// Handle processa GET /unsubscribe?email=... — 400 só quando o email
// falta; caso contrário sempre 200 com a página de confirmação
// (repetir a chamada é um sucesso inofensivo, nunca um erro).
func (h *UnsubscribeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	if email == "" {
		h.renderPage(w, http.StatusBadRequest, unsubscribePageData{
			Title:   "Error",
			Message: "No email address provided.",
		})
		return
	}

	output := h.unsubscribeUC.Execute(r.Context(), email)
	if !output.Recorded {
		middleware.RecordIntegrationError("suppression_store")
	}
	middleware.RecordUnsubscribe()

	h.renderPage(w, http.StatusOK, unsubscribePageData{
		Title:   "Unsubscribed",
		Message: "has been successfully unsubscribed. You will no longer receive emails from Inflection Advisory.",
		Email:   output.Email,
	})
}

func (h *UnsubscribeHandler) renderPage(w http.ResponseWriter, status int, data unsubscribePageData) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("⚠️ Falha ao renderizar página de unsubscribe: %v", err)
	}
}
