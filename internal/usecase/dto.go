package usecase

import (
	"strings"
	"time"

	"github.com/jpher/readiness-funnel/internal/entity"
)

type SubmitAssessmentInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`

	// Alias aceito de variantes antigas do formulário
	FullName string `json:"fullName,omitempty"`

	Company string `json:"company"`
	Phone   string `json:"phone"`

	Scores entity.DimensionScores `json:"scores"`
}

// CanonicalName resolve o alias name/fullName para o campo canônico
func (i SubmitAssessmentInput) CanonicalName() string {
	if strings.TrimSpace(i.Name) != "" {
		return i.Name
	}
	return i.FullName
}

type SubmitAssessmentOutput struct {
	Success        bool   `json:"success"`
	LeadID         string `json:"leadId"`
	AlreadyExisted bool   `json:"alreadyExisted"`

	TotalScore     int                    `json:"totalScore"`
	Percentage     int                    `json:"percentage"`
	ReadinessLevel string                 `json:"readinessLevel"`
	Scores         entity.DimensionScores `json:"scores"`

	// O lead é capturado mesmo quando o Email #1 falha — o aviso vai aqui
	EmailSent bool   `json:"emailSent"`
	Warning   string `json:"warning,omitempty"`
}

type SendDetail struct {
	LeadID string `json:"leadId,omitempty"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type StepReport struct {
	TargetStep int          `json:"targetStep"`
	Sent       int          `json:"sent"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
	Details    []SendDetail `json:"details"`

	// Preenchido quando a própria seleção de leads falhou
	Error string `json:"error,omitempty"`
}

type SequenceReport struct {
	Timestamp time.Time    `json:"timestamp"`
	Steps     []StepReport `json:"steps"`
}

type UnsubscribeOutput struct {
	Email string `json:"email"`

	// Indica se a gravação da supressão foi confirmada. A página de
	// confirmação é exibida de qualquer forma (precedente do sistema
	// original: o usuário nunca fica em dúvida sobre o opt-out).
	Recorded bool `json:"recorded"`
}
