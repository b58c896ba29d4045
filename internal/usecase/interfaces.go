package usecase

import (
	"context"

	"github.com/jpher/readiness-funnel/internal/entity"
	"github.com/jpher/readiness-funnel/internal/infra/queue"
)

type EmailService interface {
	SendWelcome(lead *entity.Lead) error

	// SendStep renderiza e envia o email de um passo da sequência.
	// subject é um template (ex: "{{.FirstName}}, ...").
	SendStep(lead *entity.Lead, subject, templateFile string) error
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
