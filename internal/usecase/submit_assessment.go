package usecase

import (
	"context"
	"log"

	"github.com/jpher/readiness-funnel/internal/entity"
	"github.com/jpher/readiness-funnel/internal/infra/queue"
)

type SubmitAssessmentUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	EmailService EmailService
	Queue        QueueProducerInterface
}

func NewSubmitAssessmentUseCase(
	leadRepo entity.LeadRepositoryInterface,
	emailService EmailService,
	producer QueueProducerInterface,
) *SubmitAssessmentUseCase {
	return &SubmitAssessmentUseCase{
		LeadRepo:     leadRepo,
		EmailService: emailService,
		Queue:        producer,
	}
}

func (uc *SubmitAssessmentUseCase) Execute(ctx context.Context, input SubmitAssessmentInput) (*SubmitAssessmentOutput, error) {

	validationErrors := ValidateSubmitAssessmentInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	lead := entity.NewLead(
		input.CanonicalName(),
		input.Email,
		input.Company,
		input.Phone,
		input.Scores,
	)

	// Política de duplicidade: upsert. Campos de identidade e score são
	// sobrescritos; o estado da sequência do lead existente é preservado
	// e o Email #1 não é reenviado.
	existed, err := uc.LeadRepo.Upsert(ctx, lead)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	output := &SubmitAssessmentOutput{
		Success:        true,
		LeadID:         lead.ID,
		AlreadyExisted: existed,
		TotalScore:     lead.TotalScore,
		Percentage:     lead.Percentage,
		ReadinessLevel: lead.ReadinessLevel,
		Scores:         lead.Scores,
	}

	// Email #1: best-effort. Falha aqui nunca derruba a captura do lead.
	if !existed && uc.EmailService != nil {
		if err := uc.EmailService.SendWelcome(lead); err != nil {
			log.Printf("⚠️ Falha ao enviar email de boas-vindas para %s: %v", lead.Email, err)
			output.Warning = "lead captured, but the welcome email could not be sent"
		} else {
			output.EmailSent = true
		}
	}

	if !existed && uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:         lead.ID,
			Email:          lead.Email,
			Name:           lead.Name,
			Company:        lead.Company,
			Phone:          lead.Phone,
			TotalScore:     lead.TotalScore,
			Percentage:     lead.Percentage,
			ReadinessLevel: lead.ReadinessLevel,
			Origin:         "ASSESSMENT_FORM",
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			// Sincronização com o CRM é assíncrona e não-crítica
			log.Printf("⚠️ Falha ao publicar lead capturado na fila: %v", err)
		}
	}

	return output, nil
}
