package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jpher/readiness-funnel/internal/config"
	"github.com/jpher/readiness-funnel/internal/entity"
)

// AdvanceSequenceUseCase é o coração da sequência de drip: uma passada
// avança cada lead elegível em exatamente um passo. Regra de transição
// (passo i -> i+1): não descadastrado E decorrido >= gap(i+1) E envio
// confirmado. Nenhum passo é pulado; falha de envio deixa o lead
// intocado para a próxima execução agendada.
type AdvanceSequenceUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	SuppressionRepo entity.SuppressionRepositoryInterface
	EmailService    EmailService

	Steps     []config.SequenceStep
	BatchSize int

	// Clock é injetável nos testes; nil usa time.Now
	Clock func() time.Time
}

func NewAdvanceSequenceUseCase(
	leadRepo entity.LeadRepositoryInterface,
	suppressionRepo entity.SuppressionRepositoryInterface,
	emailService EmailService,
	steps []config.SequenceStep,
	batchSize int,
) *AdvanceSequenceUseCase {
	return &AdvanceSequenceUseCase{
		LeadRepo:        leadRepo,
		SuppressionRepo: suppressionRepo,
		EmailService:    emailService,
		Steps:           steps,
		BatchSize:       batchSize,
	}
}

func (uc *AdvanceSequenceUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock()
	}
	return time.Now()
}

// Execute sempre completa e sempre devolve o relatório — falha parcial
// nunca é fatal para o batch.
func (uc *AdvanceSequenceUseCase) Execute(ctx context.Context) *SequenceReport {
	report := &SequenceReport{Timestamp: uc.now()}

	for _, step := range uc.Steps {
		stepReport := uc.processStep(ctx, step)
		report.Steps = append(report.Steps, stepReport)

		log.Printf("📬 Sequência passo %d: %d enviados, %d pulados, %d falharam",
			step.Step, stepReport.Sent, stepReport.Skipped, stepReport.Failed)
	}

	return report
}

func (uc *AdvanceSequenceUseCase) processStep(ctx context.Context, step config.SequenceStep) StepReport {
	sr := StepReport{TargetStep: step.Step, Details: []SendDetail{}}

	// SMTP é opcional no processo (main roda sem MAIL_HOST); sem sender
	// o passo é reportado como erro, nenhum lead é tocado.
	if uc.EmailService == nil {
		sr.Error = "email sender not configured"
		log.Printf("⚠️ Sequência passo %d: SMTP não configurado, nada enviado", step.Step)
		return sr
	}

	now := uc.now()

	// Elegível = está no passo anterior e o último envio tem pelo
	// menos gap(step) de idade.
	cutoff := now.Add(-step.Gap())

	leads, err := uc.LeadRepo.FindEligible(ctx, step.Step-1, cutoff, uc.BatchSize)
	if err != nil {
		sr.Error = fmt.Sprintf("failed to select leads: %v", err)
		log.Printf("❌ Sequência passo %d: seleção falhou: %v", step.Step, err)
		return sr
	}

	for _, lead := range leads {
		uc.processLead(ctx, step, lead, now, &sr)
	}

	return sr
}

// processLead é independente por lead: o erro de um envio nunca bloqueia
// nem desfaz o processamento dos demais.
func (uc *AdvanceSequenceUseCase) processLead(ctx context.Context, step config.SequenceStep, lead *entity.Lead, now time.Time, sr *StepReport) {

	// Re-checa o opt-out imediatamente antes do envio: o unsubscribe
	// pode ter chegado entre a seleção e este ponto.
	suppressed, err := uc.SuppressionRepo.Exists(ctx, lead.Email)
	if err != nil {
		// Mesma escolha do sistema original: erro na consulta de
		// supressão não bloqueia o envio, só é logado.
		log.Printf("⚠️ Falha ao consultar supressão de %s: %v", lead.Email, err)
		suppressed = false
	}
	if suppressed || lead.Unsubscribed {
		sr.Skipped++
		sr.Details = append(sr.Details, SendDetail{
			LeadID: lead.ID, Email: lead.Email, Status: "skipped - unsubscribed",
		})
		return
	}

	if err := uc.EmailService.SendStep(lead, step.Subject, step.Template); err != nil {
		sr.Failed++
		sr.Details = append(sr.Details, SendDetail{
			LeadID: lead.ID, Email: lead.Email, Status: "failed", Error: err.Error(),
		})
		log.Printf("❌ Falha ao enviar email #%d para %s: %v", step.Step, lead.Email, err)
		return
	}

	// Avanço condicional: step e last_email_sent_at mudam juntos, e só
	// se o lead ainda estiver no passo anterior. Execuções concorrentes
	// não conseguem avançar duas vezes.
	advanced, err := uc.LeadRepo.AdvanceStep(ctx, lead.Email, step.Step, now)
	if err != nil {
		sr.Failed++
		sr.Details = append(sr.Details, SendDetail{
			LeadID: lead.ID, Email: lead.Email, Status: "failed",
			Error: "sent, but step was not advanced: " + err.Error(),
		})
		log.Printf("⚠️ CRITICAL: email #%d enviado para %s mas o passo não avançou: %v",
			step.Step, lead.Email, err)
		return
	}
	if !advanced {
		sr.Skipped++
		sr.Details = append(sr.Details, SendDetail{
			LeadID: lead.ID, Email: lead.Email, Status: "skipped - already advanced",
		})
		return
	}

	sr.Sent++
	sr.Details = append(sr.Details, SendDetail{
		LeadID: lead.ID, Email: lead.Email, Status: "sent",
	})
}
