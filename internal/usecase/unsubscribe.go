package usecase

import (
	"context"
	"log"

	"github.com/jpher/readiness-funnel/internal/entity"
)

// UnsubscribeUseCase marca um email como descadastrado de forma
// idempotente. Não retorna erro de propósito: o usuário sempre recebe a
// confirmação de opt-out, mesmo que uma gravação interna falhe
// (precedente do sistema original — a falha fica no log e na métrica,
// não na cara do usuário).
type UnsubscribeUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	SuppressionRepo entity.SuppressionRepositoryInterface
}

func NewUnsubscribeUseCase(
	leadRepo entity.LeadRepositoryInterface,
	suppressionRepo entity.SuppressionRepositoryInterface,
) *UnsubscribeUseCase {
	return &UnsubscribeUseCase{
		LeadRepo:        leadRepo,
		SuppressionRepo: suppressionRepo,
	}
}

func (uc *UnsubscribeUseCase) Execute(ctx context.Context, email string) *UnsubscribeOutput {
	normalized := entity.NormalizeEmail(email)
	output := &UnsubscribeOutput{Email: normalized, Recorded: true}

	// A supressão vale mesmo sem Lead correspondente: opt-out pode
	// chegar antes do assessment em um fluxo multi-touch.
	if err := uc.SuppressionRepo.Add(ctx, normalized); err != nil {
		output.Recorded = false
		log.Printf("⚠️ Falha ao gravar supressão de %s: %v", normalized, err)
	}

	// Flag no registro do lead é best-effort (o lead pode não existir)
	if err := uc.LeadRepo.MarkUnsubscribed(ctx, normalized); err != nil {
		log.Printf("⚠️ Falha ao marcar lead %s como descadastrado: %v", normalized, err)
	}

	return output
}
