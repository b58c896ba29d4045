package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpher/readiness-funnel/internal/usecase"
)

// ============ TESTES ============

// TestUnsubscribeSuccess - opt-out grava supressão e marca o lead
func TestUnsubscribeSuccess(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	suppRepo := new(MockSuppressionRepository)

	suppRepo.On("Add", ctx, "maria@example.com").Return(nil)
	leadRepo.On("MarkUnsubscribed", ctx, "maria@example.com").Return(nil)

	uc := usecase.NewUnsubscribeUseCase(leadRepo, suppRepo)
	output := uc.Execute(ctx, " Maria@Example.com ")

	assert.True(t, output.Recorded)
	assert.Equal(t, "maria@example.com", output.Email)
	suppRepo.AssertExpectations(t)
	leadRepo.AssertExpectations(t)
}

// TestUnsubscribeIdempotent - segunda chamada é um sucesso igual à primeira
func TestUnsubscribeIdempotent(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	suppRepo := new(MockSuppressionRepository)

	suppRepo.On("Add", ctx, "maria@example.com").Return(nil).Twice()
	leadRepo.On("MarkUnsubscribed", ctx, "maria@example.com").Return(nil).Twice()

	uc := usecase.NewUnsubscribeUseCase(leadRepo, suppRepo)
	first := uc.Execute(ctx, "maria@example.com")
	second := uc.Execute(ctx, "maria@example.com")

	assert.True(t, first.Recorded)
	assert.True(t, second.Recorded)
}

// TestUnsubscribeWithoutLead - supressão vale mesmo sem lead no banco
func TestUnsubscribeWithoutLead(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	suppRepo := new(MockSuppressionRepository)

	suppRepo.On("Add", ctx, "stranger@example.com").Return(nil)
	leadRepo.On("MarkUnsubscribed", ctx, "stranger@example.com").Return(nil)

	uc := usecase.NewUnsubscribeUseCase(leadRepo, suppRepo)
	output := uc.Execute(ctx, "stranger@example.com")

	assert.True(t, output.Recorded)
}

// TestUnsubscribeSuppressionStoreFailure - o usuário ainda recebe a
// confirmação, mas Recorded sinaliza o problema para métrica
func TestUnsubscribeSuppressionStoreFailure(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	suppRepo := new(MockSuppressionRepository)

	suppRepo.On("Add", ctx, "maria@example.com").Return(errors.New("disk full"))
	leadRepo.On("MarkUnsubscribed", ctx, "maria@example.com").Return(nil)

	uc := usecase.NewUnsubscribeUseCase(leadRepo, suppRepo)
	output := uc.Execute(ctx, "maria@example.com")

	assert.False(t, output.Recorded)
	assert.Equal(t, "maria@example.com", output.Email)
}

// TestUnsubscribeLeadFlagFailure - falha no flag do lead não afeta Recorded
func TestUnsubscribeLeadFlagFailure(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	suppRepo := new(MockSuppressionRepository)

	suppRepo.On("Add", ctx, "maria@example.com").Return(nil)
	leadRepo.On("MarkUnsubscribed", ctx, "maria@example.com").Return(errors.New("timeout"))

	uc := usecase.NewUnsubscribeUseCase(leadRepo, suppRepo)
	output := uc.Execute(ctx, "maria@example.com")

	assert.True(t, output.Recorded)
}
