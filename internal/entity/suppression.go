package entity

import (
	"context"
	"time"
)

// Suppression: registro permanente de opt-out, independente da existência
// de um Lead (o usuário pode se descadastrar antes de concluir o assessment).
type Suppression struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SuppressionRepositoryInterface interface {

	// Add é idempotente: chamar duas vezes com o mesmo email é sucesso.
	Add(ctx context.Context, email string) error

	Exists(ctx context.Context, email string) (bool, error)
}
