package entity

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

const (
	// Cada dimensão do assessment vale de 0 a 12 pontos
	MaxDimensionScore = 12
	DimensionCount    = 5
	MaxTotalScore     = MaxDimensionScore * DimensionCount

	// Passo inicial da sequência (Email #1 sai no intake)
	InitialSequenceStep = 1
)

// Value Object: as cinco dimensões do assessment
type DimensionScores struct {
	Data      int `json:"data"`
	Process   int `json:"process"`
	Team      int `json:"team"`
	Strategic int `json:"strategic"`
	Change    int `json:"change"`
}

func (d DimensionScores) Total() int {
	return d.Data + d.Process + d.Team + d.Strategic + d.Change
}

// Percentage converte o total para a escala 0-100 (arredondado)
func (d DimensionScores) Percentage() int {
	return int(math.Round(float64(d.Total()) / float64(MaxTotalScore) * 100))
}

func (d DimensionScores) InBounds() bool {
	for _, s := range []int{d.Data, d.Process, d.Team, d.Strategic, d.Change} {
		if s < 0 || s > MaxDimensionScore {
			return false
		}
	}
	return true
}

// ReadinessLevel deriva o rótulo categórico a partir do percentual
func ReadinessLevel(percentage int) string {
	switch {
	case percentage >= 75:
		return "High Readiness - Ready to Execute"
	case percentage >= 50:
		return "Moderate Readiness - Build Foundation First"
	default:
		return "Foundation Building - Strategic Assessment Needed"
	}
}

// Entidade: Lead (chave natural = email normalizado)
type Lead struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`

	Scores         DimensionScores `json:"scores"`
	TotalScore     int             `json:"total_score"`
	Percentage     int             `json:"percentage"`
	ReadinessLevel string          `json:"readiness_level"`

	// Estado da sequência de emails
	SequenceStep    int       `json:"email_sequence_step"`
	LastEmailSentAt time.Time `json:"last_email_sent_at"`
	Unsubscribed    bool      `json:"unsubscribed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, email, company, phone string, scores DimensionScores) *Lead {
	now := time.Now()
	percentage := scores.Percentage()

	return &Lead{
		ID:      uuid.New().String(),
		Email:   NormalizeEmail(email),
		Name:    strings.TrimSpace(name),
		Company: strings.TrimSpace(company),
		Phone:   strings.TrimSpace(phone),

		Scores:         scores,
		TotalScore:     scores.Total(),
		Percentage:     percentage,
		ReadinessLevel: ReadinessLevel(percentage),

		SequenceStep:    InitialSequenceStep,
		LastEmailSentAt: now,

		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FirstName extrai o primeiro nome para a saudação dos templates
func (l *Lead) FirstName() string {
	parts := strings.Fields(l.Name)
	if len(parts) == 0 {
		return "there"
	}
	return parts[0]
}

// NormalizeEmail aplica a forma canônica usada como chave (lower + trim)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LeadRepositoryInterface interface {

	// Upsert preserva o estado da sequência quando o email já existe.
	// Preenche lead.ID, CreatedAt, SequenceStep etc. com os valores
	// persistidos e informa se o registro já existia.
	Upsert(ctx context.Context, lead *Lead) (existed bool, err error)

	FindByEmail(ctx context.Context, email string) (*Lead, error)

	// FindEligible retorna leads no passo fromStep, não descadastrados e
	// sem envio desde sentBefore, limitado a limit registros.
	FindEligible(ctx context.Context, fromStep int, sentBefore time.Time, limit int) ([]*Lead, error)

	// AdvanceStep é condicional: só avança se o passo ainda for toStep-1.
	// Retorna false (sem erro) quando outra invocação avançou antes.
	AdvanceStep(ctx context.Context, email string, toStep int, sentAt time.Time) (bool, error)

	MarkUnsubscribed(ctx context.Context, email string) error
}
