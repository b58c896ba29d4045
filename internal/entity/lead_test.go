package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpher/readiness-funnel/internal/entity"
)

// ============ TESTES ============

func TestDimensionScoresPercentage(t *testing.T) {
	cases := []struct {
		name       string
		scores     entity.DimensionScores
		total      int
		percentage int
	}{
		{"zerado", entity.DimensionScores{}, 0, 0},
		{"máximo", entity.DimensionScores{Data: 12, Process: 12, Team: 12, Strategic: 12, Change: 12}, 60, 100},
		{"metade", entity.DimensionScores{Data: 6, Process: 6, Team: 6, Strategic: 6, Change: 6}, 30, 50},
		// 44/60 = 73.33 -> arredonda para 73
		{"arredonda para baixo", entity.DimensionScores{Data: 12, Process: 12, Team: 12, Strategic: 8, Change: 0}, 44, 73},
		// 45/60 = 75.0 exato
		{"limiar alto", entity.DimensionScores{Data: 12, Process: 12, Team: 12, Strategic: 9, Change: 0}, 45, 75},
		// 29/60 = 48.33 -> 48
		{"abaixo da metade", entity.DimensionScores{Data: 12, Process: 12, Team: 5, Strategic: 0, Change: 0}, 29, 48},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.total, tc.scores.Total())
			assert.Equal(t, tc.percentage, tc.scores.Percentage())
		})
	}
}

func TestDimensionScoresInBounds(t *testing.T) {
	assert.True(t, entity.DimensionScores{}.InBounds())
	assert.True(t, entity.DimensionScores{Data: 12, Process: 12, Team: 12, Strategic: 12, Change: 12}.InBounds())
	assert.False(t, entity.DimensionScores{Data: 13}.InBounds())
	assert.False(t, entity.DimensionScores{Change: -1}.InBounds())
}

// TestReadinessLevelThresholds - bordas exatas dos limiares 50 e 75
func TestReadinessLevelThresholds(t *testing.T) {
	assert.Equal(t, "Foundation Building - Strategic Assessment Needed", entity.ReadinessLevel(0))
	assert.Equal(t, "Foundation Building - Strategic Assessment Needed", entity.ReadinessLevel(49))
	assert.Equal(t, "Moderate Readiness - Build Foundation First", entity.ReadinessLevel(50))
	assert.Equal(t, "Moderate Readiness - Build Foundation First", entity.ReadinessLevel(74))
	assert.Equal(t, "High Readiness - Ready to Execute", entity.ReadinessLevel(75))
	assert.Equal(t, "High Readiness - Ready to Execute", entity.ReadinessLevel(100))
}

func TestNewLead(t *testing.T) {
	scores := entity.DimensionScores{Data: 10, Process: 9, Team: 8, Strategic: 10, Change: 8}
	lead := entity.NewLead("  Maria Souza  ", " MARIA@Example.COM ", " Acme ", " +55 11 99999-0000 ", scores)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "maria@example.com", lead.Email)
	assert.Equal(t, "Maria Souza", lead.Name)
	assert.Equal(t, "Acme", lead.Company)
	assert.Equal(t, "+55 11 99999-0000", lead.Phone)

	// 45/60 = 75%
	assert.Equal(t, 45, lead.TotalScore)
	assert.Equal(t, 75, lead.Percentage)
	assert.Equal(t, "High Readiness - Ready to Execute", lead.ReadinessLevel)

	// Lead novo já tem o Email #1 contabilizado
	assert.Equal(t, entity.InitialSequenceStep, lead.SequenceStep)
	assert.False(t, lead.LastEmailSentAt.IsZero())
	assert.False(t, lead.Unsubscribed)
}

func TestFirstName(t *testing.T) {
	lead := &entity.Lead{Name: "Maria Souza"}
	assert.Equal(t, "Maria", lead.FirstName())

	lead.Name = "Cher"
	assert.Equal(t, "Cher", lead.FirstName())

	lead.Name = "   "
	assert.Equal(t, "there", lead.FirstName())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "maria@example.com", entity.NormalizeEmail("  Maria@EXAMPLE.com "))
	assert.Equal(t, "", entity.NormalizeEmail("   "))
}
