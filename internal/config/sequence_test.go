package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jpher/readiness-funnel/internal/config"
)

func writeSequenceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sequence.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

// ============ TESTES ============

func TestLoadSequenceDefaults(t *testing.T) {
	// Path vazio e arquivo ausente caem nos defaults
	fromEmpty, err := config.LoadSequence("")
	assert.NoError(t, err)
	fromMissing, err2 := config.LoadSequence("/nonexistent/sequence.yaml")
	assert.NoError(t, err2)

	assert.Equal(t, config.DefaultSequence(), fromEmpty)
	assert.Equal(t, config.DefaultSequence(), fromMissing)

	assert.Len(t, fromEmpty, 2)
	assert.Equal(t, 2, fromEmpty[0].Step)
	assert.Equal(t, 3, fromEmpty[1].Step)
	assert.Equal(t, 4, fromEmpty[0].GapDays)
}

func TestLoadSequenceFromYAML(t *testing.T) {
	path := writeSequenceFile(t, `
steps:
  - step: 3
    gap_days: 7
    subject: "Second follow-up"
    template: second.html
  - step: 2
    gap_days: 2
    subject: "First follow-up"
    template: first.html
`)

	steps, err := config.LoadSequence(path)

	assert.NoError(t, err)
	assert.Len(t, steps, 2)

	// Ordenado por passo, independente da ordem no arquivo
	assert.Equal(t, 2, steps[0].Step)
	assert.Equal(t, "first.html", steps[0].Template)
	assert.Equal(t, 3, steps[1].Step)
	assert.Equal(t, 7, steps[1].GapDays)
}

func TestLoadSequenceEmptyStepsFallsBack(t *testing.T) {
	path := writeSequenceFile(t, "steps: []\n")

	steps, err := config.LoadSequence(path)

	assert.NoError(t, err)
	assert.Equal(t, config.DefaultSequence(), steps)
}

func TestLoadSequenceInvalidYAML(t *testing.T) {
	path := writeSequenceFile(t, "steps: [not closed\n")

	steps, err := config.LoadSequence(path)

	assert.Error(t, err)
	assert.Nil(t, steps)
}

func TestLoadSequenceValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"passo 1 reservado", `
steps:
  - step: 1
    gap_days: 4
    subject: "x"
    template: x.html
`},
		{"passo duplicado", `
steps:
  - step: 2
    gap_days: 4
    subject: "x"
    template: x.html
  - step: 2
    gap_days: 4
    subject: "y"
    template: y.html
`},
		{"gap_days zero", `
steps:
  - step: 2
    gap_days: 0
    subject: "x"
    template: x.html
`},
		{"sem template", `
steps:
  - step: 2
    gap_days: 4
    subject: "x"
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSequenceFile(t, tc.content)
			_, err := config.LoadSequence(path)
			assert.Error(t, err)
		})
	}
}

func TestSequenceStepGap(t *testing.T) {
	step := config.SequenceStep{GapDays: 4}
	assert.Equal(t, 4*24*time.Hour, step.Gap())
}
