package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// SequenceStep descreve um passo da sequência de drip: quem está em
// Step-1 recebe este email depois de GapDays desde o último envio.
type SequenceStep struct {
	Step     int    `yaml:"step"`
	GapDays  int    `yaml:"gap_days"`
	Subject  string `yaml:"subject"`
	Template string `yaml:"template"`
}

func (s SequenceStep) Gap() time.Duration {
	return time.Duration(s.GapDays) * 24 * time.Hour
}

type sequenceFile struct {
	Steps []SequenceStep `yaml:"steps"`
}

// LoadSequence lê a definição da sequência do YAML. Arquivo ausente cai
// nos defaults embutidos (mesmo comportamento para path vazio).
func LoadSequence(path string) ([]SequenceStep, error) {
	if path == "" {
		return DefaultSequence(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("sequence: %s não encontrado, usando sequência padrão", path)
			return DefaultSequence(), nil
		}
		return nil, fmt.Errorf("read sequence file: %w", err)
	}

	var file sequenceFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse sequence file: %w", err)
	}
	if len(file.Steps) == 0 {
		return DefaultSequence(), nil
	}

	if err := validateSequence(file.Steps); err != nil {
		return nil, err
	}

	sort.Slice(file.Steps, func(i, j int) bool {
		return file.Steps[i].Step < file.Steps[j].Step
	})
	return file.Steps, nil
}

func validateSequence(steps []SequenceStep) error {
	seen := make(map[int]bool)
	for _, s := range steps {
		if s.Step < 2 {
			return fmt.Errorf("sequence: step %d inválido (o passo 1 é o email de intake)", s.Step)
		}
		if seen[s.Step] {
			return fmt.Errorf("sequence: step %d duplicado", s.Step)
		}
		seen[s.Step] = true
		if s.GapDays <= 0 {
			return fmt.Errorf("sequence: step %d precisa de gap_days positivo", s.Step)
		}
		if s.Template == "" {
			return fmt.Errorf("sequence: step %d sem template", s.Step)
		}
	}
	return nil
}

// DefaultSequence replica a campanha original: dois follow-ups, 4 dias
// de intervalo cada.
func DefaultSequence() []SequenceStep {
	return []SequenceStep{
		{
			Step:     2,
			GapDays:  4,
			Subject:  "Three questions that separate satisfying transformations from expensive failures",
			Template: "three_questions.html",
		},
		{
			Step:     3,
			GapDays:  4,
			Subject:  "{{.FirstName}}, a different kind of conversation",
			Template: "conversation.html",
		},
	}
}
