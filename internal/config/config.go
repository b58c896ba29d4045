package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config é construído uma vez no start do processo e injetado nos
// componentes — nada de estado global de cliente espalhado em pacotes.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Base pública usada para montar os links de unsubscribe
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL,required"`

	// Segredo compartilhado exigido no endpoint do cron
	CronSecret string `env:"CRON_SECRET,required"`

	SequenceFile string `env:"SEQUENCE_FILE" envDefault:"configs/sequence.yaml"`
	BatchSize    int    `env:"SEQUENCE_BATCH_SIZE" envDefault:"50"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Opcional: sem URL configurada, eventos de lead não são publicados
	RabbitMQURL string `env:"RABBITMQ_URL"`

	Mail  MailConfig
	Kommo KommoConfig
}

type MailConfig struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASS"`
	From     string `env:"MAIL_FROM" envDefault:"Justin Pher & Praveen Raman <contact@inflection-advisory.com>"`
}

type KommoConfig struct {
	APIToken string `env:"KOMMO_API_TOKEN"`
	BaseURL  string `env:"KOMMO_BASE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
