package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jpher/readiness-funnel/internal/config"
	"github.com/jpher/readiness-funnel/internal/infra/database"
	"github.com/jpher/readiness-funnel/internal/infra/http/handlers"
	"github.com/jpher/readiness-funnel/internal/infra/http/middleware"
	"github.com/jpher/readiness-funnel/internal/infra/integration/kommo"
	"github.com/jpher/readiness-funnel/internal/infra/mail"
	"github.com/jpher/readiness-funnel/internal/infra/queue"
	"github.com/jpher/readiness-funnel/internal/usecase"
)

const templatesDir = "templates"

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	steps, err := config.LoadSequence(cfg.SequenceFile)
	if err != nil {
		log.Fatalf("❌ Sequência inválida: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("❌ Migração falhou: %v", err)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db, cfg.DatabaseDriver)
	suppressionRepo := database.NewSuppressionRepository(db, cfg.DatabaseDriver)

	// 2. Email (SMTP)
	var emailService usecase.EmailService
	if cfg.Mail.Host != "" {
		emailService = mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.From, cfg.BaseURL, templatesDir,
		)
	} else {
		log.Println("⚠️ SMTP não configurado, emails desativados")
	}

	// 3. Fila + Worker de CRM (opcionais)
	var producer usecase.QueueProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ indisponível: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		crmClient := kommo.NewClient(cfg.Kommo.APIToken, cfg.Kommo.BaseURL)
		worker := queue.NewWorker(rabbitMQ.Ch, crmClient)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RabbitMQ não configurado, eventos de lead desativados")
	}

	// 4. UseCases
	submitUC := usecase.NewSubmitAssessmentUseCase(leadRepo, emailService, producer)
	advanceUC := usecase.NewAdvanceSequenceUseCase(
		leadRepo, suppressionRepo, emailService, steps, cfg.BatchSize,
	)
	unsubscribeUC := usecase.NewUnsubscribeUseCase(leadRepo, suppressionRepo)

	// 5. Handlers
	assessmentHandler := handlers.NewAssessmentHandler(submitUC)
	cronHandler := handlers.NewCronHandler(advanceUC, cfg.CronSecret)
	unsubscribeHandler, err := handlers.NewUnsubscribeHandler(unsubscribeUC, templatesDir)
	if err != nil {
		log.Fatalf("❌ Template de unsubscribe inválido: %v", err)
	}

	healthHandler := handlers.NewHealthHandler(db, rabbitConnOrNil(rabbitMQ), cfg.Mail.Host != "")

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/submit-assessment", assessmentHandler.Handle)
	r.Get("/submit-assessment", assessmentHandler.HandleStatus)
	r.Get("/cron/send-emails", cronHandler.Handle)
	r.Get("/unsubscribe", unsubscribeHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("🔥 Readiness Funnel rodando em %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}

func rabbitConnOrNil(r *queue.RabbitMQ) *amqp.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
