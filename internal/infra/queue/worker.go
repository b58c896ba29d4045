package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CRMClient define o contrato da sincronização de leads (Kommo, etc)
type CRMClient interface {
	SyncLead(ctx context.Context, payload LeadCapturedPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	CRM     CRMClient
}

func NewWorker(ch *amqp.Channel, crm CRMClient) *Worker {
	return &Worker{
		Channel: ch,
		CRM:     crm,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Sincronizando lead %s (%d%%) com o CRM", payload.Email, payload.Percentage)

			if err := w.CRM.SyncLead(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro na sincronização: %s", err)
				d.Nack(false, false) // vai para a DLQ
			} else {
				log.Printf("✅ [WORKER] Lead %s sincronizado", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de CRM aguardando na fila '%s'", queueName)
	<-forever
}
