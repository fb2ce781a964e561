package reconciliation

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/exceptions"
)

// CriticalConflictAlert is the queue payload for one critical conflict.
type CriticalConflictAlert struct {
	RunID       string          `json:"run_id"`
	PatientID   string          `json:"patient_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Conflict    models.Conflict `json:"conflict"`
}

type alertRabbitMQPublisher struct {
	ch        *amqp.Channel
	queueName string
}

// NewAlertRabbitMQPublisher declares the durable critical-conflict queue and
// returns a publisher bound to it.
func NewAlertRabbitMQPublisher(conn *amqp.Connection) (contracts.AlertPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.CriticalConflictQueueName, // name
		true,                                // durable
		false,                               // autoDelete
		false,                               // exclusive
		false,                               // noWait
		nil,                                 // args
	)
	if err != nil {
		return nil, err
	}

	return &alertRabbitMQPublisher{
		ch:        ch,
		queueName: constvars.CriticalConflictQueueName,
	}, nil
}

func (p *alertRabbitMQPublisher) PublishCriticalConflicts(ctx context.Context, report *models.ReconciliationReport) error {
	for _, conflict := range report.CriticalConflicts() {
		alert := CriticalConflictAlert{
			RunID:       report.RunID,
			PatientID:   report.PatientID,
			GeneratedAt: report.GeneratedAt,
			Conflict:    conflict,
		}
		body, err := json.Marshal(alert)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}

		err = p.ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
		if err != nil {
			return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
		}
	}
	return nil
}

func (p *alertRabbitMQPublisher) Close() error {
	return p.ch.Close()
}
