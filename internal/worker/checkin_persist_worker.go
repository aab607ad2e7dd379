package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bpmutter/tappdin-backend/internal/model"
	"github.com/bpmutter/tappdin-backend/internal/repository"
)

type CheckinPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.CheckinRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCheckinPersistWorker(conn *amqp.Connection, repo *repository.CheckinRepository, queueName string) *CheckinPersistWorker {
	return &CheckinPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *CheckinPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var checkin model.Checkin
				if err := json.Unmarshal(d.Body, &checkin); err != nil {
					log.Printf("worker decode checkin failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&checkin); err != nil {
					log.Printf("worker persist checkin failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *CheckinPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
