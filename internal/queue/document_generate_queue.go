package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/docgen"
	"github.com/narith-dev/RentSign/internal/repository"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type ConsumerContext struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Docgen renders and stores contract documents.
	Docgen *docgen.Service
}

type DocumentGeneratePayload struct {
	ContractID string `json:"contract_id"`
	// Manual requests an unsigned document with a read-and-approved block.
	Manual    bool   `json:"manual"`
	CreatedAt string `json:"created_at"`
	Try       int    `json:"try" default:"0"`
}

func NewDocumentGeneratePayload(contractId string, manual bool) DocumentGeneratePayload {
	return DocumentGeneratePayload{
		ContractID: contractId,
		Manual:     manual,
		Try:        0,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
}

type DocumentGenerateJobHandler func(ctx context.Context, jobPayload DocumentGeneratePayload, app *ConsumerContext) (bool, error)

func (r *RabbitMQ) ConsumeDocumentGenerateJob(ctx context.Context, handler DocumentGenerateJobHandler, maxWorker int, app *ConsumerContext) error {
	msgs, err := r.Consume(QueueDocumentGenerate)
	if err != nil {
		return fmt.Errorf("failed to start consuming document jobs: %w", err)
	}

	for i := range maxWorker {
		go func(workerNumber int) {
			runDocumentWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runDocumentWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler DocumentGenerateJobHandler, app *ConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Document Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("[Document Worker %d] Message channel closed", workerNumber)
				return
			}
			processDocumentJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

func processDocumentJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler DocumentGenerateJobHandler, app *ConsumerContext) {
	if msg.Body == nil {
		log.Printf("[Document Worker %d] Received empty message body", workerNumber)
		rabbitMQ.Nack(msg, false)
		return
	}

	var jobPayload DocumentGeneratePayload
	if err := json.Unmarshal(msg.Body, &jobPayload); err != nil {
		log.Printf("[Document Worker %d] Invalid payload: %v", workerNumber, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	workerPrefix := fmt.Sprintf("[Document Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err != nil {
		log.Printf("%s Handler error processing document job for contract: %s: %v",
			workerPrefix, jobPayload.ContractID, err)

		if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
			// Operators can still retry through the manual generate endpoint.
			log.Printf("%s Dropping document job for contract: %s after error (retry: %d, shouldRequeue: %v)",
				workerPrefix, jobPayload.ContractID, jobPayload.Try, shouldRequeue)
			rabbitMQ.Nack(msg, false)
			return
		}

		requeueDocumentJob(rabbitMQ, workerPrefix, msg, jobPayload)
		return
	}

	log.Printf("%s Successfully processed document job for contract: %s",
		workerPrefix, jobPayload.ContractID)
	rabbitMQ.Ack(msg)
}

func requeueDocumentJob(rabbitMQ *RabbitMQ, workerPrefix string, msg amqp091.Delivery, jobPayload DocumentGeneratePayload) {
	jobPayload.Try++
	payloadBytes, err := json.Marshal(jobPayload)
	if err != nil {
		log.Printf("%s Failed to marshal document payload for requeue: %v", workerPrefix, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	if err := rabbitMQ.Publish(QueueDocumentGenerate, payloadBytes); err != nil {
		log.Printf("%s Failed to requeue document job for contract: %s: %v",
			workerPrefix, jobPayload.ContractID, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	log.Printf("%s Requeued document job for contract: %s", workerPrefix, jobPayload.ContractID)
	rabbitMQ.Ack(msg)
}
