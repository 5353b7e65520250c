package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/rabbitmq/amqp091-go"
)

type ContractSignedJobHandler func(ctx context.Context, jobPayload ContractSignedPayload, app *ConsumerContext) (bool, error)

func (r *RabbitMQ) ConsumeContractSignedJob(ctx context.Context, handler ContractSignedJobHandler, maxWorker int, app *ConsumerContext) error {
	msgs, err := r.Consume(QueueContractSigned)
	if err != nil {
		return fmt.Errorf("failed to start consuming signed events: %w", err)
	}

	for i := range maxWorker {
		go func(workerNumber int) {
			runContractSignedWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runContractSignedWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler ContractSignedJobHandler, app *ConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Signed Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("[Signed Worker %d] Message channel closed", workerNumber)
				return
			}
			processContractSignedJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

func processContractSignedJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler ContractSignedJobHandler, app *ConsumerContext) {
	if msg.Body == nil {
		log.Printf("[Signed Worker %d] Received empty message body", workerNumber)
		rabbitMQ.Nack(msg, false)
		return
	}

	var jobPayload ContractSignedPayload
	if err := json.Unmarshal(msg.Body, &jobPayload); err != nil {
		log.Printf("[Signed Worker %d] Invalid payload: %v", workerNumber, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	workerPrefix := fmt.Sprintf("[Signed Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err != nil {
		log.Printf("%s Handler error processing signed event for contract: %s: %v",
			workerPrefix, jobPayload.ContractID, err)

		if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
			log.Printf("%s Dropping signed event for contract: %s (retry: %d, shouldRequeue: %v)",
				workerPrefix, jobPayload.ContractID, jobPayload.Try, shouldRequeue)
			rabbitMQ.Nack(msg, false)
			return
		}

		jobPayload.Try++
		payloadBytes, err := json.Marshal(jobPayload)
		if err != nil {
			log.Printf("%s Failed to marshal signed event for requeue: %v", workerPrefix, err)
			rabbitMQ.Nack(msg, false)
			return
		}
		if err := rabbitMQ.Publish(QueueContractSigned, payloadBytes); err != nil {
			log.Printf("%s Failed to requeue signed event for contract: %s: %v",
				workerPrefix, jobPayload.ContractID, err)
			rabbitMQ.Nack(msg, false)
			return
		}
		log.Printf("%s Requeued signed event for contract: %s", workerPrefix, jobPayload.ContractID)
		rabbitMQ.Ack(msg)
		return
	}

	log.Printf("%s Successfully processed signed event for contract: %s",
		workerPrefix, jobPayload.ContractID)
	rabbitMQ.Ack(msg)
}
