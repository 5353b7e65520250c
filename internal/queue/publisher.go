package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/mailer"
	"github.com/narith-dev/RentSign/internal/model"
)

// Publisher is the producing side of the queues: the API process hands the
// slow work (mail, rendering) to the consumers through it.
type Publisher struct {
	mq  *RabbitMQ
	cfg config.SignLinkConfig
}

func NewPublisher(mq *RabbitMQ, cfg config.SignLinkConfig) *Publisher {
	return &Publisher{mq: mq, cfg: cfg}
}

func (p *Publisher) publishJSON(queue QueueName, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", queue, err)
	}
	return p.mq.Publish(queue, body)
}

func (p *Publisher) SignRequestIssued(ctx context.Context, c *model.Contract, signURL string) error {
	job, err := NewSignRequestMailJob(c.Customer.FullName(), c.CustomerEmail(), mailer.SignRequestData{
		CustomerName:   c.Customer.FullName(),
		ContractNumber: c.ContractNumber,
		SignURL:        signURL,
		ExpiresAt:      time.Now().Add(p.cfg.TTL).Format("02/01/2006"),
	})
	if err != nil {
		return err
	}

	return p.publishJSON(QueueMail, job)
}

func (p *Publisher) GenerateDocument(ctx context.Context, contractId string, manual bool) error {
	return p.publishJSON(QueueDocumentGenerate, NewDocumentGeneratePayload(contractId, manual))
}

// ContractSignedPayload is the event published once a contract has been
// signed electronically. The consumer sends the customer their copy.
type ContractSignedPayload struct {
	ContractID string `json:"contract_id"`
	CreatedAt  string `json:"created_at"`
	Try        int    `json:"try" default:"0"`
}

func (p *Publisher) ContractSigned(ctx context.Context, contractId string) error {
	return p.publishJSON(QueueContractSigned, ContractSignedPayload{
		ContractID: contractId,
		CreatedAt:  time.Now().Format(time.RFC3339),
	})
}
