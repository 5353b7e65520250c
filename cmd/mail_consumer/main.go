package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/env"
	"github.com/narith-dev/RentSign/internal/mailer"
	"github.com/narith-dev/RentSign/internal/queue"
	"github.com/narith-dev/RentSign/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	mail := mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	app := queue.MailConsumerContext{
		Config: &cfg,
		Logger: logger,
		Mailer: mail,
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	logger.Info("RabbitMQ connected \n")
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	ctx := context.Background()

	if err := rabbitMQ.ConsumeMailJob(ctx, mailJobHandler, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	// Block forever to keep the consumer running
	select {}
}

// Return shouldRequeue, err
func mailJobHandler(ctx context.Context, jobPayload queue.MailJobPayload, app *queue.MailConsumerContext) (bool, error) {
	switch jobPayload.TemplateFile {
	case mailer.TemplateSignRequest:
		var data mailer.SignRequestData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal SignRequestData: %w", err)
		}
		return sendMail(jobPayload, data, app)
	case mailer.TemplateContractSigned:
		var data mailer.ContractSignedData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal ContractSignedData: %w", err)
		}
		return sendMail(jobPayload, data, app)
	default:
		return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
	}
}

func sendMail(jobPayload queue.MailJobPayload, data any, app *queue.MailConsumerContext) (bool, error) {
	status, err := app.Mailer.Send(string(jobPayload.TemplateFile), jobPayload.ToName, jobPayload.ToEmail, data)
	if err != nil {
		return true, fmt.Errorf("failed to send email: %w", err)
	}

	if status != http.StatusOK && status != http.StatusAccepted {
		return true, fmt.Errorf("email sending failed with status: %d", status)
	}

	return false, nil
}
