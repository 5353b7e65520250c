package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/database"
	"github.com/narith-dev/RentSign/internal/env"
	filestorage "github.com/narith-dev/RentSign/internal/file_storage"
	"github.com/narith-dev/RentSign/internal/mailer"
	"github.com/narith-dev/RentSign/internal/queue"
	"github.com/narith-dev/RentSign/internal/repository"
	"github.com/narith-dev/RentSign/internal/util"
	"gorm.io/gorm"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const MAX_WORKERS = 3

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	repo := repository.NewRepository(db, logger, s3)
	app := queue.ConsumerContext{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
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

	// The handler enqueues the confirmation mail rather than sending it,
	// delivery retries stay in the mail consumer.
	handler := func(ctx context.Context, jobPayload queue.ContractSignedPayload, app *queue.ConsumerContext) (bool, error) {
		return contractSignedJobHandler(ctx, jobPayload, app, rabbitMQ)
	}

	if err := rabbitMQ.ConsumeContractSignedJob(ctx, handler, MAX_WORKERS, &app); err != nil {
		logger.Fatalf("Failed to consume contract signed events: %v", err)
	}

	logger.Infof("Started consuming contract signed events with %d workers", MAX_WORKERS)

	// Block forever to keep the consumer running
	select {}
}

// Return shouldRequeue, err
func contractSignedJobHandler(ctx context.Context, jobPayload queue.ContractSignedPayload, app *queue.ConsumerContext, rabbitMQ *queue.RabbitMQ) (bool, error) {
	c, err := app.Repository.Contract.GetById(ctx, nil, jobPayload.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			app.Logger.Error("Contract not found: ", jobPayload.ContractID)
			return false, errors.New("contract not found")
		}
		return true, fmt.Errorf("failed to get contract: %w", err)
	}

	if c.SignedAt == nil {
		return false, fmt.Errorf("contract %s is not signed", c.ID)
	}

	email := c.CustomerEmail()
	if email == "" {
		app.Logger.Warnf("Contract %s has no customer email, skipping confirmation mail", c.ID)
		return false, nil
	}

	downloadURL := fmt.Sprintf("%s/contracts/%s/download/%s", app.Config.SignLink.FRONT_URL, c.ID, c.SignatureReference)
	job, err := queue.NewContractSignedMailJob(c.Customer.FullName(), email, mailer.ContractSignedData{
		CustomerName:   c.Customer.FullName(),
		ContractNumber: c.ContractNumber,
		SignedAt:       c.SignedAt.Format("02/01/2006 15:04"),
		DownloadURL:    downloadURL,
	})
	if err != nil {
		return false, fmt.Errorf("failed to build confirmation mail job: %w", err)
	}

	body, err := json.Marshal(job)
	if err != nil {
		return false, fmt.Errorf("failed to marshal confirmation mail job: %w", err)
	}

	if err := rabbitMQ.Publish(queue.QueueMail, body); err != nil {
		return true, fmt.Errorf("failed to enqueue confirmation mail: %w", err)
	}

	return false, nil
}
