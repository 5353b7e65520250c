package main

import (
	"context"

	"github.com/narith-dev/RentSign/internal/compress"
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/database"
	"github.com/narith-dev/RentSign/internal/docgen"
	"github.com/narith-dev/RentSign/internal/env"
	"github.com/narith-dev/RentSign/internal/errs"
	filestorage "github.com/narith-dev/RentSign/internal/file_storage"
	"github.com/narith-dev/RentSign/internal/queue"
	"github.com/narith-dev/RentSign/internal/repository"
	"github.com/narith-dev/RentSign/internal/storage"
	"github.com/narith-dev/RentSign/internal/util"
	"github.com/narith-dev/RentSign/pkg/contractdoc"
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
	logger.Info("Minio connected \n")

	repo := repository.NewRepository(db, logger, s3)
	storageSvc := storage.NewService(s3, cfg.Storage, logger)

	fallback, err := contractdoc.NewSimplifiedGenerator(util.GetTempDir())
	if err != nil {
		logger.Panicf("Failed to initialize fallback pdf generator: %v", err)
	}
	pipeline := contractdoc.NewPipeline(
		contractdoc.NewHTTPRenderer(cfg.Renderer.URL, cfg.Renderer.Timeout),
		fallback,
		logger,
	)

	docgenService := docgen.NewService(
		repo.Contract,
		docgen.NewTemplateSource(repo.ContractTemplate),
		pipeline,
		compress.NewCompressor(logger),
		storageSvc,
		storageSvc.Keys,
		docgen.Options{EmbedQR: cfg.Renderer.EMBED_QR, FrontURL: cfg.SignLink.FRONT_URL},
		logger,
	)

	app := queue.ConsumerContext{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Docgen:     docgenService,
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

	if err := rabbitMQ.ConsumeDocumentGenerateJob(ctx, documentGenerateJobHandler, MAX_WORKERS, &app); err != nil {
		logger.Fatalf("Failed to consume document generate job: %v", err)
	}

	logger.Infof("Started consuming document generate job with %d workers", MAX_WORKERS)

	// Block forever to keep the consumer running
	select {}
}

// Return shouldRequeue, err
func documentGenerateJobHandler(ctx context.Context, jobPayload queue.DocumentGeneratePayload, app *queue.ConsumerContext) (bool, error) {
	url, err := app.Docgen.Generate(ctx, jobPayload.ContractID, jobPayload.Manual)
	if err != nil {
		switch errs.KindOf(err) {
		case errs.KindNotFound, errs.KindValidation, errs.KindConflict, errs.KindForbidden, errs.KindExpired:
			// The job can never succeed, retrying would only repeat the failure.
			app.Logger.Errorf("Dropping document generate job for contract %s: %v", jobPayload.ContractID, err)
			return false, err
		default:
			return true, err
		}
	}

	app.Logger.Infof("Generated document for contract %s at %s", jobPayload.ContractID, url)
	return false, nil
}
