package main

import (
	"time"

	appcontext "github.com/narith-dev/RentSign/internal/app_context"
	"github.com/narith-dev/RentSign/internal/auth"
	"github.com/narith-dev/RentSign/internal/compress"
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/controller"
	"github.com/narith-dev/RentSign/internal/database"
	"github.com/narith-dev/RentSign/internal/docgen"
	"github.com/narith-dev/RentSign/internal/env"
	filestorage "github.com/narith-dev/RentSign/internal/file_storage"
	"github.com/narith-dev/RentSign/internal/geo"
	"github.com/narith-dev/RentSign/internal/mailer"
	"github.com/narith-dev/RentSign/internal/middleware"
	"github.com/narith-dev/RentSign/internal/queue"
	ratelimiter "github.com/narith-dev/RentSign/internal/rate_limiter"
	"github.com/narith-dev/RentSign/internal/repository"
	"github.com/narith-dev/RentSign/internal/route"
	"github.com/narith-dev/RentSign/internal/signing"
	"github.com/narith-dev/RentSign/internal/storage"
	"github.com/narith-dev/RentSign/internal/util"
	"github.com/narith-dev/RentSign/pkg/contractdoc"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

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

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panicf("Failed to register custom validations: %v", err)
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	// Drop finished windows so the per-client map stays bounded.
	go func() {
		for range time.Tick(cfg.RateLimiter.TimeFrame) {
			rateLimiter.Cleanup()
		}
	}()
	mail := mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
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

	publisher := queue.NewPublisher(rabbitMQ, cfg.SignLink)
	signingService := signing.NewService(
		repo.Contract,
		repo.SignLink,
		geo.NewClient(cfg.Geo, logger),
		publisher,
		cfg.SignLink,
		logger,
	)

	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Mailer:     mail,
		JWTService: jwtService,
		S3:         s3,
		Storage:    storageSvc,
		Signing:    signingService,
		Docgen:     docgenService,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept", "X-API-Key"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Contracts(rApi, _controller.Contract, _controller.Download, _middleware)
	route.V1_SignLinks(rApi, _controller.SignLink)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
