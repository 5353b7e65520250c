package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/narith-dev/RentSign/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	DB          DatabaseConfig
	Minio       MinioConfig
	RabbitMQ    RabbitMQConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Renderer    RendererConfig
	Geo         GeoConfig
	SignLink    SignLinkConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type AuthConfig struct {
	JWT_SECRET string
	API_KEY    string
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	USE_SSL    bool
}

type RabbitMQConfig struct {
	HOST     string
	PORT     string
	USERNAME string
	PASSWORD string
}

func (r RabbitMQConfig) GetConnectionString() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", r.USERNAME, r.PASSWORD, r.HOST, r.PORT)
}

type MailConfig struct {
	SEND_GRID  SendGridConfig
	FROM_EMAIL string
}

type SendGridConfig struct {
	API_KEY string
}

type StorageConfig struct {
	// Bucket holding every tenant's contract documents.
	BUCKET string
	// Public origin prepended to object keys when building document URLs,
	// e.g. "https://cdn.example.com".
	PUBLIC_URL string
}

type RendererConfig struct {
	// Endpoint of the headless HTML-to-PDF render service.
	URL     string
	Timeout time.Duration
	// Embed a QR code of the public download link on the last page of
	// generated documents.
	EMBED_QR bool
}

type GeoConfig struct {
	URL     string
	Timeout time.Duration
}

type SignLinkConfig struct {
	// How long an issued signature link stays redeemable.
	TTL time.Duration
	// Front-end origin used to assemble the hyperlink sent to the signer.
	FRONT_URL string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(env.GetString(key, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func GetConfig() Config {
	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "root"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "rentsign"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		RabbitMQ: RabbitMQConfig{
			HOST:     env.GetString("RABBITMQ_HOST", "127.0.0.1"),
			PORT:     env.GetString("RABBITMQ_PORT", "5672"),
			USERNAME: env.GetString("RABBITMQ_USERNAME", "guest"),
			PASSWORD: env.GetString("RABBITMQ_PASSWORD", "guest"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            getDuration("RATE_LIMIT_TIME_FRAME", "1m"),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Mail: MailConfig{
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
		},
		Auth: AuthConfig{
			JWT_SECRET: env.GetString("AUTH_JWT_SECRET", ""),
			API_KEY:    env.GetString("AUTH_API_KEY", ""),
		},
		Storage: StorageConfig{
			BUCKET:     env.GetString("STORAGE_BUCKET", "rentsign-documents"),
			PUBLIC_URL: env.GetString("STORAGE_PUBLIC_URL", "http://127.0.0.1:9000"),
		},
		Renderer: RendererConfig{
			URL:      env.GetString("RENDERER_URL", "http://127.0.0.1:3001/render"),
			Timeout:  getDuration("RENDERER_TIMEOUT", "30s"),
			EMBED_QR: env.GetBool("RENDERER_EMBED_QR", false),
		},
		Geo: GeoConfig{
			URL:     env.GetString("GEO_LOOKUP_URL", "http://ip-api.com/json"),
			Timeout: getDuration("GEO_LOOKUP_TIMEOUT", "5s"),
		},
		SignLink: SignLinkConfig{
			TTL:       getDuration("SIGN_LINK_TTL", "168h"),
			FRONT_URL: env.GetString("FRONT_URL", "http://localhost:3000"),
		},
	}
}
