package appcontext

import (
	"github.com/minio/minio-go/v7"
	"github.com/narith-dev/RentSign/internal/auth"
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/docgen"
	"github.com/narith-dev/RentSign/internal/mailer"
	"github.com/narith-dev/RentSign/internal/repository"
	"github.com/narith-dev/RentSign/internal/signing"
	"github.com/narith-dev/RentSign/internal/storage"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	S3 *minio.Client

	// Storage wraps S3 with the document bucket and key conventions.
	Storage *storage.Service

	// Signing owns the sign-link lifecycle.
	Signing *signing.Service

	// Docgen renders, stores and serves contract documents.
	Docgen *docgen.Service
}
