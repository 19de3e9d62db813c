package appcontext

import (
	"github.com/skillvento/skillvento/internal/auth"
	"github.com/skillvento/skillvento/internal/config"
	filestorage "github.com/skillvento/skillvento/internal/file_storage"
	"github.com/skillvento/skillvento/internal/mailer"
	"github.com/skillvento/skillvento/internal/pipeline"
	"github.com/skillvento/skillvento/internal/queue"
	"github.com/skillvento/skillvento/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Storage uploads and removes certificate blobs.
	Storage *filestorage.MinioStorage

	// Ingestor drives certificate drafts through conversion, upload
	// and persistence.
	Ingestor *pipeline.Ingestor

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// Queue publishes async jobs; nil when the broker is not
	// configured, in which case mail is sent inline.
	Queue *queue.RabbitMQ

	// JWTService manages JWT operations such as generate and verify.
	JWTService auth.JWTInterface
}
