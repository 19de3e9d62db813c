package main

import (
	appcontext "github.com/skillvento/skillvento/internal/app_context"
	"github.com/skillvento/skillvento/internal/auth"
	"github.com/skillvento/skillvento/internal/config"
	"github.com/skillvento/skillvento/internal/controller"
	"github.com/skillvento/skillvento/internal/database"
	"github.com/skillvento/skillvento/internal/env"
	filestorage "github.com/skillvento/skillvento/internal/file_storage"
	"github.com/skillvento/skillvento/internal/mailer"
	"github.com/skillvento/skillvento/internal/middleware"
	"github.com/skillvento/skillvento/internal/pipeline"
	"github.com/skillvento/skillvento/internal/queue"
	ratelimiter "github.com/skillvento/skillvento/internal/rate_limiter"
	"github.com/skillvento/skillvento/internal/repository"
	"github.com/skillvento/skillvento/internal/route"
	"github.com/skillvento/skillvento/internal/util"
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
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
		if err = v.RegisterValidation("cmin", util.CustomMin); err != nil {
			return
		}
		if err = v.RegisterValidation("cmax", util.CustomMax); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	mail := mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger)

	storage := filestorage.NewMinioStorage(s3, &cfg.Minio, logger)
	ingestor := pipeline.NewIngestor(
		storage,
		pipeline.NewCertificateStore(repo.Certificate),
		pipeline.NewConverter(),
		logger,
	)

	// The queue is optional; without a broker share emails go out
	// inline on the request path.
	var rabbitMQ *queue.RabbitMQ
	if cfg.Queue.URL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			logger.Warnf("RabbitMQ unavailable, falling back to inline mail: %v", err)
			rabbitMQ = nil
		} else {
			logger.Info("RabbitMQ connected \n")
			defer func() {
				if err := rabbitMQ.Close(); err != nil {
					logger.Errorf("Failed to close RabbitMQ connection: %v", err)
				}
			}()
		}
	}

	app := appcontext.Application{
		Config:     &cfg,
		Logger:     logger,
		Repository: repo,
		Storage:    storage,
		Ingestor:   ingestor,
		Mailer:     mail,
		Queue:      rabbitMQ,
		JWTService: jwtService,
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Auth(rApi, _controller.Auth)
	route.V1_OAuth(rApi, _controller.OAuth)
	route.V1_Users(rApi, _controller.User, _middleware)
	route.V1_Certificates(rApi, _controller.Certificate, _middleware)
	route.V1_Verification(rApi, _controller.Verification, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
