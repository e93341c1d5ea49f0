package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/mongostore"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/mongodb"
	"go-jobboard-backend/pkg/password"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/security/antivirus"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// @title           Job Board API
// @version         1.0
// @description     Job board with OTP signup, job postings, applications and a social feed.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "mode", cfg.GinMode)

	// 3. Security event logger
	secLogger := security.NewSecurityLogger("jobboard-api", cfg.GinMode)
	defer func() { _ = secLogger.Sync() }()

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// 5. Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 6. MongoDB for the social feed (optional)
	var mongoClient *mongo.Client
	if cfg.FeedEnabled() {
		mongoClient, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
		if err != nil {
			logger.Log.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()

		if err := mongostore.EnsureIndexes(ctx, mongoClient.Database(cfg.MongoDB)); err != nil {
			logger.Log.Error("Failed to create feed indexes", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("MONGO_URI not configured - feed routes disabled")
	}

	// 7. Resume storage (optional)
	var fileStore domain.FileStore
	if cfg.ResumeStorageEnabled() {
		storageCfg := storage.Config{
			Provider:        storage.Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		}
		s3Client, err := storage.NewS3Client(ctx, storageCfg)
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		fileStore = storage.NewS3Store(s3Client, storageCfg)
	} else {
		logger.Log.Warn("S3 not configured - resume uploads disabled")
	}

	// 8. Setup Email Service
	var mailer domain.OTPSender
	emailService := email.NewEmailService(cfg)
	if emailService.IsConfigured() {
		mailer = emailService
	} else {
		logger.Log.Warn("Email service not fully configured - OTP codes are only returned in the response")
	}

	// 9. Setup Repositories
	txManager := postgres.NewTxManager(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	otpRepo := postgres.NewOTPRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 10. Session, hashing and brute-force protection
	signer := auth.NewSigner(cfg.JWTSecret, "jobboard-api")
	hasher := password.NewHasher(cfg.BcryptCost)
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLogger)

	// 11. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
		Users:     userRepo,
		Profiles:  profileRepo,
		OTPs:      otpRepo,
		Tx:        txManager,
		Hasher:    hasher,
		Tokens:    signer,
		Guard:     loginTracker,
		Mailer:    mailer,
		Validate:  validate,
		SecLogger: secLogger,
		TokenTTL:  cfg.TokenTTL,
		OTPTTL:    cfg.OTPTTL,
	})
	profileUC := usecase.NewProfileUsecase(userRepo, profileRepo, jobRepo, txManager, validate)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, jobRepo, secLogger)
	jobUC := usecase.NewJobUsecase(jobRepo, categoryRepo, applicationRepo, txManager, secLogger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, secLogger)

	var resumeUC domain.ResumeUsecase
	if fileStore != nil {
		uploadLimiter := security.NewUploadLimiter(redisClient, cfg.UploadsPerMinute, cfg.UploadsPerDay)
		var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
		if cfg.ClamAVAddress != "" {
			scanner = antivirus.NewClamAVScanner(cfg.ClamAVAddress, cfg.ClamAVTimeout)
		} else {
			logger.Log.Warn("CLAMAV_ADDRESS not configured - resumes are stored unscanned")
		}
		resumeUC = usecase.NewResumeUsecase(fileStore, uploadLimiter, scanner, cfg.ResumeMaxBytes, secLogger)
	}

	var feedUC domain.FeedUsecase
	optionalChecks := map[string]usecase.HealthCheck{"redis": nil, "mongodb": nil}
	if redisClient != nil {
		optionalChecks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	if mongoClient != nil {
		feedUC = usecase.NewFeedUsecase(
			mongostore.NewTweetRepository(mongodb.OpenCollection(mongoClient, cfg.MongoDB, mongostore.TweetCollection)),
			mongostore.NewCommentRepository(mongodb.OpenCollection(mongoClient, cfg.MongoDB, mongostore.CommentCollection)),
			userRepo,
			secLogger,
		)
		optionalChecks["mongodb"] = func(ctx context.Context) error { return mongodb.HealthCheck(ctx, mongoClient) }
	}
	healthUC := usecase.NewHealthUsecase(dbPool.Ping, optionalChecks)

	// 12. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		CategoryUC:    categoryUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		ResumeUC:      resumeUC,
		FeedUC:        feedUC,
		Verifier:      signer,
		Redis:         redisClient,
		SecLogger:     secLogger,
		Config:        cfg,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
