package v1

import (
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	CategoryUC    domain.CategoryUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      domain.HealthUsecase
	ResumeUC      domain.ResumeUsecase // nil when S3 is not configured
	FeedUC        domain.FeedUsecase   // nil when MongoDB is not configured
	Verifier      middleware.TokenVerifier
	Redis         *goredis.Client // nil falls back to in-memory rate limiting
	SecLogger     *security.SecurityLogger
	Config        *config.Config
}

// RouteLimits are the per-route rate limiters handed to handlers.
type RouteLimits struct {
	Auth   gin.HandlerFunc
	Login  gin.HandlerFunc
	Upload gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	// Binding tags share the custom validators used by the usecases
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	limiter := middleware.NewRateLimiter(deps.Redis, deps.SecLogger)
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	limits := RouteLimits{
		Auth:   limiter.Limit(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window)),
		Login:  limiter.Limit(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)),
		Upload: limiter.Limit(middleware.UploadRateLimitConfig(cfg.UploadsPerMinute, time.Minute)),
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Limit(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	api := r.Group("/api/v1")

	NewHealthHandler(api, deps.HealthUC)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.AuthUC, deps.SecLogger))

	NewAuthHandler(api, protected, deps.AuthUC, cfg, limits)
	NewProfileHandler(protected, deps.ProfileUC)
	NewCategoryHandler(api, protected, deps.CategoryUC)
	NewJobHandler(api, protected, deps.JobUC)
	NewApplicationHandler(protected, deps.ApplicationUC)

	if deps.ResumeUC != nil {
		NewResumeHandler(protected, deps.ResumeUC, cfg.ResumeMaxBytes, limits.Upload)
	}
	if deps.FeedUC != nil {
		NewFeedHandler(protected, deps.FeedUC)
	}

	return r
}
