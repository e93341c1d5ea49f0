package middleware

import (
	"strings"
	"time"

	"go-jobboard-backend/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:5173": true,
}

// CORSMiddleware allows the configured frontend plus CORS_ALLOWED_ORIGINS.
// Local development origins are only accepted outside release mode.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORSAllowedOrigins)+1)
	if cfg.FrontendURL != "" {
		allowed[cfg.FrontendURL] = true
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		allowed[origin] = true
	}
	production := cfg.IsProduction()

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			origin = strings.TrimRight(origin, "/")
			if allowed[origin] {
				return true
			}
			return !production && devOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
