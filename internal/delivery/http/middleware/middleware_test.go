package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	users map[string]*domain.User
}

func (s stubAuth) RequestOTP(context.Context, string) (string, error) { return "", nil }

func (s stubAuth) Register(context.Context, domain.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (s stubAuth) Login(context.Context, domain.LoginInput) (*domain.LoginResult, error) {
	return nil, nil
}

func (s stubAuth) GetCurrentUser(_ context.Context, id string) (*domain.User, error) {
	if id == "db-down" {
		return nil, apperror.Internal(errors.New("connection refused"))
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.Conflict("Already applied")) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection reset")) })

	t.Run("Should render app errors with their status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Already applied", body.Message)
	})

	t.Run("Should hide internal error details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { response.Success(c, http.StatusOK, "ok", nil) })

	t.Run("Should generate an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, decode(t, w).RequestID)
	})

	t.Run("Should keep the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestAuthMiddleware(t *testing.T) {
	signer := auth.NewSigner("test-secret", "jobboard")
	users := map[string]*domain.User{
		"u1": {ID: "u1", Email: "rec@example.com", AccountType: domain.AccountTypeRecruiter},
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.AuthMiddleware(signer, stubAuth{users: users}, nil))
	r.GET("/me", func(c *gin.Context) {
		actor, _ := domain.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": c.GetString(string(domain.KeyUserRole))})
	})
	r.POST("/jobs", middleware.RequireRole(domain.AccountTypeCandidate), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should reject a request without a token", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token is missing", decode(t, w).Message)
	})

	t.Run("Should accept a bearer token and expose the actor", func(t *testing.T) {
		token, err := signer.Sign("rec@example.com", "u1", "recruiter", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"u1","role":"recruiter"}`, w.Body.String())
	})

	t.Run("Should accept the session cookie", func(t *testing.T) {
		token, _ := signer.Sign("rec@example.com", "u1", "recruiter", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		assert.Equal(t, http.StatusOK, serve(req).Code)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token, _ := signer.Sign("rec@example.com", "u1", "recruiter", -time.Minute)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", decode(t, w).Message)
	})

	t.Run("Should reject a token for an unknown user", func(t *testing.T) {
		token, _ := signer.Sign("ghost@example.com", "ghost", "candidate", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, serve(req).Code)
	})

	t.Run("Should answer 500 when the user store fails", func(t *testing.T) {
		token, _ := signer.Sign("rec@example.com", "db-down", "recruiter", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.NotEqual(t, "User not found", decode(t, w).Message)
	})

	t.Run("Should forbid the wrong account type", func(t *testing.T) {
		token, _ := signer.Sign("rec@example.com", "u1", "recruiter", time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "This action is restricted to candidate accounts", decode(t, w).Message)
	})
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil, nil)

	r := gin.New()
	r.Use(limiter.Limit(middleware.LoginRateLimitConfig(2, time.Minute)))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	t.Run("Should count clients separately", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "198.51.100.1:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{
		GinMode:            "release",
		FrontendURL:        "https://jobs.example.com",
		CORSAllowedOrigins: []string{"https://admin.example.com"},
	}
	r := gin.New()
	r.Use(middleware.CORSMiddleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	request := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should allow configured origins", func(t *testing.T) {
		for _, origin := range []string{"https://jobs.example.com", "https://admin.example.com"} {
			w := request(origin)
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		}
	})

	t.Run("Should refuse localhost in release mode", func(t *testing.T) {
		w := request("http://localhost:3000")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}
