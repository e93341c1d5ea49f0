package v1

import (
	"net/http"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, limits RouteLimits) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/sendotp", limits.Auth, handler.SendOTP)
		publicAuth.POST("/signup", limits.Auth, handler.Signup)
		publicAuth.POST("/login", limits.Login, handler.Login)
		publicAuth.POST("/logout", handler.Logout)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AccountType     string `json:"account_type"`
	OTP             string `json:"otp"`
	DOB             string `json:"dob"`
	Gender          string `json:"gender"`
	ContactNo       string `json:"contact_no"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTP godoc
// @Summary      Request a signup code
// @Description  Issues a 6-digit code valid for five minutes and mails it when SMTP is configured
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      SendOTPRequest  true  "Email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /auth/sendotp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	code, err := h.authUC.RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OTP sent successfully", gin.H{"otp": code})
}

// Signup godoc
// @Summary      Register an account
// @Description  Creates a candidate or recruiter account after verifying the signup code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      SignupRequest  true  "Signup details"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AccountType:     domain.AccountType(req.AccountType),
		OTP:             req.OTP,
		DOB:             req.DOB,
		Gender:          req.Gender,
		ContactNo:       req.ContactNo,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials, sets the session cookie and returns the token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), domain.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.setSessionCookie(c, result.Token, int(h.config.CookieTTL.Seconds()))
	response.Success(c, http.StatusOK, "Logged in successfully", result)
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User fetched successfully", user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.config.CookieSecure, true)
}
