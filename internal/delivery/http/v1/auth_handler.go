package v1

import (
	"errors"
	"net/http"

	"go-devconnector-backend/internal/delivery/http/middleware"
	"go-devconnector-backend/internal/delivery/http/response"
	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"
	"go-devconnector-backend/pkg/logger"
	"go-devconnector-backend/pkg/metrics"
	"go-devconnector-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	tracker *security.LoginTracker
	secLog  *security.SecurityLogger
}

// TokenResponse is returned by registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, tracker *security.LoginTracker, secLog *security.SecurityLogger, authLimit gin.HandlerFunc) {
	if secLog == nil {
		secLog = security.Nop()
	}
	if tracker == nil {
		tracker = security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), secLog)
	}
	handler := &AuthHandler{
		authUC:  authUC,
		tracker: tracker,
		secLog:  secLog,
	}

	public.POST("/users", authLimit, handler.Register)
	public.POST("/auth", authLimit, handler.Login)
	protected.GET("/auth", handler.Me)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// Register godoc
// @Summary      Register user
// @Description  Creates an account and returns an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterInput  true  "Name, email and password"
// @Success      201   {object}  response.Response{data=TokenResponse}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /users [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input domain.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	token, err := h.authUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered", TokenResponse{Token: token})
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges email and password for an access token. Repeated failures block the email for a while.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Email and password"
// @Success      200          {object}  response.Response{data=TokenResponse}
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /auth [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input domain.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()
	requestID := middleware.RequestIDFrom(c)

	blocked, err := h.tracker.IsBlocked(ctx, input.Email, ip)
	if err != nil {
		logger.Log.Warn("login tracker unavailable", "error", err, "request_id", requestID)
	}
	if blocked {
		h.secLog.LogLoginBlocked(ctx, input.Email, ip, requestID)
		metrics.RecordLoginFailure(true)
		c.Error(domain.ErrLoginBlocked)
		return
	}

	session, err := h.authUC.Authenticate(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			nowBlocked, trackErr := h.tracker.RecordFailedAttempt(ctx, input.Email, ip, requestID)
			if trackErr != nil {
				logger.Log.Warn("failed to record login attempt", "error", trackErr, "request_id", requestID)
			}
			metrics.RecordLoginFailure(nowBlocked)
		}
		c.Error(err)
		return
	}

	if err := h.tracker.ClearAttempts(ctx, input.Email, ip); err != nil {
		logger.Log.Warn("failed to clear login attempts", "error", err, "request_id", requestID)
	}
	h.secLog.LogLoginSuccess(ctx, session.UserID, ip, requestID)

	response.Success(c, http.StatusOK, "Login successful", TokenResponse{Token: session.Token})
}

// Me godoc
// @Summary      Current user
// @Description  Returns the authenticated user without the password hash
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth [get]
// @Security     ApiKeyAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current user", user)
}
