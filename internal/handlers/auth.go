package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfoliopal/api/internal/middleware"
	"portfoliopal/api/internal/service"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	CSRFToken   string `json:"csrf_token"`
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		IP:       c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		h.fail(c, err, "signup failed")
		return
	}

	sendTokenBundle(c, bundle)
}

// loginRequest follows the OAuth2 password form: the email travels in the
// username field.
type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect email or password"})
			return
		}
		h.fail(c, err, "login failed")
		return
	}

	sendTokenBundle(c, bundle)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

const forgotPasswordMessage = "If an account exists, a reset email has been sent"

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, err, "forgot password failed")
		return
	}

	// No outbound email channel exists; the raw token is returned for the
	// demo flow, and only when the account is real. The message is the
	// same either way.
	resp := gin.H{"message": forgotPasswordMessage}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}
		h.fail(c, err, "reset password failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func sendTokenBundle(c *gin.Context, bundle service.TokenBundle) {
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: bundle.AccessToken,
		TokenType:   bundle.TokenType,
		CSRFToken:   bundle.CSRFToken,
	})
}

// fail logs an unexpected error and returns an opaque 500.
func (h HandlerSet) fail(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).
		Str("request_id", c.Writer.Header().Get("X-Request-Id")).
		Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}
