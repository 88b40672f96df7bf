package handlers

import (
	"errors"
	"net/http"

	"homely/services/provider"
	"homely/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and OTP verification for both account types.
type AuthHandler struct {
	Users     user.UserService
	Providers provider.ProviderService
}

func NewAuthHandler(users user.UserService, providers provider.ProviderService) *AuthHandler {
	return &AuthHandler{Users: users, Providers: providers}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type resendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterUserHandler handles customer registration.
func (h *AuthHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req user.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	registered, err := h.Users.Register(req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": registered, "message": "Verification code sent"})
}

// AuthenticateUserHandler handles customer login.
func (h *AuthHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		var pending user.OTPPendingError
		if errors.As(err, &pending) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account not verified", "otpPending": true, "email": pending.Email})
			return
		}
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyUserOTPHandler completes customer registration.
func (h *AuthHandler) VerifyUserOTPHandler(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Users.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "OTP verification failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendUserOTPHandler re-sends the customer verification code.
func (h *AuthHandler) ResendUserOTPHandler(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Users.ResendOTP(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// RegisterProviderHandler handles provider registration.
func (h *AuthHandler) RegisterProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req provider.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	registered, err := h.Providers.Register(req)
	if err != nil {
		if errors.Is(err, provider.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Provider registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": registered, "message": "Verification code sent"})
}

// AuthenticateProviderHandler handles provider login.
func (h *AuthHandler) AuthenticateProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Providers.Authenticate(req.Email, req.Password)
	if err != nil {
		var pending provider.OTPPendingError
		if errors.As(err, &pending) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account not verified", "otpPending": true, "email": pending.Email})
			return
		}
		if errors.Is(err, provider.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Provider login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyProviderOTPHandler completes provider registration.
func (h *AuthHandler) VerifyProviderOTPHandler(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Providers.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "OTP verification failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendProviderOTPHandler re-sends the provider verification code.
func (h *AuthHandler) ResendProviderOTPHandler(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Providers.ResendOTP(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}
