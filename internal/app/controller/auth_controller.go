package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
}

func NewAuthController(authService service.AuthService, passwordResetService service.PasswordResetService) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
	}
}

type RegisterRequest struct {
	Name                 string  `json:"name" binding:"required,max=255"`
	Username             string  `json:"username" binding:"required,max=255"`
	Email                string  `json:"email" binding:"required,email"`
	Password             string  `json:"password" binding:"required,min=5"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"required,eqfield=Password"`
	Image                *string `json:"image" binding:"omitempty,max=512"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type SendPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token                string `json:"token" binding:"required"`
	Password             string `json:"password" binding:"required,min=5"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// Register handles user registration
// POST /api/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	user, token, err := ctrl.authService.Register(service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		respondServiceError(c, err, "register user")
		return
	}

	log.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
	})
	apperrors.RespondWithSuccess(c, http.StatusOK, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles login by email or username
// POST /api/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	user, token, err := ctrl.authService.Login(req.EmailOrUsername, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.NotFound(c, apperrors.AuthInvalidCredentials, "Login Error: Invalid credentials")
			return
		}
		respondServiceError(c, err, "login")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token
// POST /api/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), principal.TokenID, principal.RemainingLifetime()); err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to revoke token", err, map[string]interface{}{
			"user_id": principal.UserID,
		})
		apperrors.InternalError(c, "Failed to log out")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Successfully logged out", nil)
}

// Me returns the authenticated user
// GET /api/user
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		respondServiceError(c, err, "get user")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"user": user})
}

// SendPasswordReset mails a reset link
// POST /api/sendPasswordReset
func (ctrl *AuthController) SendPasswordReset(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SendPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	if err := ctrl.passwordResetService.RequestReset(strings.TrimSpace(req.Email)); err != nil {
		switch {
		case errors.Is(err, service.ErrResetEmailNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "No user found with this email address")
		case errors.Is(err, service.ErrResetMailFailed):
			log.Error("Password reset email failed", err)
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ResetMailFailed, "Failed to send email")
		default:
			respondServiceError(c, err, "request password reset")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Password reset email sent successfully", nil)
}

// ResetPassword consumes a reset token
// POST /api/resetPassword
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	if err := ctrl.passwordResetService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			apperrors.NotFound(c, apperrors.ResetTokenNotFound, "Invalid reset token")
		case errors.Is(err, service.ErrResetTokenExpired):
			apperrors.Gone(c, apperrors.ResetTokenExpired, "Reset token has expired")
		case errors.Is(err, service.ErrResetTokenUsed):
			apperrors.Conflict(c, apperrors.ResetTokenUsed, "Reset token has already been used")
		default:
			respondServiceError(c, err, "reset password")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Password has been reset successfully", nil)
}
