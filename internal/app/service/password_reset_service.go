package service

import (
	"errors"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/marcp/critics-eye-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrResetEmailNotFound = errors.New("no user found with this email address")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrResetTokenExpired  = errors.New("reset token has expired")
	ErrResetTokenUsed     = errors.New("reset token has already been used")
	ErrResetMailFailed    = errors.New("failed to send reset email")
)

const (
	// ResetTokenExpiry is the duration for which a reset token is valid
	ResetTokenExpiry = 1 * time.Hour
	// ResetTokenLength is the byte length of the reset token
	ResetTokenLength = 32
)

// ResetMailer delivers the reset link.
type ResetMailer interface {
	SendPasswordReset(toEmail, toName, token string) error
}

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
	PurgeExpired() (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
	mailer    ResetMailer
	now       func() time.Time
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	mailer ResetMailer,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		now:       time.Now,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return ErrResetEmailNotFound
		}
		return err
	}

	token, err := util.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		logger.Error("Failed to generate reset token", err)
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: s.now().Add(ResetTokenExpiry),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.Name, token); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return ErrResetMailFailed
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": reset.ExpiresAt,
	})
	return nil
}

func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	logger.Info("Processing password reset with token")

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Unknown reset token provided")
			return ErrInvalidResetToken
		}
		return err
	}

	if reset.Used {
		logger.Warn("Reset token already used", map[string]interface{}{
			"reset_id": reset.ID,
		})
		return ErrResetTokenUsed
	}
	if reset.Expired(s.now()) {
		logger.Warn("Reset token expired", map[string]interface{}{
			"reset_id":   reset.ID,
			"expires_at": reset.ExpiresAt,
		})
		return ErrResetTokenExpired
	}

	user, err := s.userRepo.FindByEmail(reset.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.resetRepo.MarkAsUsed(reset.ID); err != nil {
		return err
	}

	logger.Info("Password reset successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *passwordResetService) PurgeExpired() (int64, error) {
	return s.resetRepo.DeleteExpired(s.now())
}
