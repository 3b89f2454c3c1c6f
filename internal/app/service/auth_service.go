package service

import (
	"context"
	"errors"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/marcp/critics-eye-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenRevoker records logged-out token IDs.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Image    *string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, string, error)
	Login(emailOrUsername, password string) (*model.User, string, error)
	Logout(ctx context.Context, tokenID string, remaining time.Duration) error
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	revoker     TokenRevoker
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	revoker TokenRevoker,
	jwtSecret string,
	tokenExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		revoker:     revoker,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Register(input RegisterInput) (*model.User, string, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
	})

	if err := checkUserUniqueness(s.userRepo, input.Username, input.Email, 0); err != nil {
		return nil, "", err
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, "", err
	}

	user := &model.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Image:        input.Image,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, token, nil
}

// Login matches by email first, then by username. Both paths fail with
// ErrInvalidCredentials so callers cannot tell which part was wrong.
func (s *authService) Login(emailOrUsername, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"login": emailOrUsername,
	})

	lookups := []func(string) (*model.User, error){
		s.userRepo.FindByEmail,
		s.userRepo.FindByUsername,
	}

	for _, find := range lookups {
		user, err := find(emailOrUsername)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, "", err
		}
		if !util.VerifyPassword(user.PasswordHash, password) {
			continue
		}

		token, err := s.issueToken(user)
		if err != nil {
			return nil, "", err
		}
		logger.Info("User logged in successfully", map[string]interface{}{
			"user_id": user.ID,
		})
		return user, token, nil
	}

	logger.Warn("Login failed: invalid credentials", map[string]interface{}{
		"login": emailOrUsername,
	})
	return nil, "", ErrInvalidCredentials
}

func (s *authService) Logout(ctx context.Context, tokenID string, remaining time.Duration) error {
	if err := s.revoker.Revoke(ctx, tokenID, remaining); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}
	logger.Info("User logged out", map[string]interface{}{
		"token_id": tokenID,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	token, _, err := util.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}
	return token, nil
}

// checkUserUniqueness returns a *ValidationError naming every taken field.
// Empty values are not checked.
func checkUserUniqueness(repo repository.UserRepository, username, email string, excludeID uint) error {
	verr := &ValidationError{}

	if username != "" {
		taken, err := repo.ExistsByUsername(username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			verr.add("username", "The username has already been taken.")
		}
	}
	if email != "" {
		taken, err := repo.ExistsByEmail(email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			verr.add("email", "The email has already been taken.")
		}
	}

	if !verr.empty() {
		logger.Warn("User uniqueness check failed", map[string]interface{}{
			"fields": verr.Fields,
		})
		return verr
	}
	return nil
}
