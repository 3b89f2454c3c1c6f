package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/marcp/critics-eye-backend/pkg/util"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Image    *string
}

// UpdateUserInput holds the fields an update sets; nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Username *string
	Email    *string
	Password *string
	Image    *string
}

type UserService interface {
	ListUsers(usernameContains string) ([]model.User, error)
	GetUser(id uint) (*model.User, error)
	CreateUser(input CreateUserInput) (*model.User, error)
	UpdateUser(id uint, input UpdateUserInput) (*model.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(usernameContains string) ([]model.User, error) {
	return s.userRepo.FindAll(usernameContains)
}

func (s *userService) GetUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(input CreateUserInput) (*model.User, error) {
	if err := checkUserUniqueness(s.userRepo, input.Username, input.Email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Image:        input.Image,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) UpdateUser(id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	var username, email string
	if input.Username != nil && *input.Username != user.Username {
		username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		email = *input.Email
	}
	if err := checkUserUniqueness(s.userRepo, username, email, id); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if input.Image != nil {
		user.Image = input.Image
	}
	if input.Password != nil {
		hashedPassword, err := util.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
