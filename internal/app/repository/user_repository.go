package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll(usernameContains string) ([]model.User, error)
	ExistsByUsername(username string, excludeID uint) (bool, error)
	ExistsByEmail(email string, excludeID uint) (bool, error)
	Update(user *model.User) error
	UpdateImage(id uint, url string) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	logger.Debug("Finding user by email in database", map[string]interface{}{
		"email": email,
	})

	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find user by email in database", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	logger.Debug("Finding user by username in database", map[string]interface{}{
		"username": username,
	})

	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find user by username in database", err, map[string]interface{}{
				"username": username,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(usernameContains string) ([]model.User, error) {
	logger.Debug("Finding users in database", map[string]interface{}{
		"username_contains": usernameContains,
	})

	query := r.db.Model(&model.User{}).Order("id ASC")
	if usernameContains != "" {
		query = query.Where("username LIKE ?", "%"+usernameContains+"%")
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		logger.Error("Failed to find users in database", err)
		return nil, err
	}
	return users, nil
}

func (r *userRepository) exists(column, value string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check user uniqueness in database", err, map[string]interface{}{
			"column": column,
		})
		return false, err
	}
	return count > 0, nil
}

// ExistsByUsername ignores the row with excludeID, so an update can keep its own username.
func (r *userRepository) ExistsByUsername(username string, excludeID uint) (bool, error) {
	return r.exists("username", username, excludeID)
}

func (r *userRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	return r.exists("email", email, excludeID)
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) UpdateImage(id uint, url string) error {
	logger.Debug("Updating user image in database", map[string]interface{}{
		"user_id": id,
	})

	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("image", url).Error; err != nil {
		logger.Error("Failed to update user image in database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete user from database", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
