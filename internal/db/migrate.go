package db

import (
	"fmt"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/marcp/critics-eye-backend/pkg/util"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.PasswordReset{},
		&model.ProductType{},
		&model.Genre{},
		&model.Product{},
		&model.ProductGenre{},
		&model.Review{},
		&model.Comment{},
	}
}

// AutoMigrate registers the product/genre join model and migrates the schema.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.SetupJoinTable(&model.Product{}, "Genres", &model.ProductGenre{}); err != nil {
		return fmt.Errorf("failed to set up product_genres join table: %w", err)
	}
	return gdb.AutoMigrate(Models()...)
}

// Migrate runs database migrations and seeds the defaults
func Migrate() error {
	logger.Info("Running database migrations...")

	if err := AutoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(Models()),
	})
	return nil
}

// Seed inserts the default users, product types and genres. Tables that
// already hold rows are left alone.
func Seed(gdb *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedUsers(gdb); err != nil {
		logger.Error("Failed to seed users", err)
		return err
	}
	if err := seedProductTypes(gdb); err != nil {
		logger.Error("Failed to seed product types", err)
		return err
	}
	if err := seedGenres(gdb); err != nil {
		logger.Error("Failed to seed genres", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

type seedUser struct {
	name, username, email, password string
}

var defaultUsers = []seedUser{
	{name: "Administrator", username: "admin", email: "admin@example.com", password: "admin"},
	{name: "Marc Penas", username: "marcp", email: "marc@example.com", password: "123"},
}

var (
	DefaultProductTypes = []string{"Book", "Movie", "Game"}
	DefaultGenres       = []string{"Action", "Adventure", "Fiction", "Fantasy", "Thriller"}
)

func alreadySeeded(gdb *gorm.DB, m interface{}, what string) (bool, error) {
	var count int64
	if err := gdb.Model(m).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		logger.Info(what+" already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return true, nil
	}
	return false, nil
}

func seedUsers(gdb *gorm.DB) error {
	if done, err := alreadySeeded(gdb, &model.User{}, "Users"); err != nil || done {
		return err
	}

	users := make([]model.User, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		hash, err := util.HashPassword(u.password)
		if err != nil {
			return err
		}
		users = append(users, model.User{
			Name:         u.name,
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hash,
		})
	}
	return gdb.Create(&users).Error
}

func seedProductTypes(gdb *gorm.DB) error {
	if done, err := alreadySeeded(gdb, &model.ProductType{}, "Product types"); err != nil || done {
		return err
	}

	types := make([]model.ProductType, 0, len(DefaultProductTypes))
	for _, name := range DefaultProductTypes {
		types = append(types, model.ProductType{Name: name})
	}
	return gdb.Create(&types).Error
}

func seedGenres(gdb *gorm.DB) error {
	if done, err := alreadySeeded(gdb, &model.Genre{}, "Genres"); err != nil || done {
		return err
	}

	genres := make([]model.Genre, 0, len(DefaultGenres))
	for _, name := range DefaultGenres {
		genres = append(genres, model.Genre{Name: name})
	}
	return gdb.Create(&genres).Error
}
