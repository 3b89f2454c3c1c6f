package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *model.Genre) error
	FindAll() ([]model.Genre, error)
	FindByID(id uint) (*model.Genre, error)
	ExistsByName(name string, excludeID uint) (bool, error)
	CountByIDs(ids []uint) (int64, error)
	Update(genre *model.Genre) error
	Delete(id uint) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *model.Genre) error {
	logger.Debug("Creating genre in database", map[string]interface{}{
		"name": genre.Name,
	})

	if err := r.db.Create(genre).Error; err != nil {
		logger.Error("Failed to create genre in database", err, map[string]interface{}{
			"name": genre.Name,
		})
		return err
	}
	return nil
}

func (r *genreRepository) FindAll() ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.Order("id ASC").Find(&genres).Error; err != nil {
		logger.Error("Failed to find genres in database", err)
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) FindByID(id uint) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find genre by ID in database", err, map[string]interface{}{
				"genre_id": id,
			})
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Genre{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check genre name in database", err, map[string]interface{}{
			"name": name,
		})
		return false, err
	}
	return count > 0, nil
}

// CountByIDs reports how many of the given ids name an existing genre.
func (r *genreRepository) CountByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.Model(&model.Genre{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		logger.Error("Failed to count genres in database", err)
		return 0, err
	}
	return count, nil
}

func (r *genreRepository) Update(genre *model.Genre) error {
	logger.Debug("Updating genre in database", map[string]interface{}{
		"genre_id": genre.ID,
	})

	if err := r.db.Save(genre).Error; err != nil {
		logger.Error("Failed to update genre in database", err, map[string]interface{}{
			"genre_id": genre.ID,
		})
		return err
	}
	return nil
}

// Delete also drops the genre's product links.
func (r *genreRepository) Delete(id uint) error {
	logger.Debug("Deleting genre from database", map[string]interface{}{
		"genre_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&model.ProductGenre{}).Error; err != nil {
			logger.Error("Failed to delete genre links from database", err, map[string]interface{}{
				"genre_id": id,
			})
			return err
		}
		result := tx.Delete(&model.Genre{}, id)
		if result.Error != nil {
			logger.Error("Failed to delete genre from database", result.Error, map[string]interface{}{
				"genre_id": id,
			})
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
