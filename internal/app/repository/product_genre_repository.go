package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductGenreRepository interface {
	Create(link *model.ProductGenre) error
	Find(productID, genreID *uint) ([]model.ProductGenre, error)
	Exists(productID, genreID uint) (bool, error)
	ReplaceForProduct(productID uint, genreIDs []uint) error
	DeleteByProduct(productID uint) (int64, error)
}

type productGenreRepository struct {
	db *gorm.DB
}

func NewProductGenreRepository(db *gorm.DB) ProductGenreRepository {
	return &productGenreRepository{db: db}
}

func (r *productGenreRepository) Create(link *model.ProductGenre) error {
	logger.Debug("Creating product genre link in database", map[string]interface{}{
		"product_id": link.ProductID,
		"genre_id":   link.GenreID,
	})

	if err := r.db.Omit("Product", "Genre").Create(link).Error; err != nil {
		logger.Error("Failed to create product genre link in database", err, map[string]interface{}{
			"product_id": link.ProductID,
			"genre_id":   link.GenreID,
		})
		return err
	}
	return nil
}

// Find lists links, narrowed by whichever of productID and genreID is set.
func (r *productGenreRepository) Find(productID, genreID *uint) ([]model.ProductGenre, error) {
	query := r.db.Model(&model.ProductGenre{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if genreID != nil {
		query = query.Where("genre_id = ?", *genreID)
	}

	var links []model.ProductGenre
	if err := query.Order("product_id ASC, genre_id ASC").Find(&links).Error; err != nil {
		logger.Error("Failed to find product genre links in database", err)
		return nil, err
	}
	return links, nil
}

func (r *productGenreRepository) Exists(productID, genreID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProductGenre{}).
		Where("product_id = ? AND genre_id = ?", productID, genreID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check product genre link in database", err, map[string]interface{}{
			"product_id": productID,
			"genre_id":   genreID,
		})
		return false, err
	}
	return count > 0, nil
}

// ReplaceForProduct swaps the product's genre set for genreIDs in one
// transaction. An empty slice clears it.
func (r *productGenreRepository) ReplaceForProduct(productID uint, genreIDs []uint) error {
	logger.Debug("Replacing product genres in database", map[string]interface{}{
		"product_id": productID,
		"genre_ids":  genreIDs,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductGenre{}).Error; err != nil {
			return err
		}
		if len(genreIDs) == 0 {
			return nil
		}

		seen := make(map[uint]bool, len(genreIDs))
		links := make([]model.ProductGenre, 0, len(genreIDs))
		for _, id := range genreIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			links = append(links, model.ProductGenre{ProductID: productID, GenreID: id})
		}
		return tx.Omit("Product", "Genre").Create(&links).Error
	})
	if err != nil {
		logger.Error("Failed to replace product genres in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *productGenreRepository) DeleteByProduct(productID uint) (int64, error) {
	logger.Debug("Deleting product genre links from database", map[string]interface{}{
		"product_id": productID,
	})

	result := r.db.Where("product_id = ?", productID).Delete(&model.ProductGenre{})
	if result.Error != nil {
		logger.Error("Failed to delete product genre links from database", result.Error, map[string]interface{}{
			"product_id": productID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
