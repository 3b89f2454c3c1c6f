package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewFilter struct {
	ProductID *uint
	UserID    *uint
}

type ScoreStats struct {
	Sum   int64 `gorm:"column:score_sum"`
	Count int64 `gorm:"column:score_count"`
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	Find(filter ReviewFilter) ([]model.Review, error)
	Update(review *model.Review) error
	Delete(id uint) error
	ScoreStats(productID uint) (ScoreStats, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"product_id": review.ProductID,
		"user_id":    review.UserID,
	})

	if err := r.db.Omit("User", "Product").Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"product_id": review.ProductID,
			"user_id":    review.UserID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
				"review_id": id,
			})
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Find(filter ReviewFilter) ([]model.Review, error) {
	query := r.db.Model(&model.Review{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var reviews []model.Review
	if err := query.Order("id ASC").Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews in database", err)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	err := r.db.Model(&model.Review{ID: review.ID}).
		Select("product_id", "title", "content", "score").
		Updates(review).Error
	if err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

// Delete removes the review and its comments.
func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil && err != gorm.ErrRecordNotFound {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
	}
	return err
}

// ScoreStats sums and counts the product's review scores in one query.
func (r *reviewRepository) ScoreStats(productID uint) (ScoreStats, error) {
	var stats ScoreStats
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(SUM(score), 0) AS score_sum, COUNT(*) AS score_count").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		logger.Error("Failed to aggregate review scores in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return ScoreStats{}, err
	}
	return stats, nil
}
