package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	FindByReview(reviewID uint) ([]model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	logger.Debug("Creating comment in database", map[string]interface{}{
		"review_id": comment.ReviewID,
		"user_id":   comment.UserID,
	})

	if err := r.db.Omit("User", "Review").Create(comment).Error; err != nil {
		logger.Error("Failed to create comment in database", err, map[string]interface{}{
			"review_id": comment.ReviewID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("User").First(&comment, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find comment by ID in database", err, map[string]interface{}{
				"comment_id": id,
			})
		}
		return nil, err
	}
	return &comment, nil
}

// FindByReview returns the review's comments oldest first, each with its author.
func (r *commentRepository) FindByReview(reviewID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("User").
		Where("review_id = ?", reviewID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		logger.Error("Failed to find comments by review in database", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	err := r.db.Model(&model.Comment{ID: comment.ID}).
		Select("content").
		Updates(comment).Error
	if err != nil {
		logger.Error("Failed to update comment in database", err, map[string]interface{}{
			"comment_id": comment.ID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete comment from database", result.Error, map[string]interface{}{
			"comment_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
