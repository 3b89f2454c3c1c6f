package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("comment belongs to another user")
)

type CommentService interface {
	ListComments(reviewID uint) ([]model.Comment, error)
	GetComment(id uint) (*model.Comment, error)
	CreateComment(userID, reviewID uint, content string) (*model.Comment, error)
	UpdateComment(id, userID uint, content string) (*model.Comment, error)
	DeleteComment(id, userID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// ListComments returns ErrReviewNotFound when the review does not exist.
func (s *commentService) ListComments(reviewID uint) ([]model.Comment, error) {
	if err := s.requireReview(reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByReview(reviewID)
}

func (s *commentService) GetComment(id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) CreateComment(userID, reviewID uint, content string) (*model.Comment, error) {
	if err := s.requireReview(reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{ReviewID: reviewID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	logger.Info("Comment created", map[string]interface{}{
		"comment_id": comment.ID,
		"review_id":  reviewID,
		"user_id":    userID,
	})
	return comment, nil
}

func (s *commentService) UpdateComment(id, userID uint, content string) (*model.Comment, error) {
	comment, err := s.ownedComment(id, userID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(id, userID uint) error {
	if _, err := s.ownedComment(id, userID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	logger.Info("Comment deleted", map[string]interface{}{
		"comment_id": id,
		"user_id":    userID,
	})
	return nil
}

func (s *commentService) ownedComment(id, userID uint) (*model.Comment, error) {
	comment, err := s.GetComment(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		logger.Warn("Comment ownership check failed", map[string]interface{}{
			"comment_id": id,
			"owner_id":   comment.UserID,
			"user_id":    userID,
		})
		return nil, ErrNotCommentOwner
	}
	return comment, nil
}

func (s *commentService) requireReview(reviewID uint) error {
	if _, err := s.reviewRepo.FindByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
