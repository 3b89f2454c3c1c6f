package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewInput struct {
	ProductID uint
	Title     string
	Content   string
	Score     int
}

// ReviewPatch holds the fields an update sets; nil fields are kept.
type ReviewPatch struct {
	ProductID *uint
	Title     *string
	Content   *string
	Score     *int
}

type ReviewService interface {
	ListReviews(filter repository.ReviewFilter) ([]model.Review, error)
	GetReview(id uint) (*model.Review, error)
	FindUserReview(productID, userID uint) (*model.Review, error)
	CreateReview(userID uint, input ReviewInput) (*model.Review, error)
	UpdateReview(id uint, patch ReviewPatch) (*model.Review, error)
	DeleteReview(id uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	scores      ScoreService
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	scores ScoreService,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		scores:      scores,
	}
}

func (s *reviewService) ListReviews(filter repository.ReviewFilter) ([]model.Review, error) {
	return s.reviewRepo.Find(filter)
}

func (s *reviewService) GetReview(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) FindUserReview(productID, userID uint) (*model.Review, error) {
	reviews, err := s.reviewRepo.Find(repository.ReviewFilter{ProductID: &productID, UserID: &userID})
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrReviewNotFound
	}
	return &reviews[0], nil
}

func (s *reviewService) CreateReview(userID uint, input ReviewInput) (*model.Review, error) {
	if err := s.requireProduct(input.ProductID); err != nil {
		return nil, err
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: input.ProductID,
		Title:     input.Title,
		Content:   input.Content,
		Score:     input.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	if _, err := s.scores.Recompute(review.ProductID); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"user_id":    userID,
	})
	return review, nil
}

// UpdateReview applies patch and recomputes the affected products, both of
// them when the review moves to another product.
func (s *reviewService) UpdateReview(id uint, patch ReviewPatch) (*model.Review, error) {
	review, err := s.GetReview(id)
	if err != nil {
		return nil, err
	}
	previousProductID := review.ProductID

	if patch.ProductID != nil && *patch.ProductID != review.ProductID {
		if err := s.requireProduct(*patch.ProductID); err != nil {
			return nil, err
		}
		review.ProductID = *patch.ProductID
	}
	if patch.Title != nil {
		review.Title = *patch.Title
	}
	if patch.Content != nil {
		review.Content = *patch.Content
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	if _, err := s.scores.Recompute(review.ProductID); err != nil {
		return nil, err
	}
	if previousProductID != review.ProductID {
		if _, err := s.scores.Recompute(previousProductID); err != nil {
			return nil, err
		}
	}

	logger.Info("Review updated", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
	})
	return review, nil
}

func (s *reviewService) DeleteReview(id uint) error {
	review, err := s.GetReview(id)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(review.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if _, err := s.scores.Recompute(review.ProductID); err != nil {
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
	})
	return nil
}

func (s *reviewService) requireProduct(productID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
