package service

import (
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
)

// ScorePublisher receives every recomputed score. Implementations must not block.
type ScorePublisher interface {
	PublishScore(productID uint, score float64, reviewsCount int64)
}

type ScoreService interface {
	Recompute(productID uint) (float64, error)
}

type scoreService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	publisher   ScorePublisher
}

// NewScoreService builds the recompute service. publisher may be nil.
func NewScoreService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	publisher ScorePublisher,
) ScoreService {
	return &scoreService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		publisher:   publisher,
	}
}

// Recompute sets the product's score to the mean of its review scores, or 0
// when it has none, and returns the stored value.
func (s *scoreService) Recompute(productID uint) (float64, error) {
	stats, err := s.reviewRepo.ScoreStats(productID)
	if err != nil {
		logger.Error("Failed to aggregate review scores", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}

	score := 0.0
	if stats.Count > 0 {
		score = float64(stats.Sum) / float64(stats.Count)
	}

	if err := s.productRepo.UpdateScore(productID, score); err != nil {
		logger.Error("Failed to store recomputed score", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}

	logger.Info("Product score recomputed", map[string]interface{}{
		"product_id":    productID,
		"score":         score,
		"reviews_count": stats.Count,
	})

	if s.publisher != nil {
		s.publisher.PublishScore(productID, score, stats.Count)
	}
	return score, nil
}
