package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Title     string `json:"title" binding:"required,max=50"`
	Content   string `json:"content" binding:"required,max=255"`
	Score     int    `json:"score" binding:"required,min=1,max=100"`
}

type UpdateReviewRequest struct {
	ProductID *uint   `json:"product_id" binding:"omitempty,gt=0"`
	Title     *string `json:"title" binding:"omitempty,max=50"`
	Content   *string `json:"content" binding:"omitempty,max=255"`
	Score     *int    `json:"score" binding:"omitempty,min=1,max=100"`
}

// ListReviews handles GET /api/reviews?product_id=&user_id=
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	productID, ok := parseQueryID(c, "product_id")
	if !ok {
		return
	}
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(repository.ReviewFilter{
		ProductID: productID,
		UserID:    userID,
	})
	if err != nil {
		respondServiceError(c, err, "list reviews")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"reviews": reviews})
}

// GetReview handles GET /api/reviews/:id
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetReview(id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		respondServiceError(c, err, "get review")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"review": review})
}

// HasReview handles GET /api/reviews/has-review and GET /api/hasReview
func (ctrl *ReviewController) HasReview(c *gin.Context) {
	productID, ok := parseQueryID(c, "product_id")
	if !ok {
		return
	}
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}
	if productID == nil || userID == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Both product_id and user_id are required.")
		return
	}

	review, err := ctrl.reviewService.FindUserReview(*productID, *userID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found.")
			return
		}
		respondServiceError(c, err, "find review")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"review": review})
}

// CreateReview handles POST /api/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, service.ReviewInput{
		ProductID: req.ProductID,
		Title:     req.Title,
		Content:   req.Content,
		Score:     req.Score,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondServiceError(c, err, "create review")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Review added and score updated", gin.H{"review": review})
}

// UpdateReview handles PUT /api/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	review, err := ctrl.reviewService.UpdateReview(id, service.ReviewPatch{
		ProductID: req.ProductID,
		Title:     req.Title,
		Content:   req.Content,
		Score:     req.Score,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			respondServiceError(c, err, "update review")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Review updated and score recalculated", gin.H{"review": review})
}

// DeleteReview handles DELETE /api/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		respondServiceError(c, err, "delete review")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Review deleted and score recalculated", nil)
}
