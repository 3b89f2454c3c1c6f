package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

type CreateCommentRequest struct {
	ReviewID uint   `json:"review_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=1000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// ListComments handles GET /api/comments?review_id=
func (ctrl *CommentController) ListComments(c *gin.Context) {
	reviewID, ok := parseQueryID(c, "review_id")
	if !ok {
		return
	}
	if reviewID == nil {
		apperrors.FieldError(c, "review_id", "The review id field is required.")
		return
	}

	comments, err := ctrl.commentService.ListComments(*reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.FieldError(c, "review_id", "The selected review id is invalid.")
			return
		}
		respondServiceError(c, err, "list comments")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"comments": comments})
}

// GetComment handles GET /api/comments/:id
func (ctrl *CommentController) GetComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := ctrl.commentService.GetComment(id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
			return
		}
		respondServiceError(c, err, "get comment")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"comment": comment})
}

// CreateComment handles POST /api/comments
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	comment, err := ctrl.commentService.CreateComment(userID, req.ReviewID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		respondServiceError(c, err, "create comment")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Comment added successfully.", gin.H{"comment": comment})
}

// UpdateComment handles PUT /api/comments/:id
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	comment, err := ctrl.commentService.UpdateComment(id, userID, req.Content)
	if err != nil {
		ctrl.respondCommentError(c, err, "update comment")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Comment updated successfully.", gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:id
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.commentService.DeleteComment(id, userID); err != nil {
		ctrl.respondCommentError(c, err, "delete comment")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Comment deleted successfully.", nil)
}

func (ctrl *CommentController) respondCommentError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
	case errors.Is(err, service.ErrNotCommentOwner):
		middleware.GetLoggerFromContext(c).Warn("Comment owner check failed", map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Unauthorized action.")
	default:
		respondServiceError(c, err, context)
	}
}
