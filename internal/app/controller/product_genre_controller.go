package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type ProductGenreController struct {
	productGenreService service.ProductGenreService
}

func NewProductGenreController(productGenreService service.ProductGenreService) *ProductGenreController {
	return &ProductGenreController{
		productGenreService: productGenreService,
	}
}

type AttachGenreRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	GenreID   uint `json:"genre_id" binding:"required"`
}

// ReplaceGenresRequest carries the complete genre set; an empty list clears it.
type ReplaceGenresRequest struct {
	Genres []uint `json:"genres" binding:"required"`
}

// ListRelations handles GET /api/product-genres?product_id=&genre_id=
func (ctrl *ProductGenreController) ListRelations(c *gin.Context) {
	productID, ok := parseQueryID(c, "product_id")
	if !ok {
		return
	}
	genreID, ok := parseQueryID(c, "genre_id")
	if !ok {
		return
	}

	links, err := ctrl.productGenreService.ListRelations(productID, genreID)
	if err != nil {
		respondServiceError(c, err, "list product genres")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"product_genres": links})
}

// AttachGenre handles POST /api/product-genres
func (ctrl *ProductGenreController) AttachGenre(c *gin.Context) {
	var req AttachGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	link, err := ctrl.productGenreService.Attach(req.ProductID, req.GenreID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrGenreNotFound):
			apperrors.NotFound(c, apperrors.GenreNotFound, "Genre not found")
		case errors.Is(err, service.ErrRelationExists):
			apperrors.Conflict(c, apperrors.RelationExists, "This product already has this genre")
		default:
			respondServiceError(c, err, "attach genre")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Relation created successfully", gin.H{"product_genre": link})
}

// ReplaceGenres handles PUT /api/product-genres/:product_id
func (ctrl *ProductGenreController) ReplaceGenres(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}

	var req ReplaceGenresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid genre replace request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	links, err := ctrl.productGenreService.Replace(productID, req.Genres)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondServiceError(c, err, "replace product genres")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Relations updated successfully", gin.H{"product_genres": links})
}

// DetachAll handles DELETE /api/product-genres?product_id=
func (ctrl *ProductGenreController) DetachAll(c *gin.Context) {
	productID, ok := parseQueryID(c, "product_id")
	if !ok {
		return
	}
	if productID == nil {
		apperrors.FieldError(c, "product_id", "The product id field is required.")
		return
	}

	if _, err := ctrl.productGenreService.DetachAll(*productID); err != nil {
		if errors.Is(err, service.ErrNoRelations) {
			apperrors.NotFound(c, apperrors.RelationNotFound, "No relations found for this product")
			return
		}
		respondServiceError(c, err, "delete product genres")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "All relations deleted successfully", nil)
}
