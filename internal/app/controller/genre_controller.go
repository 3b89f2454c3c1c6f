package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
)

type GenreController struct {
	genreService service.GenreService
}

func NewGenreController(genreService service.GenreService) *GenreController {
	return &GenreController{
		genreService: genreService,
	}
}

// NameRequest is the body for genres and product types.
type NameRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// GET /api/genres
func (ctrl *GenreController) ListGenres(c *gin.Context) {
	genres, err := ctrl.genreService.ListGenres()
	if err != nil {
		respondServiceError(c, err, "list genres")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"genres": genres})
}

// GET /api/genres/:id
func (ctrl *GenreController) GetGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	genre, err := ctrl.genreService.GetGenre(id)
	if err != nil {
		ctrl.respondGenreError(c, err, "get genre")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"genre": genre})
}

// POST /api/genres
func (ctrl *GenreController) CreateGenre(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	genre, err := ctrl.genreService.CreateGenre(req.Name)
	if err != nil {
		respondServiceError(c, err, "create genre")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Genre created successfully", gin.H{"genre": genre})
}

// PUT /api/genres/:id
func (ctrl *GenreController) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	genre, err := ctrl.genreService.UpdateGenre(id, req.Name)
	if err != nil {
		ctrl.respondGenreError(c, err, "update genre")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Genre updated successfully", gin.H{"genre": genre})
}

// DELETE /api/genres/:id
func (ctrl *GenreController) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.genreService.DeleteGenre(id); err != nil {
		ctrl.respondGenreError(c, err, "delete genre")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Genre deleted successfully", nil)
}

func (ctrl *GenreController) respondGenreError(c *gin.Context, err error, context string) {
	if errors.Is(err, service.ErrGenreNotFound) {
		apperrors.NotFound(c, apperrors.GenreNotFound, "Genre not found")
		return
	}
	respondServiceError(c, err, context)
}
