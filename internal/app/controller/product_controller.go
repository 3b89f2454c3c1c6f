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

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Title       string  `json:"title" binding:"required,max=50"`
	Description string  `json:"description" binding:"required,max=255"`
	TypeID      uint    `json:"type_id" binding:"required"`
	Author      string  `json:"author" binding:"required,max=50"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		TypeID:      r.TypeID,
		Author:      r.Author,
		Image:       r.Image,
	}
}

// ListProducts handles GET /api/products
// Query params: any filterable column, title_contains, sort=field:dir, limit, created_at=this_week
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidFilter) {
			apperrors.Unprocessable(c, apperrors.ValidationInvalidFilter, "Invalid filter value")
			return
		}
		respondServiceError(c, err, "list products")
		return
	}

	log.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"products": products})
}

// GetProduct handles GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondServiceError(c, err, "get product")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"product": product})
}

// CreateProduct handles POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, req.input())
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct handles PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.input())
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondServiceError(c, err, "update product")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondServiceError(c, err, "delete product")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, "Product deleted successfully", nil)
}
