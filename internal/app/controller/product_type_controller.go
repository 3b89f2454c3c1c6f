package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
)

type ProductTypeController struct {
	typeService service.ProductTypeService
}

func NewProductTypeController(typeService service.ProductTypeService) *ProductTypeController {
	return &ProductTypeController{
		typeService: typeService,
	}
}

// GET /api/product-types
func (ctrl *ProductTypeController) ListProductTypes(c *gin.Context) {
	types, err := ctrl.typeService.ListProductTypes()
	if err != nil {
		respondServiceError(c, err, "list product types")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"product_types": types})
}

// GET /api/product-types/:id
func (ctrl *ProductTypeController) GetProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	productType, err := ctrl.typeService.GetProductType(id)
	if err != nil {
		ctrl.respondTypeError(c, err, "get product type")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"product_type": productType})
}

// POST /api/product-types
func (ctrl *ProductTypeController) CreateProductType(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	productType, err := ctrl.typeService.CreateProductType(req.Name)
	if err != nil {
		respondServiceError(c, err, "create product type")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Type "+productType.Name+" created successfully", gin.H{
		"product_type": productType,
	})
}

// PUT /api/product-types/:id
func (ctrl *ProductTypeController) UpdateProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	productType, err := ctrl.typeService.UpdateProductType(id, req.Name)
	if err != nil {
		ctrl.respondTypeError(c, err, "update product type")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Type updated successfully", gin.H{"product_type": productType})
}

// DELETE /api/product-types/:id removes the type and, by cascade, its products.
func (ctrl *ProductTypeController) DeleteProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.typeService.DeleteProductType(id); err != nil {
		ctrl.respondTypeError(c, err, "delete product type")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "Type deleted successfully", nil)
}

func (ctrl *ProductTypeController) respondTypeError(c *gin.Context, err error, context string) {
	if errors.Is(err, service.ErrProductTypeNotFound) {
		apperrors.NotFound(c, apperrors.ProductTypeNotFound, "Product type not found")
		return
	}
	respondServiceError(c, err, context)
}
