package controller

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type UploadController struct {
	imageService service.ImageService
}

func NewUploadController(imageService service.ImageService) *UploadController {
	return &UploadController{
		imageService: imageService,
	}
}

type ProductImageRequest struct {
	ProductID uint `form:"product_id" binding:"required"`
}

type ProfileImageRequest struct {
	UserID uint `form:"user_id" binding:"required"`
}

// UploadProductImage stores a new product image and saves its URL
// POST /api/uploadProductImage (multipart: image, product_id)
func (ctrl *UploadController) UploadProductImage(c *gin.Context) {
	var req ProductImageRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	ctrl.upload(c, "upload product image", func(upload service.ImageUpload) (string, error) {
		return ctrl.imageService.ReplaceProductImage(c.Request.Context(), req.ProductID, upload)
	}, "Image uploaded successfully")
}

// UploadProfileImage stores a new profile image for the caller
// POST /api/uploadProfileImage (multipart: image, user_id)
func (ctrl *UploadController) UploadProfileImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfileImageRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}
	if req.UserID != userID {
		middleware.GetLoggerFromContext(c).Warn("Profile image upload for another user", map[string]interface{}{
			"target_user_id": req.UserID,
		})
		apperrors.Forbidden(c, "")
		return
	}

	ctrl.upload(c, "upload profile image", func(upload service.ImageUpload) (string, error) {
		return ctrl.imageService.ReplaceUserImage(c.Request.Context(), req.UserID, upload)
	}, "Profile image uploaded successfully")
}

func (ctrl *UploadController) upload(c *gin.Context, context string, replace func(service.ImageUpload) (string, error), message string) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("image")
	if err != nil {
		apperrors.FieldError(c, "image", "The image field is required.")
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload image")
		return
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	url, err := replace(service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, service.ErrImageUploadFailed) {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload image")
			return
		}
		respondServiceError(c, err, context)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, message, gin.H{"url": url})
}
