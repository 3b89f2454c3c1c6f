package service

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/storage"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrImageUploadFailed = errors.New("failed to upload image")

const (
	productImageFolder = "products"
	userImageFolder    = "users"
)

// ImageStorage puts and removes image objects on the media host.
type ImageStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, fileURL string) error
	IsManagedURL(fileURL string) bool
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService interface {
	ReplaceProductImage(ctx context.Context, productID uint, upload ImageUpload) (string, error)
	ReplaceUserImage(ctx context.Context, userID uint, upload ImageUpload) (string, error)
}

type imageService struct {
	storage     ImageStorage
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	maxBytes    int64
}

func NewImageService(
	storage ImageStorage,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	maxSizeKB int64,
) ImageService {
	return &imageService{
		storage:     storage,
		productRepo: productRepo,
		userRepo:    userRepo,
		maxBytes:    maxSizeKB * 1024,
	}
}

func (s *imageService) ReplaceProductImage(ctx context.Context, productID uint, upload ImageUpload) (string, error) {
	if err := s.validate(upload); err != nil {
		return "", err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newValidationError("product_id", "The selected product id is invalid.")
		}
		return "", err
	}

	url, err := s.replace(ctx, productImageFolder, product.ImageURL(), upload)
	if err != nil {
		return "", err
	}
	if err := s.productRepo.UpdateImage(productID, url); err != nil {
		return "", err
	}

	logger.Info("Product image replaced", map[string]interface{}{
		"product_id": productID,
		"url":        url,
	})
	return url, nil
}

func (s *imageService) ReplaceUserImage(ctx context.Context, userID uint, upload ImageUpload) (string, error) {
	if err := s.validate(upload); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newValidationError("user_id", "The selected user id is invalid.")
		}
		return "", err
	}

	url, err := s.replace(ctx, userImageFolder, user.ImageURL(), upload)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateImage(userID, url); err != nil {
		return "", err
	}

	logger.Info("Profile image replaced", map[string]interface{}{
		"user_id": userID,
		"url":     url,
	})
	return url, nil
}

func (s *imageService) validate(upload ImageUpload) error {
	err := storage.ValidateImage(upload.Filename, upload.ContentType, upload.Size, s.maxBytes)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrImageTooLarge):
		return newValidationError("image", "The image may not be greater than "+strconv.FormatInt(s.maxBytes/1024, 10)+" kilobytes.")
	default:
		return newValidationError("image", "The image must be a file of type: jpeg, jpg, png, gif.")
	}
}

// replace deletes the current object when this storage manages it, then
// uploads the new one. A failed delete does not stop the upload.
func (s *imageService) replace(ctx context.Context, folder, currentURL string, upload ImageUpload) (string, error) {
	if currentURL != "" && s.storage.IsManagedURL(currentURL) {
		if err := s.storage.Delete(ctx, currentURL); err != nil {
			logger.Warn("Failed to delete previous image", map[string]interface{}{
				"url":   currentURL,
				"error": err.Error(),
			})
		}
	}

	url, err := s.storage.Upload(ctx, folder, upload.Filename, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		logger.Error("Failed to upload image", err, map[string]interface{}{
			"folder": folder,
		})
		return "", ErrImageUploadFailed
	}
	return url, nil
}
