package service

import (
	"errors"
	"net/url"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductInput struct {
	Title       string
	Description string
	TypeID      uint
	Author      string
	Image       *string
}

type ProductService interface {
	ListProducts(query url.Values) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(userID uint, input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	typeRepo    repository.ProductTypeRepository
	scores      ScoreService
	now         func() time.Time
}

func NewProductService(
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	scores ScoreService,
) ProductService {
	return &productService{
		productRepo: productRepo,
		typeRepo:    typeRepo,
		scores:      scores,
		now:         time.Now,
	}
}

// ListProducts applies the listing filter built from query. A malformed
// numeric filter yields an error wrapping repository.ErrInvalidFilter.
func (s *productService) ListProducts(query url.Values) ([]model.Product, error) {
	filter, err := repository.NewProductFilter(query, s.now())
	if err != nil {
		logger.Warn("Invalid product filter", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByIDWithRelations(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(userID uint, input ProductInput) (*model.Product, error) {
	if err := s.checkType(input.TypeID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:       input.Title,
		Description: input.Description,
		TypeID:      input.TypeID,
		UserID:      userID,
		Author:      input.Author,
		Image:       input.Image,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	score, err := s.scores.Recompute(product.ID)
	if err != nil {
		return nil, err
	}
	product.Score = score

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.checkType(input.TypeID); err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Description = input.Description
	product.TypeID = input.TypeID
	product.Author = input.Author
	if input.Image != nil {
		product.Image = input.Image
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	score, err := s.scores.Recompute(product.ID)
	if err != nil {
		return nil, err
	}
	product.Score = score

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) checkType(typeID uint) error {
	if _, err := s.typeRepo.FindByID(typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError("type_id", "The selected type id is invalid.")
		}
		return err
	}
	return nil
}
