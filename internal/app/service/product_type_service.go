package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductTypeNotFound = errors.New("product type not found")

type ProductTypeService interface {
	ListProductTypes() ([]model.ProductType, error)
	GetProductType(id uint) (*model.ProductType, error)
	CreateProductType(name string) (*model.ProductType, error)
	UpdateProductType(id uint, name string) (*model.ProductType, error)
	DeleteProductType(id uint) error
}

type productTypeService struct {
	typeRepo repository.ProductTypeRepository
}

func NewProductTypeService(typeRepo repository.ProductTypeRepository) ProductTypeService {
	return &productTypeService{typeRepo: typeRepo}
}

func (s *productTypeService) ListProductTypes() ([]model.ProductType, error) {
	return s.typeRepo.FindAll()
}

func (s *productTypeService) GetProductType(id uint) (*model.ProductType, error) {
	productType, err := s.typeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, err
	}
	return productType, nil
}

func (s *productTypeService) CreateProductType(name string) (*model.ProductType, error) {
	if err := s.checkName(name, 0); err != nil {
		return nil, err
	}

	productType := &model.ProductType{Name: name}
	if err := s.typeRepo.Create(productType); err != nil {
		return nil, err
	}

	logger.Info("Product type created", map[string]interface{}{
		"type_id": productType.ID,
		"name":    name,
	})
	return productType, nil
}

func (s *productTypeService) UpdateProductType(id uint, name string) (*model.ProductType, error) {
	productType, err := s.GetProductType(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(name, id); err != nil {
		return nil, err
	}

	productType.Name = name
	if err := s.typeRepo.Update(productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// DeleteProductType also removes the type's products through the FK cascade.
func (s *productTypeService) DeleteProductType(id uint) error {
	if err := s.typeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductTypeNotFound
		}
		return err
	}

	logger.Info("Product type deleted", map[string]interface{}{
		"type_id": id,
	})
	return nil
}

func (s *productTypeService) checkName(name string, excludeID uint) error {
	taken, err := s.typeRepo.ExistsByName(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return newValidationError("name", "The name has already been taken.")
	}
	return nil
}
