package repository

import (
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Create(productType *model.ProductType) error
	FindAll() ([]model.ProductType, error)
	FindByID(id uint) (*model.ProductType, error)
	ExistsByName(name string, excludeID uint) (bool, error)
	Update(productType *model.ProductType) error
	Delete(id uint) error
}

type productTypeRepository struct {
	db *gorm.DB
}

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) Create(productType *model.ProductType) error {
	logger.Debug("Creating product type in database", map[string]interface{}{
		"name": productType.Name,
	})

	if err := r.db.Create(productType).Error; err != nil {
		logger.Error("Failed to create product type in database", err, map[string]interface{}{
			"name": productType.Name,
		})
		return err
	}
	return nil
}

func (r *productTypeRepository) FindAll() ([]model.ProductType, error) {
	var types []model.ProductType
	if err := r.db.Order("id ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to find product types in database", err)
		return nil, err
	}
	return types, nil
}

func (r *productTypeRepository) FindByID(id uint) (*model.ProductType, error) {
	var productType model.ProductType
	if err := r.db.First(&productType, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product type by ID in database", err, map[string]interface{}{
				"type_id": id,
			})
		}
		return nil, err
	}
	return &productType, nil
}

func (r *productTypeRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.ProductType{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check product type name in database", err, map[string]interface{}{
			"name": name,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *productTypeRepository) Update(productType *model.ProductType) error {
	if err := r.db.Save(productType).Error; err != nil {
		logger.Error("Failed to update product type in database", err, map[string]interface{}{
			"type_id": productType.ID,
		})
		return err
	}
	return nil
}

func (r *productTypeRepository) Delete(id uint) error {
	logger.Debug("Deleting product type from database", map[string]interface{}{
		"type_id": id,
	})

	result := r.db.Delete(&model.ProductType{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product type from database", result.Error, map[string]interface{}{
			"type_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
