package repository

import (
	"sort"

	"github.com/lib/pq"
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDWithRelations(id uint) (*model.Product, error)
	Update(product *model.Product) error
	UpdateScore(id uint, score float64) error
	UpdateImage(id uint, url string) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":   product.Title,
		"user_id": product.UserID,
	})

	if err := r.db.Omit("Type", "User", "Genres").Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title": product.Title,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter in database", map[string]interface{}{
		"equals":     filter.Equals,
		"sort_field": filter.SortField,
		"sort_desc":  filter.SortDesc,
		"limit":      filter.Limit,
	})

	query := r.db.Model(&model.Product{})

	// deterministic clause order keeps generated SQL stable
	fields := make([]string, 0, len(filter.Equals))
	for field := range filter.Equals {
		if _, ok := ProductFilterableFields[field]; ok {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	for _, field := range fields {
		query = query.Where(pq.QuoteIdentifier(field)+" = ?", filter.Equals[field])
	}

	if filter.TitleContains != "" {
		query = query.Where("title LIKE ?", "%"+filter.TitleContains+"%")
	}

	if filter.CreatedFrom != nil && filter.CreatedTo != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *filter.CreatedFrom, *filter.CreatedTo)
	}

	if filter.SortField != "" && ProductSortableFields[filter.SortField] {
		direction := " ASC"
		if filter.SortDesc {
			direction = " DESC"
		}
		query = query.Order(pq.QuoteIdentifier(filter.SortField) + direction)
		if filter.SortField != "id" {
			query = query.Order("id" + direction)
		}
	} else {
		query = query.Order("id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDWithRelations(id uint) (*model.Product, error) {
	logger.Debug("Finding product with relations in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.
		Preload("Type").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product with relations in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

// Update writes the editable columns. Score is owned by UpdateScore.
func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	err := r.db.Model(&model.Product{ID: product.ID}).
		Select("title", "description", "type_id", "author", "image").
		Updates(product).Error
	if err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateScore(id uint, score float64) error {
	logger.Debug("Updating product score in database", map[string]interface{}{
		"product_id": id,
		"score":      score,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		UpdateColumn("score", score).Error; err != nil {
		logger.Error("Failed to update product score in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateImage(id uint, url string) error {
	logger.Debug("Updating product image in database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("image", url).Error; err != nil {
		logger.Error("Failed to update product image in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// Delete removes the product together with its genre links, its reviews and
// their comments.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&model.Review{}).Select("id").Where("product_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductGenre{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to delete product from database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
