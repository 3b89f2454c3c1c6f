package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoRelations    = errors.New("no relations found for this product")
	ErrRelationExists = errors.New("product already has this genre")
)

type ProductGenreService interface {
	ListRelations(productID, genreID *uint) ([]model.ProductGenre, error)
	Attach(productID, genreID uint) (*model.ProductGenre, error)
	Replace(productID uint, genreIDs []uint) ([]model.ProductGenre, error)
	DetachAll(productID uint) (int64, error)
}

type productGenreService struct {
	linkRepo    repository.ProductGenreRepository
	productRepo repository.ProductRepository
	genreRepo   repository.GenreRepository
}

func NewProductGenreService(
	linkRepo repository.ProductGenreRepository,
	productRepo repository.ProductRepository,
	genreRepo repository.GenreRepository,
) ProductGenreService {
	return &productGenreService{
		linkRepo:    linkRepo,
		productRepo: productRepo,
		genreRepo:   genreRepo,
	}
}

func (s *productGenreService) ListRelations(productID, genreID *uint) ([]model.ProductGenre, error) {
	return s.linkRepo.Find(productID, genreID)
}

func (s *productGenreService) Attach(productID, genreID uint) (*model.ProductGenre, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.FindByID(genreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	exists, err := s.linkRepo.Exists(productID, genreID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn("Duplicate product genre relation", map[string]interface{}{
			"product_id": productID,
			"genre_id":   genreID,
		})
		return nil, ErrRelationExists
	}

	link := &model.ProductGenre{ProductID: productID, GenreID: genreID}
	if err := s.linkRepo.Create(link); err != nil {
		return nil, err
	}

	logger.Info("Genre attached to product", map[string]interface{}{
		"product_id": productID,
		"genre_id":   genreID,
	})
	return link, nil
}

// Replace makes genreIDs the product's complete genre set. Every id must
// name an existing genre.
func (s *productGenreService) Replace(productID uint, genreIDs []uint) ([]model.ProductGenre, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}

	unique := make([]uint, 0, len(genreIDs))
	seen := make(map[uint]bool, len(genreIDs))
	for _, id := range genreIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if len(unique) > 0 {
		found, err := s.genreRepo.CountByIDs(unique)
		if err != nil {
			return nil, err
		}
		if found != int64(len(unique)) {
			return nil, newValidationError("genres", "The selected genres are invalid.")
		}
	}

	if err := s.linkRepo.ReplaceForProduct(productID, unique); err != nil {
		return nil, err
	}

	logger.Info("Product genres replaced", map[string]interface{}{
		"product_id": productID,
		"genre_ids":  unique,
	})
	return s.linkRepo.Find(&productID, nil)
}

func (s *productGenreService) DetachAll(productID uint) (int64, error) {
	n, err := s.linkRepo.DeleteByProduct(productID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoRelations
	}

	logger.Info("Product genres removed", map[string]interface{}{
		"product_id": productID,
		"count":      n,
	})
	return n, nil
}

func (s *productGenreService) requireProduct(productID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
