package service

import (
	"errors"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	ListGenres() ([]model.Genre, error)
	GetGenre(id uint) (*model.Genre, error)
	CreateGenre(name string) (*model.Genre, error)
	UpdateGenre(id uint, name string) (*model.Genre, error)
	DeleteGenre(id uint) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) ListGenres() ([]model.Genre, error) {
	return s.genreRepo.FindAll()
}

func (s *genreService) GetGenre(id uint) (*model.Genre, error) {
	genre, err := s.genreRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) CreateGenre(name string) (*model.Genre, error) {
	if err := s.checkName(name, 0); err != nil {
		return nil, err
	}

	genre := &model.Genre{Name: name}
	if err := s.genreRepo.Create(genre); err != nil {
		return nil, err
	}

	logger.Info("Genre created", map[string]interface{}{
		"genre_id": genre.ID,
		"name":     name,
	})
	return genre, nil
}

func (s *genreService) UpdateGenre(id uint, name string) (*model.Genre, error) {
	genre, err := s.GetGenre(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(name, id); err != nil {
		return nil, err
	}

	genre.Name = name
	if err := s.genreRepo.Update(genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) DeleteGenre(id uint) error {
	if err := s.genreRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}

	logger.Info("Genre deleted", map[string]interface{}{
		"genre_id": id,
	})
	return nil
}

func (s *genreService) checkName(name string, excludeID uint) error {
	taken, err := s.genreRepo.ExistsByName(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return newValidationError("name", "The name has already been taken.")
	}
	return nil
}
