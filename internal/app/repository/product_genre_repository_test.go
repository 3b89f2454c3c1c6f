package repository

import (
	"testing"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductGenreRepository_ReplaceForProduct(t *testing.T) {
	gdb := setupRepositoryTest(t)
	f := seedFixture(t, gdb)
	repo := NewProductGenreRepository(gdb)
	p := createProduct(t, gdb, f, "Dune", time.Now())

	scifi := &model.Genre{Name: "Sci-Fi"}
	require.NoError(t, gdb.Create(scifi).Error)

	require.NoError(t, repo.Create(&model.ProductGenre{ProductID: p.ID, GenreID: f.genre.ID}))
	require.NoError(t, repo.ReplaceForProduct(p.ID, []uint{scifi.ID, scifi.ID}))

	links, err := repo.Find(&p.ID, nil)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, scifi.ID, links[0].GenreID)

	require.NoError(t, repo.ReplaceForProduct(p.ID, nil))
	links, err = repo.Find(&p.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestProductGenreRepository_ExistsAndDelete(t *testing.T) {
	gdb := setupRepositoryTest(t)
	f := seedFixture(t, gdb)
	repo := NewProductGenreRepository(gdb)
	p := createProduct(t, gdb, f, "Dune", time.Now())

	exists, err := repo.Exists(p.ID, f.genre.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(&model.ProductGenre{ProductID: p.ID, GenreID: f.genre.ID}))
	exists, err = repo.Exists(p.ID, f.genre.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	byGenre, err := repo.Find(nil, &f.genre.ID)
	require.NoError(t, err)
	assert.Len(t, byGenre, 1)

	n, err := repo.DeleteByProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByProduct(p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
