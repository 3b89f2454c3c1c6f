package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreService(t *testing.T) {
	env := setupServiceTest(t)
	genres := NewGenreService(env.genres)

	g, err := genres.CreateGenre("Horror")
	require.NoError(t, err)

	_, err = genres.CreateGenre("Horror")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The name has already been taken."}, verr.Fields["name"])

	same, err := genres.UpdateGenre(g.ID, "Horror")
	require.NoError(t, err)
	assert.Equal(t, "Horror", same.Name)

	_, err = genres.UpdateGenre(9999, "X")
	assert.ErrorIs(t, err, ErrGenreNotFound)

	require.NoError(t, genres.DeleteGenre(g.ID))
	assert.ErrorIs(t, genres.DeleteGenre(g.ID), ErrGenreNotFound)
}

func TestProductTypeService(t *testing.T) {
	env := setupServiceTest(t)
	types := NewProductTypeService(env.types)

	movie, err := types.CreateProductType("Movie")
	require.NoError(t, err)
	_, err = types.CreateProductType("Game")
	require.NoError(t, err)

	_, err = types.UpdateProductType(movie.ID, "Game")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	renamed, err := types.UpdateProductType(movie.ID, "Film")
	require.NoError(t, err)
	assert.Equal(t, "Film", renamed.Name)

	all, err := types.ListProductTypes()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = types.GetProductType(9999)
	assert.ErrorIs(t, err, ErrProductTypeNotFound)
}

func TestProductTypeService_DeleteCascadesProducts(t *testing.T) {
	env := setupServiceTest(t)
	types := NewProductTypeService(env.types)
	owner := env.user(t, "owner")
	p := env.product(t, owner, "Dune")

	require.NoError(t, types.DeleteProductType(p.TypeID))

	_, err := env.products.FindByID(p.ID)
	assert.Error(t, err)
	assert.ErrorIs(t, types.DeleteProductType(p.TypeID), ErrProductTypeNotFound)
}
