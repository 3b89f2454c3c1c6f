package repository

import (
	"testing"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })
	return gdb
}

type fixture struct {
	user  *model.User
	pType *model.ProductType
	genre *model.Genre
}

func seedFixture(t *testing.T, gdb *gorm.DB) fixture {
	user := &model.User{Name: "Reader", Username: "reader", Email: "reader@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(user).Error)

	pType := &model.ProductType{Name: "Book"}
	require.NoError(t, gdb.Create(pType).Error)

	genre := &model.Genre{Name: "Fantasy"}
	require.NoError(t, gdb.Create(genre).Error)

	return fixture{user: user, pType: pType, genre: genre}
}

func createProduct(t *testing.T, gdb *gorm.DB, f fixture, title string, createdAt time.Time) *model.Product {
	p := &model.Product{
		Title:       title,
		Description: title + " description",
		TypeID:      f.pType.ID,
		UserID:      f.user.ID,
		Author:      "Author",
		CreatedAt:   createdAt,
	}
	require.NoError(t, NewProductRepository(gdb).Create(p))
	return p
}
