package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/marcp/critics-eye-backend/internal/db"
	"github.com/marcp/critics-eye-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "controller-test-secret"

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memoryBlacklist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revoked == nil {
		b.revoked = map[string]bool{}
	}
	b.revoked[tokenID] = true
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[tokenID], nil
}

type recordingMailer struct {
	tokens map[string]string
	err    error
}

func (m *recordingMailer) SendPasswordReset(toEmail, _ string, token string) error {
	if m.err != nil {
		return m.err
	}
	if m.tokens == nil {
		m.tokens = map[string]string{}
	}
	m.tokens[toEmail] = token
	return nil
}

type memoryStorage struct {
	uploaded []string
	deleted  []string
	fail     bool
}

const memoryStorageHost = "https://media.test/"

func (s *memoryStorage) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (string, error) {
	if s.fail {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	url := memoryStorageHost + folder + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *memoryStorage) Delete(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func (s *memoryStorage) IsManagedURL(fileURL string) bool {
	return strings.HasPrefix(fileURL, memoryStorageHost)
}

// controllerEnv wires every repository and service on one sqlite database.
type controllerEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	products  repository.ProductRepository
	types     repository.ProductTypeRepository
	genres    repository.GenreRepository
	links     repository.ProductGenreRepository
	reviews   repository.ReviewRepository
	comments  repository.CommentRepository
	resets    repository.PasswordResetRepository
	blacklist *memoryBlacklist
	mailer    *recordingMailer
	storage   *memoryStorage
	scores    service.ScoreService
}

func setupControllerTest(t *testing.T) *controllerEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	env := &controllerEnv{
		db:        testDB,
		users:     repository.NewUserRepository(testDB),
		products:  repository.NewProductRepository(testDB),
		types:     repository.NewProductTypeRepository(testDB),
		genres:    repository.NewGenreRepository(testDB),
		links:     repository.NewProductGenreRepository(testDB),
		reviews:   repository.NewReviewRepository(testDB),
		comments:  repository.NewCommentRepository(testDB),
		resets:    repository.NewPasswordResetRepository(testDB),
		blacklist: &memoryBlacklist{},
		mailer:    &recordingMailer{},
		storage:   &memoryStorage{},
	}
	env.scores = service.NewScoreService(env.products, env.reviews, nil)

	gin.SetMode(gin.TestMode)
	return env
}

// routerAs returns an engine whose requests are authenticated as user.
func routerAs(user *model.User) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetPrincipal(c, middleware.Principal{
				UserID:    user.ID,
				Username:  user.Username,
				Email:     user.Email,
				TokenID:   "test-token",
				ExpiresAt: time.Now().Add(time.Hour),
			})
		}
		c.Next()
	})
	return router
}

func (e *controllerEnv) user(t *testing.T, username string) *model.User {
	u := &model.User{Name: username, Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *controllerEnv) productType(t *testing.T, name string) *model.ProductType {
	pt := &model.ProductType{Name: name}
	require.NoError(t, e.types.Create(pt))
	return pt
}

func (e *controllerEnv) product(t *testing.T, owner *model.User, typeID uint, title string) *model.Product {
	p := &model.Product{Title: title, Description: "d", TypeID: typeID, UserID: owner.ID, Author: "a"}
	require.NoError(t, e.products.Create(p))
	return p
}

func (e *controllerEnv) review(t *testing.T, author *model.User, product *model.Product, score int) *model.Review {
	r := &model.Review{UserID: author.ID, ProductID: product.ID, Title: "t", Content: "c", Score: score}
	require.NoError(t, e.reviews.Create(r))
	_, err := e.scores.Recompute(product.ID)
	require.NoError(t, err)
	return r
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// requireEnvelope checks that the body mirrors the transport status.
func requireEnvelope(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	require.Equal(t, status, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, float64(status), body["httpCode"])
	require.Equal(t, status < http.StatusBadRequest, body["status"])
	return body
}
