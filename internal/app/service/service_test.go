package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type scoreEvent struct {
	productID uint
	score     float64
	count     int64
}

type fakePublisher struct {
	mu     sync.Mutex
	events []scoreEvent
}

func (p *fakePublisher) PublishScore(productID uint, score float64, count int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, scoreEvent{productID, score, count})
}

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (r *fakeRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[tokenID] = ttl
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendPasswordReset(toEmail, _ string, token string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail+":"+token)
	return nil
}

type fakeStorage struct {
	uploads   []string
	deleted   []string
	managed   string
	uploadErr error
	deleteErr error
}

func (s *fakeStorage) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	_, _ = io.ReadAll(body)
	url := s.managed + folder + "/" + filename
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeStorage) Delete(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return s.deleteErr
}

func (s *fakeStorage) IsManagedURL(fileURL string) bool {
	return len(fileURL) >= len(s.managed) && fileURL[:len(s.managed)] == s.managed
}

var errBoom = errors.New("boom")

type testEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	products  repository.ProductRepository
	types     repository.ProductTypeRepository
	genres    repository.GenreRepository
	links     repository.ProductGenreRepository
	reviews   repository.ReviewRepository
	comments  repository.CommentRepository
	resets    repository.PasswordResetRepository
	publisher *fakePublisher
	scores    ScoreService
}

func setupServiceTest(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	env := &testEnv{
		db:        testDB,
		users:     repository.NewUserRepository(testDB),
		products:  repository.NewProductRepository(testDB),
		types:     repository.NewProductTypeRepository(testDB),
		genres:    repository.NewGenreRepository(testDB),
		links:     repository.NewProductGenreRepository(testDB),
		reviews:   repository.NewReviewRepository(testDB),
		comments:  repository.NewCommentRepository(testDB),
		resets:    repository.NewPasswordResetRepository(testDB),
		publisher: &fakePublisher{},
	}
	env.scores = NewScoreService(env.products, env.reviews, env.publisher)
	return env
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	u := &model.User{Name: username, Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) productType(t *testing.T, name string) *model.ProductType {
	pt := &model.ProductType{Name: name}
	require.NoError(t, e.types.Create(pt))
	return pt
}

func (e *testEnv) product(t *testing.T, owner *model.User, title string) *model.Product {
	pt, err := e.types.FindAll()
	require.NoError(t, err)
	var typeID uint
	if len(pt) == 0 {
		typeID = e.productType(t, "Book").ID
	} else {
		typeID = pt[0].ID
	}

	p := &model.Product{Title: title, Description: "d", TypeID: typeID, UserID: owner.ID, Author: "a"}
	require.NoError(t, e.products.Create(p))
	return p
}

func ptr[T any](v T) *T {
	return &v
}
