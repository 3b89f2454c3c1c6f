package service

import (
	"testing"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewServiceTest(t *testing.T) (*testEnv, ReviewService) {
	env := setupServiceTest(t)
	return env, NewReviewService(env.reviews, env.products, env.scores)
}

func productScore(t *testing.T, env *testEnv, id uint) float64 {
	p, err := env.products.FindByID(id)
	require.NoError(t, err)
	return p.Score
}

func TestReviewService_LifecycleKeepsScoreInSync(t *testing.T) {
	env, reviews := setupReviewServiceTest(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.product(t, alice, "Dune")

	r1, err := reviews.CreateReview(alice.ID, ReviewInput{ProductID: p.ID, Title: "t", Content: "c", Score: 80})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, r1.UserID)
	assert.Equal(t, 80.0, productScore(t, env, p.ID))

	_, err = reviews.CreateReview(bob.ID, ReviewInput{ProductID: p.ID, Title: "t", Content: "c", Score: 100})
	require.NoError(t, err)
	assert.Equal(t, 90.0, productScore(t, env, p.ID))

	_, err = reviews.UpdateReview(r1.ID, ReviewPatch{Score: ptr(60)})
	require.NoError(t, err)
	assert.Equal(t, 80.0, productScore(t, env, p.ID))

	require.NoError(t, reviews.DeleteReview(r1.ID))
	assert.Equal(t, 100.0, productScore(t, env, p.ID))

	all, err := reviews.ListReviews(repository.ReviewFilter{ProductID: &p.ID})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NoError(t, reviews.DeleteReview(all[0].ID))
	assert.Zero(t, productScore(t, env, p.ID))
}

func TestReviewService_MoveRecomputesBothProducts(t *testing.T) {
	env, reviews := setupReviewServiceTest(t)
	alice := env.user(t, "alice")
	from := env.product(t, alice, "Dune")
	to := env.product(t, alice, "Emma")

	r, err := reviews.CreateReview(alice.ID, ReviewInput{ProductID: from.ID, Title: "t", Content: "c", Score: 70})
	require.NoError(t, err)

	moved, err := reviews.UpdateReview(r.ID, ReviewPatch{ProductID: &to.ID, Title: ptr("moved")})
	require.NoError(t, err)
	assert.Equal(t, to.ID, moved.ProductID)
	assert.Equal(t, "moved", moved.Title)
	assert.Equal(t, "c", moved.Content)

	assert.Zero(t, productScore(t, env, from.ID))
	assert.Equal(t, 70.0, productScore(t, env, to.ID))
}

func TestReviewService_Errors(t *testing.T) {
	env, reviews := setupReviewServiceTest(t)
	alice := env.user(t, "alice")

	_, err := reviews.CreateReview(alice.ID, ReviewInput{ProductID: 9999, Title: "t", Content: "c", Score: 50})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = reviews.GetReview(9999)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = reviews.UpdateReview(9999, ReviewPatch{})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	assert.ErrorIs(t, reviews.DeleteReview(9999), ErrReviewNotFound)

	_, err = reviews.FindUserReview(1, alice.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_FindUserReview(t *testing.T) {
	env, reviews := setupReviewServiceTest(t)
	alice := env.user(t, "alice")
	p := env.product(t, alice, "Dune")
	require.NoError(t, env.reviews.Create(&model.Review{UserID: alice.ID, ProductID: p.ID, Title: "mine", Content: "c", Score: 5}))

	found, err := reviews.FindUserReview(p.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", found.Title)
}
