package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewControllerTest(t *testing.T) (*controllerEnv, *gin.Engine, *model.User, *model.Product) {
	env := setupControllerTest(t)
	reviewer := env.user(t, "reviewer")
	product := env.product(t, reviewer, env.productType(t, "Movie").ID, "Alien")

	ctrl := NewReviewController(service.NewReviewService(env.reviews, env.products, env.scores))

	router := routerAs(reviewer)
	router.GET("/reviews", ctrl.ListReviews)
	router.GET("/reviews/has-review", ctrl.HasReview)
	router.GET("/hasReview", ctrl.HasReview)
	router.GET("/reviews/:id", ctrl.GetReview)
	router.POST("/reviews", ctrl.CreateReview)
	router.PUT("/reviews/:id", ctrl.UpdateReview)
	router.DELETE("/reviews/:id", ctrl.DeleteReview)
	return env, router, reviewer, product
}

func storedScore(t *testing.T, env *controllerEnv, productID uint) float64 {
	p, err := env.products.FindByID(productID)
	require.NoError(t, err)
	return p.Score
}

func TestReviewController_CreateReview_ScoreRange(t *testing.T) {
	env, router, _, product := setupReviewControllerTest(t)

	tests := []struct {
		name       string
		score      int
		wantStatus int
	}{
		{"zero", 0, http.StatusUnprocessableEntity},
		{"above max", 101, http.StatusUnprocessableEntity},
		{"min", 1, http.StatusOK},
		{"max", 100, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/reviews", map[string]interface{}{
				"product_id": product.ID,
				"title":      "Verdict",
				"content":    "Watched it",
				"score":      tt.score,
			})
			body := requireEnvelope(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, body["errors"], "score")
			}
		})
	}

	assert.InDelta(t, 50.5, storedScore(t, env, product.ID), 0.001)
}

func TestReviewController_Lifecycle(t *testing.T) {
	env, router, reviewer, product := setupReviewControllerTest(t)

	w := performJSON(router, http.MethodPost, "/reviews", map[string]interface{}{
		"product_id": product.ID,
		"title":      "Great",
		"content":    "Loved it",
		"score":      90,
		"user_id":    999,
	})
	body := requireEnvelope(t, w, http.StatusOK)
	assert.Equal(t, "Review added and score updated", body["message"])
	review := body["review"].(map[string]interface{})
	assert.Equal(t, float64(reviewer.ID), review["user_id"])
	reviewID := uint(review["id"].(float64))
	assert.Equal(t, float64(90), storedScore(t, env, product.ID))

	w = performJSON(router, http.MethodPut, fmt.Sprintf("/reviews/%d", reviewID), map[string]interface{}{"score": 70})
	body = requireEnvelope(t, w, http.StatusOK)
	assert.Equal(t, "Review updated and score recalculated", body["message"])
	assert.Equal(t, float64(70), storedScore(t, env, product.ID))

	w = performJSON(router, http.MethodPut, fmt.Sprintf("/reviews/%d", reviewID), map[string]interface{}{"score": 101})
	requireEnvelope(t, w, http.StatusUnprocessableEntity)

	w = performJSON(router, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), nil)
	body = requireEnvelope(t, w, http.StatusOK)
	assert.Equal(t, "Review deleted and score recalculated", body["message"])
	assert.Equal(t, float64(0), storedScore(t, env, product.ID))

	requireEnvelope(t, performJSON(router, http.MethodGet, fmt.Sprintf("/reviews/%d", reviewID), nil), http.StatusNotFound)
	requireEnvelope(t, performJSON(router, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), nil), http.StatusNotFound)
}

func TestReviewController_CreateReview_UnknownProduct(t *testing.T) {
	_, router, _, _ := setupReviewControllerTest(t)

	w := performJSON(router, http.MethodPost, "/reviews", map[string]interface{}{
		"product_id": 999,
		"title":      "Ghost",
		"content":    "Nothing here",
		"score":      50,
	})
	requireEnvelope(t, w, http.StatusNotFound)
}

func TestReviewController_ListReviews(t *testing.T) {
	env, router, reviewer, product := setupReviewControllerTest(t)
	other := env.user(t, "other")
	env.review(t, reviewer, product, 40)
	env.review(t, other, product, 60)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{fmt.Sprintf("?product_id=%d", product.ID), 2},
		{fmt.Sprintf("?user_id=%d", other.ID), 1},
		{"?product_id=999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			body := requireEnvelope(t, performJSON(router, http.MethodGet, "/reviews"+tt.query, nil), http.StatusOK)
			assert.Len(t, body["reviews"], tt.want)
		})
	}

	requireEnvelope(t, performJSON(router, http.MethodGet, "/reviews?user_id=me", nil), http.StatusUnprocessableEntity)
}

func TestReviewController_HasReview(t *testing.T) {
	env, router, reviewer, product := setupReviewControllerTest(t)
	env.review(t, reviewer, product, 75)

	for _, path := range []string{"/reviews/has-review", "/hasReview"} {
		t.Run(path, func(t *testing.T) {
			body := requireEnvelope(t, performJSON(router, http.MethodGet, path+"?product_id=1", nil), http.StatusBadRequest)
			assert.Equal(t, "Both product_id and user_id are required.", body["message"])

			found := fmt.Sprintf("%s?product_id=%d&user_id=%d", path, product.ID, reviewer.ID)
			body = requireEnvelope(t, performJSON(router, http.MethodGet, found, nil), http.StatusOK)
			assert.Equal(t, float64(75), body["review"].(map[string]interface{})["score"])

			missing := fmt.Sprintf("%s?product_id=%d&user_id=999", path, product.ID)
			body = requireEnvelope(t, performJSON(router, http.MethodGet, missing, nil), http.StatusNotFound)
			assert.Equal(t, "Review not found.", body["message"])
		})
	}
}
