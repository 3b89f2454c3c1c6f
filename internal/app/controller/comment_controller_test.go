package controller

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
)

// setupCommentControllerTest returns one router per user so ownership can be exercised.
func setupCommentControllerTest(t *testing.T) (*controllerEnv, *model.Review, *gin.Engine, *gin.Engine) {
	env := setupControllerTest(t)
	author := env.user(t, "author")
	stranger := env.user(t, "stranger")
	product := env.product(t, author, env.productType(t, "Game").ID, "Portal")
	review := env.review(t, author, product, 95)

	ctrl := NewCommentController(service.NewCommentService(env.comments, env.reviews))
	build := func(u *model.User) *gin.Engine {
		router := routerAs(u)
		router.GET("/comments", ctrl.ListComments)
		router.GET("/comments/:id", ctrl.GetComment)
		router.POST("/comments", ctrl.CreateComment)
		router.PUT("/comments/:id", ctrl.UpdateComment)
		router.DELETE("/comments/:id", ctrl.DeleteComment)
		return router
	}
	return env, review, build(author), build(stranger)
}

func TestCommentController_OwnerOnly(t *testing.T) {
	_, review, authorRouter, strangerRouter := setupCommentControllerTest(t)

	body := requireEnvelope(t, performJSON(authorRouter, http.MethodPost, "/comments", map[string]interface{}{
		"review_id": review.ID,
		"content":   "Agreed",
	}), http.StatusOK)
	commentID := uint(body["comment"].(map[string]interface{})["id"].(float64))
	path := fmt.Sprintf("/comments/%d", commentID)

	body = requireEnvelope(t, performJSON(strangerRouter, http.MethodPut, path, map[string]string{"content": "Hijacked"}), http.StatusForbidden)
	assert.Equal(t, "Unauthorized action.", body["message"])
	assert.Equal(t, "AUTHZ_OWNER_ONLY", body["error"])
	requireEnvelope(t, performJSON(strangerRouter, http.MethodDelete, path, nil), http.StatusForbidden)

	body = requireEnvelope(t, performJSON(authorRouter, http.MethodPut, path, map[string]string{"content": "Edited"}), http.StatusOK)
	assert.Equal(t, "Edited", body["comment"].(map[string]interface{})["content"])

	requireEnvelope(t, performJSON(authorRouter, http.MethodDelete, path, nil), http.StatusOK)
	requireEnvelope(t, performJSON(authorRouter, http.MethodGet, path, nil), http.StatusNotFound)
}

func TestCommentController_ListComments(t *testing.T) {
	env, review, authorRouter, strangerRouter := setupCommentControllerTest(t)

	requireEnvelope(t, performJSON(authorRouter, http.MethodPost, "/comments", map[string]interface{}{
		"review_id": review.ID, "content": "first",
	}), http.StatusOK)
	requireEnvelope(t, performJSON(strangerRouter, http.MethodPost, "/comments", map[string]interface{}{
		"review_id": review.ID, "content": "second",
	}), http.StatusOK)

	body := requireEnvelope(t, performJSON(authorRouter, http.MethodGet, fmt.Sprintf("/comments?review_id=%d", review.ID), nil), http.StatusOK)
	comments := body["comments"].([]interface{})
	if assert.Len(t, comments, 2) {
		first := comments[0].(map[string]interface{})
		assert.Equal(t, "first", first["content"])
		assert.Equal(t, "author", first["user"].(map[string]interface{})["username"])
	}

	tests := []struct {
		name  string
		query string
	}{
		{"missing review_id", ""},
		{"unknown review", "?review_id=999"},
		{"non numeric", "?review_id=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := requireEnvelope(t, performJSON(authorRouter, http.MethodGet, "/comments"+tt.query, nil), http.StatusUnprocessableEntity)
			assert.Contains(t, body["errors"], "review_id")
		})
	}

	var count int64
	env.db.Model(&model.Comment{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCommentController_CreateComment_Validation(t *testing.T) {
	_, review, authorRouter, _ := setupCommentControllerTest(t)

	body := requireEnvelope(t, performJSON(authorRouter, http.MethodPost, "/comments", map[string]interface{}{
		"review_id": review.ID,
		"content":   strings.Repeat("x", 1001),
	}), http.StatusUnprocessableEntity)
	assert.Contains(t, body["errors"], "content")

	requireEnvelope(t, performJSON(authorRouter, http.MethodPost, "/comments", map[string]interface{}{
		"review_id": 999,
		"content":   "orphan",
	}), http.StatusNotFound)
}
