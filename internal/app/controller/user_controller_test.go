package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/marcp/critics-eye-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserControllerTest(t *testing.T) (*controllerEnv, *gin.Engine) {
	env := setupControllerTest(t)
	ctrl := NewUserController(service.NewUserService(env.users))

	router := routerAs(env.user(t, "admin"))
	router.GET("/users", ctrl.ListUsers)
	router.GET("/users/:id", ctrl.GetUser)
	router.POST("/users", ctrl.CreateUser)
	router.PUT("/users/:id", ctrl.UpdateUser)
	router.DELETE("/users/:id", ctrl.DeleteUser)
	return env, router
}

func TestUserController_CreateUser(t *testing.T) {
	_, router := setupUserControllerTest(t)

	body := requireEnvelope(t, performJSON(router, http.MethodPost, "/users", map[string]string{
		"name":     "Marc",
		"username": "marcp",
		"email":    "marc@example.com",
		"password": "long-enough",
		"image":    "https://cdn.example.com/marc.png",
	}), http.StatusCreated)
	assert.Equal(t, "marcp", body["user"].(map[string]interface{})["username"])

	tests := []struct {
		name   string
		body   map[string]string
		fields []string
	}{
		{
			name:   "duplicate username and email",
			body:   map[string]string{"name": "M", "username": "marcp", "email": "marc@example.com", "password": "long-enough"},
			fields: []string{"username", "email"},
		},
		{
			name:   "short password",
			body:   map[string]string{"name": "M", "username": "m2", "email": "m2@example.com", "password": "short"},
			fields: []string{"password"},
		},
		{
			name:   "bad image url",
			body:   map[string]string{"name": "M", "username": "m3", "email": "m3@example.com", "password": "long-enough", "image": "nope"},
			fields: []string{"image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := requireEnvelope(t, performJSON(router, http.MethodPost, "/users", tt.body), http.StatusUnprocessableEntity)
			for _, f := range tt.fields {
				assert.Contains(t, body["errors"], f)
			}
		})
	}
}

func TestUserController_UpdateUser(t *testing.T) {
	env, router := setupUserControllerTest(t)
	target := env.user(t, "reader")
	env.user(t, "taken")
	path := fmt.Sprintf("/users/%d", target.ID)

	body := requireEnvelope(t, performJSON(router, http.MethodPut, path, map[string]string{
		"username": "reader",
		"name":     "Renamed",
	}), http.StatusOK)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Renamed", user["name"])
	assert.Equal(t, "reader@example.com", user["email"])

	body = requireEnvelope(t, performJSON(router, http.MethodPut, path, map[string]string{"username": "taken"}), http.StatusUnprocessableEntity)
	assert.Contains(t, body["errors"], "username")

	requireEnvelope(t, performJSON(router, http.MethodPut, path, map[string]string{"password": "another-secret"}), http.StatusOK)
	stored, err := env.users.FindByID(target.ID)
	require.NoError(t, err)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "another-secret"))

	requireEnvelope(t, performJSON(router, http.MethodPut, "/users/999", map[string]string{"name": "Ghost"}), http.StatusNotFound)
}

func TestUserController_ListAndDelete(t *testing.T) {
	env, router := setupUserControllerTest(t)
	env.user(t, "alice")
	bob := env.user(t, "bob")

	body := requireEnvelope(t, performJSON(router, http.MethodGet, "/users", nil), http.StatusOK)
	assert.Len(t, body["users"], 3)

	body = requireEnvelope(t, performJSON(router, http.MethodGet, "/users?username=li", nil), http.StatusOK)
	assert.Len(t, body["users"], 1)

	requireEnvelope(t, performJSON(router, http.MethodDelete, fmt.Sprintf("/users/%d", bob.ID), nil), http.StatusOK)
	requireEnvelope(t, performJSON(router, http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), nil), http.StatusNotFound)
}
