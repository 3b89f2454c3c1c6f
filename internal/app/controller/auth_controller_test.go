package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/marcp/critics-eye-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*controllerEnv, *gin.Engine) {
	env := setupControllerTest(t)

	authService := service.NewAuthService(env.users, env.blacklist, testJWTSecret, time.Hour)
	resetService := service.NewPasswordResetService(env.resets, env.users, env.mailer)
	ctrl := NewAuthController(authService, resetService)
	auth := middleware.NewAuthMiddleware(testJWTSecret, env.blacklist)

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/sendPasswordReset", ctrl.SendPasswordReset)
	router.POST("/resetPassword", ctrl.ResetPassword)
	router.POST("/logout", auth.Authenticate(), ctrl.Logout)
	router.GET("/user", auth.Authenticate(), ctrl.Me)
	return env, router
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                  "Alice",
		"username":              "alice",
		"email":                 "alice@example.com",
		"password":              "secret",
		"password_confirmation": "secret",
	}
}

func withBearer(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	w := performJSON(router, http.MethodPost, "/register", registerBody())
	body := requireEnvelope(t, w, http.StatusOK)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")

	w = performJSON(router, http.MethodPost, "/register", registerBody())
	body = requireEnvelope(t, w, http.StatusUnprocessableEntity)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
}

func TestAuthController_Register_Validation(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		field  string
	}{
		{"confirmation mismatch", func(b map[string]interface{}) { b["password_confirmation"] = "other" }, "password"},
		{"short password", func(b map[string]interface{}) { b["password"] = "abc"; b["password_confirmation"] = "abc" }, "password"},
		{"bad email", func(b map[string]interface{}) { b["email"] = "not-an-email" }, "email"},
		{"missing name", func(b map[string]interface{}) { delete(b, "name") }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBody := registerBody()
			tt.mutate(reqBody)

			w := performJSON(router, http.MethodPost, "/register", reqBody)
			body := requireEnvelope(t, w, http.StatusUnprocessableEntity)
			assert.Contains(t, body["errors"], tt.field)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	_, router := setupAuthControllerTest(t)
	requireEnvelope(t, performJSON(router, http.MethodPost, "/register", registerBody()), http.StatusOK)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantStatus int
	}{
		{"by email", "alice@example.com", "secret", http.StatusOK},
		{"by username", "alice", "secret", http.StatusOK},
		{"wrong password by email", "alice@example.com", "nope", http.StatusNotFound},
		{"wrong password by username", "alice", "nope", http.StatusNotFound},
		{"unknown user", "bob", "secret", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/login", map[string]string{
				"email_or_username": tt.identifier,
				"password":          tt.password,
			})
			body := requireEnvelope(t, w, tt.wantStatus)
			if tt.wantStatus == http.StatusOK {
				assert.NotEmpty(t, body["token"])
			} else {
				assert.Equal(t, "Login Error: Invalid credentials", body["message"])
			}
		})
	}
}

func TestAuthController_LogoutRevokesToken(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	body := requireEnvelope(t, performJSON(router, http.MethodPost, "/register", registerBody()), http.StatusOK)
	token := body["token"].(string)

	body = requireEnvelope(t, withBearer(router, http.MethodGet, "/user", token), http.StatusOK)
	assert.Equal(t, "alice", body["user"].(map[string]interface{})["username"])

	requireEnvelope(t, withBearer(router, http.MethodPost, "/logout", token), http.StatusOK)

	body = requireEnvelope(t, withBearer(router, http.MethodGet, "/user", token), http.StatusUnauthorized)
	assert.Equal(t, "AUTH_TOKEN_REVOKED", body["error"])
}

func TestAuthController_PasswordReset(t *testing.T) {
	env, router := setupAuthControllerTest(t)
	requireEnvelope(t, performJSON(router, http.MethodPost, "/register", registerBody()), http.StatusOK)

	body := requireEnvelope(t, performJSON(router, http.MethodPost, "/sendPasswordReset", map[string]string{
		"email": "nobody@example.com",
	}), http.StatusNotFound)
	assert.Equal(t, "No user found with this email address", body["message"])

	requireEnvelope(t, performJSON(router, http.MethodPost, "/sendPasswordReset", map[string]string{
		"email": "alice@example.com",
	}), http.StatusOK)
	token := env.mailer.tokens["alice@example.com"]
	require.NotEmpty(t, token)

	reset := map[string]string{
		"token":                 token,
		"password":              "brand-new",
		"password_confirmation": "brand-new",
	}
	requireEnvelope(t, performJSON(router, http.MethodPost, "/resetPassword", reset), http.StatusOK)

	body = requireEnvelope(t, performJSON(router, http.MethodPost, "/resetPassword", reset), http.StatusConflict)
	assert.Equal(t, "RESET_TOKEN_USED", body["error"])

	requireEnvelope(t, performJSON(router, http.MethodPost, "/login", map[string]string{
		"email_or_username": "alice",
		"password":          "brand-new",
	}), http.StatusOK)

	reset["token"] = "unknown"
	requireEnvelope(t, performJSON(router, http.MethodPost, "/resetPassword", reset), http.StatusNotFound)
}

func TestAuthController_PasswordReset_Expired(t *testing.T) {
	env, router := setupAuthControllerTest(t)
	requireEnvelope(t, performJSON(router, http.MethodPost, "/register", registerBody()), http.StatusOK)
	requireEnvelope(t, performJSON(router, http.MethodPost, "/sendPasswordReset", map[string]string{
		"email": "alice@example.com",
	}), http.StatusOK)

	require.NoError(t, env.db.Exec("UPDATE password_resets SET expires_at = ?", time.Now().Add(-time.Minute)).Error)

	body := requireEnvelope(t, performJSON(router, http.MethodPost, "/resetPassword", map[string]string{
		"token":                 env.mailer.tokens["alice@example.com"],
		"password":              "brand-new",
		"password_confirmation": "brand-new",
	}), http.StatusGone)
	assert.Equal(t, "RESET_TOKEN_EXPIRED", body["error"])
}

func TestAuthController_PasswordReset_MailFailure(t *testing.T) {
	env, router := setupAuthControllerTest(t)
	requireEnvelope(t, performJSON(router, http.MethodPost, "/register", registerBody()), http.StatusOK)
	env.mailer.err = errors.New("smtp down")

	body := requireEnvelope(t, performJSON(router, http.MethodPost, "/sendPasswordReset", map[string]string{
		"email": "alice@example.com",
	}), http.StatusInternalServerError)
	assert.Equal(t, "Failed to send email", body["message"])
}
