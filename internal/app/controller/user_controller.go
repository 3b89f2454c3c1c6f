package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=50"`
	Username string  `json:"username" binding:"required,max=30"`
	Email    string  `json:"email" binding:"required,email,max=100"`
	Password string  `json:"password" binding:"required,min=8"`
	Image    *string `json:"image" binding:"omitempty,url"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Username *string `json:"username" binding:"omitempty,max=30"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Image    *string `json:"image" binding:"omitempty,url"`
}

// ListUsers handles GET /api/users?username=
func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.userService.ListUsers(c.Query("username"))
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"users": users})
}

// GetUser handles GET /api/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.GetUser(id)
	if err != nil {
		ctrl.respondUserError(c, err, "get user")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "", gin.H{"user": user})
}

// CreateUser handles POST /api/users
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	user, err := ctrl.userService.CreateUser(service.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

// UpdateUser handles PUT /api/users/:id; absent fields are kept.
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	user, err := ctrl.userService.UpdateUser(id, service.UpdateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		ctrl.respondUserError(c, err, "update user")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "User updated successfully", gin.H{"user": user})
}

// DeleteUser handles DELETE /api/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.DeleteUser(id); err != nil {
		ctrl.respondUserError(c, err, "delete user")
		return
	}
	apperrors.RespondWithSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

func (ctrl *UserController) respondUserError(c *gin.Context, err error, context string) {
	if errors.Is(err, service.ErrUserNotFound) {
		apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		return
	}
	respondServiceError(c, err, context)
}
