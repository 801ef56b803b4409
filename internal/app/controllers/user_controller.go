package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
	"github.com/unipem/lms/internal/pkg/helpers"
)

// UserController handles the admin user pages
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers lists accounts, newest first
// @Summary List users
// @Description Lists users newest first. q matches name, email or NPM/NIP; role is ALL, ADMIN, TEACHER or STUDENT.
// @Tags admin-users
// @Produce json
// @Param q query string false "Search text"
// @Param role query string false "Role filter" Enums(ALL, ADMIN, TEACHER, STUDENT)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 307 "Not an admin, redirect to /dashboard"
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, total, err := c.userService.ListUsers(ctx, ctx.Query("q"), ctx.DefaultQuery("role", services.RoleFilterAll), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	_, limit := helpers.CalculateOffsetLimit(page, size)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserListResponse{
		Users:      dto.NewUserResponses(users),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, ""))
}

// GetUser retrieves one account
// @Summary Get user
// @Tags admin-users
// @Produce json
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user), ""))
}

// GetUserByUsername retrieves one account by NPM/NIP
// @Summary Get user by NPM/NIP
// @Tags admin-users
// @Produce json
// @Param username path string true "NPM or NIP"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/by-username/{username} [get]
func (c *UserController) GetUserByUsername(ctx *gin.Context) {
	user, err := c.userService.GetUserByUsername(ctx, ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user), ""))
}

// CreateUser creates an account
// @Summary Create user
// @Description Role defaults to STUDENT and password to password123
// @Tags admin-users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserResponse(user), "User berhasil dibuat"))
}

// UpdateUser replaces an account's profile
// @Summary Update user
// @Description An empty password keeps the current one
// @Tags admin-users
// @Accept json
// @Produce json
// @Param id path string true "User ID" Format(uuid)
// @Param request body dto.UpdateUserRequest true "User fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user), "User berhasil diperbarui"))
}

// DeleteUser removes an account
// @Summary Delete user
// @Description Also removes the user's submissions; courses they taught lose their instructor
// @Tags admin-users
// @Produce json
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User berhasil dihapus"))
}
