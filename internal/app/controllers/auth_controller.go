package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
)

// AuthController handles login, logout and the current user
type AuthController struct {
	authService services.AuthService
	sessions    *middleware.SessionMiddleware
	siteName    string
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *middleware.SessionMiddleware, siteName string) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		siteName:    siteName,
	}
}

// LoginPage describes the login form
// @Summary Login page
// @Description Returns the login form description. Requests carrying a session are redirected to /dashboard.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LoginPageResponse}
// @Failure 307 "Already logged in, redirect to /dashboard"
// @Router /login [get]
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginPageResponse{
		SiteName: c.siteName,
		Action:   "/login",
	}, ""))
}

// Login authenticates an NPM/NIP and sets the session cookie
// @Summary Log in
// @Description Verifies the NPM/NIP and password and sets the user_session cookie
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unknown NPM/NIP or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.Bind(ctx, &req) {
		return
	}

	session, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.SetCookie(ctx, *session); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		User:     dto.NewSessionResponse(*session),
		Redirect: "/dashboard",
	}, "Login berhasil"))
}

// Logout clears the session cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.ClearCookie(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logout berhasil"))
}

// Me returns the account behind the session
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 307 "No session, redirect to /login"
// @Failure 404 {object} dto.ErrorResponse "Account was deleted"
// @Router /dashboard/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	user, err := c.authService.CurrentUser(ctx, session)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user), ""))
}
