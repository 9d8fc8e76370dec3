package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storehub/internal/auth"
	"storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/service"
)

// AuthHandler handles login, registration, and password-change endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a self-service registration request.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Address  *string `json:"address"`
}

// ChangePasswordRequest represents a password-change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Email and password are required",
			Code:  "MISSING_FIELDS",
		})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// AdminLogin godoc
// @Summary Login restricted to system administrators
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Email and password are required",
			Code:  "MISSING_FIELDS",
		})
	}

	token, user, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// Register godoc
// @Summary Register a new normal user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Name, email and password are required",
			Code:  "MISSING_FIELDS",
		})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, ok := auth.CallerClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Both current and new passwords are required",
			Code:  "MISSING_FIELDS",
		})
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password updated successfully",
	})
}
