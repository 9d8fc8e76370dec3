package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/service"
)

// AdminHandler handles admin-only endpoints.
type AdminHandler struct {
	adminService service.AdminService
	storeService service.StoreService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, storeService service.StoreService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		storeService: storeService,
	}
}

// CreateStoreRequest represents the admin add-store request.
type CreateStoreRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	OwnerName     string `json:"ownerName" validate:"required"`
	OwnerPassword string `json:"ownerPassword" validate:"required"`
}

// CreateUserRequest represents the admin add-user request.
type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Address  *string    `json:"address"`
	Role     model.Role `json:"role" validate:"required"`
}

// CreateStoreResponse represents the created store and its owner account.
type CreateStoreResponse struct {
	Store *model.Store `json:"store"`
	Owner *model.User  `json:"owner"`
}

// Dashboard godoc
// @Summary Admin dashboard totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminService.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateStore godoc
// @Summary Create a store together with its owner account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStoreRequest true "Store and owner data"
// @Success 200 {object} CreateStoreResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Store name, email, address, owner name, and owner password are required",
			Code:  "MISSING_FIELDS",
		})
	}

	store, owner, err := h.storeService.CreateStoreWithOwner(c.Request().Context(), service.CreateStoreInput{
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		OwnerName:     req.OwnerName,
		OwnerPassword: req.OwnerPassword,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, CreateStoreResponse{Store: store, Owner: owner})
}

// CreateUser godoc
// @Summary Create a user with an explicit role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Name, email, password and role are required",
			Code:  "MISSING_FIELDS",
		})
	}

	user, err := h.adminService.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ListStores godoc
// @Summary List all stores with aggregate ratings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.AdminStore
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.adminService.ListStores(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// ListUsers godoc
// @Summary List all users with store-owner aggregate ratings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.AdminUser
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
