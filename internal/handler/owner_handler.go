package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storehub/internal/auth"
	"storehub/internal/errors"
	"storehub/internal/service"
)

// OwnerHandler handles store-owner endpoints.
type OwnerHandler struct {
	storeService service.StoreService
}

// NewOwnerHandler creates a new store-owner handler.
func NewOwnerHandler(storeService service.StoreService) *OwnerHandler {
	return &OwnerHandler{storeService: storeService}
}

// Dashboard godoc
// @Summary Store-owner dashboard: the caller's store with its ratings
// @Tags store-owner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.OwnerDashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /store-owner/dashboard [get]
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	claims, ok := auth.CallerClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	dashboard, err := h.storeService.OwnerDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
