package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storehub/internal/auth"
	"storehub/internal/errors"
	"storehub/internal/service"
)

// StoreHandler handles store browsing and rating submission.
type StoreHandler struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService, ratingService service.RatingService) *StoreHandler {
	return &StoreHandler{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

// SubmitRatingRequest represents a rating submission.
type SubmitRatingRequest struct {
	StoreID uint `json:"store_id" validate:"required"`
	Rating  int  `json:"rating" validate:"required"`
}

// ListStores godoc
// @Summary List stores with aggregate ratings and the caller's own rating
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter on store name or address"
// @Success 200 {array} service.StoreSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /stores [get]
func (h *StoreHandler) ListStores(c echo.Context) error {
	claims, ok := auth.CallerClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	stores, err := h.storeService.ListForUser(c.Request().Context(), claims.UserID, c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// SubmitRating godoc
// @Summary Submit or overwrite the caller's rating for a store
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRatingRequest true "Store and rating value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ratings [post]
func (h *StoreHandler) SubmitRating(c echo.Context) error {
	claims, ok := auth.CallerClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Store ID and rating are required",
			Code:  "MISSING_FIELDS",
		})
	}

	rating, err := h.ratingService.Submit(c.Request().Context(), claims.UserID, req.StoreID, req.Rating)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Rating submitted successfully",
		"rating":  rating,
	})
}
