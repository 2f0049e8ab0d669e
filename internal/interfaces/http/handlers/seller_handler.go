package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/interfaces/http/middleware"
	"pay-chain.backend/internal/interfaces/http/response"
	"pay-chain.backend/internal/usecases"
)

// SellerHandler handles seller onboarding endpoints
type SellerHandler struct {
	sellerUsecase *usecases.SellerApplicationUsecase
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerUsecase *usecases.SellerApplicationUsecase) *SellerHandler {
	return &SellerHandler{sellerUsecase: sellerUsecase}
}

// Apply submits a seller application for the caller
// POST /api/v1/sellers/apply
func (h *SellerHandler) Apply(c *gin.Context) {
	var input entities.SellerApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	app, err := h.sellerUsecase.Apply(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, app)
}

// GetOwnApplication returns the caller's most recent application
// GET /api/v1/sellers/application
func (h *SellerHandler) GetOwnApplication(c *gin.Context) {
	userID := middleware.GetUserID(c)

	status, err := h.sellerUsecase.GetOwnApplication(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// UpdateShopProfile updates the caller's shop name and description
// PUT /api/v1/sellers/profile
func (h *SellerHandler) UpdateShopProfile(c *gin.Context) {
	var input entities.UpdateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	profile, err := h.sellerUsecase.UpdateShopProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// ListVerifiedSellers returns the public directory of verified sellers
// GET /api/v1/sellers?page=&limit=
func (h *SellerHandler) ListVerifiedSellers(c *gin.Context) {
	page, limit := paginationQuery(c)

	result, err := h.sellerUsecase.ListVerifiedSellers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
