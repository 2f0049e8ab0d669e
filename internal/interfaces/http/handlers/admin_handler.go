package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/interfaces/http/middleware"
	"pay-chain.backend/internal/interfaces/http/response"
	"pay-chain.backend/internal/usecases"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	adminUsecase  *usecases.AdminUsecase
	sellerUsecase *usecases.SellerApplicationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, sellerUsecase *usecases.SellerApplicationUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, sellerUsecase: sellerUsecase}
}

// ListUsers returns a filtered, paginated user listing
// GET /api/v1/admin/users?role=&active=&suspended=&page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := paginationQuery(c)

	filters := entities.UserListFilters{
		Role:      entities.UserRole(c.Query("role")),
		Active:    boolQuery(c, "active"),
		Suspended: boolQuery(c, "suspended"),
	}

	result, err := h.adminUsecase.ListUsers(c.Request.Context(), page, limit, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStatistics returns aggregate moderation counts
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	stats, err := h.adminUsecase.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListApplications returns seller applications, optionally by status
// GET /api/v1/admin/seller-applications?status=&page=&limit=
func (h *AdminHandler) ListApplications(c *gin.Context) {
	page, limit := paginationQuery(c)

	filters := entities.ApplicationListFilters{
		Status: entities.ApplicationStatus(c.Query("status")),
	}

	result, err := h.adminUsecase.ListApplications(c.Request.Context(), page, limit, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ReviewApplication approves or rejects a pending application
// POST /api/v1/admin/seller-applications/:id/review
func (h *AdminHandler) ReviewApplication(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid application id"))
		return
	}

	var input entities.ReviewApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reviewerID := middleware.GetUserID(c)
	app, err := h.sellerUsecase.Review(c.Request.Context(), applicationID, &input, reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, app)
}

type suspensionRequest struct {
	Suspend bool   `json:"suspend"`
	Reason  string `json:"reason"`
}

// ToggleSuspension suspends or unsuspends a user
// POST /api/v1/admin/:id/suspension
func (h *AdminHandler) ToggleSuspension(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var req suspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.ToggleSuspension(c.Request.Context(), userID, req.Suspend, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suspended": req.Suspend})
}

type roleRequest struct {
	Role entities.UserRole `json:"role" binding:"required"`
}

// UpdateRole changes a user's role
// PUT /api/v1/admin/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.UpdateRole(c.Request.Context(), userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"role": req.Role})
}

func boolQuery(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
