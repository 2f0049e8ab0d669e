package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/interfaces/http/middleware"
	"pay-chain.backend/internal/interfaces/http/response"
	"pay-chain.backend/internal/usecases"
	"pay-chain.backend/pkg/utils"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
	avatarDir      string
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase, avatarDir string) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, avatarDir: avatarDir}
}

// GetProfile returns the caller's profile, materializing it on first sight
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	hints := entities.IdentityHints{
		Email:    middleware.GetUserEmail(c),
		Username: middleware.GetUserUsername(c),
		Role:     middleware.GetUserRole(c),
	}

	resp, err := h.profileUsecase.GetProfile(c.Request.Context(), userID, hints)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CreateProfile explicitly creates the caller's profile (idempotent)
// POST /api/v1/profile
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var input entities.CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	resp, err := h.profileUsecase.CreateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyExists {
		status = http.StatusOK
	}
	response.Success(c, status, resp)
}

// UpdateProfile updates the allow-listed profile fields
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	profile, err := h.profileUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdatePrivacy updates the four privacy flags
// PUT /api/v1/profile/privacy
func (h *ProfileHandler) UpdatePrivacy(c *gin.Context) {
	var input entities.UpdatePrivacyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	profile, err := h.profileUsecase.UpdatePrivacy(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UploadAvatar stores an uploaded avatar and keeps its reference path
// PUT /api/v1/profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("avatar file is required"))
		return
	}

	userID := middleware.GetUserID(c)
	filename := userID.String() + "_" + uuid.New().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.avatarDir, filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileUsecase.UpdateAvatar(c.Request.Context(), userID, dest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// GetPublicProfile returns the privacy-gated projection of another user
// GET /api/v1/users/:id
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	view, err := h.profileUsecase.GetPublicView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetSellerProfile returns the public projection of a seller. Non-seller
// users are reported as not found so the seller namespace only exposes
// seller accounts.
// GET /api/v1/sellers/:id
func (h *ProfileHandler) GetSellerProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid seller id"))
		return
	}

	view, err := h.profileUsecase.GetPublicView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !view.IsSeller {
		response.Error(c, domainerrors.NotFound("seller not found"))
		return
	}
	response.Success(c, http.StatusOK, view)
}

// SearchProfiles searches usernames and full names
// GET /api/v1/profile/search?q=&page=&limit=
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	page, limit := paginationQuery(c)

	result, err := h.profileUsecase.SearchByText(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func paginationQuery(c *gin.Context) (int, int) {
	var params utils.PaginationParams
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return params.Page, params.Limit
}
