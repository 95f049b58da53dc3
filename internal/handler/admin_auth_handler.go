package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/models"
	"github.com/binaryhub/portal-api/internal/service"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
	"github.com/binaryhub/portal-api/pkg/response"
)

// AdminAuthHandler wires the admin credential endpoints to the auth service.
type AdminAuthHandler struct {
	service *service.AuthService
}

// NewAdminAuthHandler creates a new handler.
func NewAdminAuthHandler(svc *service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc}
}

// Signup godoc
// @Summary Register an admin account
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/auth/signup [post]
func (h *AdminAuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid signup payload"))
		return
	}

	res, err := h.service.AdminSignup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res, "Admin account created successfully")
}

// Signin godoc
// @Summary Authenticate an admin
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/auth/signin [post]
func (h *AdminAuthHandler) Signin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidCredentials, ""))
		return
	}

	res, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

// Me godoc
// @Summary Current admin identity
// @Tags Admin Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/auth/me [get]
func (h *AdminAuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil || claims.Role != models.RoleAdmin {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Not authenticated as admin"))
		return
	}

	info, err := h.service.AdminProfile(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, info)
}

// Logout godoc
// @Summary Logout
// @Tags Admin Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	response.Message(c, "Logged out successfully")
}
