package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/models"
	"github.com/binaryhub/portal-api/internal/service"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
	"github.com/binaryhub/portal-api/pkg/response"
)

// EnrollmentHandler wires the enrollment lifecycle endpoints.
type EnrollmentHandler struct {
	service *service.EnrollmentService
	export  *service.ExportService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(svc *service.EnrollmentService, export *service.ExportService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc, export: export}
}

// Create godoc
// @Summary Submit a course enrollment
// @Tags Enrollments
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	screenshot, closer := formUpload(c, "screenshot")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.CreateEnrollmentRequest{
		CourseSlug:    c.PostForm("courseSlug"),
		CourseTitle:   c.PostForm("courseTitle"),
		FullName:      c.PostForm("fullName"),
		Email:         c.PostForm("email"),
		Phone:         c.PostForm("phone"),
		PaymentMethod: c.PostForm("paymentMethod"),
		Message:       c.PostForm("message"),
	}

	enrollment, err := h.service.Create(c.Request.Context(), claims.AccountID, req, screenshot)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment, "Enrollment request submitted successfully")
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param course query string false "Filter by course slug"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	filter := models.EnrollmentFilter{
		Status:     c.Query("status"),
		CourseSlug: c.Query("course"),
	}
	enrollments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// MyCourses godoc
// @Summary List own enrollments
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /enrollments/my-courses [get]
func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	enrollments, err := h.service.ListMine(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// ByUser godoc
// @Summary List a user's enrollments
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollments/user/{userId} [get]
func (h *EnrollmentHandler) ByUser(c *gin.Context) {
	enrollments, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Get godoc
// @Summary Get an enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	enrollment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

// UpdateStatus godoc
// @Summary Apply an enrollment review decision
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id}/status [patch]
func (h *EnrollmentHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid status payload"))
		return
	}

	enrollment, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status, payload.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment, fmt.Sprintf("Enrollment %s successfully", enrollment.Status))
}

// Delete godoc
// @Summary Delete an enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Enrollment deleted successfully")
}

// Export godoc
// @Summary Export enrollments
// @Tags Enrollments
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string true "csv or pdf"
// @Param status query string false "Filter by status"
// @Param course query string false "Filter by course slug"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /enrollments/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	filter := models.EnrollmentFilter{
		Status:     c.Query("status"),
		CourseSlug: c.Query("course"),
	}

	result, err := h.export.ExportEnrollments(c.Request.Context(), filter, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
