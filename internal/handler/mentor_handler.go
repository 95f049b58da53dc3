package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/response"
)

// MentorHandler wires the mentor directory endpoints.
type MentorHandler struct {
	service *service.MentorService
}

// NewMentorHandler creates a new handler.
func NewMentorHandler(svc *service.MentorService) *MentorHandler {
	return &MentorHandler{service: svc}
}

// List godoc
// @Summary List mentors
// @Tags Mentors
// @Produce json
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /mentors [get]
func (h *MentorHandler) List(c *gin.Context) {
	mentors, err := h.service.List(c.Request.Context(), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mentors)
}

// Get godoc
// @Summary Get a mentor
// @Tags Mentors
// @Produce json
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mentors/{id} [get]
func (h *MentorHandler) Get(c *gin.Context) {
	mentor, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mentor)
}

// Create godoc
// @Summary Create a mentor
// @Tags Mentors
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /mentors [post]
func (h *MentorHandler) Create(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.CreateMentorRequest{
		Name:       c.PostForm("name"),
		Department: c.PostForm("department"),
		LinkedIn:   c.PostForm("linkedin"),
	}

	mentor, err := h.service.Create(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mentor, "Mentor created successfully")
}

// Update godoc
// @Summary Update a mentor
// @Tags Mentors
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mentors/{id} [put]
func (h *MentorHandler) Update(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.UpdateMentorRequest{
		Name:       c.PostForm("name"),
		Department: c.PostForm("department"),
	}
	if linkedin, ok := c.GetPostForm("linkedin"); ok {
		req.LinkedIn = &linkedin
	}

	mentor, err := h.service.Update(c.Request.Context(), c.Param("id"), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mentor)
}

// Delete godoc
// @Summary Delete a mentor
// @Tags Mentors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mentors/{id} [delete]
func (h *MentorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Mentor deleted successfully")
}
