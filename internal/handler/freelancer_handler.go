package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/response"
)

// FreelancerHandler wires the freelancer directory endpoints.
type FreelancerHandler struct {
	service *service.FreelancerService
}

// NewFreelancerHandler creates a new handler.
func NewFreelancerHandler(svc *service.FreelancerService) *FreelancerHandler {
	return &FreelancerHandler{service: svc}
}

// List godoc
// @Summary List freelancers
// @Tags Freelancers
// @Produce json
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /freelancers [get]
func (h *FreelancerHandler) List(c *gin.Context) {
	freelancers, err := h.service.List(c.Request.Context(), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, freelancers)
}

// Get godoc
// @Summary Get a freelancer
// @Tags Freelancers
// @Produce json
// @Param id path string true "Freelancer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /freelancers/{id} [get]
func (h *FreelancerHandler) Get(c *gin.Context) {
	freelancer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, freelancer)
}

// Create godoc
// @Summary Create a freelancer
// @Tags Freelancers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /freelancers [post]
func (h *FreelancerHandler) Create(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	skills, _ := formSkills(c)
	req := service.CreateFreelancerRequest{
		Name:       c.PostForm("name"),
		Title:      c.PostForm("title"),
		Skills:     skills,
		Department: c.PostForm("department"),
		LinkedIn:   c.PostForm("linkedin"),
	}

	freelancer, err := h.service.Create(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, freelancer, "Freelancer created successfully")
}

// Update godoc
// @Summary Update a freelancer
// @Tags Freelancers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Freelancer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /freelancers/{id} [put]
func (h *FreelancerHandler) Update(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.UpdateFreelancerRequest{
		Name:       c.PostForm("name"),
		Title:      c.PostForm("title"),
		Department: c.PostForm("department"),
	}
	if skills, ok := formSkills(c); ok {
		req.Skills = skills
	}
	if linkedin, ok := c.GetPostForm("linkedin"); ok {
		req.LinkedIn = &linkedin
	}

	freelancer, err := h.service.Update(c.Request.Context(), c.Param("id"), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, freelancer)
}

// Delete godoc
// @Summary Delete a freelancer
// @Tags Freelancers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Freelancer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /freelancers/{id} [delete]
func (h *FreelancerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Freelancer deleted successfully")
}
