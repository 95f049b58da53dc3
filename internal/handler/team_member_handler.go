package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/response"
)

// TeamMemberHandler wires the team member directory endpoints.
type TeamMemberHandler struct {
	service *service.TeamMemberService
}

// NewTeamMemberHandler creates a new handler.
func NewTeamMemberHandler(svc *service.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{service: svc}
}

// List godoc
// @Summary List team members
// @Tags Team Members
// @Produce json
// @Param team query string false "Filter by team (binary-hub or binary-digital)"
// @Success 200 {object} response.Envelope
// @Router /team-members [get]
func (h *TeamMemberHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), c.Query("team"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, members)
}

// Get godoc
// @Summary Get a team member
// @Tags Team Members
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /team-members/{id} [get]
func (h *TeamMemberHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Create godoc
// @Summary Create a team member
// @Tags Team Members
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /team-members [post]
func (h *TeamMemberHandler) Create(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.CreateTeamMemberRequest{
		Name:        c.PostForm("name"),
		Designation: c.PostForm("designation"),
		LinkedIn:    c.PostForm("linkedin"),
		Team:        c.PostForm("team"),
	}

	member, err := h.service.Create(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member, "Team member created successfully")
}

// Update godoc
// @Summary Update a team member
// @Tags Team Members
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /team-members/{id} [put]
func (h *TeamMemberHandler) Update(c *gin.Context) {
	upload, closer := formUpload(c, "image")
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	req := service.UpdateTeamMemberRequest{
		Name:        c.PostForm("name"),
		Designation: c.PostForm("designation"),
		Team:        c.PostForm("team"),
	}
	if linkedin, ok := c.GetPostForm("linkedin"); ok {
		req.LinkedIn = &linkedin
	}

	member, err := h.service.Update(c.Request.Context(), c.Param("id"), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Delete godoc
// @Summary Delete a team member
// @Tags Team Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /team-members/{id} [delete]
func (h *TeamMemberHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Team member deleted successfully")
}
