package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/response"
)

// RenewalHandler exposes the manual sweep trigger.
type RenewalHandler struct {
	service *service.RenewalService
}

// NewRenewalHandler creates a new handler.
func NewRenewalHandler(svc *service.RenewalService) *RenewalHandler {
	return &RenewalHandler{service: svc}
}

// CheckRenewals godoc
// @Summary Run the renewal sweep once
// @Tags Course Renewal
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /course-renewal/check-renewals [post]
func (h *RenewalHandler) CheckRenewals(c *gin.Context) {
	if err := h.service.Sweep(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Renewal check completed")
}
