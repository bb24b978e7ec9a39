// internal/handlers/complaint.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/services"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// POST /complaints
func (h *ComplaintHandler) RaiseComplaint(c *gin.Context) {
	var req services.RaiseComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := h.complaintService.RaiseComplaint(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   "Complaint submitted",
		"complaint": token,
	})
}

// GET /complaints
func (h *ComplaintHandler) GetComplaints(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tokens, total, err := h.complaintService.ListComplaints(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(tokens, total, params)
	utils.PaginatedResponse(c, result)
}
