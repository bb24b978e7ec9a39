// internal/handlers/code.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/services"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

type CodeHandler struct {
	codeService    *services.CodeService
	storageService *services.StorageService
	codeLogPath    string
}

func NewCodeHandler(codeService *services.CodeService, storageService *services.StorageService, codeLogPath string) *CodeHandler {
	return &CodeHandler{
		codeService:    codeService,
		storageService: storageService,
		codeLogPath:    codeLogPath,
	}
}

// POST /products/:id/codes
func (h *CodeHandler) IssueCodes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.IssueCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	codes, err := h.codeService.IssueCodes(productID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		// A partial batch stays issued; report what exists along with the error.
		if len(codes) > 0 {
			utils.ErrorResponse(c, 500, "PARTIAL_BATCH", "Some codes could not be issued", gin.H{
				"issued": codes,
			})
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Codes generated",
		"codes":   codes,
	})
}

// GET /products/:id/codes
func (h *CodeHandler) GetCodes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	codes, err := h.codeService.ListCodes(productID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"codes": codes,
	})
}

// DELETE /codes/:id
func (h *CodeHandler) DeleteCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid code ID", nil)
		return
	}

	if err := h.codeService.DeleteCode(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Code not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Code deleted",
	})
}

// POST /exports/codes
func (h *CodeHandler) ExportCodeLog(c *gin.Context) {
	result, err := h.storageService.UploadCodeLog(h.codeLogPath)
	if err != nil {
		if strings.Contains(err.Error(), "not configured") {
			utils.BadRequestResponse(c, "Export storage is not configured", nil)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "No issued-code log exists yet")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Code log exported",
		"export":  result,
	})
}
