// internal/handlers/verification.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/services"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

type VerificationHandler struct {
	verificationService *services.VerificationService
}

func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// GET /verify/:code
//
// The caller's role comes from the JWT claims, never from the request body:
// workers get the stock-validation semantics, clients the strict ones. The
// code is passed through untouched; matching is exact.
func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.BadRequestResponse(c, "Verification code is required", nil)
		return
	}

	roleStr, exists := utils.GetRoleFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	verdict, err := h.verificationService.Verify(code, models.Role(roleStr))
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.InternalErrorResponse(c, "Verification failed")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"verdict": verdict,
	})
}
