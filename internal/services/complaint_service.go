// internal/services/complaint_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

// ComplaintService records customer tickets against checked codes. Tickets
// are accepted for codes that resolve to nothing at all: raising one after a
// FAKE verdict is the whole point, so no existence check is performed.
type ComplaintService struct {
	db *gorm.DB
}

type RaiseComplaintRequest struct {
	ProductName     string `json:"product_name" validate:"required,max=255"`
	Brand           string `json:"brand" validate:"required,max=255"`
	Code            string `json:"code" validate:"required,max=50"`
	Issue           string `json:"issue" validate:"required"`
	CustomerName    string `json:"customer_name" validate:"required,max=255"`
	CustomerContact string `json:"customer_contact" validate:"required,max=255"`
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db}
}

func (s *ComplaintService) RaiseComplaint(req *RaiseComplaintRequest) (*models.ComplaintToken, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	token := &models.ComplaintToken{
		ProductName:     req.ProductName,
		Brand:           req.Brand,
		Code:            req.Code,
		Issue:           req.Issue,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Status:          models.ComplaintStatusOpen,
	}

	if err := s.db.Create(token).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	return token, nil
}

// ListComplaints returns every ticket, newest first, for admin triage.
func (s *ComplaintService) ListComplaints(params utils.PaginationParams) ([]models.ComplaintToken, int64, error) {
	query := s.db.Model(&models.ComplaintToken{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	allowedSortFields := []string{"created_at", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var tokens []models.ComplaintToken
	if err := query.Find(&tokens).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch complaints: %w", err)
	}

	return tokens, total, nil
}
