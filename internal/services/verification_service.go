// internal/services/verification_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
)

// VerificationService resolves a presented code to a GENUINE or FAKE verdict.
//
// The lookup is deliberately role-asymmetric and must stay that way: a worker
// validates stock, so any live code counts as genuine regardless of whether
// the product has been discontinued; a client must not be told a discontinued
// (ARCHIVED) product's code is genuine. Collapsing the two paths would
// silently change behavior.
type VerificationService struct {
	db *gorm.DB
}

type Verdict struct {
	Status         models.VerdictStatus `json:"status"`
	Code           string               `json:"code"`
	ProductName    string               `json:"product_name,omitempty"`
	Brand          string               `json:"brand,omitempty"`
	ManufacturedAt *time.Time           `json:"manufactured_at,omitempty"`
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// Verify classifies the code for the given caller role. The lookup is exact:
// no trimming, no case folding. Every call reads current state so archival
// and deletion take effect immediately.
func (s *VerificationService) Verify(code string, role models.Role) (*Verdict, error) {
	if role != models.RoleWorker && role != models.RoleClient {
		return nil, errors.New("unauthorized role for verification")
	}

	var productCode models.ProductCode
	if err := s.db.Where("code = ?", code).First(&productCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fakeVerdict(code), nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var product models.Product
	if err := s.db.Where("id = ?", productCode.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned code row; the cascade should prevent this, but a code
			// without a live product is fake for everyone.
			return fakeVerdict(code), nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Clients only accept codes of products still in the active catalog.
	if role == models.RoleClient && product.Status != models.ProductStatusActive {
		return fakeVerdict(code), nil
	}

	manufactured := product.ManufacturedAt
	return &Verdict{
		Status:         models.VerdictGenuine,
		Code:           code,
		ProductName:    product.Name,
		Brand:          product.Brand,
		ManufacturedAt: &manufactured,
	}, nil
}

func fakeVerdict(code string) *Verdict {
	return &Verdict{
		Status: models.VerdictFake,
		Code:   code,
	}
}
