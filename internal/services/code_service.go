// internal/services/code_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/events"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

// maxCodeRetries bounds regeneration attempts when a freshly drawn code
// collides with an existing row. With a 36^12 code space this is practically
// unreachable, but the uniqueness constraint is the contract, not the odds.
const maxCodeRetries = 5

// CodeService mints printed codes for products.
type CodeService struct {
	db   *gorm.DB
	sink events.Sink

	// generateCode is swappable for tests.
	generateCode func() (string, error)
}

type IssueCodesRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func NewCodeService(db *gorm.DB, sink events.Sink) *CodeService {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &CodeService{
		db:           db,
		sink:         sink,
		generateCode: utils.GenerateCode,
	}
}

// IssueCodes mints req.Quantity unique codes bound to the product. Each code
// is inserted as its own atomic row: if a later insert fails fatally, the
// codes created before it remain issued and are returned alongside the error.
// Callers treat such a partial batch as issued work, not as a rollback.
func (s *CodeService) IssueCodes(productID uuid.UUID, req *IssueCodesRequest) ([]models.ProductCode, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The product must exist; archived products can still receive codes.
	var product models.Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	issued := make([]models.ProductCode, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		code, err := s.issueOne(productID)
		if err != nil {
			return issued, err
		}
		issued = append(issued, *code)

		s.notifyIssued(&product, code)
	}

	return issued, nil
}

// issueOne inserts a single code, regenerating on a uniqueness-constraint
// collision. The unique index on product_codes.code is the only coordination
// between concurrent issuers.
func (s *CodeService) issueOne(productID uuid.UUID) (*models.ProductCode, error) {
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		value, err := s.generateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate code: %w", err)
		}

		code := &models.ProductCode{
			ProductID: productID,
			Code:      value,
		}
		err = s.db.Create(code).Error
		if err == nil {
			return code, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithField("attempt", attempt+1).Warn("Code collision, regenerating")
			continue
		}
		return nil, fmt.Errorf("failed to insert code: %w", err)
	}

	return nil, errors.New("code generation retries exhausted")
}

func (s *CodeService) notifyIssued(product *models.Product, code *models.ProductCode) {
	event := events.CodeIssued{
		ProductName: product.Name,
		Brand:       product.Brand,
		Code:        code.Code,
		IssuedAt:    code.CreatedAt,
	}
	// Export collaborators must never fail an issuance.
	go func() {
		if err := s.sink.Publish(context.Background(), event); err != nil {
			logrus.WithError(err).WithField("code", event.Code).Error("Failed to publish code issued event")
		}
	}()
}

// ListCodes returns every live code of a product, oldest first, for the
// label/sheet collaborator.
func (s *CodeService) ListCodes(productID uuid.UUID) ([]models.ProductCode, error) {
	var product models.Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var codes []models.ProductCode
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch codes: %w", err)
	}
	return codes, nil
}

// DeleteCode removes a single code. The code string stays reserved forever.
func (s *CodeService) DeleteCode(id uuid.UUID) error {
	var code models.ProductCode
	if err := s.db.Where("id = ?", id).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("code not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&code).Error; err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}
	return nil
}
