// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

// CatalogService owns the product lifecycle: creation, archival (soft hide)
// and permanent deletion with its cascade onto product codes.
type CatalogService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	Brand          string `json:"brand" validate:"required,min=1,max=255"`
	ManufacturedAt string `json:"manufactured_at" validate:"required,datetime=2006-01-02"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	manufactured, err := time.Parse("2006-01-02", req.ManufacturedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid manufactured date: %w", err)
	}

	product := &models.Product{
		Name:           req.Name,
		Brand:          req.Brand,
		ManufacturedAt: manufactured,
		Status:         models.ProductStatusActive,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// ArchiveProduct hides the product from the active catalog. Its codes are
// left untouched; there is no way back to ACTIVE.
func (s *CatalogService) ArchiveProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("status", models.ProductStatusArchived).Error; err != nil {
		return nil, fmt.Errorf("failed to archive product: %w", err)
	}

	return &product, nil
}

// DeleteProduct removes the product and every code issued for it, in one
// transaction. The rows are retained under soft delete so the code strings
// stay reserved, but the product is irrecoverable through the API.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCode{}).Error; err != nil {
			return fmt.Errorf("failed to delete product codes: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// ListActiveProducts returns ACTIVE products whose name or brand contains the
// search term (case-insensitive), newest first. An empty term means no filter.
func (s *CatalogService) ListActiveProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusActive)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "brand"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// ListArchivedProducts returns every ARCHIVED product, unfiltered.
func (s *CatalogService) ListArchivedProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusArchived).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch archived products: %w", err)
	}
	return products, nil
}
