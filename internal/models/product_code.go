// internal/models/product_code.go
package models

import "github.com/google/uuid"

// ProductCode is one printed code bound to exactly one product. The row is
// soft-deleted: a removed code disappears from every lookup while the unique
// index keeps the code string reserved, so no code value is ever reissued,
// not even after the owning product is deleted.
type ProductCode struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Code      string    `json:"code" gorm:"uniqueIndex;size:12;not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
