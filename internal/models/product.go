// internal/models/product.go
package models

import "time"

type Product struct {
	BaseModel
	Name           string        `json:"name" gorm:"size:255;not null;index"`
	Brand          string        `json:"brand" gorm:"size:255;not null;index"`
	ManufacturedAt time.Time     `json:"manufactured_at" gorm:"not null"`
	Status         ProductStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE';index"`

	// Relationships
	Codes []ProductCode `json:"codes,omitempty" gorm:"foreignKey:ProductID"`
}
