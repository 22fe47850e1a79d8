package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is an assembled good. Its BOM is the union of component edges
// (BillOfMaterials) and nested product edges (ProductBOM); both are owned by
// the product and cascade-deleted with it. InProgress and Shipped mirror
// aggregate order activity for the product itself.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"uniqueIndex;not null"`
	InProgress int       `gorm:"not null;default:0;check:in_progress >= 0"`
	Shipped    int       `gorm:"not null;default:0;check:shipped >= 0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	BomEntries        []BillOfMaterials `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ProductBomEntries []ProductBOM      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
