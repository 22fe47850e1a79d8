package model

import "github.com/google/uuid"

// BillOfMaterials is a product→component edge: QuantityRequired units of the
// component are consumed per single unit of the product, before spillage.
// One component appears at most once per product.
type BillOfMaterials struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_component;not null"`
	ComponentID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_component;not null"`
	QuantityRequired int       `gorm:"not null;check:quantity_required > 0"`

	Component *Component `gorm:"foreignKey:ComponentID;constraint:OnDelete:RESTRICT"`
}
