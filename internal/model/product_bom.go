package model

import "github.com/google/uuid"

// ProductBOM is a product→product edge: QuantityRequired units of the child
// product are consumed per unit of the parent. The graph of these edges is a
// DAG — the authoring path rejects any edge that would close a cycle — and
// traversal is additionally depth-capped during resolution.
type ProductBOM struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_parent_child;not null"`
	ChildProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_parent_child;not null"`
	QuantityRequired int       `gorm:"not null;check:quantity_required > 0"`

	Child *Product `gorm:"foreignKey:ChildProductID;constraint:OnDelete:RESTRICT"`
}
