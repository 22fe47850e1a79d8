// Package domain defines the typed errors surfaced by the core inventory
// engine. Handlers translate these into HTTP status codes; services never
// return raw gorm errors to callers.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers missing components, products and orders.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a unique-name constraint would be violated.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateBomEntry is returned when one authoring call repeats a
	// component or a child product within the same BOM.
	ErrDuplicateBomEntry = errors.New("duplicate BOM entry")

	// ErrCircularReference is returned when adding a product-BOM edge would
	// make a product contain itself, directly or transitively.
	ErrCircularReference = errors.New("circular BOM reference")

	// ErrInvalidBom is returned by operations that require a BOM on a product
	// that has none defined.
	ErrInvalidBom = errors.New("product has no bill of materials defined")

	// ErrInvalidState is returned when an order is not in the status the
	// requested transition expects.
	ErrInvalidState = errors.New("invalid order state for this operation")

	// ErrAlreadyCompleted is returned when completing a completed order.
	ErrAlreadyCompleted = errors.New("order is already completed")

	// ErrBomTooDeep is returned when BOM recursion exceeds MaxBomDepth.
	ErrBomTooDeep = errors.New("BOM nesting exceeds maximum depth")

	// ErrInvalidStockAdjustment is returned when an adjustment would drive
	// in_stock below zero.
	ErrInvalidStockAdjustment = errors.New("stock adjustment would make in_stock negative")
)

// MaxBomDepth bounds recursive BOM traversal. The product-BOM graph is kept
// acyclic at authoring time, so this only trips on pathological data.
const MaxBomDepth = 10

// ComponentShortage itemizes one component that blocks an allocation.
type ComponentShortage struct {
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	Needed        int    `json:"needed"`
	Available     int    `json:"available"`
	Shortage      int    `json:"shortage"`
}

// InsufficientInventoryError reports every short component for an allocation
// attempt. The order is left untouched when this is returned.
type InsufficientInventoryError struct {
	Shortages []ComponentShortage
}

func (e *InsufficientInventoryError) Error() string {
	details := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		details[i] = fmt.Sprintf("%s: need %d, have %d (short %d)",
			s.ComponentName, s.Needed, s.Available, s.Shortage)
	}
	return "insufficient inventory. Shortages: " + strings.Join(details, "; ")
}

// ReferentialConflictError blocks deletes of entities that are still
// referenced or still carry inventory.
type ReferentialConflictError struct {
	Reason string
}

func (e *ReferentialConflictError) Error() string { return e.Reason }

// DataConsistencyError signals an internal invariant violation (for example
// an in_progress underflow during order completion). It indicates a bug, not
// a user error, and is reported as a server-side fault.
type DataConsistencyError struct {
	Detail string
}

func (e *DataConsistencyError) Error() string {
	return "data inconsistency: " + e.Detail
}
