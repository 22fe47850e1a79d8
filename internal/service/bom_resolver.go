package service

import (
	"context"
	"sort"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BomResolver expands a product's bill of materials — including nested
// sub-products — into a flat component demand map.
//
// Rounding policy: spillage is applied per leaf BOM edge and the exact
// decimal total for that edge is ceiled BEFORE aggregation. Two edges each
// needing 0.5 units therefore resolve to 1+1=2, never ceil(1.0)=1. Partial
// components cannot be allocated.
type BomResolver struct {
	products repository.ProductRepository
}

func NewBomResolver(products repository.ProductRepository) *BomResolver {
	return &BomResolver{products: products}
}

// ResolveDemand returns the merged component demand for producing quantity
// units of the product. depth tracks recursion over nested-product edges;
// the graph is kept acyclic at authoring time but the cap is still enforced
// in case the data is malformed.
//
// Merging is commutative and associative, so traversal order never changes
// the result map. A product with no BOM of either kind yields an empty map.
func (r *BomResolver) ResolveDemand(ctx context.Context, productID uuid.UUID, quantity, depth int) (map[uuid.UUID]int, error) {
	if depth > domain.MaxBomDepth {
		return nil, domain.ErrBomTooDeep
	}

	demand := make(map[uuid.UUID]int)

	bomEntries, err := r.products.ListComponentBom(ctx, productID)
	if err != nil {
		return nil, err
	}
	one := decimal.NewFromInt(1)
	for _, bom := range bomEntries {
		// exact decimal arithmetic until the final per-edge ceiling
		spillageMultiplier := one.Add(bom.Component.SpillageCoefficient)
		exactPerUnit := decimal.NewFromInt(int64(bom.QuantityRequired)).Mul(spillageMultiplier)
		exactTotal := exactPerUnit.Mul(decimal.NewFromInt(int64(quantity)))
		demand[bom.ComponentID] += int(exactTotal.Ceil().IntPart())
	}

	productBomEntries, err := r.products.ListProductBom(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, pb := range productBomEntries {
		childDemand, err := r.ResolveDemand(ctx, pb.ChildProductID, pb.QuantityRequired*quantity, depth+1)
		if err != nil {
			return nil, err
		}
		for componentID, qty := range childDemand {
			demand[componentID] += qty
		}
	}

	return demand, nil
}

// CheckCircularReference reports whether adding the edge parent→child to the
// nested-product BOM graph would close a cycle, i.e. whether parent is
// reachable from child (or parent == child). A visited set guards against
// runaway traversal on an already-malformed graph.
func (r *BomResolver) CheckCircularReference(ctx context.Context, parentID, childID uuid.UUID) (bool, error) {
	if parentID == childID {
		return true, nil
	}
	visited := make(map[uuid.UUID]bool)
	return r.reachable(ctx, childID, parentID, visited)
}

func (r *BomResolver) reachable(ctx context.Context, from, target uuid.UUID, visited map[uuid.UUID]bool) (bool, error) {
	if visited[from] {
		return false, nil
	}
	visited[from] = true

	edges, err := r.products.ListProductBom(ctx, from)
	if err != nil {
		return false, err
	}
	for _, edge := range edges {
		if edge.ChildProductID == target {
			return true, nil
		}
		found, err := r.reachable(ctx, edge.ChildProductID, target, visited)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// sortedComponentIDs returns the demand map's keys in a stable order so that
// allocation rows and shortage reports are deterministic.
func sortedComponentIDs(demand map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
