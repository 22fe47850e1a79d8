package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/model"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService manages products and the authoring of their BOM edges.
// Every authoring call validates duplicates and cycles BEFORE any write;
// the replace itself runs in one transaction.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDetailResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	UpdateBom(ctx context.Context, id uuid.UUID, req dto.UpdateProductBomRequest) (*dto.ProductDetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products   repository.ProductRepository
	components repository.ComponentRepository
	resolver   *BomResolver
}

func NewProductService(
	products repository.ProductRepository,
	components repository.ComponentRepository,
	resolver *BomResolver,
) ProductService {
	return &productService{products: products, components: components, resolver: resolver}
}

// validatedBomEdges checks component existence and intra-call duplicates and
// returns the edge rows to insert. No writes happen here.
func (s *productService) validatedBomEdges(ctx context.Context, productID uuid.UUID, items []dto.BomItemRequest) ([]model.BillOfMaterials, error) {
	seen := make(map[uuid.UUID]bool, len(items))
	edges := make([]model.BillOfMaterials, 0, len(items))
	for _, item := range items {
		componentID, err := uuid.Parse(item.ComponentID)
		if err != nil {
			return nil, fmt.Errorf("invalid component_id %q: %w", item.ComponentID, err)
		}
		if seen[componentID] {
			return nil, fmt.Errorf("%w: component %s appears more than once", domain.ErrDuplicateBomEntry, item.ComponentID)
		}
		seen[componentID] = true
		if _, err := s.components.FindByID(ctx, componentID); err != nil {
			return nil, asNotFound(err)
		}
		edges = append(edges, model.BillOfMaterials{
			ProductID:        productID,
			ComponentID:      componentID,
			QuantityRequired: item.QuantityRequired,
		})
	}
	return edges, nil
}

// validatedProductBomEdges checks child existence, intra-call duplicates and
// circular references for nested-product edges. Passing uuid.Nil as
// productID skips the cycle check (a product being created cannot be
// referenced by anything yet).
func (s *productService) validatedProductBomEdges(ctx context.Context, productID uuid.UUID, items []dto.ProductBomItemRequest) ([]model.ProductBOM, error) {
	seen := make(map[uuid.UUID]bool, len(items))
	edges := make([]model.ProductBOM, 0, len(items))
	for _, item := range items {
		childID, err := uuid.Parse(item.ChildProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid child_product_id %q: %w", item.ChildProductID, err)
		}
		if seen[childID] {
			return nil, fmt.Errorf("%w: child product %s appears more than once", domain.ErrDuplicateBomEntry, item.ChildProductID)
		}
		seen[childID] = true
		if _, err := s.products.FindByID(ctx, childID); err != nil {
			return nil, asNotFound(err)
		}
		if productID != uuid.Nil {
			circular, err := s.resolver.CheckCircularReference(ctx, productID, childID)
			if err != nil {
				return nil, err
			}
			if circular {
				return nil, fmt.Errorf("%w: product %s already contains %s", domain.ErrCircularReference, item.ChildProductID, productID)
			}
		}
		edges = append(edges, model.ProductBOM{
			ProductID:        productID,
			ChildProductID:   childID,
			QuantityRequired: item.QuantityRequired,
		})
	}
	return edges, nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDetailResponse, error) {
	bomEdges, err := s.validatedBomEdges(ctx, uuid.Nil, req.Bom)
	if err != nil {
		return nil, err
	}
	productBomEdges, err := s.validatedProductBomEdges(ctx, uuid.Nil, req.ProductBom)
	if err != nil {
		return nil, err
	}

	product := &model.Product{Name: req.Name}
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.CreateTx(tx, product); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateName
			}
			return err
		}
		for i := range bomEdges {
			bomEdges[i].ProductID = product.ID
		}
		for i := range productBomEdges {
			productBomEdges[i].ProductID = product.ID
		}
		return s.products.ReplaceBomTx(tx, product.ID, bomEdges, productBomEdges)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, product.ID)
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	bomEntries, err := s.products.ListComponentBom(ctx, id)
	if err != nil {
		return nil, err
	}
	productBomEntries, err := s.products.ListProductBom(ctx, id)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	bom := make([]dto.BomItemResponse, 0, len(bomEntries))
	for _, entry := range bomEntries {
		exactPerUnit := decimal.NewFromInt(int64(entry.QuantityRequired)).
			Mul(one.Add(entry.Component.SpillageCoefficient))
		bom = append(bom, dto.BomItemResponse{
			ID:                   entry.ID.String(),
			ComponentID:          entry.ComponentID.String(),
			ComponentName:        entry.Component.Name,
			QuantityRequired:     entry.QuantityRequired,
			SpillageCoefficient:  entry.Component.SpillageCoefficient,
			QuantityWithSpillage: exactPerUnit,
		})
	}

	productBom := make([]dto.ProductBomItemResponse, 0, len(productBomEntries))
	for _, entry := range productBomEntries {
		name := ""
		if entry.Child != nil {
			name = entry.Child.Name
		}
		productBom = append(productBom, dto.ProductBomItemResponse{
			ID:               entry.ID.String(),
			ChildProductID:   entry.ChildProductID.String(),
			ChildProductName: name,
			QuantityRequired: entry.QuantityRequired,
		})
	}

	return &dto.ProductDetailResponse{
		ProductResponse: productToResponse(product),
		Bom:             bom,
		ProductBom:      productBom,
	}, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if err := s.products.Update(ctx, product); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

// UpdateBom atomically replaces both edge sets of the product's BOM.
// Validation (existence, duplicates, cycles) completes before the old edges
// are touched, so a rejected call leaves the BOM graph unmodified.
func (s *productService) UpdateBom(ctx context.Context, id uuid.UUID, req dto.UpdateProductBomRequest) (*dto.ProductDetailResponse, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, asNotFound(err)
	}

	bomEdges, err := s.validatedBomEdges(ctx, id, req.Bom)
	if err != nil {
		return nil, err
	}
	productBomEdges, err := s.validatedProductBomEdges(ctx, id, req.ProductBom)
	if err != nil {
		return nil, err
	}

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		return s.products.ReplaceBomTx(tx, id, bomEdges, productBomEdges)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a product and its BOM edges. It is blocked while the
// product still carries inventory or while any order references it.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}

	if product.InProgress > 0 || product.Shipped > 0 {
		return &domain.ReferentialConflictError{
			Reason: fmt.Sprintf("cannot delete product %q: it has inventory in progress (%d) or shipped (%d)",
				product.Name, product.InProgress, product.Shipped),
		}
	}
	orderCount, err := s.products.CountOrders(ctx, id)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return &domain.ReferentialConflictError{
			Reason: fmt.Sprintf("cannot delete product %q: it has %d order(s) in the system",
				product.Name, orderCount),
		}
	}

	return s.products.Delete(ctx, id)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		InProgress: p.InProgress,
		Shipped:    p.Shipped,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// isUniqueViolation detects unique-constraint failures from the driver
// without importing pgconn directly.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return false
}
