package service

import (
	"context"
	"fmt"
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/model"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService is the allocation engine: it turns resolved BOM demand into
// committed inventory reservations and drives the order lifecycle
// pending → in_progress → completed.
type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderDetailResponse, error)
	AllocatePendingOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error)
	CompleteOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error)
	GetOrderRequirements(ctx context.Context, orderID uuid.UUID) (*dto.OrderRequirementsResponse, error)
	ListOrders(ctx context.Context) (*dto.OrderSummaryResponse, error)
}

type orderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	components repository.ComponentRepository
	resolver   *BomResolver
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	components repository.ComponentRepository,
	resolver *BomResolver,
) OrderService {
	return &orderService{
		orders:     orders,
		products:   products,
		components: components,
		resolver:   resolver,
	}
}

// componentRequirement pairs one component with the rounded demand an order
// places on it.
type componentRequirement struct {
	component *model.Component
	needed    int
}

// resolveRequirements expands the product's BOM for the order quantity and
// loads the live component rows the demand lands on, in stable order.
func (s *orderService) resolveRequirements(ctx context.Context, productID uuid.UUID, quantity int) ([]componentRequirement, error) {
	demand, err := s.resolver.ResolveDemand(ctx, productID, quantity, 0)
	if err != nil {
		return nil, err
	}
	if len(demand) == 0 {
		return nil, domain.ErrInvalidBom
	}

	requirements := make([]componentRequirement, 0, len(demand))
	for _, componentID := range sortedComponentIDs(demand) {
		component, err := s.components.FindByID(ctx, componentID)
		if err != nil {
			return nil, asNotFound(err)
		}
		requirements = append(requirements, componentRequirement{
			component: component,
			needed:    demand[componentID],
		})
	}
	return requirements, nil
}

// shortages returns the itemized list of components whose live in_stock
// cannot cover the requirement. Empty means the order can be allocated.
func shortages(requirements []componentRequirement) []domain.ComponentShortage {
	var short []domain.ComponentShortage
	for _, req := range requirements {
		if req.component.InStock < req.needed {
			short = append(short, domain.ComponentShortage{
				ComponentID:   req.component.ID.String(),
				ComponentName: req.component.Name,
				Needed:        req.needed,
				Available:     req.component.InStock,
				Shortage:      req.needed - req.component.InStock,
			})
		}
	}
	return short
}

// allocateTx performs the atomic sufficient-path mutation: for every
// requirement, in_stock decreases and in_progress increases by the needed
// amount, an allocation row is written, and the product's own in_progress
// counter grows by the order quantity. Any failure rolls back all of it —
// partial allocation is never observable.
func (s *orderService) allocateTx(tx *gorm.DB, order *model.Order, requirements []componentRequirement) error {
	for _, req := range requirements {
		if err := s.components.TransferStockTx(tx, req.component.ID, -req.needed, req.needed, 0); err != nil {
			return fmt.Errorf("allocating %s: %w", req.component.Name, err)
		}
		allocation := &model.OrderAllocation{
			OrderID:           order.ID,
			ComponentID:       req.component.ID,
			QuantityAllocated: req.needed,
		}
		if err := s.orders.CreateAllocationTx(tx, allocation); err != nil {
			return err
		}
	}
	return s.products.AdjustCountersTx(tx, order.ProductID, order.Quantity, 0)
}

// CreateOrder resolves the product's BOM demand and checks it against live
// stock. Any shortage defers the order: it is persisted in pending status
// with no allocations and no inventory mutation, queued for later
// procurement. Full sufficiency allocates atomically and the order enters
// directly at in_progress.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderDetailResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, asNotFound(err)
	}

	requirements, err := s.resolveRequirements(ctx, productID, req.Quantity)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ProductID: productID,
		Quantity:  req.Quantity,
	}

	if short := shortages(requirements); len(short) > 0 {
		// Not enough stock: park the order for procurement instead of failing.
		order.Status = model.OrderStatusPending
		err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
			return s.orders.CreateTx(tx, order)
		})
	} else {
		order.Status = model.OrderStatusInProgress
		err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
			if err := s.orders.CreateTx(tx, order); err != nil {
				return err
			}
			return s.allocateTx(tx, order, requirements)
		})
	}
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, order.ID)
}

// AllocatePendingOrder re-resolves demand (stock may have changed since the
// order was created) and re-checks sufficiency. Still short → itemized
// shortage error, order untouched. Sufficient → same atomic allocation as
// order creation, status pending → in_progress.
func (s *orderService) AllocatePendingOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if order.Status != model.OrderStatusPending {
		return nil, domain.ErrInvalidState
	}

	requirements, err := s.resolveRequirements(ctx, order.ProductID, order.Quantity)
	if err != nil {
		return nil, err
	}
	if short := shortages(requirements); len(short) > 0 {
		return nil, &domain.InsufficientInventoryError{Shortages: short}
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.allocateTx(tx, order, requirements); err != nil {
			return err
		}
		return s.orders.UpdateStatusTx(tx, order.ID, model.OrderStatusInProgress, nil)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

// CompleteOrder moves every allocated quantity from in_progress to shipped,
// mirrors the transfer on the product's counters, and marks the order
// completed with a timestamp. Completed is terminal. An in_progress
// underflow means the stored counters disagree with the allocation records;
// that is a data-consistency fault, not a user error.
func (s *orderService) CompleteOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error) {
	order, err := s.orders.FindByIDWithDetails(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if order.Status == model.OrderStatusCompleted {
		return nil, domain.ErrAlreadyCompleted
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		for _, allocation := range order.Allocations {
			component := allocation.Component
			if tx != nil {
				// Re-read inside the transaction for a current counter value.
				component, err = s.components.FindByIDTx(tx, allocation.ComponentID)
				if err != nil {
					return err
				}
			}
			if component.InProgress < allocation.QuantityAllocated {
				return &domain.DataConsistencyError{
					Detail: fmt.Sprintf("component %q has insufficient in_progress inventory", component.Name),
				}
			}
			if err := s.components.TransferStockTx(tx, allocation.ComponentID, 0, -allocation.QuantityAllocated, allocation.QuantityAllocated); err != nil {
				return err
			}
		}

		product := order.Product
		if product.InProgress < order.Quantity {
			return &domain.DataConsistencyError{
				Detail: fmt.Sprintf("product %q has insufficient in_progress inventory", product.Name),
			}
		}
		if err := s.products.AdjustCountersTx(tx, order.ProductID, -order.Quantity, order.Quantity); err != nil {
			return err
		}

		now := time.Now().UTC()
		return s.orders.UpdateStatusTx(tx, order.ID, model.OrderStatusCompleted, &now)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailResponse, error) {
	order, err := s.orders.FindByIDWithDetails(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}

	allocations := make([]dto.OrderAllocationResponse, 0, len(order.Allocations))
	for _, allocation := range order.Allocations {
		name := ""
		if allocation.Component != nil {
			name = allocation.Component.Name
		}
		allocations = append(allocations, dto.OrderAllocationResponse{
			ID:                allocation.ID.String(),
			ComponentID:       allocation.ComponentID.String(),
			ComponentName:     name,
			QuantityAllocated: allocation.QuantityAllocated,
		})
	}

	return &dto.OrderDetailResponse{
		OrderResponse: orderToResponse(order),
		Allocations:   allocations,
	}, nil
}

// GetOrderRequirements previews the order's component demand against live
// stock; for pending orders it answers "could AllocatePendingOrder succeed
// right now".
func (s *orderService) GetOrderRequirements(ctx context.Context, orderID uuid.UUID) (*dto.OrderRequirementsResponse, error) {
	order, err := s.orders.FindByIDWithDetails(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}

	requirements, err := s.resolveRequirements(ctx, order.ProductID, order.Quantity)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ComponentRequirementResponse, 0, len(requirements))
	canAllocate := true
	for _, req := range requirements {
		shortage := req.needed - req.component.InStock
		if shortage < 0 {
			shortage = 0
		}
		hasEnough := req.component.InStock >= req.needed
		if !hasEnough {
			canAllocate = false
		}
		items = append(items, dto.ComponentRequirementResponse{
			ComponentID:   req.component.ID.String(),
			ComponentName: req.component.Name,
			Needed:        req.needed,
			Available:     req.component.InStock,
			Shortage:      shortage,
			HasEnough:     hasEnough,
		})
	}

	productName := ""
	if order.Product != nil {
		productName = order.Product.Name
	}
	return &dto.OrderRequirementsResponse{
		OrderID:      order.ID.String(),
		ProductName:  productName,
		Quantity:     order.Quantity,
		Status:       string(order.Status),
		Requirements: items,
		CanAllocate:  canAllocate,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context) (*dto.OrderSummaryResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.OrderSummaryResponse{
		TotalOrders: len(orders),
		Orders:      make([]dto.OrderResponse, 0, len(orders)),
	}
	for i := range orders {
		switch orders[i].Status {
		case model.OrderStatusPending:
			summary.Pending++
		case model.OrderStatusInProgress:
			summary.InProgress++
		case model.OrderStatusCompleted:
			summary.Completed++
		}
		summary.Orders = append(summary.Orders, orderToResponse(&orders[i]))
	}
	return summary, nil
}

func orderToResponse(order *model.Order) dto.OrderResponse {
	productName := ""
	if order.Product != nil {
		productName = order.Product.Name
	}
	return dto.OrderResponse{
		ID:          order.ID.String(),
		ProductID:   order.ProductID.String(),
		ProductName: productName,
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		CompletedAt: order.CompletedAt,
	}
}
