package service

import (
	"context"
	"sort"

	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/model"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
)

// ProcurementService aggregates unmet component demand across open orders
// into a shortage report for purchasing.
type ProcurementService interface {
	CalculateProcurementNeeds(ctx context.Context) (*dto.ProcurementResponse, error)
}

type procurementService struct {
	orders     repository.OrderRepository
	components repository.ComponentRepository
	resolver   *BomResolver
}

func NewProcurementService(
	orders repository.OrderRepository,
	components repository.ComponentRepository,
	resolver *BomResolver,
) ProcurementService {
	return &procurementService{orders: orders, components: components, resolver: resolver}
}

type componentNeed struct {
	totalNeeded int
	// ordersAffected counts (order, component) touches by pending orders,
	// not distinct orders.
	ordersAffected int
}

// CalculateProcurementNeeds walks every pending and in_progress order.
// Pending orders contribute their fully resolved demand; in_progress orders
// are already allocated (their demand is reflected in in_progress stock) and
// contribute zero additional need. Components whose aggregate demand exceeds
// available stock are reported with the shortfall.
func (s *procurementService) CalculateProcurementNeeds(ctx context.Context) (*dto.ProcurementResponse, error) {
	openOrders, err := s.orders.ListByStatuses(ctx, []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusInProgress,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ProcurementResponse{ComponentsToOrder: []dto.ProcurementItemResponse{}}
	if len(openOrders) == 0 {
		return resp, nil
	}

	needs := make(map[uuid.UUID]*componentNeed)
	for i := range openOrders {
		if openOrders[i].Status != model.OrderStatusPending {
			// in_progress: stock already moved to in_progress at allocation time
			continue
		}
		demand, err := s.resolver.ResolveDemand(ctx, openOrders[i].ProductID, openOrders[i].Quantity, 0)
		if err != nil {
			return nil, err
		}
		for componentID, qty := range demand {
			need, ok := needs[componentID]
			if !ok {
				need = &componentNeed{}
				needs[componentID] = need
			}
			need.totalNeeded += qty
			need.ordersAffected++
		}
	}

	for componentID, need := range needs {
		component, err := s.components.FindByID(ctx, componentID)
		if err != nil {
			return nil, asNotFound(err)
		}
		shortage := need.totalNeeded - component.InStock
		if shortage <= 0 {
			continue
		}
		resp.ComponentsToOrder = append(resp.ComponentsToOrder, dto.ProcurementItemResponse{
			ComponentID:    component.ID.String(),
			ComponentName:  component.Name,
			InStock:        component.InStock,
			TotalNeeded:    need.totalNeeded,
			Shortage:       shortage,
			OrdersAffected: need.ordersAffected,
		})
	}

	sort.Slice(resp.ComponentsToOrder, func(i, j int) bool {
		return resp.ComponentsToOrder[i].ComponentName < resp.ComponentsToOrder[j].ComponentName
	})
	resp.TotalItems = len(resp.ComponentsToOrder)
	return resp, nil
}
