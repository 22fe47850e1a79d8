package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/model"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComponentService manages raw components and their stock counters.
type ComponentService interface {
	Create(ctx context.Context, req dto.CreateComponentRequest) (*dto.ComponentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ComponentResponse, error)
	List(ctx context.Context) ([]dto.ComponentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateComponentRequest) (*dto.ComponentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, adjustment int) (*dto.ComponentResponse, error)
}

type componentService struct {
	repo repository.ComponentRepository
}

func NewComponentService(repo repository.ComponentRepository) ComponentService {
	return &componentService{repo: repo}
}

var maxSpillage = decimal.RequireFromString("9.9999")

func validateSpillage(coefficient decimal.Decimal) error {
	if coefficient.IsNegative() || coefficient.GreaterThan(maxSpillage) {
		return fmt.Errorf("spillage_coefficient must be between 0 and %s", maxSpillage)
	}
	return nil
}

func (s *componentService) Create(ctx context.Context, req dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if err := validateSpillage(req.SpillageCoefficient); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	component := &model.Component{
		Name:                req.Name,
		SpillageCoefficient: req.SpillageCoefficient,
		InStock:             req.InStock,
		// in_progress and shipped always start at zero
	}
	if err := s.repo.Create(ctx, component); err != nil {
		return nil, err
	}
	return componentToResponse(component), nil
}

func (s *componentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ComponentResponse, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return componentToResponse(component), nil
}

func (s *componentService) List(ctx context.Context) ([]dto.ComponentResponse, error) {
	components, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ComponentResponse, len(components))
	for i := range components {
		resp[i] = *componentToResponse(&components[i])
	}
	return resp, nil
}

func (s *componentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if req.Name != nil && *req.Name != component.Name {
		if _, err := s.repo.FindByName(ctx, *req.Name); err == nil {
			return nil, domain.ErrDuplicateName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		component.Name = *req.Name
	}
	if req.SpillageCoefficient != nil {
		if err := validateSpillage(*req.SpillageCoefficient); err != nil {
			return nil, err
		}
		component.SpillageCoefficient = *req.SpillageCoefficient
	}

	if err := s.repo.Update(ctx, component); err != nil {
		return nil, err
	}
	return componentToResponse(component), nil
}

// Delete removes a component only when nothing references it: no BOM edge
// may point at it and both in_progress and shipped must be zero.
func (s *componentService) Delete(ctx context.Context, id uuid.UUID) error {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}

	bomCount, productNames, err := s.repo.CountBomReferences(ctx, id)
	if err != nil {
		return err
	}
	if bomCount > 0 {
		return &domain.ReferentialConflictError{
			Reason: fmt.Sprintf("cannot delete component %q: used in %d product BOM(s): %s",
				component.Name, bomCount, strings.Join(productNames, ", ")),
		}
	}
	if component.InProgress > 0 || component.Shipped > 0 {
		return &domain.ReferentialConflictError{
			Reason: fmt.Sprintf("cannot delete component %q: it has inventory in progress (%d) or shipped (%d)",
				component.Name, component.InProgress, component.Shipped),
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *componentService) AdjustStock(ctx context.Context, id uuid.UUID, adjustment int) (*dto.ComponentResponse, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if component.InStock+adjustment < 0 {
		return nil, fmt.Errorf("%w: current stock %d, adjustment %d",
			domain.ErrInvalidStockAdjustment, component.InStock, adjustment)
	}

	if err := s.repo.AdjustStock(ctx, id, adjustment); err != nil {
		return nil, err
	}
	component.InStock += adjustment
	return componentToResponse(component), nil
}

func componentToResponse(c *model.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		SpillageCoefficient: c.SpillageCoefficient,
		InStock:             c.InStock,
		InProgress:          c.InProgress,
		Shipped:             c.Shipped,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
