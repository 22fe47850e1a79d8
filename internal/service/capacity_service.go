package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// noBomDefined is the limiting-factor marker for products without any BOM.
const noBomDefined = "No BOM defined"

const capacityCacheKey = "capacity:report"

// CapacityService answers "how many units could we build right now" per
// product, naming the constraint that produces the minimum.
type CapacityService interface {
	// MaxProducible returns the maximum producible units for one product and
	// the limiting factor (a component name, a nested product name, or the
	// no-BOM marker). When several constraints tie on the minimum, whichever
	// is encountered first wins; callers must not rely on a particular one.
	MaxProducible(ctx context.Context, productID uuid.UUID) (int, string, error)
	// CalculateProductionCapacity evaluates every product. The full report is
	// cached in redis for a short TTL since it walks each product's BOM tree.
	CalculateProductionCapacity(ctx context.Context) ([]dto.ProductCapacityResponse, error)
}

type capacityService struct {
	products repository.ProductRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewCapacityService(products repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) CapacityService {
	return &capacityService{products: products, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *capacityService) MaxProducible(ctx context.Context, productID uuid.UUID) (int, string, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return 0, "", asNotFound(err)
	}
	return s.maxProducible(ctx, productID, 0)
}

func (s *capacityService) maxProducible(ctx context.Context, productID uuid.UUID, depth int) (int, string, error) {
	if depth > domain.MaxBomDepth {
		return 0, "", domain.ErrBomTooDeep
	}

	bomEntries, err := s.products.ListComponentBom(ctx, productID)
	if err != nil {
		return 0, "", err
	}
	productBomEntries, err := s.products.ListProductBom(ctx, productID)
	if err != nil {
		return 0, "", err
	}
	if len(bomEntries) == 0 && len(productBomEntries) == 0 {
		return 0, noBomDefined, nil
	}

	best := -1
	limiting := ""

	one := decimal.NewFromInt(1)
	for _, bom := range bomEntries {
		component := bom.Component
		requiredPerUnit := decimal.NewFromInt(int64(bom.QuantityRequired)).
			Mul(one.Add(component.SpillageCoefficient))
		maxUnits := int(decimal.NewFromInt(int64(component.InStock)).
			Div(requiredPerUnit).Floor().IntPart())
		if best < 0 || maxUnits < best {
			best = maxUnits
			limiting = component.Name
		}
	}

	for _, pb := range productBomEntries {
		childMax, _, err := s.maxProducible(ctx, pb.ChildProductID, depth+1)
		if err != nil {
			return 0, "", err
		}
		maxUnits := childMax / pb.QuantityRequired
		if best < 0 || maxUnits < best {
			best = maxUnits
			if pb.Child != nil {
				limiting = pb.Child.Name
			} else {
				limiting = pb.ChildProductID.String()
			}
		}
	}

	return best, limiting, nil
}

func (s *capacityService) CalculateProductionCapacity(ctx context.Context) ([]dto.ProductCapacityResponse, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]dto.ProductCapacityResponse, 0, len(products))
	for i := range products {
		maxUnits, limiting, err := s.maxProducible(ctx, products[i].ID, 0)
		if err != nil {
			return nil, err
		}
		report = append(report, dto.ProductCapacityResponse{
			ID:             products[i].ID.String(),
			Name:           products[i].Name,
			InProgress:     products[i].InProgress,
			Shipped:        products[i].Shipped,
			MaxProducible:  maxUnits,
			LimitingFactor: limiting,
		})
	}

	s.writeCache(ctx, report)
	return report, nil
}

// The cache is best-effort: redis being down or disabled never fails the
// request, and staleness is bounded by the TTL.

func (s *capacityService) readCache(ctx context.Context) []dto.ProductCapacityResponse {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.rdb.Get(ctx, capacityCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var report []dto.ProductCapacityResponse
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return report
}

func (s *capacityService) writeCache(ctx context.Context, report []dto.ProductCapacityResponse) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, capacityCacheKey, raw, s.cacheTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("capacity cache write failed")
	}
}
