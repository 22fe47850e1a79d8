package repository

import (
	"context"

	"github.com/HanreDelport/Inventory-Manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and both
// kinds of BOM edge they own.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListComponentBom returns the product's component edges with each
	// Component preloaded (spillage and live stock included).
	ListComponentBom(ctx context.Context, productID uuid.UUID) ([]model.BillOfMaterials, error)
	// ListProductBom returns the product's nested-product edges with each
	// Child preloaded.
	ListProductBom(ctx context.Context, productID uuid.UUID) ([]model.ProductBOM, error)

	// CountOrders returns how many orders reference the product.
	CountOrders(ctx context.Context, productID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Product) error
	// ReplaceBomTx deletes every existing edge of both kinds and inserts the
	// given sets, all within the supplied transaction.
	ReplaceBomTx(tx *gorm.DB, productID uuid.UUID, bom []model.BillOfMaterials, productBom []model.ProductBOM) error
	// AdjustCountersTx applies signed deltas to in_progress and shipped.
	AdjustCountersTx(tx *gorm.DB, id uuid.UUID, dInProgress, dShipped int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// BOM edges of both kinds cascade with the product.
	return r.db.WithContext(ctx).Select("BomEntries", "ProductBomEntries").
		Delete(&model.Product{ID: id}).Error
}

func (r *productRepo) ListComponentBom(ctx context.Context, productID uuid.UUID) ([]model.BillOfMaterials, error) {
	var entries []model.BillOfMaterials
	err := r.db.WithContext(ctx).Preload("Component").
		Where("product_id = ?", productID).Find(&entries).Error
	return entries, err
}

func (r *productRepo) ListProductBom(ctx context.Context, productID uuid.UUID) ([]model.ProductBOM, error) {
	var entries []model.ProductBOM
	err := r.db.WithContext(ctx).Preload("Child").
		Where("product_id = ?", productID).Find(&entries).Error
	return entries, err
}

func (r *productRepo) CountOrders(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) ReplaceBomTx(tx *gorm.DB, productID uuid.UUID, bom []model.BillOfMaterials, productBom []model.ProductBOM) error {
	if err := tx.Where("product_id = ?", productID).Delete(&model.BillOfMaterials{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&model.ProductBOM{}).Error; err != nil {
		return err
	}
	if len(bom) > 0 {
		if err := tx.Create(&bom).Error; err != nil {
			return err
		}
	}
	if len(productBom) > 0 {
		if err := tx.Create(&productBom).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepo) AdjustCountersTx(tx *gorm.DB, id uuid.UUID, dInProgress, dShipped int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"in_progress": gorm.Expr("in_progress + ?", dInProgress),
		"shipped":     gorm.Expr("shipped + ?", dShipped),
	}).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
