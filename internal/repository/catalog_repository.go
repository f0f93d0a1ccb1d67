package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rate-engine-service/internal/models"
)

// cacheTTL bounds staleness of cached catalog and policy snapshots. The
// engine itself never caches; this is caller-layer memoization per company.
const cacheTTL = 5 * time.Minute

// ErrUnknownSKU is returned when a requested SKU does not resolve to an
// active item in the company's catalog.
var ErrUnknownSKU = errors.New("unknown or inactive item SKU")

// CatalogRepository handles database operations for the item and box catalog.
// Redis is optional; when nil every read goes to the database.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redisClient}
}

// ListActiveItems returns the company's active items.
func (r *CatalogRepository) ListActiveItems(ctx context.Context, companyID string) ([]models.Item, error) {
	key := fmt.Sprintf("catalog:items:%s", companyID)
	var items []models.Item
	if r.cacheGet(ctx, key, &items) {
		return items, nil
	}

	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = true", companyID).
		Order("sku ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, key, items)
	return items, nil
}

// GetItemsBySKUs resolves the requested SKUs against the company's active
// items. Every SKU must resolve; a missing SKU is an error naming it.
func (r *CatalogRepository) GetItemsBySKUs(ctx context.Context, companyID string, skus []string) (map[string]models.Item, error) {
	items, err := r.ListActiveItems(ctx, companyID)
	if err != nil {
		return nil, err
	}

	bySKU := make(map[string]models.Item, len(items))
	for _, item := range items {
		bySKU[item.SKU] = item
	}

	resolved := make(map[string]models.Item, len(skus))
	for _, sku := range skus {
		item, ok := bySKU[sku]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
		}
		resolved[sku] = item
	}
	return resolved, nil
}

// ListActiveBoxes returns the company's active boxes.
func (r *CatalogRepository) ListActiveBoxes(ctx context.Context, companyID string) ([]models.Box, error) {
	key := fmt.Sprintf("catalog:boxes:%s", companyID)
	var boxes []models.Box
	if r.cacheGet(ctx, key, &boxes) {
		return boxes, nil
	}

	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = true", companyID).
		Order("created_at ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, key, boxes)
	return boxes, nil
}

// ListBoxes returns all of the company's boxes, active or not.
func (r *CatalogRepository) ListBoxes(ctx context.Context, companyID string) ([]models.Box, error) {
	var boxes []models.Box
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

// GetBox returns one of the company's boxes by ID.
func (r *CatalogRepository) GetBox(ctx context.Context, companyID string, id uuid.UUID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&box).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// CreateBox creates a company box and invalidates the cached box snapshot.
func (r *CatalogRepository) CreateBox(ctx context.Context, box *models.Box) error {
	if box.ID == uuid.Nil {
		box.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(box).Error; err != nil {
		return err
	}
	r.invalidateBoxes(ctx, box.CompanyID)
	return nil
}

// UpdateBox saves a company box and invalidates the cached box snapshot.
func (r *CatalogRepository) UpdateBox(ctx context.Context, box *models.Box) error {
	if err := r.db.WithContext(ctx).Save(box).Error; err != nil {
		return err
	}
	r.invalidateBoxes(ctx, box.CompanyID)
	return nil
}

// DeleteBox removes a company box and invalidates the cached box snapshot.
func (r *CatalogRepository) DeleteBox(ctx context.Context, companyID string, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.Box{}).Error
	if err != nil {
		return err
	}
	r.invalidateBoxes(ctx, companyID)
	return nil
}

// ListBoxTemplates returns the active global box templates.
func (r *CatalogRepository) ListBoxTemplates(ctx context.Context) ([]models.BoxTemplate, error) {
	var templates []models.BoxTemplate
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("sku ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// GetBoxTemplate returns one box template by ID.
func (r *CatalogRepository) GetBoxTemplate(ctx context.Context, id uuid.UUID) (*models.BoxTemplate, error) {
	var template models.BoxTemplate
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *CatalogRepository) invalidateBoxes(ctx context.Context, companyID string) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf("catalog:boxes:%s", companyID))
}

// cacheGet loads a cached JSON snapshot into dest, reporting a hit. Cache
// failures fall through to the database.
func (r *CatalogRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}
	data, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (r *CatalogRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.redis.Set(ctx, key, data, cacheTTL)
}
