package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rate-engine-service/internal/models"
)

// PolicyRepository handles database operations for shipping rules and
// company shipping preferences.
type PolicyRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *gorm.DB, redisClient *redis.Client) *PolicyRepository {
	return &PolicyRepository{db: db, redis: redisClient}
}

// ListActiveRules returns the company's active shipping rules ordered by
// ascending priority.
func (r *PolicyRepository) ListActiveRules(ctx context.Context, companyID string) ([]models.ShippingRule, error) {
	key := fmt.Sprintf("policy:rules:%s", companyID)
	var rules []models.ShippingRule
	if r.cacheGet(ctx, key, &rules) {
		return rules, nil
	}

	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = true", companyID).
		Order("priority ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, key, rules)
	return rules, nil
}

// ListRules returns all of the company's rules, active or not.
func (r *PolicyRepository) ListRules(ctx context.Context, companyID string) ([]models.ShippingRule, error) {
	var rules []models.ShippingRule
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("priority ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// CreateRule creates a shipping rule and invalidates the cached rule set.
func (r *PolicyRepository) CreateRule(ctx context.Context, rule *models.ShippingRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return err
	}
	r.invalidate(ctx, rule.CompanyID)
	return nil
}

// DeleteRule removes a shipping rule and invalidates the cached rule set.
func (r *PolicyRepository) DeleteRule(ctx context.Context, companyID string, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.ShippingRule{}).Error
	if err != nil {
		return err
	}
	r.invalidate(ctx, companyID)
	return nil
}

// GetOrCreateShippingPrefs returns the company's shipping preferences,
// creating the default row on first access.
func (r *PolicyRepository) GetOrCreateShippingPrefs(ctx context.Context, companyID string) (*models.CompanyShippingPrefs, error) {
	var prefs models.CompanyShippingPrefs
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&prefs).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefs = models.DefaultShippingPrefs(companyID)
	prefs.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdateShippingPrefs saves the company's shipping preferences and
// invalidates the cached policy snapshot.
func (r *PolicyRepository) UpdateShippingPrefs(ctx context.Context, prefs *models.CompanyShippingPrefs) error {
	if err := r.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return err
	}
	r.invalidate(ctx, prefs.CompanyID)
	return nil
}

func (r *PolicyRepository) invalidate(ctx context.Context, companyID string) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf("policy:rules:%s", companyID))
}

func (r *PolicyRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}
	data, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (r *PolicyRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.redis.Set(ctx, key, data, cacheTTL)
}
