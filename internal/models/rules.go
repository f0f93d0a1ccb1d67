package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SLAPreference selects whether speed, cost or a blend drives rate ordering.
type SLAPreference string

const (
	SLAFastest  SLAPreference = "fastest"
	SLACheapest SLAPreference = "cheapest"
	SLABalanced SLAPreference = "balanced"
)

// OptimizationObjective selects the company's packing/pricing objective.
type OptimizationObjective string

const (
	ObjectiveMinimizePackages OptimizationObjective = "minimize_packages"
	ObjectiveMinimizeCost     OptimizationObjective = "minimize_cost"
	ObjectiveBalanced         OptimizationObjective = "balanced"
)

// MarkupType selects how a company's markup value is interpreted.
type MarkupType string

const (
	MarkupPercentage MarkupType = "percentage"
	MarkupFixed      MarkupType = "fixed"
)

// RuleConditions is the condition set of a shipping rule. Empty lists and nil
// pointers mean the condition is not constrained.
type RuleConditions struct {
	CarriersAllow         []string `json:"carriersAllow,omitempty"`
	CarriersBlock         []string `json:"carriersBlock,omitempty"`
	ServicesAllow         []string `json:"servicesAllow,omitempty"`
	ServicesBlock         []string `json:"servicesBlock,omitempty"`
	MaxTransitDays        *int     `json:"maxTransitDays,omitempty"`
	MinDeliveryConfidence *float64 `json:"minDeliveryConfidence,omitempty"`
	OrderValueMin         *float64 `json:"orderValueMin,omitempty"`
	OrderValueMax         *float64 `json:"orderValueMax,omitempty"`
}

func (c RuleConditions) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *RuleConditions) Scan(value interface{}) error {
	if value == nil {
		*c = RuleConditions{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// RuleActions is the action set of a shipping rule. Boosts are additive
// score adjustments keyed by carrier or service name.
type RuleActions struct {
	BoostCarriers  map[string]float64 `json:"boostCarriers,omitempty"`
	BoostServices  map[string]float64 `json:"boostServices,omitempty"`
	PreferProvider Provider           `json:"preferProvider,omitempty"`
}

func (a RuleActions) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *RuleActions) Scan(value interface{}) error {
	if value == nil {
		*a = RuleActions{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// ShippingRule is a company-scoped declarative shipping policy rule. Rules
// are read-only configuration to the engine; lower Priority evaluates first.
type ShippingRule struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(255);not null;index:idx_shipping_rules_company"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Priority  int       `json:"priority" gorm:"default:100"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`

	Conditions RuleConditions `json:"conditions" gorm:"type:jsonb"`
	Actions    RuleActions    `json:"actions" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ShippingRule
func (ShippingRule) TableName() string {
	return "shipping_rules"
}

// AppliesToOrder reports whether the rule's order-value bounds contain the
// value. A rule outside its bounds is skipped entirely for the request.
func (r ShippingRule) AppliesToOrder(orderValue float64) bool {
	if r.Conditions.OrderValueMin != nil && orderValue < *r.Conditions.OrderValueMin {
		return false
	}
	if r.Conditions.OrderValueMax != nil && orderValue > *r.Conditions.OrderValueMax {
		return false
	}
	return true
}

// CompanyShippingPrefs holds a company's shipping preferences. One row per
// company; defaults are explicit here rather than scattered through scoring.
type CompanyShippingPrefs struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(255);uniqueIndex;not null"`

	SLAPreference         SLAPreference         `json:"slaPreference" gorm:"type:varchar(20);default:'balanced'"`
	OptimizationObjective OptimizationObjective `json:"optimizationObjective" gorm:"type:varchar(30);default:'balanced'"`

	DeliveryConfidence *float64    `json:"deliveryConfidence,omitempty" gorm:"type:decimal(4,3)"`
	MaxTransitDays     *int        `json:"maxTransitDays,omitempty"`
	CarrierWhitelist   StringArray `json:"carrierWhitelist,omitempty" gorm:"type:text[]"`
	ServiceBlacklist   StringArray `json:"serviceBlacklist,omitempty" gorm:"type:text[]"`

	MarkupType  MarkupType `json:"markupType" gorm:"type:varchar(20);default:'percentage'"`
	MarkupValue float64    `json:"markupValue" gorm:"type:decimal(10,2);default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for CompanyShippingPrefs
func (CompanyShippingPrefs) TableName() string {
	return "company_shipping_prefs"
}

// DefaultShippingPrefs returns the company-wide defaults: balanced SLA,
// balanced objective, zero markup.
func DefaultShippingPrefs(companyID string) CompanyShippingPrefs {
	return CompanyShippingPrefs{
		CompanyID:             companyID,
		SLAPreference:         SLABalanced,
		OptimizationObjective: ObjectiveBalanced,
		MarkupType:            MarkupPercentage,
		MarkupValue:           0,
	}
}
