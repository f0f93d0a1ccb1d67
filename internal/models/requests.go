package models

import "github.com/google/uuid"

// OrderItemRequest references a catalog item by SKU with an ordered quantity.
type OrderItemRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1"`
}

// PackRequest asks the engine to cartonize an order's items.
type PackRequest struct {
	OrderID string             `json:"orderId"`
	Items   []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QuoteRequest asks the engine for ranked, marked-up rates for an order. The
// caller has already fetched raw quotes from the providers; the engine makes
// no outbound calls. Quotes apply to every shipping group unless GroupQuotes
// supplies a per-group set (aligned with the packing result's group order).
type QuoteRequest struct {
	OrderID     string             `json:"orderId"`
	OrderValue  float64            `json:"orderValue"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Quotes      []RawRate          `json:"quotes"`
	GroupQuotes [][]RawRate        `json:"groupQuotes,omitempty"`
}

// RateFailure reports a single raw quote that could not be normalized. The
// rest of the batch is unaffected.
type RateFailure struct {
	Index    int      `json:"index"`
	Provider Provider `json:"provider"`
	Carrier  string   `json:"carrier"`
	Service  string   `json:"service"`
	Error    string   `json:"error"`
}

// GroupQuote is the ranked, priced rate list for one shipping group.
type GroupQuote struct {
	Group    ShippingGroup  `json:"group"`
	Rates    []MarkedUpRate `json:"rates"`
	Failures []RateFailure  `json:"failures,omitempty"`
}

// QuoteResponse is the full quote pipeline output for an order.
type QuoteResponse struct {
	OrderID string       `json:"orderId,omitempty"`
	Groups  []GroupQuote `json:"groups"`
}

// CreateBoxRequest creates a company box.
type CreateBoxRequest struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name" binding:"required"`
	Length    float64 `json:"length" binding:"required,gt=0"`
	Width     float64 `json:"width" binding:"required,gt=0"`
	Height    float64 `json:"height" binding:"required,gt=0"`
	MaxWeight float64 `json:"maxWeight" binding:"required,gt=0"`
	Cost      float64 `json:"cost" binding:"gte=0"`
}

// UpdateBoxRequest partially updates a company box.
type UpdateBoxRequest struct {
	SKU       *string  `json:"sku"`
	Name      *string  `json:"name"`
	Length    *float64 `json:"length"`
	Width     *float64 `json:"width"`
	Height    *float64 `json:"height"`
	MaxWeight *float64 `json:"maxWeight"`
	Cost      *float64 `json:"cost"`
	IsActive  *bool    `json:"isActive"`
}

// CreateBoxFromTemplateRequest instantiates a global box template into a
// company's catalog.
type CreateBoxFromTemplateRequest struct {
	TemplateID uuid.UUID `json:"templateId" binding:"required"`
}

// CreateRuleRequest creates a shipping rule for a company.
type CreateRuleRequest struct {
	Name       string         `json:"name" binding:"required"`
	Priority   int            `json:"priority"`
	Conditions RuleConditions `json:"conditions"`
	Actions    RuleActions    `json:"actions"`
}

// UpdateShippingPrefsRequest partially updates a company's shipping prefs.
type UpdateShippingPrefsRequest struct {
	SLAPreference         *SLAPreference         `json:"slaPreference"`
	OptimizationObjective *OptimizationObjective `json:"optimizationObjective"`
	DeliveryConfidence    *float64               `json:"deliveryConfidence"`
	MaxTransitDays        *int                   `json:"maxTransitDays"`
	CarrierWhitelist      *StringArray           `json:"carrierWhitelist"`
	ServiceBlacklist      *StringArray           `json:"serviceBlacklist"`
	MarkupType            *MarkupType            `json:"markupType"`
	MarkupValue           *float64               `json:"markupValue"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message,omitempty"`
}
