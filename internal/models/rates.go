package models

import (
	"encoding/json"
	"time"
)

// Provider identifies the rate aggregator that produced a quote.
type Provider string

const (
	ProviderEasyPost Provider = "easypost"
	ProviderShippo   Provider = "shippo"
)

// ServiceClass is the canonical speed category a carrier service maps to.
type ServiceClass string

const (
	ServiceClassOvernight ServiceClass = "overnight"
	ServiceClassTwoDay    ServiceClass = "2-day"
	ServiceClassThreeDay  ServiceClass = "3-day"
	ServiceClassGround    ServiceClass = "ground"
	ServiceClassStandard  ServiceClass = "standard"
	ServiceClassUnknown   ServiceClass = "unknown"
)

// RawRate is a provider-specific quote as supplied by the caller. Price is
// kept as the provider's string form until normalization parses it. Payload
// preserves the original provider response for traceability.
type RawRate struct {
	Provider     Provider        `json:"provider"`
	RateID       string          `json:"rateId,omitempty"`
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Price        string          `json:"price"`
	Currency     string          `json:"currency"`
	DeliveryDays *int            `json:"deliveryDays,omitempty"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty"`
	Confidence   *float64        `json:"confidence,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// NormalizedRate is a quote converted to one comparable shape across
// providers. Derived per request, never persisted as a source of truth.
type NormalizedRate struct {
	Provider     Provider     `json:"provider"`
	RateID       string       `json:"rateId,omitempty"`
	Carrier      string       `json:"carrier"`
	Service      string       `json:"service"`
	Price        float64      `json:"price"`
	Currency     string       `json:"currency"`
	DeliveryDays *int         `json:"deliveryDays,omitempty"`
	DeliveryDate *time.Time   `json:"deliveryDate,omitempty"`
	Confidence   *float64     `json:"confidence,omitempty"`
	ServiceClass ServiceClass `json:"serviceClass"`
	SpeedRank    int          `json:"speedRank"`

	// Raw references the originating provider quote.
	Raw *RawRate `json:"-"`
}

// MarkedUpRate is a ranked rate with company markup applied. Rate is the
// customer-facing price, BaseRate the original carrier price, both rounded to
// two decimals. DisplayRate/DisplayBaseRate carry the two-decimal rendering.
type MarkedUpRate struct {
	NormalizedRate

	Rate            float64 `json:"rate"`
	BaseRate        float64 `json:"baseRate"`
	MarkupAmount    float64 `json:"markupAmount"`
	MarkupPercent   float64 `json:"markupPercent"`
	DisplayRate     string  `json:"displayRate"`
	DisplayBaseRate string  `json:"displayBaseRate"`
	Score           float64 `json:"score"`
}
