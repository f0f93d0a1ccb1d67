// Package providers holds the typed payload shapes of the rate aggregators
// this engine understands, plus one explicit mapping function per provider
// into the engine's RawRate variant. The engine never calls a provider API;
// the caller fetches quotes and hands the payloads here.
package providers

import (
	"encoding/json"
	"time"

	"rate-engine-service/internal/models"
)

// EasyPostRate mirrors the rate object in an EasyPost shipment response.
type EasyPostRate struct {
	ID                     string  `json:"id"`
	Object                 string  `json:"object"`
	Carrier                string  `json:"carrier"`
	Service                string  `json:"service"`
	Rate                   string  `json:"rate"`
	Currency               string  `json:"currency"`
	ListRate               string  `json:"list_rate,omitempty"`
	RetailRate             string  `json:"retail_rate,omitempty"`
	DeliveryDays           *int    `json:"delivery_days"`
	EstDeliveryDays        *int    `json:"est_delivery_days"`
	DeliveryDate           *string `json:"delivery_date"`
	DeliveryDateGuaranteed bool    `json:"delivery_date_guaranteed"`
}

// FromEasyPost converts an EasyPost rate into the engine's tagged RawRate.
// The original payload is preserved verbatim for traceability. A guaranteed
// delivery date maps to full delivery confidence; EasyPost publishes no
// confidence figure otherwise, so the field stays unset.
func FromEasyPost(r EasyPostRate) models.RawRate {
	payload, _ := json.Marshal(r)

	days := r.DeliveryDays
	if days == nil {
		days = r.EstDeliveryDays
	}

	var deliveryDate *time.Time
	if r.DeliveryDate != nil {
		if t, err := time.Parse(time.RFC3339, *r.DeliveryDate); err == nil {
			deliveryDate = &t
		}
	}

	var confidence *float64
	if r.DeliveryDateGuaranteed {
		c := 1.0
		confidence = &c
	}

	return models.RawRate{
		Provider:     models.ProviderEasyPost,
		RateID:       r.ID,
		Carrier:      r.Carrier,
		Service:      r.Service,
		Price:        r.Rate,
		Currency:     r.Currency,
		DeliveryDays: days,
		DeliveryDate: deliveryDate,
		Confidence:   confidence,
		Payload:      payload,
	}
}

// FromEasyPostBatch converts a full EasyPost rate list.
func FromEasyPostBatch(rates []EasyPostRate) []models.RawRate {
	out := make([]models.RawRate, 0, len(rates))
	for _, r := range rates {
		out = append(out, FromEasyPost(r))
	}
	return out
}
