package providers

import (
	"encoding/json"

	"rate-engine-service/internal/models"
)

// ShippoServiceLevel is the nested service descriptor on a Shippo rate.
type ShippoServiceLevel struct {
	Name  string `json:"name"`
	Token string `json:"token"`
	Terms string `json:"terms,omitempty"`
}

// ShippoRate mirrors a rate object in a Shippo shipment response.
type ShippoRate struct {
	ObjectID         string             `json:"object_id"`
	Provider         string             `json:"provider"`
	ServiceLevel     ShippoServiceLevel `json:"servicelevel"`
	Amount           string             `json:"amount"`
	Currency         string             `json:"currency"`
	AmountLocal      string             `json:"amount_local,omitempty"`
	CurrencyLocal    string             `json:"currency_local,omitempty"`
	EstimatedDays    *int               `json:"estimated_days"`
	DurationTerms    string             `json:"duration_terms,omitempty"`
	Attributes       []string           `json:"attributes,omitempty"`
	CarrierAccount   string             `json:"carrier_account,omitempty"`
	Zone             string             `json:"zone,omitempty"`
}

// FromShippo converts a Shippo rate into the engine's tagged RawRate. Shippo
// publishes no delivery-confidence figure, so that field stays unset. The
// service-level token (e.g. "ups_ground") is the service identifier the
// normalizer's lookup table keys on.
func FromShippo(r ShippoRate) models.RawRate {
	payload, _ := json.Marshal(r)

	service := r.ServiceLevel.Token
	if service == "" {
		service = r.ServiceLevel.Name
	}

	return models.RawRate{
		Provider:     models.ProviderShippo,
		RateID:       r.ObjectID,
		Carrier:      r.Provider,
		Service:      service,
		Price:        r.Amount,
		Currency:     r.Currency,
		DeliveryDays: r.EstimatedDays,
		Payload:      payload,
	}
}

// FromShippoBatch converts a full Shippo rate list.
func FromShippoBatch(rates []ShippoRate) []models.RawRate {
	out := make([]models.RawRate, 0, len(rates))
	for _, r := range rates {
		out = append(out, FromShippo(r))
	}
	return out
}
