package providers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate-engine-service/internal/models"
)

func TestFromEasyPost(t *testing.T) {
	days := 1
	date := "2026-03-02T00:00:00Z"
	r := EasyPostRate{
		ID:                     "rate_123",
		Object:                 "Rate",
		Carrier:                "UPS",
		Service:                "NextDayAir",
		Rate:                   "42.10",
		Currency:               "USD",
		DeliveryDays:           &days,
		DeliveryDate:           &date,
		DeliveryDateGuaranteed: true,
	}

	raw := FromEasyPost(r)

	assert.Equal(t, models.ProviderEasyPost, raw.Provider)
	assert.Equal(t, "rate_123", raw.RateID)
	assert.Equal(t, "UPS", raw.Carrier)
	assert.Equal(t, "NextDayAir", raw.Service)
	assert.Equal(t, "42.10", raw.Price)
	require.NotNil(t, raw.DeliveryDays)
	assert.Equal(t, 1, *raw.DeliveryDays)
	require.NotNil(t, raw.DeliveryDate)
	assert.Equal(t, 2026, raw.DeliveryDate.Year())
	require.NotNil(t, raw.Confidence)
	assert.Equal(t, 1.0, *raw.Confidence)

	var roundTrip EasyPostRate
	require.NoError(t, json.Unmarshal(raw.Payload, &roundTrip))
	assert.Equal(t, r.ID, roundTrip.ID)
}

func TestFromEasyPost_EstDeliveryDaysFallback(t *testing.T) {
	est := 4
	raw := FromEasyPost(EasyPostRate{
		Carrier:         "USPS",
		Service:         "GroundAdvantage",
		Rate:            "7.80",
		EstDeliveryDays: &est,
	})

	require.NotNil(t, raw.DeliveryDays)
	assert.Equal(t, 4, *raw.DeliveryDays)
	assert.Nil(t, raw.Confidence)
	assert.Nil(t, raw.DeliveryDate)
}

func TestFromShippo(t *testing.T) {
	days := 3
	r := ShippoRate{
		ObjectID: "obj_456",
		Provider: "FedEx",
		ServiceLevel: ShippoServiceLevel{
			Name:  "FedEx Express Saver",
			Token: "fedex_express_saver",
		},
		Amount:        "15.25",
		Currency:      "USD",
		EstimatedDays: &days,
	}

	raw := FromShippo(r)

	assert.Equal(t, models.ProviderShippo, raw.Provider)
	assert.Equal(t, "obj_456", raw.RateID)
	assert.Equal(t, "FedEx", raw.Carrier)
	assert.Equal(t, "fedex_express_saver", raw.Service)
	assert.Equal(t, "15.25", raw.Price)
	require.NotNil(t, raw.DeliveryDays)
	assert.Equal(t, 3, *raw.DeliveryDays)
	assert.Nil(t, raw.Confidence)
}

func TestFromShippo_NameFallbackWhenTokenMissing(t *testing.T) {
	raw := FromShippo(ShippoRate{
		Provider:     "USPS",
		ServiceLevel: ShippoServiceLevel{Name: "Priority Mail"},
		Amount:       "8.15",
	})
	assert.Equal(t, "Priority Mail", raw.Service)
}

func TestBatchConversions(t *testing.T) {
	easypost := FromEasyPostBatch([]EasyPostRate{
		{Carrier: "UPS", Service: "Ground", Rate: "10.00"},
		{Carrier: "USPS", Service: "Priority", Rate: "12.00"},
	})
	require.Len(t, easypost, 2)
	assert.Equal(t, "UPS", easypost[0].Carrier)

	shippo := FromShippoBatch([]ShippoRate{
		{Provider: "FedEx", ServiceLevel: ShippoServiceLevel{Token: "fedex_ground"}, Amount: "9.40"},
	})
	require.Len(t, shippo, 1)
	assert.Equal(t, "fedex_ground", shippo[0].Service)
}
