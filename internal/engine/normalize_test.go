package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate-engine-service/internal/models"
)

func TestNormalize_ParsesPriceAndClassifies(t *testing.T) {
	days := 3
	raw := models.RawRate{
		Provider:     models.ProviderEasyPost,
		RateID:       "rate_abc",
		Carrier:      "UPS",
		Service:      "Ground",
		Price:        "10.45",
		Currency:     "USD",
		DeliveryDays: &days,
	}

	rate, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, models.ProviderEasyPost, rate.Provider)
	assert.Equal(t, "UPS", rate.Carrier)
	assert.Equal(t, 10.45, rate.Price)
	assert.Equal(t, models.ServiceClassGround, rate.ServiceClass)
	assert.Equal(t, SpeedRank(models.ServiceClassGround), rate.SpeedRank)
	require.NotNil(t, rate.DeliveryDays)
	assert.Equal(t, 3, *rate.DeliveryDays)
	require.NotNil(t, rate.Raw)
	assert.Equal(t, "rate_abc", rate.Raw.RateID)
}

func TestNormalize_MalformedPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
	}{
		{"empty", ""},
		{"non numeric", "ten dollars"},
		{"negative", "-4.20"},
		{"currency symbol", "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(models.RawRate{
				Provider: models.ProviderEasyPost,
				Carrier:  "UPS",
				Service:  "Ground",
				Price:    tt.price,
			})
			assert.ErrorIs(t, err, ErrMalformedRate)
		})
	}
}

func TestNormalize_UnknownServiceIsNotAnError(t *testing.T) {
	rate, err := Normalize(models.RawRate{
		Provider: models.ProviderShippo,
		Carrier:  "DHL",
		Service:  "dhl_experimental_drone",
		Price:    "99.99",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceClassUnknown, rate.ServiceClass)
	assert.Equal(t, SpeedRank(models.ServiceClassUnknown), rate.SpeedRank)
}

func TestClassifyService(t *testing.T) {
	tests := []struct {
		provider models.Provider
		service  string
		want     models.ServiceClass
	}{
		{models.ProviderEasyPost, "Priority", models.ServiceClassTwoDay},
		{models.ProviderEasyPost, "NextDayAir", models.ServiceClassOvernight},
		{models.ProviderEasyPost, "next_day_air", models.ServiceClassOvernight},
		{models.ProviderEasyPost, "GroundAdvantage", models.ServiceClassGround},
		{models.ProviderEasyPost, "3DaySelect", models.ServiceClassThreeDay},
		{models.ProviderEasyPost, "SmartPost", models.ServiceClassStandard},
		{models.ProviderShippo, "usps_priority", models.ServiceClassTwoDay},
		{models.ProviderShippo, "fedex_priority_overnight", models.ServiceClassOvernight},
		{models.ProviderShippo, "ups_second_day_air", models.ServiceClassTwoDay},
		{models.ProviderShippo, "fedex_ground", models.ServiceClassGround},
		{models.ProviderShippo, "made_up_service", models.ServiceClassUnknown},
		{models.Provider("unrecognized"), "Ground", models.ServiceClassUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider)+"/"+tt.service, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyService(tt.provider, tt.service))
		})
	}
}

func TestSpeedRank_OrdersFastestFirst(t *testing.T) {
	ordered := []models.ServiceClass{
		models.ServiceClassOvernight,
		models.ServiceClassTwoDay,
		models.ServiceClassThreeDay,
		models.ServiceClassGround,
		models.ServiceClassStandard,
		models.ServiceClassUnknown,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, SpeedRank(ordered[i-1]), SpeedRank(ordered[i]),
			"%s should rank faster than %s", ordered[i-1], ordered[i])
	}
}

func TestNormalizeAll_CollectsFailuresWithoutAborting(t *testing.T) {
	raws := []models.RawRate{
		{Provider: models.ProviderEasyPost, Carrier: "UPS", Service: "Ground", Price: "10.00"},
		{Provider: models.ProviderEasyPost, Carrier: "USPS", Service: "Priority", Price: "oops"},
		{Provider: models.ProviderShippo, Carrier: "FedEx", Service: "fedex_2_day", Price: "18.50"},
	}

	normalized, failures := NormalizeAll(raws)
	require.Len(t, normalized, 2)
	require.Len(t, failures, 1)

	assert.Equal(t, "UPS", normalized[0].Carrier)
	assert.Equal(t, "FedEx", normalized[1].Carrier)
	assert.Equal(t, 1, failures[0].Index)
	assert.Equal(t, "USPS", failures[0].Carrier)
	assert.Contains(t, failures[0].Error, "not numeric")
}
