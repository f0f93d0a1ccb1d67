package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate-engine-service/internal/models"
)

func TestApplyMarkup_Percentage(t *testing.T) {
	ranked := []ScoredRate{scoredRate("UPS", "Ground", 10.00)}
	prefs := models.CompanyShippingPrefs{
		MarkupType:  models.MarkupPercentage,
		MarkupValue: 10,
	}

	marked := ApplyMarkup(ranked, prefs)
	require.Len(t, marked, 1)

	assert.Equal(t, 11.00, marked[0].Rate)
	assert.Equal(t, 10.00, marked[0].BaseRate)
	assert.Equal(t, 1.00, marked[0].MarkupAmount)
	assert.Equal(t, 10.0, marked[0].MarkupPercent)
	assert.Equal(t, "11.00", marked[0].DisplayRate)
	assert.Equal(t, "10.00", marked[0].DisplayBaseRate)
}

func TestApplyMarkup_Fixed(t *testing.T) {
	ranked := []ScoredRate{scoredRate("USPS", "Priority", 12.35)}
	prefs := models.CompanyShippingPrefs{
		MarkupType:  models.MarkupFixed,
		MarkupValue: 2.50,
	}

	marked := ApplyMarkup(ranked, prefs)
	require.Len(t, marked, 1)

	assert.Equal(t, 14.85, marked[0].Rate)
	assert.Equal(t, 12.35, marked[0].BaseRate)
	assert.Equal(t, 2.50, marked[0].MarkupAmount)
	assert.Equal(t, 0.0, marked[0].MarkupPercent)
}

func TestApplyMarkup_ZeroMarkupPassesThrough(t *testing.T) {
	ranked := []ScoredRate{scoredRate("UPS", "Ground", 10.45)}

	for _, prefs := range []models.CompanyShippingPrefs{
		{MarkupType: models.MarkupPercentage, MarkupValue: 0},
		{MarkupType: models.MarkupFixed, MarkupValue: 0},
		{MarkupType: models.MarkupPercentage, MarkupValue: -5},
	} {
		marked := ApplyMarkup(ranked, prefs)
		require.Len(t, marked, 1)
		assert.Equal(t, 10.45, marked[0].Rate)
		assert.Equal(t, 0.0, marked[0].MarkupAmount)
	}
}

func TestApplyMarkup_PercentageCapped(t *testing.T) {
	ranked := []ScoredRate{scoredRate("UPS", "Ground", 10.00)}
	prefs := models.CompanyShippingPrefs{
		MarkupType:  models.MarkupPercentage,
		MarkupValue: 500,
	}

	marked := ApplyMarkup(ranked, prefs)
	require.Len(t, marked, 1)

	assert.Equal(t, 20.00, marked[0].Rate)
	assert.Equal(t, 10.00, marked[0].MarkupAmount)
	assert.Equal(t, maxMarkupPercent, marked[0].MarkupPercent)
}

func TestApplyMarkup_RoundsToCents(t *testing.T) {
	ranked := []ScoredRate{scoredRate("USPS", "Priority", 9.99)}
	prefs := models.CompanyShippingPrefs{
		MarkupType:  models.MarkupPercentage,
		MarkupValue: 7.5,
	}

	marked := ApplyMarkup(ranked, prefs)
	require.Len(t, marked, 1)

	// 7.5% of 9.99 is 0.74925, rounded to 0.75.
	assert.Equal(t, 0.75, marked[0].MarkupAmount)
	assert.Equal(t, 10.74, marked[0].Rate)
	assert.Equal(t, "10.74", marked[0].DisplayRate)
}

func TestApplyMarkup_PreservesRankingOrderAndScore(t *testing.T) {
	first := scoredRate("UPS", "Ground", 10.00)
	first.Score = 5
	second := scoredRate("USPS", "Priority", 12.00)

	marked := ApplyMarkup([]ScoredRate{first, second}, models.CompanyShippingPrefs{})
	require.Len(t, marked, 2)
	assert.Equal(t, "UPS", marked[0].Carrier)
	assert.Equal(t, 5.0, marked[0].Score)
	assert.Equal(t, "USPS", marked[1].Carrier)
}
