package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate-engine-service/internal/models"
)

func normalizedRate(carrier, service string, price float64) models.NormalizedRate {
	class := ClassifyService(models.ProviderEasyPost, service)
	return models.NormalizedRate{
		Provider:     models.ProviderEasyPost,
		Carrier:      carrier,
		Service:      service,
		Price:        price,
		Currency:     "USD",
		ServiceClass: class,
		SpeedRank:    SpeedRank(class),
	}
}

func carriersOf(scored []ScoredRate) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Rate.Carrier)
	}
	return out
}

func TestEvaluate_BlockListDropsCarrier(t *testing.T) {
	rates := []models.NormalizedRate{
		normalizedRate("UPS", "Ground", 10.00),
		normalizedRate("USPS", "Priority", 12.00),
		normalizedRate("FedEx", "PriorityOvernight", 25.00),
	}
	rules := []models.ShippingRule{
		{
			Name:       "no fedex",
			IsActive:   true,
			Conditions: models.RuleConditions{CarriersBlock: []string{"FedEx"}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.ElementsMatch(t, []string{"UPS", "USPS"}, carriersOf(survivors))
}

func TestEvaluate_AllowListKeepsOnlyListedCarriers(t *testing.T) {
	rates := []models.NormalizedRate{
		normalizedRate("UPS", "Ground", 10.00),
		normalizedRate("USPS", "Priority", 12.00),
		normalizedRate("FedEx", "FedEx2Day", 18.00),
	}
	rules := []models.ShippingRule{
		{
			Name:       "domestic carriers only",
			IsActive:   true,
			Conditions: models.RuleConditions{CarriersAllow: []string{"ups", "usps"}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.ElementsMatch(t, []string{"UPS", "USPS"}, carriersOf(survivors))
}

func TestEvaluate_TwoAllowRulesUnion(t *testing.T) {
	// A rate survives by matching either rule's allow list; two allow rules
	// never have to agree.
	rates := []models.NormalizedRate{
		normalizedRate("UPS", "Ground", 10.00),
		normalizedRate("USPS", "Priority", 12.00),
		normalizedRate("DHL", "Express", 30.00),
	}
	rules := []models.ShippingRule{
		{
			Name:       "allow ups",
			IsActive:   true,
			Conditions: models.RuleConditions{CarriersAllow: []string{"UPS"}},
		},
		{
			Name:       "allow usps",
			IsActive:   true,
			Conditions: models.RuleConditions{CarriersAllow: []string{"USPS"}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.ElementsMatch(t, []string{"UPS", "USPS"}, carriersOf(survivors))
}

func TestEvaluate_InactiveRuleIgnored(t *testing.T) {
	rates := []models.NormalizedRate{normalizedRate("FedEx", "FedEx2Day", 18.00)}
	rules := []models.ShippingRule{
		{
			Name:       "no fedex",
			IsActive:   false,
			Conditions: models.RuleConditions{CarriersBlock: []string{"FedEx"}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.Len(t, survivors, 1)
}

func TestEvaluate_OrderValueBoundsGateRule(t *testing.T) {
	minValue := 100.0
	rates := []models.NormalizedRate{normalizedRate("FedEx", "FedEx2Day", 18.00)}
	rules := []models.ShippingRule{
		{
			Name:     "no fedex on big orders",
			IsActive: true,
			Conditions: models.RuleConditions{
				CarriersBlock: []string{"FedEx"},
				OrderValueMin: &minValue,
			},
		},
	}

	// Below the threshold the rule does not apply at all.
	assert.Len(t, Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00), 1)
	// At and above the threshold it blocks.
	assert.Empty(t, Evaluate(rates, rules, models.CompanyShippingPrefs{}, 250.00))
}

func TestEvaluate_PrefsFiltering(t *testing.T) {
	two := 2
	highConfidence := 0.9
	lowConfidence := 0.5
	days3 := 3
	days1 := 1

	slow := normalizedRate("UPS", "Ground", 10.00)
	slow.DeliveryDays = &days3
	fast := normalizedRate("UPS", "NextDayAir", 40.00)
	fast.DeliveryDays = &days1
	shaky := normalizedRate("USPS", "Priority", 12.00)
	shaky.Confidence = &lowConfidence
	unrated := normalizedRate("USPS", "GroundAdvantage", 8.00)

	tests := []struct {
		name  string
		prefs models.CompanyShippingPrefs
		rates []models.NormalizedRate
		want  []string
	}{
		{
			name:  "carrier whitelist",
			prefs: models.CompanyShippingPrefs{CarrierWhitelist: models.StringArray{"USPS"}},
			rates: []models.NormalizedRate{slow, shaky},
			want:  []string{"USPS"},
		},
		{
			name:  "service blacklist",
			prefs: models.CompanyShippingPrefs{ServiceBlacklist: models.StringArray{"Ground"}},
			rates: []models.NormalizedRate{slow, fast},
			want:  []string{"UPS"},
		},
		{
			name:  "max transit days",
			prefs: models.CompanyShippingPrefs{MaxTransitDays: &two},
			rates: []models.NormalizedRate{slow, fast},
			want:  []string{"UPS"},
		},
		{
			name:  "confidence floor drops low confidence",
			prefs: models.CompanyShippingPrefs{DeliveryConfidence: &highConfidence},
			rates: []models.NormalizedRate{shaky, unrated},
			// A rate without a confidence value is never dropped by the floor.
			want: []string{"USPS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			survivors := Evaluate(tt.rates, nil, tt.prefs, 50.00)
			got := carriersOf(survivors)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEvaluate_BoostsAreAdditive(t *testing.T) {
	rates := []models.NormalizedRate{
		normalizedRate("UPS", "Ground", 10.00),
		normalizedRate("USPS", "Priority", 12.00),
	}
	rules := []models.ShippingRule{
		{
			Name:     "prefer ups",
			IsActive: true,
			Priority: 10,
			Actions:  models.RuleActions{BoostCarriers: map[string]float64{"UPS": 5}},
		},
		{
			Name:     "prefer ground services",
			IsActive: true,
			Priority: 20,
			Actions:  models.RuleActions{BoostServices: map[string]float64{"Ground": 3}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	require.Len(t, survivors, 2)

	byCarrier := map[string]ScoredRate{}
	for _, s := range survivors {
		byCarrier[s.Rate.Carrier] = s
	}
	assert.Equal(t, 8.0, byCarrier["UPS"].Score)
	assert.Equal(t, 0.0, byCarrier["USPS"].Score)
}

func TestEvaluate_BoostOnlyAppliesWhenRuleConditionsMatch(t *testing.T) {
	minValue := 100.0
	rates := []models.NormalizedRate{normalizedRate("UPS", "Ground", 10.00)}
	rules := []models.ShippingRule{
		{
			Name:       "boost ups on big orders",
			IsActive:   true,
			Conditions: models.RuleConditions{OrderValueMin: &minValue},
			Actions:    models.RuleActions{BoostCarriers: map[string]float64{"UPS": 5}},
		},
		{
			Name:       "boost priority services",
			IsActive:   true,
			Conditions: models.RuleConditions{ServicesAllow: []string{"Priority"}},
			Actions:    models.RuleActions{BoostServices: map[string]float64{"Priority": 4}},
		},
	}

	// The first rule is gated out by order value and the second rule's allow
	// list does not match UPS Ground, so the rate is filtered entirely.
	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.Empty(t, survivors)
}

func TestEvaluate_PreferredProviderFlag(t *testing.T) {
	rates := []models.NormalizedRate{normalizedRate("UPS", "Ground", 10.00)}
	rules := []models.ShippingRule{
		{
			Name:     "prefer easypost",
			IsActive: true,
			Actions:  models.RuleActions{PreferProvider: models.ProviderEasyPost},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	require.Len(t, survivors, 1)
	assert.True(t, survivors[0].Preferred)
}

func TestEvaluate_EmptyResultIsValid(t *testing.T) {
	rates := []models.NormalizedRate{normalizedRate("FedEx", "FedEx2Day", 18.00)}
	rules := []models.ShippingRule{
		{
			Name:       "block everything",
			IsActive:   true,
			Conditions: models.RuleConditions{CarriersBlock: []string{"FedEx"}},
		},
	}

	survivors := Evaluate(rates, rules, models.CompanyShippingPrefs{}, 50.00)
	assert.NotNil(t, survivors)
	assert.Empty(t, survivors)
}
