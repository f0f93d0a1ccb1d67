package engine

import (
	"sort"
	"strings"

	"rate-engine-service/internal/models"
)

// ScoredRate is a normalized rate that survived policy filtering, with its
// accumulated rule-boost score. Preferred marks a rate whose provider a
// matching rule prefers; it is consulted only as a tiebreak between rates
// that compare equal on every other key, so the score itself stays auditable.
type ScoredRate struct {
	Rate      models.NormalizedRate `json:"rate"`
	Score     float64               `json:"score"`
	Preferred bool                  `json:"preferred"`
}

// Evaluate applies a company's shipping rules and preferences to a set of
// normalized rates: hard filtering first, then additive boost scoring in
// ascending rule-priority order. An empty result is a valid outcome ("no rate
// meets your policy"), not an error.
func Evaluate(rates []models.NormalizedRate, rules []models.ShippingRule, prefs models.CompanyShippingPrefs, orderValue float64) []ScoredRate {
	applicable := applicableRules(rules, orderValue)

	scored := make([]ScoredRate, 0, len(rates))
	for _, rate := range rates {
		if !passesPrefs(rate, prefs) {
			continue
		}
		if !passesRules(rate, applicable) {
			continue
		}

		entry := ScoredRate{Rate: rate}
		for _, rule := range applicable {
			if !ruleMatchesRate(rule, rate) {
				continue
			}
			entry.Score += boostFor(rule.Actions.BoostCarriers, rate.Carrier)
			entry.Score += boostFor(rule.Actions.BoostServices, rate.Service)
			if rule.Actions.PreferProvider != "" && rule.Actions.PreferProvider == rate.Provider {
				entry.Preferred = true
			}
		}
		scored = append(scored, entry)
	}
	return scored
}

// applicableRules returns the active rules whose order-value bounds contain
// the order, sorted by ascending priority (stable on ties).
func applicableRules(rules []models.ShippingRule, orderValue float64) []models.ShippingRule {
	applicable := make([]models.ShippingRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !rule.AppliesToOrder(orderValue) {
			continue
		}
		applicable = append(applicable, rule)
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority < applicable[j].Priority
	})
	return applicable
}

func passesPrefs(rate models.NormalizedRate, prefs models.CompanyShippingPrefs) bool {
	if len(prefs.CarrierWhitelist) > 0 && !containsFold(prefs.CarrierWhitelist, rate.Carrier) {
		return false
	}
	if containsFold(prefs.ServiceBlacklist, rate.Service) {
		return false
	}
	if prefs.MaxTransitDays != nil && rate.DeliveryDays != nil && *rate.DeliveryDays > *prefs.MaxTransitDays {
		return false
	}
	// Rates without a confidence value are not dropped by the confidence floor.
	if prefs.DeliveryConfidence != nil && rate.Confidence != nil && *rate.Confidence < *prefs.DeliveryConfidence {
		return false
	}
	return true
}

// passesRules applies every applicable rule's hard conditions. Block lists,
// transit-day limits and confidence floors drop a rate when any rule imposes
// them. Allow lists are scoped: when one or more rules define allow lists,
// a rate survives if it matches at least one of those rules' allow lists.
func passesRules(rate models.NormalizedRate, rules []models.ShippingRule) bool {
	allowConstrained := false
	allowMatched := false

	for _, rule := range rules {
		c := rule.Conditions
		if containsFold(c.CarriersBlock, rate.Carrier) {
			return false
		}
		if containsFold(c.ServicesBlock, rate.Service) {
			return false
		}
		if c.MaxTransitDays != nil && rate.DeliveryDays != nil && *rate.DeliveryDays > *c.MaxTransitDays {
			return false
		}
		if c.MinDeliveryConfidence != nil && rate.Confidence != nil && *rate.Confidence < *c.MinDeliveryConfidence {
			return false
		}

		if len(c.CarriersAllow) > 0 || len(c.ServicesAllow) > 0 {
			allowConstrained = true
			carrierOK := len(c.CarriersAllow) == 0 || containsFold(c.CarriersAllow, rate.Carrier)
			serviceOK := len(c.ServicesAllow) == 0 || containsFold(c.ServicesAllow, rate.Service)
			if carrierOK && serviceOK {
				allowMatched = true
			}
		}
	}
	return !allowConstrained || allowMatched
}

// ruleMatchesRate reports whether a rule's conditions select this rate for
// the rule's actions. Same predicate as filtering, scoped to one rule.
func ruleMatchesRate(rule models.ShippingRule, rate models.NormalizedRate) bool {
	c := rule.Conditions
	if containsFold(c.CarriersBlock, rate.Carrier) {
		return false
	}
	if containsFold(c.ServicesBlock, rate.Service) {
		return false
	}
	if len(c.CarriersAllow) > 0 && !containsFold(c.CarriersAllow, rate.Carrier) {
		return false
	}
	if len(c.ServicesAllow) > 0 && !containsFold(c.ServicesAllow, rate.Service) {
		return false
	}
	if c.MaxTransitDays != nil && rate.DeliveryDays != nil && *rate.DeliveryDays > *c.MaxTransitDays {
		return false
	}
	if c.MinDeliveryConfidence != nil && rate.Confidence != nil && *rate.Confidence < *c.MinDeliveryConfidence {
		return false
	}
	return true
}

func boostFor(boosts map[string]float64, key string) float64 {
	for name, boost := range boosts {
		if strings.EqualFold(name, key) {
			return boost
		}
	}
	return 0
}

func containsFold(list []string, value string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, value) {
			return true
		}
	}
	return false
}
