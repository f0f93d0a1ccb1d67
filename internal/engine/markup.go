package engine

import (
	"fmt"

	"rate-engine-service/internal/models"
)

// Percentage markups are capped so a misconfigured company cannot more than
// double a customer-facing price.
const maxMarkupPercent = 100.0

// ApplyMarkup converts ranked rates into customer-facing priced rates using
// the company's markup configuration. A missing or non-positive markup value
// passes prices through unchanged with a zero markup. The original carrier
// price is preserved on every rate for audit and display.
func ApplyMarkup(ranked []ScoredRate, prefs models.CompanyShippingPrefs) []models.MarkedUpRate {
	result := make([]models.MarkedUpRate, 0, len(ranked))

	for _, entry := range ranked {
		base := roundCents(entry.Rate.Price)

		markup := 0.0
		percent := 0.0
		if prefs.MarkupValue > 0 {
			switch prefs.MarkupType {
			case models.MarkupFixed:
				markup = prefs.MarkupValue
			default: // percentage
				percent = prefs.MarkupValue
				if percent > maxMarkupPercent {
					percent = maxMarkupPercent
				}
				markup = base * percent / 100
			}
		}

		markup = roundCents(markup)
		final := roundCents(base + markup)

		result = append(result, models.MarkedUpRate{
			NormalizedRate:  entry.Rate,
			Rate:            final,
			BaseRate:        base,
			MarkupAmount:    markup,
			MarkupPercent:   percent,
			DisplayRate:     formatAmount(final),
			DisplayBaseRate: formatAmount(base),
			Score:           entry.Score,
		})
	}
	return result
}

// roundCents rounds to two decimal places.
func roundCents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
