package engine

import (
	"fmt"
	"strconv"
	"strings"

	"rate-engine-service/internal/models"
)

// Speed ranks per service class, fastest first. Unknown sorts last so an
// unmapped service is never preferred over a mapped one on speed.
var speedRanks = map[models.ServiceClass]int{
	models.ServiceClassOvernight: 0,
	models.ServiceClassTwoDay:    1,
	models.ServiceClassThreeDay:  2,
	models.ServiceClassGround:    3,
	models.ServiceClassStandard:  4,
	models.ServiceClassUnknown:   5,
}

// SpeedRank returns the integer ordering for a service class (lower = faster).
func SpeedRank(class models.ServiceClass) int {
	rank, ok := speedRanks[class]
	if !ok {
		return speedRanks[models.ServiceClassUnknown]
	}
	return rank
}

// Per-provider lookup tables from carrier service names to canonical service
// classes. Keys are normalized with serviceKey. Unmapped services resolve to
// unknown; that is never an error.
var easypostServiceClasses = map[string]models.ServiceClass{
	// USPS
	"PRIORITY":              models.ServiceClassTwoDay,
	"EXPRESS":               models.ServiceClassOvernight,
	"PRIORITYMAILEXPRESS":   models.ServiceClassOvernight,
	"GROUNDADVANTAGE":       models.ServiceClassGround,
	"FIRST":                 models.ServiceClassStandard,
	"PARCELSELECT":          models.ServiceClassStandard,
	// UPS
	"GROUND":                models.ServiceClassGround,
	"NEXTDAYAIR":            models.ServiceClassOvernight,
	"NEXTDAYAIRSAVER":       models.ServiceClassOvernight,
	"2NDDAYAIR":             models.ServiceClassTwoDay,
	"3DAYSELECT":            models.ServiceClassThreeDay,
	// FedEx
	"FEDEXGROUND":           models.ServiceClassGround,
	"GROUNDHOMEDELIVERY":    models.ServiceClassGround,
	"PRIORITYOVERNIGHT":     models.ServiceClassOvernight,
	"STANDARDOVERNIGHT":     models.ServiceClassOvernight,
	"FIRSTOVERNIGHT":        models.ServiceClassOvernight,
	"FEDEX2DAY":             models.ServiceClassTwoDay,
	"FEDEX2DAYAM":           models.ServiceClassTwoDay,
	"FEDEXEXPRESSSAVER":     models.ServiceClassThreeDay,
	"SMARTPOST":             models.ServiceClassStandard,
}

var shippoServiceClasses = map[string]models.ServiceClass{
	"USPSPRIORITY":          models.ServiceClassTwoDay,
	"USPSPRIORITYEXPRESS":   models.ServiceClassOvernight,
	"USPSGROUNDADVANTAGE":   models.ServiceClassGround,
	"USPSFIRST":             models.ServiceClassStandard,
	"USPSPARCELSELECT":      models.ServiceClassStandard,
	"UPSGROUND":             models.ServiceClassGround,
	"UPSNEXTDAYAIR":         models.ServiceClassOvernight,
	"UPSNEXTDAYAIRSAVER":    models.ServiceClassOvernight,
	"UPSSECONDDAYAIR":       models.ServiceClassTwoDay,
	"UPS3DAYSELECT":         models.ServiceClassThreeDay,
	"FEDEXGROUND":           models.ServiceClassGround,
	"FEDEXHOMEDELIVERY":     models.ServiceClassGround,
	"FEDEXPRIORITYOVERNIGHT": models.ServiceClassOvernight,
	"FEDEXSTANDARDOVERNIGHT": models.ServiceClassOvernight,
	"FEDEX2DAY":             models.ServiceClassTwoDay,
	"FEDEXEXPRESSSAVER":     models.ServiceClassThreeDay,
	"FEDEXSMARTPOST":        models.ServiceClassStandard,
}

var providerServiceClasses = map[models.Provider]map[string]models.ServiceClass{
	models.ProviderEasyPost: easypostServiceClasses,
	models.ProviderShippo:   shippoServiceClasses,
}

// serviceKey normalizes a provider service string for table lookup: upper
// case, alphanumerics only.
func serviceKey(service string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(service) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassifyService maps a provider-specific service string to its canonical
// service class. Unmapped strings map to unknown.
func ClassifyService(provider models.Provider, service string) models.ServiceClass {
	table, ok := providerServiceClasses[provider]
	if !ok {
		return models.ServiceClassUnknown
	}
	class, ok := table[serviceKey(service)]
	if !ok {
		return models.ServiceClassUnknown
	}
	return class
}

// Normalize converts a provider-specific quote into the canonical comparable
// shape. It fails with ErrMalformedRate when the price does not parse to a
// non-negative number; the service class is never a failure.
func Normalize(raw models.RawRate) (models.NormalizedRate, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw.Price), 64)
	if err != nil {
		return models.NormalizedRate{}, fmt.Errorf("%w: price %q is not numeric", ErrMalformedRate, raw.Price)
	}
	if price < 0 {
		return models.NormalizedRate{}, fmt.Errorf("%w: price %q is negative", ErrMalformedRate, raw.Price)
	}

	class := ClassifyService(raw.Provider, raw.Service)
	rawCopy := raw

	return models.NormalizedRate{
		Provider:     raw.Provider,
		RateID:       raw.RateID,
		Carrier:      raw.Carrier,
		Service:      raw.Service,
		Price:        price,
		Currency:     raw.Currency,
		DeliveryDays: raw.DeliveryDays,
		DeliveryDate: raw.DeliveryDate,
		Confidence:   raw.Confidence,
		ServiceClass: class,
		SpeedRank:    SpeedRank(class),
		Raw:          &rawCopy,
	}, nil
}

// NormalizeAll normalizes a batch of raw quotes. A quote that fails to parse
// is collected as a failure and does not abort the rest of the batch.
func NormalizeAll(raws []models.RawRate) ([]models.NormalizedRate, []models.RateFailure) {
	normalized := make([]models.NormalizedRate, 0, len(raws))
	var failures []models.RateFailure

	for i, raw := range raws {
		rate, err := Normalize(raw)
		if err != nil {
			failures = append(failures, models.RateFailure{
				Index:    i,
				Provider: raw.Provider,
				Carrier:  raw.Carrier,
				Service:  raw.Service,
				Error:    err.Error(),
			})
			continue
		}
		normalized = append(normalized, rate)
	}
	return normalized, failures
}
