package engine

import (
	"sort"

	"rate-engine-service/internal/models"
)

// Rank orders scored rates by the company's SLA preference:
//
//	fastest:  speed rank, then price
//	cheapest: price, then speed rank
//	balanced: rule score, then price, then speed rank
//
// The rule score is the first tiebreak wherever the preference has not
// already consumed it. Remaining ties fall through delivery days, the
// preferred-provider flag, then the optimization objective's residual key,
// and finally carrier/service names so identical input always produces an
// identical order.
func Rank(scored []ScoredRate, objective models.OptimizationObjective, sla models.SLAPreference) []ScoredRate {
	ranked := make([]ScoredRate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		var keys []int
		switch sla {
		case models.SLAFastest:
			keys = []int{compareSpeed(a, b), compareScore(a, b), comparePrice(a, b)}
		case models.SLACheapest:
			keys = []int{comparePrice(a, b), compareScore(a, b), compareSpeed(a, b)}
		default: // balanced
			keys = []int{compareScore(a, b), comparePrice(a, b), compareSpeed(a, b)}
		}
		keys = append(keys, compareDeliveryDays(a, b), comparePreferred(a, b))
		if objective == models.ObjectiveMinimizeCost {
			keys = append(keys, comparePrice(a, b))
		} else {
			keys = append(keys, compareSpeed(a, b))
		}
		keys = append(keys, compareNames(a, b))

		for _, k := range keys {
			if k != 0 {
				return k < 0
			}
		}
		return false
	})
	return ranked
}

func compareSpeed(a, b ScoredRate) int {
	return a.Rate.SpeedRank - b.Rate.SpeedRank
}

func comparePrice(a, b ScoredRate) int {
	switch {
	case a.Rate.Price < b.Rate.Price:
		return -1
	case a.Rate.Price > b.Rate.Price:
		return 1
	}
	return 0
}

// compareScore sorts higher scores first.
func compareScore(a, b ScoredRate) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	}
	return 0
}

// compareDeliveryDays breaks speed-class ties by actual delivery days when
// both rates carry one; a rate with a known estimate sorts before one without.
func compareDeliveryDays(a, b ScoredRate) int {
	da, db := a.Rate.DeliveryDays, b.Rate.DeliveryDays
	switch {
	case da == nil && db == nil:
		return 0
	case da == nil:
		return 1
	case db == nil:
		return -1
	}
	return *da - *db
}

// comparePreferred applies the preferred-provider tiebreak: it only ever
// fires between rates that compared equal on every earlier key.
func comparePreferred(a, b ScoredRate) int {
	if a.Preferred == b.Preferred {
		return 0
	}
	if a.Preferred {
		return -1
	}
	return 1
}

func compareNames(a, b ScoredRate) int {
	if a.Rate.Carrier != b.Rate.Carrier {
		if a.Rate.Carrier < b.Rate.Carrier {
			return -1
		}
		return 1
	}
	if a.Rate.Service != b.Rate.Service {
		if a.Rate.Service < b.Rate.Service {
			return -1
		}
		return 1
	}
	return 0
}
