package engine

import (
	"fmt"
	"sort"

	"rate-engine-service/internal/models"
)

// packUnit is a single physical unit expanded from an (item, quantity) pair.
// inputOrder keeps the sort stable for units with identical volume and weight.
type packUnit struct {
	item       models.Item
	inputOrder int
}

// openGroup is a box that has been opened and may still accept units.
type openGroup struct {
	box        models.Box
	usedVolume float64
	usedWeight float64
	units      []models.Item
}

func (g *openGroup) fits(item models.Item) bool {
	return g.usedVolume+item.Volume() <= g.box.Volume() &&
		g.usedWeight+item.Weight <= g.box.MaxWeight
}

func (g *openGroup) place(item models.Item) {
	g.usedVolume += item.Volume()
	g.usedWeight += item.Weight
	g.units = append(g.units, item)
}

// Pack selects one or more boxes that hold all requested items, using a
// greedy best-fit-decreasing heuristic by volume. It is a pure function over
// the supplied catalog: no repacking pass is attempted after placement, so
// the result is a first-fit approximation, not an exact bin-packing optimum.
//
// Every item+quantity from the request appears in exactly one group, each
// group respects its box's volume and weight capacity, and groups are
// returned in the order their box was opened. Identical input always yields
// an identical result.
func Pack(items []models.ItemQuantity, containers []models.Box) (*models.PackingResult, error) {
	if len(items) == 0 {
		return nil, ErrNoItemsToPack
	}
	if len(containers) == 0 {
		return nil, ErrNoContainersAvailable
	}

	// Expand item+quantity pairs into individual units.
	var units []packUnit
	for _, iq := range items {
		if iq.Quantity < 1 {
			return nil, fmt.Errorf("item %s: %w", iq.Item.SKU, ErrInvalidQuantity)
		}
		for n := 0; n < iq.Quantity; n++ {
			units = append(units, packUnit{item: iq.Item, inputOrder: len(units)})
		}
	}

	// Largest volume first, ties broken by heavier weight, then input order.
	sort.SliceStable(units, func(i, j int) bool {
		vi, vj := units[i].item.Volume(), units[j].item.Volume()
		if vi != vj {
			return vi > vj
		}
		if units[i].item.Weight != units[j].item.Weight {
			return units[i].item.Weight > units[j].item.Weight
		}
		return units[i].inputOrder < units[j].inputOrder
	})

	// Candidate boxes sorted by ascending volume, ties by lowest cost, so the
	// first box that can hold a unit alone is the smallest viable one.
	candidates := make([]models.Box, len(containers))
	copy(candidates, containers)
	sort.SliceStable(candidates, func(i, j int) bool {
		vi, vj := candidates[i].Volume(), candidates[j].Volume()
		if vi != vj {
			return vi < vj
		}
		return candidates[i].Cost < candidates[j].Cost
	})

	var groups []*openGroup
	for _, unit := range units {
		placed := false
		for _, g := range groups {
			if g.fits(unit.item) {
				g.place(unit.item)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		box, ok := smallestFittingBox(candidates, unit.item)
		if !ok {
			return nil, newItemExceedsContainersError(unit.item)
		}
		g := &openGroup{box: box}
		g.place(unit.item)
		groups = append(groups, g)
	}

	result := &models.PackingResult{Groups: make([]models.ShippingGroup, 0, len(groups))}
	for _, g := range groups {
		result.Groups = append(result.Groups, models.ShippingGroup{
			Box:   g.box,
			Items: aggregateUnits(g.units),
		})
	}
	return result, nil
}

func smallestFittingBox(sorted []models.Box, item models.Item) (models.Box, bool) {
	for _, box := range sorted {
		if item.Volume() <= box.Volume() && item.Weight <= box.MaxWeight {
			return box, true
		}
	}
	return models.Box{}, false
}

// aggregateUnits collapses placed units back into (item, quantity) pairs,
// preserving first-placement order within the group.
func aggregateUnits(units []models.Item) []models.PackedItem {
	var packed []models.PackedItem
	index := make(map[string]int)
	for _, item := range units {
		key := item.ID.String()
		if pos, ok := index[key]; ok {
			packed[pos].Quantity++
			continue
		}
		index[key] = len(packed)
		packed = append(packed, models.PackedItem{Item: item, Quantity: 1})
	}
	return packed
}
