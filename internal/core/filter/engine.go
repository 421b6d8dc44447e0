package filter

import (
	"sort"

	"nhadat-service/internal/core/domain"
)

// Apply evaluates the conjunction of active predicates over properties and
// returns the survivors ordered per s.SortBy. The input slice and the state
// are never mutated; the result is a fresh allocation. Sorting is stable,
// equal keys keep their original relative order so pagination stays
// reproducible.
func Apply(properties []domain.Property, s State) []domain.Property {
	preds := activePredicates(s)

	out := make([]domain.Property, 0, len(properties))
	for i := range properties {
		if matchesAll(&properties[i], preds) {
			out = append(out, properties[i])
		}
	}

	sortProperties(out, s.SortBy)
	return out
}

func matchesAll(p *domain.Property, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func sortProperties(props []domain.Property, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].PriceValue < props[j].PriceValue
		})
	case SortPriceDesc:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].PriceValue > props[j].PriceValue
		})
	case SortAreaDesc:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].AreaValue > props[j].AreaValue
		})
	default: // newest
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].PostedAt.After(props[j].PostedAt)
		})
	}
}
