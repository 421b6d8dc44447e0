package filter

import (
	"slices"
	"strings"

	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/vntext"
)

// Predicate decides whether one listing survives one filter dimension.
// Predicates are pure and independently testable; a listing is visible only
// when every active predicate passes.
type Predicate func(p *domain.Property) bool

// DistrictPredicate matches the normalized district key exactly. Records
// with unnormalized district strings fail by design: normalization happens
// at ingestion, not here.
func DistrictPredicate(slug string) Predicate {
	return func(p *domain.Property) bool {
		return p.DistrictSlug == slug
	}
}

// PriceRangePredicate keeps listings inside [min, max]; a nil bound is
// unbounded on that side.
func PriceRangePredicate(min, max *int64) Predicate {
	return func(p *domain.Property) bool {
		if min != nil && p.PriceValue < *min {
			return false
		}
		if max != nil && p.PriceValue > *max {
			return false
		}
		return true
	}
}

func AreaRangePredicate(min, max *float64) Predicate {
	return func(p *domain.Property) bool {
		if min != nil && p.AreaValue < *min {
			return false
		}
		if max != nil && p.AreaValue > *max {
			return false
		}
		return true
	}
}

// MinCountPredicate keeps listings whose count is at least min. A listing
// with no data for the field fails any non-zero threshold.
func MinCountPredicate(get func(p *domain.Property) *int, min int) Predicate {
	return func(p *domain.Property) bool {
		v := get(p)
		if v == nil {
			return min <= 0
		}
		return *v >= min
	}
}

// MembershipPredicate keeps listings whose field value is one of the
// selected options (OR within the dimension).
func MembershipPredicate(get func(p *domain.Property) string, selected []string) Predicate {
	return func(p *domain.Property) bool {
		return slices.Contains(selected, get(p))
	}
}

// SearchPredicate matches the query against title and address, ignoring
// case and diacritics, so "thanh xuan" finds "Thanh Xuân".
func SearchPredicate(query string) Predicate {
	folded := vntext.Fold(query)
	return func(p *domain.Property) bool {
		return strings.Contains(vntext.Fold(p.Title+" "+p.Address()), folded)
	}
}

// activePredicates assembles the conjunction for a state; dimensions left
// at their defaults contribute nothing (vacuously true).
func activePredicates(s State) []Predicate {
	var preds []Predicate

	if s.District != "" {
		preds = append(preds, DistrictPredicate(s.District))
	}
	if s.PriceMin != nil || s.PriceMax != nil {
		preds = append(preds, PriceRangePredicate(s.PriceMin, s.PriceMax))
	}
	if s.AreaMin != nil || s.AreaMax != nil {
		preds = append(preds, AreaRangePredicate(s.AreaMin, s.AreaMax))
	}
	if s.BedroomsMin != nil && *s.BedroomsMin > 0 {
		preds = append(preds, MinCountPredicate(func(p *domain.Property) *int { return p.Bedrooms }, *s.BedroomsMin))
	}
	if s.BathroomsMin != nil && *s.BathroomsMin > 0 {
		preds = append(preds, MinCountPredicate(func(p *domain.Property) *int { return p.Bathrooms }, *s.BathroomsMin))
	}
	if len(s.PropertyTypes) > 0 {
		preds = append(preds, MembershipPredicate(func(p *domain.Property) string { return p.PropertyType }, s.PropertyTypes))
	}
	if len(s.LegalStatuses) > 0 {
		preds = append(preds, MembershipPredicate(func(p *domain.Property) string { return p.LegalStatus }, s.LegalStatuses))
	}
	if len(s.InteriorOptions) > 0 {
		preds = append(preds, MembershipPredicate(func(p *domain.Property) string { return p.Interior }, s.InteriorOptions))
	}
	if len(s.Directions) > 0 {
		preds = append(preds, MembershipPredicate(func(p *domain.Property) string { return p.Direction }, s.Directions))
	}
	if len(s.BalconyDirections) > 0 {
		preds = append(preds, MembershipPredicate(func(p *domain.Property) string { return p.BalconyDirection }, s.BalconyDirections))
	}
	if s.SearchQuery != "" {
		preds = append(preds, SearchPredicate(s.SearchQuery))
	}

	return preds
}
