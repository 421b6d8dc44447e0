// Package filter derives the visible subset of listings from a raw
// collection and a multi-dimensional filter state. Everything here is pure:
// no I/O, no mutation of inputs, deterministic output order.
package filter

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// SortOrder selects the ordering of the filtered result.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortAreaDesc  SortOrder = "area-desc"
)

// ParseSortOrder maps a raw value to a SortOrder, falling back to newest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc, SortAreaDesc:
		return SortOrder(s)
	default:
		return SortNewest
	}
}

// Dimension names one filterable aspect of a listing.
type Dimension string

const (
	DimDistrict         Dimension = "district"
	DimPrice            Dimension = "price"
	DimArea             Dimension = "area"
	DimBedrooms         Dimension = "bedrooms"
	DimBathrooms        Dimension = "bathrooms"
	DimPropertyType     Dimension = "propertyType"
	DimLegal            Dimension = "legal"
	DimInterior         Dimension = "interior"
	DimDirection        Dimension = "direction"
	DimBalconyDirection Dimension = "balconyDirection"
	DimSearch           Dimension = "search"
)

// State is the session-local filter selection. The zero value of NewState
// constrains nothing. Range bounds are nil or numeric, never NaN; setters
// and query parsing enforce that.
type State struct {
	District string

	// Price bounds in millions of VND; nil means unbounded on that side.
	PriceMin *int64
	PriceMax *int64

	// Area bounds in m².
	AreaMin *float64
	AreaMax *float64

	BedroomsMin  *int
	BathroomsMin *int

	PropertyTypes     []string
	LegalStatuses     []string
	InteriorOptions   []string
	Directions        []string
	BalconyDirections []string

	SortBy      SortOrder
	SearchQuery string
}

// NewState returns the all-default state (no constraints, newest first).
func NewState() State {
	return State{SortBy: SortNewest}
}

// Reset is NewState under the name the UI contract uses.
func Reset() State { return NewState() }

// clone deep-copies the set fields so derived states never share backing
// arrays with their parent.
func (s State) clone() State {
	out := s
	out.PropertyTypes = slices.Clone(s.PropertyTypes)
	out.LegalStatuses = slices.Clone(s.LegalStatuses)
	out.InteriorOptions = slices.Clone(s.InteriorOptions)
	out.Directions = slices.Clone(s.Directions)
	out.BalconyDirections = slices.Clone(s.BalconyDirections)
	return out
}

// WithAreaRange returns a copy with the area bounds replaced. NaN bounds
// are treated as unset rather than poisoning comparisons.
func (s State) WithAreaRange(min, max *float64) State {
	out := s.clone()
	out.AreaMin = sanitizeFloat(min)
	out.AreaMax = sanitizeFloat(max)
	return out
}

// WithPriceRange returns a copy with the price bounds replaced.
func (s State) WithPriceRange(min, max *int64) State {
	out := s.clone()
	out.PriceMin = min
	out.PriceMax = max
	return out
}

func sanitizeFloat(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// Toggle flips membership of value in the named multi-select dimension and
// returns the new state. Non-set dimensions are returned unchanged.
func (s State) Toggle(dim Dimension, value string) State {
	out := s.clone()
	switch dim {
	case DimPropertyType:
		out.PropertyTypes = toggleValue(out.PropertyTypes, value)
	case DimLegal:
		out.LegalStatuses = toggleValue(out.LegalStatuses, value)
	case DimInterior:
		out.InteriorOptions = toggleValue(out.InteriorOptions, value)
	case DimDirection:
		out.Directions = toggleValue(out.Directions, value)
	case DimBalconyDirection:
		out.BalconyDirections = toggleValue(out.BalconyDirections, value)
	}
	return out
}

func toggleValue(set []string, value string) []string {
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, value)
}

// Clear resets exactly one dimension to its default, leaving the rest
// untouched.
func (s State) Clear(dim Dimension) State {
	out := s.clone()
	switch dim {
	case DimDistrict:
		out.District = ""
	case DimPrice:
		out.PriceMin, out.PriceMax = nil, nil
	case DimArea:
		out.AreaMin, out.AreaMax = nil, nil
	case DimBedrooms:
		out.BedroomsMin = nil
	case DimBathrooms:
		out.BathroomsMin = nil
	case DimPropertyType:
		out.PropertyTypes = nil
	case DimLegal:
		out.LegalStatuses = nil
	case DimInterior:
		out.InteriorOptions = nil
	case DimDirection:
		out.Directions = nil
	case DimBalconyDirection:
		out.BalconyDirections = nil
	case DimSearch:
		out.SearchQuery = ""
	}
	return out
}

// FromQuery seeds a State from URL query parameters, the contract the UI
// serializes the filter selection to (?district=thanh-xuan&price_min=1000).
// Malformed values are ignored rather than rejected.
func FromQuery(values url.Values) State {
	s := NewState()

	s.District = values.Get("district")
	s.PriceMin = parseInt64(values.Get("price_min"))
	s.PriceMax = parseInt64(values.Get("price_max"))
	s.AreaMin = parseFloat(values.Get("area_min"))
	s.AreaMax = parseFloat(values.Get("area_max"))
	s.BedroomsMin = parseInt(values.Get("bedrooms_min"))
	s.BathroomsMin = parseInt(values.Get("bathrooms_min"))

	s.PropertyTypes = splitList(values.Get("types"))
	s.LegalStatuses = splitList(values.Get("legal"))
	s.InteriorOptions = splitList(values.Get("interior"))
	s.Directions = splitList(values.Get("direction"))
	s.BalconyDirections = splitList(values.Get("balcony_direction"))

	s.SortBy = ParseSortOrder(values.Get("sort"))
	s.SearchQuery = strings.TrimSpace(values.Get("q"))

	return s
}

func parseInt64(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return sanitizeFloat(&v)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
