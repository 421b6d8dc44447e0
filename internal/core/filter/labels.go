package filter

import (
	"fmt"
	"strconv"
	"strings"

	"nhadat-service/internal/constants"
)

// ActiveLabel is one chip in the active-filters row.
type ActiveLabel struct {
	Dimension Dimension `json:"dimension"`
	Label     string    `json:"label"`
}

// ActiveCount returns how many dimensions currently constrain the result:
// one per non-default scalar field, one per non-empty set regardless of
// how many members it holds.
func ActiveCount(s State) int {
	count := 0
	if s.District != "" {
		count++
	}
	if s.PriceMin != nil || s.PriceMax != nil {
		count++
	}
	if s.AreaMin != nil || s.AreaMax != nil {
		count++
	}
	if s.BedroomsMin != nil && *s.BedroomsMin > 0 {
		count++
	}
	if s.BathroomsMin != nil && *s.BathroomsMin > 0 {
		count++
	}
	for _, set := range [][]string{s.PropertyTypes, s.LegalStatuses, s.InteriorOptions, s.Directions, s.BalconyDirections} {
		if len(set) > 0 {
			count++
		}
	}
	if s.SearchQuery != "" {
		count++
	}
	return count
}

// ActiveLabels renders one display chip per active dimension, in fixed
// priority order: district, price, area, bedrooms, bathrooms, property
// type, legal, interior, direction, balcony direction.
func ActiveLabels(s State) []ActiveLabel {
	var labels []ActiveLabel
	add := func(dim Dimension, label string) {
		labels = append(labels, ActiveLabel{Dimension: dim, Label: label})
	}

	if s.District != "" {
		add(DimDistrict, constants.DistrictName(s.District))
	}
	if s.PriceMin != nil || s.PriceMax != nil {
		add(DimPrice, priceRangeLabel(s.PriceMin, s.PriceMax))
	}
	if s.AreaMin != nil || s.AreaMax != nil {
		add(DimArea, areaRangeLabel(s.AreaMin, s.AreaMax))
	}
	if s.BedroomsMin != nil && *s.BedroomsMin > 0 {
		add(DimBedrooms, fmt.Sprintf("%d+ phòng ngủ", *s.BedroomsMin))
	}
	if s.BathroomsMin != nil && *s.BathroomsMin > 0 {
		add(DimBathrooms, fmt.Sprintf("%d+ phòng tắm", *s.BathroomsMin))
	}
	if len(s.PropertyTypes) > 0 {
		add(DimPropertyType, joinNames(s.PropertyTypes, constants.PropertyTypeName))
	}
	if len(s.LegalStatuses) > 0 {
		add(DimLegal, joinNames(s.LegalStatuses, constants.LegalStatusName))
	}
	if len(s.InteriorOptions) > 0 {
		add(DimInterior, joinNames(s.InteriorOptions, constants.InteriorName))
	}
	if len(s.Directions) > 0 {
		add(DimDirection, "Hướng "+joinNames(s.Directions, constants.DirectionName))
	}
	if len(s.BalconyDirections) > 0 {
		add(DimBalconyDirection, "Ban công "+joinNames(s.BalconyDirections, constants.DirectionName))
	}

	return labels
}

func joinNames(slugs []string, name func(string) string) string {
	parts := make([]string, len(slugs))
	for i, s := range slugs {
		parts[i] = name(s)
	}
	return strings.Join(parts, ", ")
}

// FormatPrice renders a price in millions of VND the way listings display
// it: "800 triệu", "1,5 tỷ".
func FormatPrice(millions int64) string {
	if millions >= 1000 {
		return formatDecimal(float64(millions)/1000) + " tỷ"
	}
	return strconv.FormatInt(millions, 10) + " triệu"
}

// priceRangeLabel matches the chip wording of the filter UI: "1 - 3 tỷ",
// "800 triệu - 1 tỷ", "Dưới 500 triệu", "Trên 20 tỷ".
func priceRangeLabel(min, max *int64) string {
	switch {
	case min != nil && max != nil:
		// Same magnitude shows the unit once.
		if *min >= 1000 && *max >= 1000 {
			return formatDecimal(float64(*min)/1000) + " - " + formatDecimal(float64(*max)/1000) + " tỷ"
		}
		if *min < 1000 && *max < 1000 {
			return fmt.Sprintf("%d - %d triệu", *min, *max)
		}
		return FormatPrice(*min) + " - " + FormatPrice(*max)
	case min != nil:
		return "Trên " + FormatPrice(*min)
	default:
		return "Dưới " + FormatPrice(*max)
	}
}

func areaRangeLabel(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return formatDecimal(*min) + " - " + formatDecimal(*max) + " m²"
	case min != nil:
		return "Trên " + formatDecimal(*min) + " m²"
	default:
		return "Dưới " + formatDecimal(*max) + " m²"
	}
}

// formatDecimal trims trailing zeros and uses the Vietnamese decimal comma.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}
