package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveCountCountsDimensionsNotMembers(t *testing.T) {
	s := NewState()
	assert.Equal(t, 0, ActiveCount(s))

	s.District = "thanh-xuan"
	s.PriceMin = i64Ptr(1000)
	s.PriceMax = i64Ptr(3000)
	// Two members, still one dimension.
	s.PropertyTypes = []string{"nha-rieng", "dat-nen"}

	assert.Equal(t, 3, ActiveCount(s))
}

func TestActiveLabelsPriorityOrder(t *testing.T) {
	s := NewState()
	s.Directions = []string{"dong-nam"}
	s.BedroomsMin = intPtr(2)
	s.District = "thanh-xuan"
	s.PriceMin = i64Ptr(1000)
	s.PriceMax = i64Ptr(3000)

	labels := ActiveLabels(s)

	require.Len(t, labels, 4)
	assert.Equal(t, DimDistrict, labels[0].Dimension)
	assert.Equal(t, DimPrice, labels[1].Dimension)
	assert.Equal(t, DimBedrooms, labels[2].Dimension)
	assert.Equal(t, DimDirection, labels[3].Dimension)
}

func TestPriceRangeLabels(t *testing.T) {
	tests := []struct {
		name string
		min  *int64
		max  *int64
		want string
	}{
		{"both ty", i64Ptr(1000), i64Ptr(3000), "1 - 3 tỷ"},
		{"both trieu", i64Ptr(500), i64Ptr(800), "500 - 800 triệu"},
		{"mixed units", i64Ptr(800), i64Ptr(1000), "800 triệu - 1 tỷ"},
		{"fractional ty", i64Ptr(1500), i64Ptr(2500), "1,5 - 2,5 tỷ"},
		{"lower only", i64Ptr(20000), nil, "Trên 20 tỷ"},
		{"upper only", nil, i64Ptr(500), "Dưới 500 triệu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceRangeLabel(tt.min, tt.max))
		})
	}
}

func TestAreaRangeLabels(t *testing.T) {
	assert.Equal(t, "30 - 50 m²", areaRangeLabel(f64Ptr(30), f64Ptr(50)))
	assert.Equal(t, "Trên 500 m²", areaRangeLabel(f64Ptr(500), nil))
	assert.Equal(t, "Dưới 30 m²", areaRangeLabel(nil, f64Ptr(30)))
}

func TestActiveLabelsUsesDisplayNames(t *testing.T) {
	s := NewState()
	s.District = "thanh-xuan"
	s.LegalStatuses = []string{"so-do-so-hong"}

	labels := ActiveLabels(s)

	require.Len(t, labels, 2)
	assert.Equal(t, "Thanh Xuân", labels[0].Label)
	assert.Equal(t, "Sổ đỏ/Sổ hồng", labels[1].Label)
}
