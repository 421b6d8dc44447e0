package filter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhadat-service/internal/core/domain"
)

func intPtr(v int) *int         { return &v }
func i64Ptr(v int64) *int64     { return &v }
func f64Ptr(v float64) *float64 { return &v }

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func makeProperty(title string, price int64, area float64, postedOffset time.Duration) domain.Property {
	return domain.Property{
		ID:           uuid.New(),
		Title:        title,
		Street:       "Ngõ 68",
		Ward:         "Triều Khúc",
		District:     "Thanh Xuân",
		City:         "Hà Nội",
		DistrictSlug: "thanh-xuan",
		PriceValue:   price,
		AreaValue:    area,
		PropertyType: "nha-rieng",
		LegalStatus:  "so-do-so-hong",
		PostedAt:     baseTime.Add(postedOffset),
	}
}

func TestApplyPriceDescScenario(t *testing.T) {
	props := []domain.Property{
		makeProperty("A", 2000, 50, 0),
		makeProperty("B", 500, 40, time.Hour),
		makeProperty("C", 1500, 60, 2*time.Hour),
	}
	s := NewState()
	s.SortBy = SortPriceDesc

	got := Apply(props, s)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{2000, 1500, 500}, []int64{got[0].PriceValue, got[1].PriceValue, got[2].PriceValue})
}

func TestApplyPriceAscNonDecreasing(t *testing.T) {
	props := []domain.Property{
		makeProperty("A", 3200, 50, 0),
		makeProperty("B", 150, 40, 0),
		makeProperty("C", 980, 60, 0),
		makeProperty("D", 980, 35, 0),
		makeProperty("E", 12000, 200, 0),
	}
	s := NewState()
	s.SortBy = SortPriceAsc

	got := Apply(props, s)
	require.Len(t, got, len(props))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].PriceValue, got[i].PriceValue)
	}
}

func TestApplyIdempotent(t *testing.T) {
	props := []domain.Property{
		makeProperty("A", 2000, 50, 0),
		makeProperty("B", 500, 40, time.Hour),
		makeProperty("C", 1500, 60, 2*time.Hour),
	}
	s := NewState()
	s.SortBy = SortPriceAsc
	s.PriceMax = i64Ptr(1800)

	first := Apply(props, s)
	second := Apply(props, s)

	require.Equal(t, first, second)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	props := []domain.Property{
		makeProperty("A", 2000, 50, 0),
		makeProperty("B", 500, 40, time.Hour),
	}
	original := make([]domain.Property, len(props))
	copy(original, props)

	s := NewState()
	s.SortBy = SortPriceAsc
	_ = Apply(props, s)

	assert.Equal(t, original, props)
}

func TestApplyResetIsIdentityOrderedByNewest(t *testing.T) {
	props := []domain.Property{
		makeProperty("old", 100, 30, 0),
		makeProperty("newest", 300, 70, 48*time.Hour),
		makeProperty("middle", 200, 50, 24*time.Hour),
	}

	got := Apply(props, Reset())

	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "old", got[2].Title)
}

func TestApplyStableForEqualKeys(t *testing.T) {
	props := []domain.Property{
		makeProperty("first", 1000, 50, 0),
		makeProperty("second", 1000, 50, 0),
		makeProperty("third", 1000, 50, 0),
	}
	s := NewState()
	s.SortBy = SortPriceAsc

	got := Apply(props, s)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestApplyCompleteness(t *testing.T) {
	props := []domain.Property{
		makeProperty("cheap small", 400, 25, 0),
		makeProperty("mid", 1500, 60, 0),
		makeProperty("expensive", 8000, 150, 0),
	}
	s := NewState()
	s.PriceMin = i64Ptr(1000)
	s.PriceMax = i64Ptr(5000)
	s.AreaMin = f64Ptr(30)

	got := Apply(props, s)
	kept := map[string]bool{}
	for _, p := range got {
		kept[p.Title] = true
		assert.GreaterOrEqual(t, p.PriceValue, int64(1000))
		assert.LessOrEqual(t, p.PriceValue, int64(5000))
		assert.GreaterOrEqual(t, p.AreaValue, 30.0)
	}

	// Everything excluded must violate at least one active constraint.
	for _, p := range props {
		if kept[p.Title] {
			continue
		}
		violates := p.PriceValue < 1000 || p.PriceValue > 5000 || p.AreaValue < 30
		assert.True(t, violates, "excluded %q satisfies all predicates", p.Title)
	}
}

func TestSearchQueryIgnoresDiacritics(t *testing.T) {
	match := makeProperty("Nhà riêng Triều Khúc", 1200, 45, 0)
	other := makeProperty("Căn hộ Cầu Giấy", 2000, 70, 0)
	other.Ward = "Dịch Vọng"
	other.District = "Cầu Giấy"
	other.DistrictSlug = "cau-giay"

	s := NewState()
	s.SearchQuery = "thanh xuan"

	got := Apply([]domain.Property{match, other}, s)

	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}

func TestBedroomsMinExcludesMissingData(t *testing.T) {
	withRooms := makeProperty("three beds", 1500, 60, 0)
	withRooms.Bedrooms = intPtr(3)
	noData := makeProperty("no data", 1500, 60, 0)

	s := NewState()
	s.BedroomsMin = intPtr(3)

	got := Apply([]domain.Property{withRooms, noData}, s)

	require.Len(t, got, 1)
	assert.Equal(t, "three beds", got[0].Title)
}

func TestDistrictFilterMatchesSlugOnly(t *testing.T) {
	normalized := makeProperty("ok", 1000, 40, 0)
	raw := makeProperty("raw district", 1000, 40, 0)
	raw.DistrictSlug = "Thanh Xuân" // unnormalized, must silently fail

	s := NewState()
	s.District = "thanh-xuan"

	got := Apply([]domain.Property{normalized, raw}, s)

	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Title)
}

func TestOpenEndedRanges(t *testing.T) {
	props := []domain.Property{
		makeProperty("cheap", 300, 20, 0),
		makeProperty("pricey", 9000, 120, 0),
	}

	s := NewState()
	s.PriceMin = i64Ptr(1000) // no upper bound
	got := Apply(props, s)
	require.Len(t, got, 1)
	assert.Equal(t, "pricey", got[0].Title)

	s = NewState()
	s.PriceMax = i64Ptr(1000) // no lower bound
	got = Apply(props, s)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].Title)
}

func TestMultiSelectIsUnionWithinDimension(t *testing.T) {
	house := makeProperty("house", 1000, 40, 0)
	flat := makeProperty("flat", 1000, 40, 0)
	flat.PropertyType = "can-ho-chung-cu"
	land := makeProperty("land", 1000, 40, 0)
	land.PropertyType = "dat-nen"

	s := NewState()
	s.PropertyTypes = []string{"nha-rieng", "dat-nen"}

	got := Apply([]domain.Property{house, flat, land}, s)

	require.Len(t, got, 2)
	titles := []string{got[0].Title, got[1].Title}
	assert.Contains(t, titles, "house")
	assert.Contains(t, titles, "land")
}
