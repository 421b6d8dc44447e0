package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VipTier is the paid-promotion classification of a listing.
// Ordering of prominence: KIMCUONG > VANG > BAC > none.
type VipTier string

const (
	VipTierNone    VipTier = ""
	VipTierDiamond VipTier = "KIMCUONG"
	VipTierGold    VipTier = "VANG"
	VipTierSilver  VipTier = "BAC"
)

func (t VipTier) IsVip() bool {
	return t == VipTierDiamond || t == VipTierGold || t == VipTierSilver
}

// IsHot marks the top tier only.
func (t VipTier) IsHot() bool { return t == VipTierDiamond }

// Property is a published listing. DistrictSlug is the normalized key the
// filter engine matches on; it is derived from District at ingestion, never
// at filter time.
type Property struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string

	Street   string
	Ward     string
	District string
	City     string
	// DistrictSlug must match the known-districts enumeration.
	DistrictSlug string

	// PriceValue is in millions of VND (the submission form captures
	// "Giá (triệu VNĐ)"); 1000 == 1 tỷ.
	PriceValue int64
	// AreaValue is in square meters.
	AreaValue float64

	Bedrooms  *int
	Bathrooms *int
	Floors    *int

	PropertyType     string
	LegalStatus      string
	Interior         string
	Direction        string
	BalconyDirection string

	VipTier  VipTier
	PostedAt time.Time

	Images []string
}

// Address composes the display address from its parts, skipping blanks.
func (p *Property) Address() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Street, p.Ward, p.District, p.City} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// PaginatedProperties is one page of listings plus the overall match count.
type PaginatedProperties struct {
	Objects    []Property
	TotalCount int
}
