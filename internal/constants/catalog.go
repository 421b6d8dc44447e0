package constants

// CatalogItem pairs the normalized key stored on records with the
// Vietnamese display name shown in the UI.
type CatalogItem struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Districts is the known-districts enumeration. Filter values must match
// these slugs; records are normalized to them at ingestion.
var Districts = []CatalogItem{
	{Slug: "ba-dinh", Name: "Ba Đình"},
	{Slug: "hoan-kiem", Name: "Hoàn Kiếm"},
	{Slug: "dong-da", Name: "Đống Đa"},
	{Slug: "hai-ba-trung", Name: "Hai Bà Trưng"},
	{Slug: "cau-giay", Name: "Cầu Giấy"},
	{Slug: "thanh-xuan", Name: "Thanh Xuân"},
	{Slug: "tay-ho", Name: "Tây Hồ"},
	{Slug: "long-bien", Name: "Long Biên"},
	{Slug: "hoang-mai", Name: "Hoàng Mai"},
	{Slug: "ha-dong", Name: "Hà Đông"},
	{Slug: "nam-tu-liem", Name: "Nam Từ Liêm"},
	{Slug: "bac-tu-liem", Name: "Bắc Từ Liêm"},
}

var PropertyTypes = []CatalogItem{
	{Slug: "can-ho-chung-cu", Name: "Căn hộ chung cư"},
	{Slug: "nha-rieng", Name: "Nhà riêng"},
	{Slug: "nha-mat-pho", Name: "Nhà mặt phố"},
	{Slug: "biet-thu-lien-ke", Name: "Biệt thự, liền kề"},
	{Slug: "dat-nen", Name: "Đất nền"},
	{Slug: "kho-nha-xuong", Name: "Kho, nhà xưởng"},
}

var LegalStatuses = []CatalogItem{
	{Slug: "so-do-so-hong", Name: "Sổ đỏ/Sổ hồng"},
	{Slug: "hop-dong-mua-ban", Name: "Hợp đồng mua bán"},
	{Slug: "dang-cho-so", Name: "Đang chờ sổ"},
	{Slug: "khac", Name: "Khác"},
}

var InteriorOptions = []CatalogItem{
	{Slug: "day-du", Name: "Đầy đủ"},
	{Slug: "co-ban", Name: "Cơ bản"},
	{Slug: "khong-noi-that", Name: "Không nội thất"},
	{Slug: "khac", Name: "Khác"},
}

// Directions covers both house and balcony orientation, compass order.
var Directions = []CatalogItem{
	{Slug: "bac", Name: "Bắc"},
	{Slug: "dong-bac", Name: "Đông Bắc"},
	{Slug: "dong", Name: "Đông"},
	{Slug: "dong-nam", Name: "Đông Nam"},
	{Slug: "nam", Name: "Nam"},
	{Slug: "tay-nam", Name: "Tây Nam"},
	{Slug: "tay", Name: "Tây"},
	{Slug: "tay-bac", Name: "Tây Bắc"},
}

var SortOptions = []CatalogItem{
	{Slug: "newest", Name: "Mới nhất"},
	{Slug: "price-asc", Name: "Giá thấp đến cao"},
	{Slug: "price-desc", Name: "Giá cao đến thấp"},
	{Slug: "area-desc", Name: "Diện tích lớn nhất"},
}

func displayName(items []CatalogItem, slug string) string {
	for _, it := range items {
		if it.Slug == slug {
			return it.Name
		}
	}
	return slug
}

func DistrictName(slug string) string     { return displayName(Districts, slug) }
func PropertyTypeName(slug string) string { return displayName(PropertyTypes, slug) }
func LegalStatusName(slug string) string  { return displayName(LegalStatuses, slug) }
func InteriorName(slug string) string     { return displayName(InteriorOptions, slug) }
func DirectionName(slug string) string    { return displayName(Directions, slug) }

// IsKnownDistrict reports whether slug is part of the districts enumeration.
func IsKnownDistrict(slug string) bool {
	for _, d := range Districts {
		if d.Slug == slug {
			return true
		}
	}
	return false
}
