package rest

import (
	"time"

	"github.com/google/uuid"

	"nhadat-service/internal/constants"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/filter"
)

// PropertyResponse is the listing card/detail shape served to the UI.
type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`

	Street       string `json:"street,omitempty"`
	Ward         string `json:"ward,omitempty"`
	District     string `json:"district"`
	DistrictSlug string `json:"districtSlug"`
	City         string `json:"city"`
	Address      string `json:"address"`

	Price      int64   `json:"price"`
	PriceLabel string  `json:"priceLabel"`
	Area       float64 `json:"area"`

	Bedrooms  *int `json:"bedrooms,omitempty"`
	Bathrooms *int `json:"bathrooms,omitempty"`
	Floors    *int `json:"floors,omitempty"`

	PropertyType     string `json:"propertyType,omitempty"`
	PropertyTypeName string `json:"propertyTypeName,omitempty"`
	LegalStatus      string `json:"legalStatus,omitempty"`
	Interior         string `json:"interior,omitempty"`
	Direction        string `json:"direction,omitempty"`
	BalconyDirection string `json:"balconyDirection,omitempty"`

	VipTier string `json:"vipTier,omitempty"`
	IsVip   bool   `json:"isVip"`
	IsHot   bool   `json:"isHot"`

	PostedAt time.Time `json:"postedAt"`
	Images   []string  `json:"images"`
}

func toPropertyResponse(p *domain.Property) PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,

		Street:       p.Street,
		Ward:         p.Ward,
		District:     p.District,
		DistrictSlug: p.DistrictSlug,
		City:         p.City,
		Address:      p.Address(),

		Price:      p.PriceValue,
		PriceLabel: filter.FormatPrice(p.PriceValue),
		Area:       p.AreaValue,

		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Floors:    p.Floors,

		PropertyType:     p.PropertyType,
		PropertyTypeName: constants.PropertyTypeName(p.PropertyType),
		LegalStatus:      p.LegalStatus,
		Interior:         p.Interior,
		Direction:        p.Direction,
		BalconyDirection: p.BalconyDirection,

		VipTier: string(p.VipTier),
		IsVip:   p.VipTier.IsVip(),
		IsHot:   p.VipTier.IsHot(),

		PostedAt: p.PostedAt,
		Images:   images,
	}
}

// FindPropertiesMeta describes the filter state behind one result page.
type FindPropertiesMeta struct {
	Total              int                  `json:"total"`
	ActiveFiltersCount int                  `json:"activeFiltersCount"`
	ActiveFilters      []filter.ActiveLabel `json:"activeFilters"`
	Sort               string               `json:"sort"`
}

type FindPropertiesResponse struct {
	Data []PropertyResponse `json:"data"`
	Meta FindPropertiesMeta `json:"meta"`
}

// SubmitPropertyRequest mirrors the property-submission contract schema.
type SubmitPropertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	Street   string `json:"street"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	City     string `json:"city"`

	Price float64 `json:"price"`
	Area  float64 `json:"area"`

	Bedrooms  *int `json:"bedrooms"`
	Bathrooms *int `json:"bathrooms"`
	Floors    *int `json:"floors"`

	PropertyType     string `json:"propertyType"`
	LegalStatus      string `json:"legalStatus"`
	Interior         string `json:"interior"`
	Direction        string `json:"direction"`
	BalconyDirection string `json:"balconyDirection"`
}

func (req *SubmitPropertyRequest) toDomain() *domain.Property {
	return &domain.Property{
		Title:       req.Title,
		Description: req.Description,

		Street:   req.Street,
		Ward:     req.Ward,
		District: req.District,
		City:     req.City,

		PriceValue: int64(req.Price),
		AreaValue:  req.Area,

		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Floors:    req.Floors,

		PropertyType:     req.PropertyType,
		LegalStatus:      req.LegalStatus,
		Interior:         req.Interior,
		Direction:        req.Direction,
		BalconyDirection: req.BalconyDirection,
	}
}

// ImageValidationResponse is the verdict shape of the upload validator.
type ImageValidationResponse struct {
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
	DetectedType string `json:"detectedType,omitempty"`
}

func toImageValidationResponse(res *domain.ImageValidationResult) ImageValidationResponse {
	return ImageValidationResponse{
		Valid:        res.Valid,
		Error:        res.Error,
		DetectedType: res.DetectedType,
	}
}

// AttachImageResponse extends the verdict with the stored object URL.
type AttachImageResponse struct {
	ImageValidationResponse
	URL string `json:"url,omitempty"`
}

type AddFavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

type PaginatedFavoritesResponse struct {
	Data  []PropertyResponse `json:"data"`
	Total int                `json:"total"`
}
