package usecases_port

import (
	"context"

	"nhadat-service/internal/constants"
)

// Dictionaries bundles every enumeration the client needs to render the
// filter panel and the submission form.
type Dictionaries struct {
	Districts       []constants.CatalogItem `json:"districts"`
	PropertyTypes   []constants.CatalogItem `json:"propertyTypes"`
	LegalStatuses   []constants.CatalogItem `json:"legalStatuses"`
	InteriorOptions []constants.CatalogItem `json:"interiorOptions"`
	Directions      []constants.CatalogItem `json:"directions"`
	SortOptions     []constants.CatalogItem `json:"sortOptions"`
}

type GetDictionariesUseCasePort interface {
	Execute(ctx context.Context) *Dictionaries
}
