package usecase

import (
	"context"

	"nhadat-service/internal/constants"
	"nhadat-service/internal/core/port/usecases_port"
)

// GetDictionariesUseCase serves the static catalogs. They are compiled in,
// so there is nothing to fail.
type GetDictionariesUseCase struct{}

func NewGetDictionariesUseCase() *GetDictionariesUseCase {
	return &GetDictionariesUseCase{}
}

func (uc *GetDictionariesUseCase) Execute(_ context.Context) *usecases_port.Dictionaries {
	return &usecases_port.Dictionaries{
		Districts:       constants.Districts,
		PropertyTypes:   constants.PropertyTypes,
		LegalStatuses:   constants.LegalStatuses,
		InteriorOptions: constants.InteriorOptions,
		Directions:      constants.Directions,
		SortOptions:     constants.SortOptions,
	}
}
