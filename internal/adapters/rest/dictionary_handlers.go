package rest

import (
	"net/http"

	"nhadat-service/internal/core/port/usecases_port"
)

// DictionaryHandler serves the static catalogs behind the filter panel and
// the submission form.
type DictionaryHandler struct {
	dictionariesUC usecases_port.GetDictionariesUseCasePort
}

func NewDictionaryHandler(dictionariesUC usecases_port.GetDictionariesUseCasePort) *DictionaryHandler {
	return &DictionaryHandler{dictionariesUC: dictionariesUC}
}

// GetDictionaries handles GET /api/v1/dictionaries.
func (h *DictionaryHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.dictionariesUC.Execute(r.Context()))
}
