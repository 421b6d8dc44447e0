package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/contracts"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/filter"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/core/port/usecases_port"
)

// PropertyHandler serves the listings endpoints: search, details,
// submission, edits and gallery uploads.
type PropertyHandler struct {
	findUC    usecases_port.FindPropertiesUseCasePort
	detailsUC usecases_port.GetPropertyDetailsUseCasePort
	submitUC  usecases_port.SubmitPropertyUseCasePort
	updateUC  usecases_port.UpdatePropertyUseCasePort
	attachUC  usecases_port.AttachPropertyImageUseCasePort
}

func NewPropertyHandler(
	findUC usecases_port.FindPropertiesUseCasePort,
	detailsUC usecases_port.GetPropertyDetailsUseCasePort,
	submitUC usecases_port.SubmitPropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	attachUC usecases_port.AttachPropertyImageUseCasePort,
) *PropertyHandler {
	return &PropertyHandler{
		findUC:    findUC,
		detailsUC: detailsUC,
		submitUC:  submitUC,
		updateUC:  updateUC,
		attachUC:  attachUC,
	}
}

// FindProperties handles GET /api/v1/properties. The whole filter state is
// carried in query parameters; malformed values fall back to defaults.
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindProperties"})

	state := filter.FromQuery(r.URL.Query())
	limit := GetLimitOrDefault(r)
	offset := GetOffsetOrDefault(r)

	result, err := h.findUC.Execute(r.Context(), state, limit, offset)
	if err != nil {
		logger.Error("Find properties use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	response := FindPropertiesResponse{
		Data: make([]PropertyResponse, len(result.Objects)),
		Meta: FindPropertiesMeta{
			Total:              result.TotalCount,
			ActiveFiltersCount: filter.ActiveCount(state),
			ActiveFilters:      filter.ActiveLabels(state),
			Sort:               string(state.SortBy),
		},
	}
	if response.Meta.ActiveFilters == nil {
		response.Meta.ActiveFilters = []filter.ActiveLabel{}
	}
	for i := range result.Objects {
		response.Data[i] = toPropertyResponse(&result.Objects[i])
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetPropertyDetails handles GET /api/v1/properties/{propertyID}.
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertyDetails"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	property, err := h.detailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		logger.Error("Get property details use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// SubmitProperty handles POST /api/v1/properties. The body is checked
// against the submission contract schema before it is decoded.
func (h *PropertyHandler) SubmitProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitProperty"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	draft, err := h.decodeSubmission(w, r)
	if err != nil {
		return // response already written
	}
	draft.OwnerID = userID

	created, err := h.submitUC.Execute(r.Context(), draft)
	if err != nil {
		logger.Error("Submit property use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to submit property")
		return
	}

	logger.Info("Property submitted", port.Fields{"property_id": created.ID})
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(created))
}

// UpdateProperty handles PUT /api/v1/properties/{propertyID}.
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	edit, err := h.decodeSubmission(w, r)
	if err != nil {
		return
	}
	edit.ID = propertyID

	updated, err := h.updateUC.Execute(r.Context(), userID, edit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, "Property not found")
		case errors.Is(err, domain.ErrNotOwner):
			WriteJSONError(w, http.StatusForbidden, "Only the owner can edit a listing")
		default:
			logger.Error("Update property use case failed", err, port.Fields{"property_id": propertyID})
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update property")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(updated))
}

// AttachPropertyImage handles POST /api/v1/properties/{propertyID}/images.
// The request is already authenticated; the content gate still applies.
func (h *PropertyHandler) AttachPropertyImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AttachPropertyImage"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	upload, err := uploadFromRequest(w, r)
	if err != nil {
		logger.Error("Failed to parse multipart request", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	url, verdict, err := h.attachUC.Execute(r.Context(), userID, propertyID, upload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, "Property not found")
		case errors.Is(err, domain.ErrNotOwner):
			WriteJSONError(w, http.StatusForbidden, "Only the owner can attach images")
		default:
			logger.Error("Attach property image use case failed", err, port.Fields{"property_id": propertyID})
			WriteJSONError(w, http.StatusInternalServerError, "Failed to attach image")
		}
		return
	}

	if !verdict.Valid {
		RespondWithJSON(w, statusForFailure(verdict.Failure), toImageValidationResponse(verdict))
		return
	}

	RespondWithJSON(w, http.StatusCreated, AttachImageResponse{
		ImageValidationResponse: toImageValidationResponse(verdict),
		URL:                     url,
	})
}

// decodeSubmission validates the body against the contract schema, then
// decodes it. On failure it writes the error response itself.
func (h *PropertyHandler) decodeSubmission(w http.ResponseWriter, r *http.Request) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return nil, err
	}

	if err := contracts.ValidatePropertySubmission(body); err != nil {
		logger.Warn("Submission rejected by contract schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, err
	}

	var req SubmitPropertyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return nil, err
	}

	return req.toDomain(), nil
}
