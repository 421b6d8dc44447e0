package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/core/port/usecases_port"
)

// FavoritesHandler serves the saved-listings endpoints.
type FavoritesHandler struct {
	addUC    usecases_port.AddToFavoritesUseCasePort
	removeUC usecases_port.RemoveFromFavoritesUseCasePort
	getUC    usecases_port.GetUserFavoritesUseCasePort
	getIdsUC usecases_port.GetUserFavoriteIdsUseCasePort
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	getUC usecases_port.GetUserFavoritesUseCasePort,
	getIdsUC usecases_port.GetUserFavoriteIdsUseCasePort,
) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:    addUC,
		removeUC: removeUC,
		getUC:    getUC,
		getIdsUC: getIdsUC,
	}
}

// GetUserFavoriteIds handles GET /api/v1/favorites/ids.
func (h *FavoritesHandler) GetUserFavoriteIds(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavoriteIds"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	ids, err := h.getIdsUC.Execute(r.Context(), userID)
	if err != nil {
		logger.Error("Get user favorite ids use case failed", err, port.Fields{"user_id": userID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	RespondWithJSON(w, http.StatusOK, ids)
}

// GetUserFavorites handles GET /api/v1/favorites.
func (h *FavoritesHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	limit := GetLimitOrDefault(r)
	offset := GetOffsetOrDefault(r)

	handlerLogger := logger.WithFields(port.Fields{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})

	result, err := h.getUC.Execute(r.Context(), userID, limit, offset)
	if err != nil {
		handlerLogger.Error("Get user favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	response := PaginatedFavoritesResponse{
		Data:  make([]PropertyResponse, len(result.Objects)),
		Total: result.TotalCount,
	}
	for i := range result.Objects {
		response.Data[i] = toPropertyResponse(&result.Objects[i])
	}

	handlerLogger.Info("Successfully retrieved user favorites", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Objects),
	})
	RespondWithJSON(w, http.StatusOK, response)
}

// AddToFavorites handles POST /api/v1/favorites.
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode request body for add favorite", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		logger.Warn("Invalid propertyId format in request", port.Fields{"provided_id": req.PropertyID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid propertyId format")
		return
	}

	if err := h.addUC.Execute(r.Context(), userID, propertyID); err != nil {
		logger.Error("Add to favorites use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to add to favorites")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveFromFavorites handles DELETE /api/v1/favorites/{propertyID}.
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

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

	if err := h.removeUC.Execute(r.Context(), userID, propertyID); err != nil {
		logger.Error("Remove from favorites use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to remove from favorites")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
