package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/service"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/internal/utils"
	"github.com/focusflow/focusflow-server/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) listEntities(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, found := utils.GetUserIDFromContext(ctx)
		if !found {
			log.Error().Str("func", "*Handler.listEntities").Msg("no user ID was given")
			http.Error(w, "no user ID was given", http.StatusBadRequest)
			return
		}

		records, err := h.services.EntityService.List(ctx, userID, kind, listFilterFromQuery(r))
		if err != nil {
			log.Err(err).Str("func", "*Handler.listEntities").Msg("error listing entities")
			http.Error(w, "error listing entities", statusFromError(err))
			return
		}

		response := map[string]any{
			"items":  records,
			"length": len(records),
		}

		utils.WriteJSON(w, response, http.StatusOK)
	}
}

func (h *Handler) getEntity(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, found := utils.GetUserIDFromContext(ctx)
		if !found {
			log.Error().Str("func", "*Handler.getEntity").Msg("no user ID was given")
			http.Error(w, "no user ID was given", http.StatusBadRequest)
			return
		}

		entityID, err := entityIDFromURL(r)
		if err != nil {
			http.Error(w, "invalid entity id", http.StatusBadRequest)
			return
		}

		record, err := h.services.EntityService.Get(ctx, userID, entityID, kind)
		if err != nil {
			log.Err(err).Str("func", "*Handler.getEntity").Msg("error getting entity")
			http.Error(w, "error getting entity", statusFromError(err))
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) createEntity(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, found := utils.GetUserIDFromContext(ctx)
		if !found {
			log.Error().Str("func", "*Handler.createEntity").Msg("no user ID was given")
			http.Error(w, "no user ID was given", http.StatusBadRequest)
			return
		}

		var payload models.EntityPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Err(err).Str("func", "*Handler.createEntity").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		record, err := h.services.EntityService.Create(ctx, userID, kind, payload)
		if err != nil {
			log.Err(err).Str("func", "*Handler.createEntity").Msg("error creating entity")
			http.Error(w, "error creating entity", statusFromError(err))
			return
		}

		utils.WriteJSON(w, record, http.StatusCreated)
	}
}

// updateEntity applies a partial edit. The body carries the changed fields
// plus the "version" the client last read; a stale version yields HTTP 409.
func (h *Handler) updateEntity(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, found := utils.GetUserIDFromContext(ctx)
		if !found {
			log.Error().Str("func", "*Handler.updateEntity").Msg("no user ID was given")
			http.Error(w, "no user ID was given", http.StatusBadRequest)
			return
		}

		entityID, err := entityIDFromURL(r)
		if err != nil {
			http.Error(w, "invalid entity id", http.StatusBadRequest)
			return
		}

		var payload models.EntityPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Err(err).Str("func", "*Handler.updateEntity").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		expectedVersion, err := expectedVersionFromPayload(payload)
		if err != nil {
			log.Err(err).Str("func", "*Handler.updateEntity").Msg("missing expected version")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		delete(payload, "version")

		record, err := h.services.EntityService.Update(ctx, userID, entityID, kind, payload, expectedVersion)
		if err != nil {
			log.Err(err).Str("func", "*Handler.updateEntity").Msg("error updating entity")
			http.Error(w, "error updating entity", statusFromError(err))
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) deleteEntity(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, found := utils.GetUserIDFromContext(ctx)
		if !found {
			log.Error().Str("func", "*Handler.deleteEntity").Msg("no user ID was given")
			http.Error(w, "no user ID was given", http.StatusBadRequest)
			return
		}

		entityID, err := entityIDFromURL(r)
		if err != nil {
			http.Error(w, "invalid entity id", http.StatusBadRequest)
			return
		}

		if err := h.services.EntityService.Delete(ctx, userID, entityID, kind); err != nil {
			log.Err(err).Str("func", "*Handler.deleteEntity").Msg("error deleting entity")
			http.Error(w, "error deleting entity", statusFromError(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func entityIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func listFilterFromQuery(r *http.Request) store.ListFilter {
	query := r.URL.Query()

	filter := store.ListFilter{Search: query.Get("search")}
	if limit, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil {
		filter.Offset = offset
	}

	return filter
}

// expectedVersionFromPayload reads the mandatory "version" field of an
// update body. JSON numbers decode as float64.
func expectedVersionFromPayload(payload models.EntityPayload) (int64, error) {
	raw, ok := payload["version"]
	if !ok {
		return 0, service.ErrEntityVersionRequired
	}

	number, ok := raw.(float64)
	if !ok {
		return 0, service.ErrEntityVersionRequired
	}

	return int64(number), nil
}
