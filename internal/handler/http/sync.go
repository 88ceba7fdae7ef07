package http

import (
	"encoding/json"
	"net/http"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/utils"
	"github.com/focusflow/focusflow-server/models"
)

// sync reconciles one client-submitted batch. Conflicts come back inside the
// response body with HTTP 200: a conflict is a protocol outcome, not an
// error.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.SyncUserData(ctx, userID, syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("error processing sync batch")
		http.Error(w, "error processing sync batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncStatus").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	statuses, err := h.services.SyncService.GetSyncStatus(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncStatus").Msg("error getting sync status")
		http.Error(w, "error getting sync status", statusFromError(err))
		return
	}

	response := map[string]any{
		"status": statuses,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
