package http

import (
	"net/http"

	"github.com/focusflow/focusflow-server/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "ok",
		"version": h.services.AppInfoService.GetAppVersion(r.Context()),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
