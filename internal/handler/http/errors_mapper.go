package http

import (
	"errors"
	"net/http"

	"github.com/focusflow/focusflow-server/internal/adapter"
	"github.com/focusflow/focusflow-server/internal/service"
	"github.com/focusflow/focusflow-server/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:               http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:    http.StatusBadRequest,
	service.ErrEntityVersionRequired:    http.StatusBadRequest,
	service.ErrInvalidOAuthState:        http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	service.ErrEntityOwnedByAnotherUser: http.StatusForbidden,
	service.ErrNoDriveAccess:            http.StatusForbidden,
	service.ErrVersionMismatch:          http.StatusConflict,
	service.ErrUnsupportedBackupFormat:  http.StatusUnprocessableEntity,
	service.ErrTokenCreationFailed:      http.StatusInternalServerError,

	store.ErrNoUserWasFound:  http.StatusNotFound,
	store.ErrEntityNotFound:  http.StatusNotFound,
	store.ErrEntityIDTaken:   http.StatusConflict,
	store.ErrVersionConflict: http.StatusConflict,
	store.ErrEntityNotSaved:  http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	adapter.ErrUpstreamBadRequest:   http.StatusBadGateway,
	adapter.ErrUpstreamUnauthorized: http.StatusBadGateway,
	adapter.ErrUpstreamNotFound:     http.StatusNotFound,
	adapter.ErrUpstreamUnavailable:  http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
