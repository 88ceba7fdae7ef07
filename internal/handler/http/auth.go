package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/service"
)

// googleLogin starts the sign-in flow by redirecting the browser to the
// provider's consent screen.
func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authURL, err := h.services.AuthService.BuildAuthURL(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.googleLogin").Msg("building consent URL failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// googleCallback finishes the sign-in flow: the provider redirects here with
// a code and the state we issued, and the browser leaves with a session token
// appended to the frontend callback URL.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	if providerError := query.Get("error"); providerError != "" {
		log.Warn().
			Str("func", "*Handler.googleCallback").
			Str("error", providerError).
			Msg("sign-in denied at the consent screen")
		h.redirectToFrontend(w, r, url.Values{"error": {providerError}})
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	_, token, err := h.services.AuthService.HandleGoogleCallback(ctx, code, query.Get("state"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOAuthState) {
			log.Err(err).Str("func", "*Handler.googleCallback").Msg("state verification failed")
			http.Error(w, "invalid oauth state", http.StatusBadRequest)
			return
		}
		log.Err(err).Str("func", "*Handler.googleCallback").Msg("sign-in failed")
		http.Error(w, "sign-in failed", statusFromError(err))
		return
	}

	h.redirectToFrontend(w, r, url.Values{"token": {token.SignedString}})
}

func (h *Handler) redirectToFrontend(w http.ResponseWriter, r *http.Request, params url.Values) {
	http.Redirect(w, r, h.frontendURL+"/auth/callback?"+params.Encode(), http.StatusTemporaryRedirect)
}
