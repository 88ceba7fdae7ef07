package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/internal/utils"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// authService is the concrete implementation of AuthService. Sign-in is
// delegated entirely to Google: the service exchanges the authorization code,
// upserts the account by its Google subject id, and issues a session JWT.
type authService struct {
	userRepository store.UserRepository
	google         GoogleAuthAdapter

	// hasher signs the OAuth state parameter so the callback can verify that
	// the flow originated here without keeping server-side session state.
	hasher *utils.Hasher

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and Google adapter, with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, google GoogleAuthAdapter, cfg config.App, log *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		google:         google,
		hasher:         utils.NewHasher(cfg.StateHashKey),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         log,
	}
}

// BuildAuthURL implements AuthService. The state parameter is a random nonce
// plus its HMAC signature, verifiable on callback without stored state.
func (a *authService) BuildAuthURL(ctx context.Context) (string, error) {
	nonce := uuid.NewString()
	state := nonce + "." + a.hasher.Sign(nonce)

	return a.google.AuthCodeURL(state), nil
}

// HandleGoogleCallback implements AuthService.
//
// It verifies the signed state, exchanges the authorization code for Google
// tokens, fetches the user's profile, upserts the account by Google subject
// id, and issues a session JWT.
//
// Returns ErrInvalidOAuthState when the state fails verification; upstream
// exchange or profile failures are returned wrapped for the HTTP layer to map.
func (a *authService) HandleGoogleCallback(ctx context.Context, code, state string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.verifyState(state); err != nil {
		log.Warn().
			Str("func", "authService.HandleGoogleCallback").
			Msg("oauth state verification failed")
		return models.User{}, models.Token{}, err
	}

	tokens, err := a.google.ExchangeCode(ctx, code)
	if err != nil {
		log.Err(err).
			Str("func", "authService.HandleGoogleCallback").
			Msg("authorization code exchange failed")
		return models.User{}, models.Token{}, fmt.Errorf("exchanging authorization code: %w", err)
	}

	info, err := a.google.FetchUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		log.Err(err).
			Str("func", "authService.HandleGoogleCallback").
			Msg("userinfo fetch failed")
		return models.User{}, models.Token{}, fmt.Errorf("fetching user info: %w", err)
	}

	user, err := a.userRepository.UpsertByGoogleID(ctx, models.User{
		GoogleID:             info.Sub,
		Email:                info.Email,
		Name:                 info.Name,
		ProfilePicture:       info.Picture,
		GoogleAccessToken:    &tokens.AccessToken,
		GoogleRefreshToken:   tokens.RefreshToken,
		GoogleTokenExpiresAt: tokens.ExpiresAt,
	})
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("upserting user: %w", err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) verifyState(state string) error {
	nonce, signature, found := strings.Cut(state, ".")
	if !found || nonce == "" || !a.hasher.Verify(nonce, signature) {
		return ErrInvalidOAuthState
	}
	return nil
}
