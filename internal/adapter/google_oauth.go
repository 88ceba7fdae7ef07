package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/models"
	"github.com/go-resty/resty/v2"
)

// oauthScopes is everything the application asks of a Google account:
// identity for sign-in and per-file Drive access for backups.
const oauthScopes = "openid email profile https://www.googleapis.com/auth/drive.file"

// Default Google endpoints, overridable for tests.
const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleOAuthOptions overrides the provider endpoints. The zero value selects
// the real Google endpoints.
type GoogleOAuthOptions struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
	Timeout     time.Duration
}

type googleOAuthAdapter struct {
	client *resty.Client

	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	userInfoURL  string

	logger *logger.Logger
}

func NewGoogleOAuthAdapter(cfg config.Google, opts GoogleOAuthOptions, log *logger.Logger) *googleOAuthAdapter {
	if opts.AuthURL == "" {
		opts.AuthURL = defaultAuthURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = defaultTokenURL
	}
	if opts.UserInfoURL == "" {
		opts.UserInfoURL = defaultUserInfoURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.TokenURL, "/")).
		SetTimeout(opts.Timeout)

	return &googleOAuthAdapter{
		client:       client,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authURL:      opts.AuthURL,
		userInfoURL:  opts.UserInfoURL,
		logger:       log,
	}
}

// AuthCodeURL builds the consent-screen URL. access_type=offline together
// with prompt=consent makes Google return a refresh token on first consent.
func (g *googleOAuthAdapter) AuthCodeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", g.clientID)
	query.Set("redirect_uri", g.redirectURI)
	query.Set("response_type", "code")
	query.Set("scope", oauthScopes)
	query.Set("access_type", "offline")
	query.Set("prompt", "consent")
	query.Set("state", state)

	return g.authURL + "?" + query.Encode()
}

// tokenEndpointResponse is the token endpoint's JSON body, shared by the
// authorization-code and refresh grants.
type tokenEndpointResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

func (g *googleOAuthAdapter) ExchangeCode(ctx context.Context, code string) (models.GoogleTokens, error) {
	return g.requestTokens(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     g.clientID,
		"client_secret": g.clientSecret,
		"redirect_uri":  g.redirectURI,
	})
}

func (g *googleOAuthAdapter) RefreshAccessToken(ctx context.Context, refreshToken string) (models.GoogleTokens, error) {
	return g.requestTokens(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     g.clientID,
		"client_secret": g.clientSecret,
	})
}

func (g *googleOAuthAdapter) requestTokens(ctx context.Context, form map[string]string) (models.GoogleTokens, error) {
	var body tokenEndpointResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&body).
		Post("")
	if err != nil {
		return models.GoogleTokens{}, fmt.Errorf("token endpoint request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GoogleTokens{}, err
	}

	tokens := models.GoogleTokens{AccessToken: body.AccessToken}
	if body.RefreshToken != "" {
		tokens.RefreshToken = &body.RefreshToken
	}
	if body.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
		tokens.ExpiresAt = &expiresAt
	}

	return tokens, nil
}

func (g *googleOAuthAdapter) FetchUserInfo(ctx context.Context, accessToken string) (models.GoogleUserInfo, error) {
	var info models.GoogleUserInfo

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(g.userInfoURL)
	if err != nil {
		return models.GoogleUserInfo{}, fmt.Errorf("userinfo request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GoogleUserInfo{}, err
	}

	return info, nil
}
