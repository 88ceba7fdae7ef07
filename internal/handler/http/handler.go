package http

import (
	"strings"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/service"
)

type Handler struct {
	services *service.Services

	// frontendURL is where the OAuth callback sends the browser once a
	// session token has been issued.
	frontendURL string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		logger:      logger,
	}
}
