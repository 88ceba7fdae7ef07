package handler

import (
	"errors"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/handler/http"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/service"
)

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// provided in the server configuration. This is treated as a fatal
// misconfiguration and causes the application to fail at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, logger),
	}, nil
}
