package handler

import (
	"github.com/mkravets/sayright/internal/handler/http"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/service"
)

// Handlers bundles the transport handlers of the dev document server.
// There is a single HTTP transport; the websocket watch feed hangs off the
// same router.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers constructs the transport layer over the given services.
func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}
}
