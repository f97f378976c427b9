package service

import (
	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/server/docstore"
)

// Services bundles the dev document server's business layer.
type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
}

// NewServices wires the services over the given repositories.
func NewServices(repositories *docstore.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(repositories.Users, cfg.Auth, logger),
		DocumentService: NewDocumentService(repositories.Documents, logger),
	}
}
