package service

import (
	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/store"
)

type Services struct {
	SyncService SyncService
}

func NewServices(registry store.Registry, cfg config.Registry, logger *logger.Logger) *Services {
	return &Services{
		SyncService: NewSyncService(registry, cfg, logger),
	}
}
