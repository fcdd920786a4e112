package storage

import (
	"fmt"

	"github.com/rackleet/authserver/internal/apiserver/database"
	"github.com/rackleet/authserver/internal/common/config"

	"go.uber.org/zap"
)

// NewStore creates a client/user store based on configuration.
func NewStore(logger *zap.Logger, cfg *config.StorageConfig, dbCfg *config.DatabaseConfig) (Store, error) {
	logger.Info("initializing client store", zap.String("type", cfg.Type))
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "database":
		db, err := database.NewDatabase(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
		return NewDatabaseStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
