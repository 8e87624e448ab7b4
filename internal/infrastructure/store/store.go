package store

import (
	"context"
	"fmt"

	"smart-pantry-chef/internal/core/auth"
	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Open connects the user store selected by cfg.Driver
func Open(ctx context.Context, cfg config.DatabaseConfig) (auth.UserStore, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	switch cfg.Driver {
	case "mongo":
		s, err := NewMongoStore(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		common.LogInfo("MongoDB connected", zap.String("database", cfg.MongoDatabase))
		return s, nil
	case "postgres", "sqlite":
		s, err := NewSQLStore(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		common.LogInfo("SQL database connected", zap.String("driver", cfg.Driver))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
