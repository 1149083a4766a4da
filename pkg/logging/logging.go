// Package logging builds the service logger: structured messages flow
// through ectologger and land in a zap core.
package logging

import (
	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the log backend
type Config struct {
	AppName string
	Level   string
	Pretty  bool
}

// NewLogger builds an ectologger backed by zap. The returned zap logger is
// exposed for flushing on shutdown.
func NewLogger(cfg Config) (ectologger.Logger, *zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Pretty {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]any{"app": cfg.AppName}

	zapLogger, err := zapCfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, nil, err
	}

	logger := ectologger.NewEctoLogger(func(m ectologger.EctoLogMessage) {
		zapLogger.Info("log", zap.Any("entry", m))
	})

	return logger, zapLogger, nil
}
