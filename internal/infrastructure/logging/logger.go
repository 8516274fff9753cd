package logging

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/config"
)

// NewLogger builds the process logger from the logging config
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !cfg.IncludeCaller

	switch cfg.Output {
	case "file":
		zc.OutputPaths = []string{cfg.FilePath}
	case "stdout":
		zc.OutputPaths = []string{"stdout"}
	default:
		zc.OutputPaths = []string{"stderr"}
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if cfg.ServiceName != "" {
		logger = logger.With(zap.String("service_name", cfg.ServiceName))
	}
	return logger, nil
}

// ZapUnitLogger writes unit operation logs through zap
type ZapUnitLogger struct {
	logger *zap.Logger
}

// NewZapUnitLogger adapts a zap logger to the application logging port
func NewZapUnitLogger(logger *zap.Logger) *ZapUnitLogger {
	return &ZapUnitLogger{logger: logger}
}

var _ common.UnitLogger = (*ZapUnitLogger)(nil)

// Log emits message at level with one field per metadata key
func (l *ZapUnitLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, metadata[k]))
	}

	switch level {
	case common.LevelDebug:
		l.logger.Debug(message, fields...)
	case common.LevelWarn:
		l.logger.Warn(message, fields...)
	case common.LevelError:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}
