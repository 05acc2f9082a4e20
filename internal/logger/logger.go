package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eternalApril/lunakv/internal/config"
)

// New builds the store logger from cfg.
// Level is one of debug, info, warn, error; anything else means info.
// Format "console" gives a development logger, everything else is json
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	console := cfg.Format == "console"

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig = enc
	zcfg.Sampling = nil
	if console {
		zcfg.Development = true
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zcfg.Build(zap.Fields(zap.String("component", "lunakv")))
}
