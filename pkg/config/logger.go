package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "flexlayout"

type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none debug normal"`
}

// NewLogger builds the logger for the configured level writing to w.
func (conf *LoggingConfig) NewLogger(w io.Writer) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	var core zapcore.Core
	switch conf.Level {
	case "normal":
		core = zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.InfoLevel)
	case "debug":
		core = zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)
	default:
		core = zapcore.NewNopCore()
	}
	return zap.New(core).Named(appName)
}
