package transport

import (
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the zap.Logger every Server logs through. With no
// accessLogPath it logs human-readable output to stderr; with one set, it
// logs JSON through a lumberjack-backed rotating sink instead.
func newLogger(accessLogPath string) (*zap.Logger, error) {
	if accessLogPath == "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		return cfg.Build()
	}

	sink := &lumberjack.Logger{
		Filename:   accessLogPath,
		MaxSize:    64, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(sink), zap.InfoLevel)
	return zap.New(core), nil
}
