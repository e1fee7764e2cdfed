// Package logger builds the application logger. The TUI owns the terminal,
// so logs are written to a rotated file when one is configured and dropped
// otherwise; nothing may print to stdout.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap logger at the given level writing to filePath.
// An empty filePath yields a no-op logger.
func New(level, filePath string) (*zap.Logger, error) {
	if filePath == "" {
		return zap.NewNop(), nil
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,
		MaxAge:     14, // Days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		parsed,
	)

	return zap.New(core, zap.AddCaller()), nil
}
