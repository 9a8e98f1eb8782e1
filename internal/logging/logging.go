package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Debug   *zap.Logger
	Scanner *zap.Logger
)

func init() {
	// Only enable logging if DIRTREE_DEBUG environment variable is set
	if os.Getenv("DIRTREE_DEBUG") == "" {
		Debug = zap.NewNop()
		Scanner = zap.NewNop()
		return
	}

	Debug = New(os.Stderr, zapcore.DebugLevel)
	Scanner = Debug.Named("scanner")
}

// New builds a console logger writing to w at the given level.
// stdout carries the tree, so debug output never goes there.
func New(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(w), level)
	return zap.New(core).Named("dirtree")
}
