package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Prepare returns the program logger writing to w. Standard output carries
// rendered documents, so every level goes to the same sink.
func (conf *LogConfig) Prepare(w zapcore.WriteSyncer) *zap.Logger {
	var enabler zapcore.LevelEnabler
	switch conf.Level {
	case "normal":
		enabler = zapcore.InfoLevel
	case "debug":
		enabler = zapcore.DebugLevel
	default:
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(w), enabler)
	return zap.New(core).Named(AppName)
}
