// Package logging builds the client's zap logger. The TUI owns stdout,
// so logs go to a file under the state directory instead of the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens (creating directories as needed) a JSON file logger at path.
// verbose lowers the level to Debug. The returned close func flushes
// buffered entries and must be called on shutdown.
func New(path string, verbose bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(file),
		level,
	)

	logger := zap.New(core, zap.AddCaller())
	closer := func() {
		_ = logger.Sync()
		_ = file.Close()
	}
	return logger, closer, nil
}

// Nop returns a logger that discards everything. Used in tests and when
// log-file setup fails but the UI should still come up.
func Nop() *zap.Logger {
	return zap.NewNop()
}
