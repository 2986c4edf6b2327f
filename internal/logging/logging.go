package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level    string
	Encoding string
	File     string
	// Quiet drops output that would go to stderr. The interactive viewer sets
	// it so log lines never land on the screen it draws.
	Quiet bool
}

// New builds the root logger. The returned close function flushes and closes
// the log file, if any.
func New(c Config) (*zap.Logger, func() error, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	var sink zapcore.WriteSyncer
	closer := func() error { return nil }
	switch {
	case c.File != "":
		dir := filepath.Dir(c.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, errors.Wrap(err, "create log directory")
			}
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		sink = zapcore.AddSync(f)
		closer = f.Close
	case c.Quiet:
		return zap.NewNop(), closer, nil
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	encoder, err := newEncoder(c.Encoding)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	logger := zap.New(zapcore.NewCore(encoder, sink, level))
	return logger, func() error {
		_ = logger.Sync()
		return closer()
	}, nil
}

func newEncoder(encoding string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(encoding) {
	case "", "console":
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case "json":
		return zapcore.NewJSONEncoder(cfg), nil
	default:
		return nil, errors.Errorf("unknown log encoding %s", encoding)
	}
}

func parseLevel(level string) (zap.AtomicLevel, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zap.NewAtomicLevelAt(zap.DebugLevel), nil
	case "", "INFO":
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	case "WARN":
		return zap.NewAtomicLevelAt(zap.WarnLevel), nil
	case "ERROR":
		return zap.NewAtomicLevelAt(zap.ErrorLevel), nil
	default:
		return zap.AtomicLevel{}, errors.Errorf("invalid log level %q", level)
	}
}
