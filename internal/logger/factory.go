// Package logger builds the zap loggers used across the toolkit.
package logger

import (
	"fmt"
	"io"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format enumerates supported log encodings.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatLogfmt  Format = "logfmt"
)

// Formats lists every supported format, in flag help order.
var Formats = []Format{FormatConsole, FormatJSON, FormatLogfmt}

// Options configures a logger.
type Options struct {
	Verbose bool
	Format  Format
	Output  zapcore.WriteSyncer
}

// New returns a logger writing to opts.Output. Verbose selects debug level,
// otherwise only warnings and errors are emitted.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	encoder, err := newEncoder(opts.Format)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(zapcore.AddSync(io.Discard))
	}
	return zap.New(zapcore.NewCore(encoder, out, level)), nil
}

func newEncoder(format Format) (zapcore.Encoder, error) {
	cfg := encoderConfig()
	switch format {
	case FormatConsole, "":
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(cfg), nil
	case FormatLogfmt:
		return zaplogfmt.NewEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}
