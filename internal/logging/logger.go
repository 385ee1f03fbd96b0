package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the sugared logger used by the commands. Each process gets a
// session id so interleaved runs can be told apart.
type Logger struct {
	*zap.SugaredLogger
	Session string
}

// NewLogger writes human-readable output to stderr: info and up by default,
// debug when verbose. Levels are coloured only on a terminal.
func NewLogger(verbose bool) *Logger {
	return newLogger(verbose, isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(verbose, color bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	if !verbose {
		encCfg.CallerKey = ""
	}
	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	session := uuid.NewString()
	opts := []zap.Option{}
	if verbose {
		opts = append(opts, zap.AddCaller())
	}
	base := zap.New(core, opts...)
	if verbose {
		base = base.With(zap.String("session", session))
	}
	return &Logger{SugaredLogger: base.Sugar(), Session: session}
}

// Nop discards everything; tests and library callers without a logger use it.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Zap exposes the structured logger for packages that take a *zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Desugar()
}
