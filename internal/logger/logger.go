package logger

import (
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string
	JSON  bool
}

type Logger struct {
	l *zap.SugaredLogger
}

func New(conf Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(conf.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", conf.Level, err)
	}

	var zapConf zap.Config

	if conf.JSON {
		zapConf = zap.NewProductionConfig()
		zapConf.EncoderConfig.TimeKey = "timestamp"
		zapConf.EncoderConfig.MessageKey = "message"
		zapConf.InitialFields = map[string]any{"service": "pricelist"}
	} else {
		zapConf = zap.NewDevelopmentConfig()
		zapConf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConf.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	zapConf.Level = zap.NewAtomicLevelAt(level)
	zapConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConf.DisableStacktrace = level > zapcore.DebugLevel

	z, err := zapConf.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &Logger{l: z.Sugar()}, nil
}

// NewNop discards everything. Meant for tests.
func NewNop() *Logger {
	return &Logger{l: zap.NewNop().Sugar()}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Errorf(format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Infof(format, v...)
}

func (l *Logger) LogDebugf(format string, v ...any) {
	l.l.Debugf(format, v...)
}

// StdLog adapts the logger for libraries that want a *log.Logger.
func (l *Logger) StdLog() *log.Logger {
	return zap.NewStdLog(l.l.Desugar())
}

func (l *Logger) Sync() error {
	return l.l.Sync() //nolint:wrapcheck
}
