package logger

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/r2dtools/sitediscovery/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSize    = 10
	logFileMaxBackups = 3
	logFileMaxAge     = 30
)

type Logger interface {
	Error(message string, args ...any)
	Warning(message string, args ...any)
	Info(message string, args ...any)
	Debug(message string, args ...any)
}

type logger struct {
	zapLogger *zap.SugaredLogger
}

func (l *logger) Error(message string, args ...interface{}) {
	l.zapLogger.Errorf(message, args...)
}

func (l *logger) Warning(message string, args ...interface{}) {
	l.zapLogger.Warnf(message, args...)
}

func (l *logger) Info(message string, args ...interface{}) {
	l.zapLogger.Infof(message, args...)
}

func (l *logger) Debug(message string, args ...interface{}) {
	l.zapLogger.Debugf(message, args...)
}

// NewLogger writes JSON records to the rotated log file and, in debug or dev mode,
// mirrors them to stderr. stdout is never used: it carries the discovery payload.
func NewLogger(config *config.Config) (Logger, error) {
	logDir := path.Dir(config.LogFile)

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		err := os.MkdirAll(logDir, 0755)

		if err != nil {
			return nil, err
		}
	}

	level := zap.NewAtomicLevel()

	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    logFileMaxSize,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAge,
	})
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), fileWriter, level),
	}

	if config.Debug || config.IsDevMode {
		consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig),
			zapcore.Lock(os.Stderr),
			zap.DebugLevel,
		))
	}

	zLogger := zap.New(zapcore.NewTee(cores...)).With(zap.String("run_id", uuid.NewString()))

	return &logger{zapLogger: zLogger.Sugar()}, nil
}

// NewZapLogger wraps an existing zap logger, mostly for tests observing records.
func NewZapLogger(zLogger *zap.Logger) Logger {
	return &logger{zapLogger: zLogger.Sugar()}
}

type NilLogger struct{}

func (l *NilLogger) Error(message string, args ...any) {
}

func (l *NilLogger) Warning(message string, args ...any) {
}

func (l *NilLogger) Info(message string, args ...any) {
}

func (l *NilLogger) Debug(message string, args ...any) {
}

type TestLogger struct {
	T *testing.T
}

func (l *TestLogger) Error(message string, args ...any) {
	l.T.Logf(message, args...)
}

func (l *TestLogger) Warning(message string, args ...any) {
	l.T.Logf(message, args...)
}

func (l *TestLogger) Info(message string, args ...any) {
	l.T.Logf(message, args...)
}

func (l *TestLogger) Debug(message string, args ...any) {
	l.T.Logf(message, args...)
}
