package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/deepeshsaheb-tal/bookcritic/config"
)

var Logger *zap.Logger

func init() {
	if config.Opts == nil {
		config.GetDefaultOptions()
	}
	Logger = NewLogger()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Fallback prints through fmt for messages zap cannot render,
// such as multi-line SQL with escape characters.
// https://github.com/uber-go/zap/issues/963
func Fallback(level string, msg string) {
	fmt.Printf("[%s] %s\n", level, msg)
}

// NewLogger builds a logger from the current config options.
func NewLogger() *zap.Logger {
	opts := config.Opts

	rotationLog := &lumberjack.Logger{
		Filename:   filepath.Join(os.TempDir(), opts.LogFile),
		MaxSize:    opts.LogFileMaxSize, // megabytes
		MaxBackups: opts.LogFileMaxBackups,
		MaxAge:     opts.LogFileMaxAge, // days
		Compress:   opts.LogCompress,
	}

	return newZap(rotationLog, parseLevel(opts.LogLevel))
}

func parseLevel(level string) zapcore.Level {
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		return parsed
	}
	return zapcore.InfoLevel
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(config)
	consoleEncoder := zapcore.NewConsoleEncoder(config)

	consoleWriter := zapcore.AddSync(os.Stdout)
	rotationWrite := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWrite, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
