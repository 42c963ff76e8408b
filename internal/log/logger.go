package log // import "github.com/Xunop/book-faker/internal/log"

import (
	"os"
	"strings"

	"github.com/Xunop/book-faker/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes to the console only until Init is called with a config.
var Logger = newConsole()

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

// Init replaces Logger with one built from config.Opts.
func Init() {
	Logger = NewLogger()
}

func Sync() {
	_ = Logger.Sync()
}

func NewLogger() *zap.Logger {
	if config.Opts == nil {
		config.GetDefaultOptions()
	}

	rotationLog := &lumberjack.Logger{
		Filename:   config.Opts.LogFile,
		MaxSize:    config.Opts.LogFileMaxSize, // megabytes
		MaxBackups: config.Opts.LogFileMaxBackups,
		MaxAge:     config.Opts.LogFileMaxAge, // days
		Compress:   config.Opts.LogCompress,
	}

	return newZap(rotationLog, parseLevel(config.Opts.LogLevel))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return encodeConfig
}

func newConsole() *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig())
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig())

	consoleWriter := zapcore.AddSync(os.Stderr)
	rotationWrite := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWrite, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
