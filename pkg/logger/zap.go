package logger

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logCallerSkip = 2

var zapLogger *zap.Logger

// Options controls how New builds the zap logger
type Options struct {
	Path     string // directory for the rotated log file
	FileName string
	Level    string // DEBUG, INFO, WARN, ERROR, FATAL, PANIC
	Debug    bool
	Stderr   bool // log to stderr instead of the file
}

// New builds a zap logger from options. The result is not installed globally;
// call ReplaceLogger for that.
func New(opts Options) (*zap.Logger, error) {
	writer := fileWriter(opts.Path, opts.FileName)
	if opts.Stderr {
		stderrWriter, _, err := zap.Open("stderr")
		if err != nil {
			return nil, err
		}
		writer = stderrWriter
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder(opts.Debug, opts.Stderr), writer, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(logCallerSkip)), nil
}

func encoder(debug, stderr bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if debug && stderr {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeCaller = zapcore.FullCallerEncoder
	}

	return zapcore.NewConsoleEncoder(encoderConfig)
}

func fileWriter(dir, name string) zapcore.WriteSyncer {
	if dir == "" {
		dir = "./log"
	}
	if name == "" {
		name = "safeskill.log"
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    10, // megabytes
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	})
}

// ReplaceLogger replaces the global logger with a zap logger
func ReplaceLogger(logger *zap.Logger) {
	zapLogger = logger
	globalLogger = &zapLoggerImpl{sugar: logger.Sugar()}
}

// GetLogger returns the zap logger
func GetLogger() *zap.Logger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return zapLogger
}

// Sync flushes buffered entries of the installed zap logger
func Sync() error {
	if zapLogger == nil {
		return nil
	}
	return zapLogger.Sync()
}

type zapLoggerImpl struct {
	sugar *zap.SugaredLogger
}

func (l *zapLoggerImpl) Debug(v ...interface{})                 { l.sugar.Debug(v...) }
func (l *zapLoggerImpl) Debugf(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l *zapLoggerImpl) Info(v ...interface{})                  { l.sugar.Info(v...) }
func (l *zapLoggerImpl) Infof(format string, v ...interface{})  { l.sugar.Infof(format, v...) }
func (l *zapLoggerImpl) Warn(v ...interface{})                  { l.sugar.Warn(v...) }
func (l *zapLoggerImpl) Warnf(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l *zapLoggerImpl) Error(v ...interface{})                 { l.sugar.Error(v...) }
func (l *zapLoggerImpl) Errorf(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }
func (l *zapLoggerImpl) Fatal(v ...interface{})                 { l.sugar.Fatal(v...) }
func (l *zapLoggerImpl) Fatalf(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }
