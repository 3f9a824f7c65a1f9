package logger

import (
	"log"

	"github.com/onsi/ginkgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	log *zap.Logger
}

func NewLogger(logLevel, app string) *Logger {
	cfg := zap.Config{
		Encoding:         "json",
		DisableCaller:    true,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			TimeKey:     "timestamp",
			EncodeTime:  zapcore.ISO8601TimeEncoder,
			NameKey:     "app",
		},
	}

	var logOption zapcore.Level
	switch logLevel {
	case "debug":
		logOption = zap.DebugLevel
		cfg.EncoderConfig.CallerKey = "caller"
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	case "info":
		logOption = zap.InfoLevel
	case "warn":
		logOption = zap.WarnLevel
	case "error":
		logOption = zap.ErrorLevel
	case "panic":
		logOption = zap.PanicLevel
	case "fatal":
		logOption = zap.FatalLevel
	default:
		logOption = zap.InfoLevel
	}

	cfg.Level = zap.NewAtomicLevelAt(logOption)

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	logger.Sync()

	namedLogger := logger.Named(app)
	return &Logger{
		log: namedLogger,
	}
}

// New wraps an existing zap logger, e.g. one built on a zaptest observer.
func New(log *zap.Logger) *Logger {
	return &Logger{
		log: log,
	}
}

func NewNop() *Logger {
	return &Logger{
		log: zap.NewNop(),
	}
}

func String(key, value string) zap.Field {
	return zap.String(key, value)
}

func (l *Logger) StdLog(name string) *log.Logger {
	return zap.NewStdLog(l.log.Named(name))
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.log.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.log.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, err error, extraFields ...zap.Field) {
	fields := []zap.Field{zap.Error(err)}
	fields = append(fields, extraFields...)
	l.log.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, err error) {
	l.log.Fatal(msg, zap.Error(err))
}

func (l *Logger) Panic(msg string, fields ...zap.Field) {
	l.log.Panic(msg, fields...)
}

func NewTestLogger() *Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		TimeKey:      "timestamp",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	})
	logger := zap.New(zapcore.NewCore(
		encoder,
		zapcore.AddSync(ginkgo.GinkgoWriter),
		zapcore.DebugLevel,
	))
	logger.Sync()

	return &Logger{
		log: logger,
	}
}
