package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the process logger from the app section of the config.
// Output always goes to stdout; a rotating file named after the app is added
// when LogPath is set.
func InitLogger(app AppConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoderConfig := zap.NewProductionEncoderConfig()
	newEncoder := zapcore.NewJSONEncoder
	if app.Debug {
		level.SetLevel(zapcore.DebugLevel)
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		newEncoder = zapcore.NewConsoleEncoder
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(encoderConfig), zapcore.Lock(os.Stdout), level),
	}

	if app.LogPath != "" {
		if err := os.MkdirAll(app.LogPath, 0o755); err != nil {
			return nil, err
		}
		name := app.Name
		if name == "" {
			name = "app"
		}
		rotating := &lumberjack.Logger{
			Filename:   filepath.Join(app.LogPath, name+".log"),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		}
		// files stay JSON even in debug mode
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotating), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if app.Name != "" {
		logger = logger.With(zap.String("app", app.Name))
	}
	return logger, nil
}
