package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	toClose []io.Closer
)

func registerOnClose(closer io.Closer) {
	toClose = append(toClose, closer)
}

func closeAll() {
	for _, c := range toClose {
		if err := c.Close(); err != nil {
			log.Printf("error closing registered Closer: %v", err)
		}
	}
}

func fromEnv(envParam string, defaultValue string) string {
	v := os.Getenv(envParam)
	if v != "" {
		return v
	}

	if defaultValue == "" {
		log.Fatalf("envParam (%v) needs a value from ENV or a default. Both were empty, will stop here.", envParam)
	}

	return defaultValue
}

func fromEnvDuration(envParam string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(envParam)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("envParam (%v): could not parse value (%v) as a duration: %v", envParam, v, err)
	}

	return d
}

func newProductionLogger() (*zap.SugaredLogger, error) {
	zapConfig := zapdriver.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := zapConfig.Build(zapdriver.WrapCore())
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func newDevelopmentLogger() (*zap.SugaredLogger, error) {
	encConfig := zap.NewDevelopmentEncoderConfig()
	encConfig.LineEnding = "\n"
	encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encConfig.EncodeTime = devLogTimeEncoder
	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func devLogTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("\x1b[90m" + t.Format(time.RFC3339) + "\x1b[0m")
}
