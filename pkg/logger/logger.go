// Package logger wraps a process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init builds the global logger. mode "release" selects the production
// encoder, anything else gets the development one.
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L returns the global logger.
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Sync flushes buffered entries; call on shutdown.
func Sync() { _ = log.Sync() }
