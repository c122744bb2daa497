// Package logger wraps zap behind a process-wide logger initialized once at
// startup.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps *zap.Logger
type Logger struct {
	*zap.Logger
}

// Config holds logger settings
type Config struct {
	ServiceName string
	Development bool
}

var (
	global *Logger
	mu     sync.RWMutex
)

// Init builds the global logger. Development mode uses the console encoder
// with debug level; production uses JSON at info level.
func Init(cfg *Config) error {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	log, err := zapCfg.Build(zap.Fields(zap.String("service", cfg.ServiceName)))
	if err != nil {
		return err
	}

	mu.Lock()
	global = &Logger{log}
	mu.Unlock()
	return nil
}

// Get returns the global logger; a no-op logger before Init.
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return &Logger{zap.NewNop()}
	}
	return global
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		_ = global.Logger.Sync()
	}
}
