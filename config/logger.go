package config

import (
	"go.uber.org/zap"
)

// InitLogger builds the global zap logger. LOG_MODE=production switches to
// JSON output; anything else gets the development console encoder.
func InitLogger() {
	var cfg zap.Config
	if getEnv("LOG_MODE", "development") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
