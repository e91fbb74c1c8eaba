package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the application logger. Production gets the JSON encoder;
// anything else gets the human-readable development config.
func New() (*zap.Logger, error) {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.FunctionKey = "func"
	return cfg.Build(zap.AddCaller())
}
