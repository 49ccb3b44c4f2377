package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the application logger. Production encoding is selected
// through the ENV variable, everything else gets the development
// console encoder.
func New() (*zap.Logger, error) {
	if os.Getenv("ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
