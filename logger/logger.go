package logger

import (
	"go.uber.org/zap"
)

// New returns the development logger unless production is set.
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
