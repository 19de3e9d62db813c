package util

import "go.uber.org/zap"

// NewLogger returns a sugared logger tuned for the environment.
// Callers that care about flushing on shutdown should defer Sync
// themselves.
func NewLogger(env string) *zap.SugaredLogger {
	if env == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}

	return zap.Must(zap.NewDevelopment()).Sugar()
}
