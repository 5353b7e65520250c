package util

import "go.uber.org/zap"

// NewLogger returns a sugared zap logger. Call without arguments in tests,
// with the ENV value in binaries.
func NewLogger(env ...string) *zap.SugaredLogger {
	var logger *zap.SugaredLogger

	if len(env) > 0 && env[0] == "production" {
		logger = zap.Must(zap.NewProduction()).Sugar()
	} else {
		logger = zap.Must(zap.NewDevelopment()).Sugar()
	}

	defer logger.Sync()

	return logger
}
