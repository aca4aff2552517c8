package config

import "github.com/MonkyMars/gecho"

var logger *gecho.Logger

// InitializeLogger builds the process-wide logger at the level implied by
// APP_ENV: debug everywhere except production.
func InitializeLogger() *gecho.Logger {
	logger = gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(true),
		gecho.WithLogLevel(gecho.ParseLogLevel(GetLogLevel())),
	))
	return logger
}

func GetLogger() *gecho.Logger {
	if logger == nil {
		return InitializeLogger()
	}
	return logger
}
