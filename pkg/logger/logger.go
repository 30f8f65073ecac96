// Package logger provides a zap-based application logger.
package logger

import "go.uber.org/zap"

// New builds a production logger for the named service. It panics when the
// logger cannot be constructed, which only happens on misconfiguration.
func New(service string) *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log.With(zap.String("service", service))
}
