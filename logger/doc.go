// Package logger provides structured logging for chatkit using zerolog.
//
// Loggers are component scoped: the user agent, the rate-limit tracker and
// the REST workers each log through a logger tagged with their component
// name, and per-request events carry the request id and sequence number of
// the response they describe.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("useragent")
//	log.Debug("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
