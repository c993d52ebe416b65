// Package logger provides structured logging for mapkit using zerolog.
//
// Loggers are scoped per component and take structured fields as maps:
//
//	log := logger.GetGlobalLogger().WithComponent("maps.mapbox")
//	log.Debug("line added", map[string]interface{}{logger.FieldLayerID: id})
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
