package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldProvider  = "provider"
	FieldNode      = "node"
	FieldEntity    = "entity"
	FieldEntityID  = "entity_id"
	FieldLayerID   = "layer_id"
	FieldOpacity   = "opacity"
	FieldPoints    = "points"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("map created", logger.Fields("provider", "mapbox", "zoom", 12))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}
