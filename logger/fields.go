package logger

// Standard field keys used by the registry.
const (
	FieldComponent  = "component"
	FieldRegistryID = "registry_id"
	FieldCategory   = "category"
	FieldProvider   = "provider"
	FieldType       = "type"
	FieldEvent      = "event"
	FieldStrategy   = "strategy"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCode       = "code"
	FieldDuration   = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("selected", logger.Fields("category", "Cache", "provider", "memory"))
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

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
