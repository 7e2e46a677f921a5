package provider

import (
	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
)

func eventFields(ev Event) map[string]interface{} {
	fields := logger.Fields(logger.FieldEvent, string(ev.Kind))
	if ev.Category != nil {
		fields[logger.FieldCategory] = ev.Category.Name()
	}
	if ev.Provider != nil {
		fields[logger.FieldProvider] = ev.Provider.Name()
		fields[logger.FieldStrategy] = ev.Provider.Strategy().String()
	}
	return fields
}

func (r *Registry) logEvent(ev Event) {
	switch ev.Kind {
	case EventInstanceCreated, EventProviderSelected:
		r.log.Info("provider "+eventVerb(ev.Kind), eventFields(ev))
	default:
		r.log.Debug(string(ev.Kind), eventFields(ev))
	}
}

func eventVerb(kind EventKind) string {
	if kind == EventInstanceCreated {
		return "instantiated"
	}
	return "selected"
}

// logFailure records a rejected operation. Failures are returned to the
// caller as well; the log only adds context.
func (r *Registry) logFailure(op string, err error, fields map[string]interface{}) {
	fields = logger.MergeWithError(fields, err)
	fields[logger.FieldOperation] = op
	if code := errors.CodeOf(err); code != "" {
		fields[logger.FieldCode] = string(code)
	}
	r.log.Debug("registry operation failed", fields)
}
