package normalize

import (
	"encoding/json"
	"strings"

	"modboard/pkg/models"
	"modboard/pkg/telemetry"
)

// Annotation objects come from loosely-typed AI pipelines whose field names
// and value types drift between producers. Each canonical flag probes an
// ordered candidate key list; values are coerced per coerceBool.

var (
	safeKeys      = []string{"safe", "safemsg"}
	completeKeys  = []string{"complete", "isover"}
	anonymityKeys = []string{"needs_anonymity", "needpriv"}
	abnormalKeys  = []string{"abnormal", "isabnormal"}
)

// Analysis coerces a loosely-typed annotation object into canonical flags.
// Missing or unusable fields take the matching fallback default.
// SelectedMessageCount is the length of the annotation's "messages" list,
// else 0. Pure and total.
func Analysis(raw interface{}, defaults models.AnalysisDefaults) models.AnalysisFlags {
	telemetry.NormalizeTotal.WithLabelValues("analysis").Inc()

	flags := models.AnalysisFlags{
		Safe:           defaults.Safe,
		Complete:       defaults.Complete,
		NeedsAnonymity: defaults.NeedsAnonymity,
		Abnormal:       defaults.Abnormal,
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return flags
	}

	flags.Safe = coerceBool(firstValue(m, safeKeys), defaults.Safe)
	flags.Complete = coerceBool(firstValue(m, completeKeys), defaults.Complete)
	flags.NeedsAnonymity = coerceBool(firstValue(m, anonymityKeys), defaults.NeedsAnonymity)
	flags.Abnormal = coerceBool(firstValue(m, abnormalKeys), defaults.Abnormal)

	if msgs, ok := m["messages"].([]interface{}); ok {
		flags.SelectedMessageCount = len(msgs)
	}
	return flags
}

// coerceBool maps a loosely-typed value onto a boolean: native booleans
// pass through, strings compare their trimmed lower-cased form to "true",
// numbers are true iff non-zero, anything else takes the fallback.
func coerceBool(v interface{}, fallback bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.ToLower(strings.TrimSpace(t)) == "true"
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f != 0
		}
	}
	return fallback
}
