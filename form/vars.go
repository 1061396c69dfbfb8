// Package form reads template variables from HTTP form submissions.
package form

import (
	"net/http"
	"strings"
)

// VariablePrefix marks form fields that carry template variables,
// e.g. var.name=Anna fills {{name}}.
const VariablePrefix = "var."

// Variables collects the var.* fields of r. It returns nil when there are
// none, so callers can tell "no variables" from "empty variables".
func Variables(r *http.Request) map[string]string {
	if err := r.ParseForm(); err != nil {
		return nil
	}

	var vars map[string]string
	for key, values := range r.Form {
		name, ok := strings.CutPrefix(key, VariablePrefix)
		if !ok || name == "" || len(values) == 0 {
			continue
		}
		if vars == nil {
			vars = make(map[string]string)
		}
		vars[name] = values[0]
	}
	return vars
}
