package reference

import (
	"fmt"
	"strings"
)

// SchemaError reports every JSON Schema violation found in one table file.
type SchemaError struct {
	File   string
	Errors []FieldError
}

// FieldError is a single schema violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: schema validation failed:", e.File)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}
