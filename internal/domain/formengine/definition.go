package formengine

import (
	"fmt"
	"regexp"

	"ordernest/internal/domain/entity"
)

// CheckDefinition verifies the structural invariants of a form definition:
// field ids unique, options present exactly for choice types, patterns
// compilable. Returns the first problem found.
func CheckDefinition(form *entity.FormDefinition) error {
	if len(form.Fields) == 0 && form.Active {
		return fmt.Errorf("an active form must have at least one field")
	}

	seen := make(map[string]bool, len(form.Fields))
	for i := range form.Fields {
		field := &form.Fields[i]
		if field.ID == "" {
			return fmt.Errorf("field %d has no id", i)
		}
		if seen[field.ID] {
			return fmt.Errorf("duplicate field id %q", field.ID)
		}
		seen[field.ID] = true

		if field.Type.IsChoice() {
			if len(field.Options) == 0 {
				return fmt.Errorf("field %q of type %s must declare options", field.ID, field.Type)
			}
		} else if len(field.Options) > 0 {
			return fmt.Errorf("field %q of type %s must not declare options", field.ID, field.Type)
		}

		if field.Validation != nil && field.Validation.Pattern != "" {
			if _, err := regexp.Compile(fullMatch(field.Validation.Pattern)); err != nil {
				return fmt.Errorf("field %q has an invalid pattern: %v", field.ID, err)
			}
		}
	}
	return nil
}
