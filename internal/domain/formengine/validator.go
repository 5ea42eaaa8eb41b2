// Package formengine validates customer submissions against retailer-authored
// form definitions. Validation is a pure function over the definition and the
// submitted values; persistence and transport stay outside.
package formengine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ordernest/internal/domain/entity"
)

// FormErrorKey is the reserved pseudo-field key for whole-form failures.
const FormErrorKey = "_form"

// FilesErrorKey is the reserved pseudo-field key for upload policy failures.
const FilesErrorKey = "_files"

// FileRef is a submitted file reference. Only name and size are inspected;
// byte content is never read here.
type FileRef struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"` // bytes
}

// Submission carries the customer-provided values keyed by field id, plus any
// uploaded file references.
type Submission struct {
	Values map[string]interface{} `json:"values"`
	Files  []FileRef              `json:"files,omitempty"`
}

// Result maps failed field ids to one human-readable error each. IsValid is
// true iff the mapping is empty.
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks a submission against a form definition. Fields are checked
// independently; the first failing rule per field wins and later rules for
// that field are skipped. An inactive form fails wholesale with a form-level
// error regardless of field contents.
func Validate(form *entity.FormDefinition, sub Submission) Result {
	errs := make(map[string]string)

	if !form.Active {
		errs[FormErrorKey] = "This form is not accepting submissions"
		return Result{IsValid: false, Errors: errs}
	}

	if !form.AllowFileUpload && len(sub.Files) > 0 {
		errs[FormErrorKey] = "This form does not accept file uploads"
	}

	for i := range form.Fields {
		field := &form.Fields[i]
		if msg := validateField(field, sub.Values[field.ID]); msg != "" {
			errs[field.ID] = msg
		}
	}

	if form.AllowFileUpload {
		if msg := checkFilePolicy(form, sub.Files); msg != "" {
			errs[FilesErrorKey] = msg
		}
	}

	if len(errs) == 0 {
		return Result{IsValid: true}
	}
	return Result{IsValid: false, Errors: errs}
}

func validateField(field *entity.FieldDefinition, value interface{}) string {
	if isEmpty(value) {
		if field.Required {
			return fmt.Sprintf("%s is required", labelOf(field))
		}
		return ""
	}

	switch field.Type {
	case entity.FieldTypeNumber:
		return validateNumber(field, value)
	case entity.FieldTypeRadio, entity.FieldTypeSelect:
		return validateSingleChoice(field, value)
	case entity.FieldTypeCheckbox:
		return validateCheckbox(field, value)
	case entity.FieldTypeUpload:
		return validateUploadValue(field, value)
	default:
		return validateText(field, value)
	}
}

func validateText(field *entity.FieldDefinition, value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%s must be text", labelOf(field))
	}

	if field.Type == entity.FieldTypeEmail && !emailPattern.MatchString(s) {
		return fmt.Sprintf("%s must be a valid email address", labelOf(field))
	}

	rules := field.Validation
	if rules == nil {
		return ""
	}
	length := len([]rune(s))
	if rules.MinLength != nil && length < *rules.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", labelOf(field), *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters", labelOf(field), *rules.MaxLength)
	}
	if rules.Pattern != "" {
		re, err := regexp.Compile(fullMatch(rules.Pattern))
		if err != nil {
			return fmt.Sprintf("%s has an invalid validation pattern", labelOf(field))
		}
		if !re.MatchString(s) {
			return fmt.Sprintf("%s has an invalid format", labelOf(field))
		}
	}
	return ""
}

func validateNumber(field *entity.FieldDefinition, value interface{}) string {
	n, ok := toNumber(value)
	if !ok {
		return fmt.Sprintf("%s must be a number", labelOf(field))
	}

	rules := field.Validation
	if rules == nil {
		return ""
	}
	// bounds are inclusive
	if rules.Min != nil && n < *rules.Min {
		return fmt.Sprintf("%s must be at least %s", labelOf(field), formatNumber(*rules.Min))
	}
	if rules.Max != nil && n > *rules.Max {
		return fmt.Sprintf("%s must be at most %s", labelOf(field), formatNumber(*rules.Max))
	}
	return ""
}

func validateSingleChoice(field *entity.FieldDefinition, value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%s must be one of the listed options", labelOf(field))
	}
	if !isOption(field.Options, s) {
		return fmt.Sprintf("%s must be one of the listed options", labelOf(field))
	}
	return ""
}

// validateCheckbox treats checkboxes as multi-select: the value is either a
// single option or a list of options, and every element must be a member of
// the declared options.
func validateCheckbox(field *entity.FieldDefinition, value interface{}) string {
	selected, ok := toStringList(value)
	if !ok {
		return fmt.Sprintf("%s must be a selection of the listed options", labelOf(field))
	}
	for _, s := range selected {
		if !isOption(field.Options, s) {
			return fmt.Sprintf("%s must be a selection of the listed options", labelOf(field))
		}
	}
	return ""
}

func validateUploadValue(field *entity.FieldDefinition, value interface{}) string {
	if _, ok := toStringList(value); !ok {
		return fmt.Sprintf("%s must be a file reference", labelOf(field))
	}
	return ""
}

func checkFilePolicy(form *entity.FormDefinition, files []FileRef) string {
	if form.MaxFiles > 0 && len(files) > form.MaxFiles {
		return fmt.Sprintf("At most %d files may be attached", form.MaxFiles)
	}
	for _, f := range files {
		if len(form.AllowedFileTypes) > 0 && !extensionAllowed(form.AllowedFileTypes, f.Filename) {
			return fmt.Sprintf("File type of %s is not allowed", f.Filename)
		}
		if form.MaxFileSize > 0 && f.Size > form.MaxFileSize*1024*1024 {
			return fmt.Sprintf("%s exceeds the maximum file size of %dMB", f.Filename, form.MaxFileSize)
		}
	}
	return ""
}

func extensionAllowed(allowed []string, filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == ext {
			return true
		}
	}
	return false
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	}
	return false
}

func isOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}

func toStringList(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// fullMatch anchors a pattern so it must match the whole string.
func fullMatch(pattern string) string {
	return "^(?:" + pattern + ")$"
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func labelOf(field *entity.FieldDefinition) string {
	if field.Label != "" {
		return field.Label
	}
	return field.ID
}
