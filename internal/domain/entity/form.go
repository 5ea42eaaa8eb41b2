package entity

import (
	"time"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeUpload   FieldType = "upload"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

// IsChoice reports whether the field type selects among predefined options.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeRadio || t == FieldTypeSelect || t == FieldTypeCheckbox
}

// IsTextual reports whether string length/pattern constraints apply.
func (t FieldType) IsTextual() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeTextarea:
		return true
	}
	return false
}

// ValidationRules holds per-field constraints. String bounds and pattern apply
// to textual fields, numeric bounds (inclusive) to number fields.
type ValidationRules struct {
	MinLength *int     `json:"min_length,omitempty" firestore:"minLength,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" firestore:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" firestore:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty" firestore:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" firestore:"max,omitempty"`
}

// FieldDefinition describes one input slot in a form. It is a value object
// owned by exactly one FormDefinition; identity is the id within the parent's
// field list.
type FieldDefinition struct {
	ID          string           `json:"id" firestore:"id"`
	Type        FieldType        `json:"type" firestore:"type"`
	Label       string           `json:"label" firestore:"label"`
	Required    bool             `json:"required" firestore:"required"`
	Options     []string         `json:"options,omitempty" firestore:"options,omitempty"`
	Description string           `json:"description,omitempty" firestore:"description,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" firestore:"placeholder,omitempty"`
	Validation  *ValidationRules `json:"validation,omitempty" firestore:"validation,omitempty"`
	Order       int              `json:"order" firestore:"order"`
}

type FormDefinition struct {
	ID          string            `json:"id" firestore:"id"`
	RetailerID  string            `json:"retailer_id" firestore:"retailerId"`
	Title       string            `json:"title" firestore:"title"`
	Description string            `json:"description,omitempty" firestore:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields" firestore:"fields"`
	Active      bool              `json:"active" firestore:"active"`

	AllowFileUpload  bool     `json:"allow_file_upload" firestore:"allowFileUpload"`
	AllowedFileTypes []string `json:"allowed_file_types,omitempty" firestore:"allowedFileTypes,omitempty"`
	MaxFileSize      int64    `json:"max_file_size,omitempty" firestore:"maxFileSize,omitempty"` // MB
	MaxFiles         int      `json:"max_files,omitempty" firestore:"maxFiles,omitempty"`

	CancellationPolicy        string `json:"cancellation_policy,omitempty" firestore:"cancellationPolicy,omitempty"`
	CancellationDeadlineHours int    `json:"cancellation_deadline_hours" firestore:"cancellationDeadlineHours"`
	RequiresApproval          bool   `json:"requires_approval" firestore:"requiresApproval"`
	EmailNotifications        bool   `json:"email_notifications" firestore:"emailNotifications"`
	SubmitButtonText          string `json:"submit_button_text,omitempty" firestore:"submitButtonText,omitempty"`
	SuccessMessage            string `json:"success_message,omitempty" firestore:"successMessage,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

// DefaultCancellationDeadlineHours applies when a form doesn't set its own.
const DefaultCancellationDeadlineHours = 24

// Field returns the field with the given id, or nil.
func (f *FormDefinition) Field(id string) *FieldDefinition {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}

// DeadlineHours returns the cancellation window, falling back to the default.
func (f *FormDefinition) DeadlineHours() int {
	if f.CancellationDeadlineHours <= 0 {
		return DefaultCancellationDeadlineHours
	}
	return f.CancellationDeadlineHours
}

// SortedFields returns the fields in display order: ascending Order, ties
// broken by definition order. The receiver's slice is not mutated.
func (f *FormDefinition) SortedFields() []FieldDefinition {
	sorted := make([]FieldDefinition, len(f.Fields))
	copy(sorted, f.Fields)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Order < sorted[j-1].Order; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
