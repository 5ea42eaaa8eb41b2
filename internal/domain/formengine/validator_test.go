package formengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordernest/internal/domain/entity"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func orderForm() *entity.FormDefinition {
	return &entity.FormDefinition{
		ID:         "form-1",
		RetailerID: "retailer-1",
		Title:      "Weekly stock order",
		Active:     true,
		Fields: []entity.FieldDefinition{
			{
				ID:       "quantity",
				Type:     entity.FieldTypeNumber,
				Label:    "Quantity",
				Required: true,
				Validation: &entity.ValidationRules{
					Min: floatPtr(1),
					Max: floatPtr(5),
				},
			},
			{
				ID:    "remarks",
				Type:  entity.FieldTypeText,
				Label: "Remarks",
			},
		},
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	result := Validate(orderForm(), Submission{Values: map[string]interface{}{
		"quantity": float64(3),
		"remarks":  "leave at the back door",
	}})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateOptionalFieldMayBeAbsent(t *testing.T) {
	result := Validate(orderForm(), Submission{Values: map[string]interface{}{
		"quantity": float64(3),
	}})

	assert.True(t, result.IsValid)
}

func TestValidateRequiredField(t *testing.T) {
	cases := map[string]interface{}{
		"absent":       nil,
		"empty string": "",
		"empty list":   []string{},
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			values := map[string]interface{}{}
			if name != "absent" {
				values["quantity"] = value
			}
			result := Validate(orderForm(), Submission{Values: values})

			require.False(t, result.IsValid)
			assert.Contains(t, result.Errors, "quantity")
			assert.NotContains(t, result.Errors, "remarks")
		})
	}
}

func TestValidateNumericBoundsInclusive(t *testing.T) {
	form := orderForm()

	for _, v := range []float64{1, 3, 5} {
		result := Validate(form, Submission{Values: map[string]interface{}{"quantity": v}})
		assert.True(t, result.IsValid, "value %v should be accepted", v)
	}

	for _, v := range []float64{0, 6, 7} {
		result := Validate(form, Submission{Values: map[string]interface{}{"quantity": v}})
		require.False(t, result.IsValid, "value %v should be rejected", v)
		assert.Contains(t, result.Errors, "quantity")
	}
}

func TestValidateNumberCoercion(t *testing.T) {
	form := orderForm()

	result := Validate(form, Submission{Values: map[string]interface{}{"quantity": "4"}})
	assert.True(t, result.IsValid)

	result = Validate(form, Submission{Values: map[string]interface{}{"quantity": "four"}})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors["quantity"], "number")
}

func TestValidateInactiveFormFailsWholesale(t *testing.T) {
	form := orderForm()
	form.Active = false

	result := Validate(form, Submission{Values: map[string]interface{}{
		"quantity": float64(3),
	}})

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, FormErrorKey)
	assert.NotContains(t, result.Errors, "quantity")
}

func TestValidateStringLengthBounds(t *testing.T) {
	form := &entity.FormDefinition{
		ID:     "form-2",
		Active: true,
		Fields: []entity.FieldDefinition{
			{
				ID:       "code",
				Type:     entity.FieldTypeText,
				Label:    "Code",
				Required: true,
				Validation: &entity.ValidationRules{
					MinLength: intPtr(3),
					MaxLength: intPtr(5),
				},
			},
		},
	}

	for _, s := range []string{"abc", "abcd", "abcde"} {
		result := Validate(form, Submission{Values: map[string]interface{}{"code": s}})
		assert.True(t, result.IsValid, "length %d should be accepted", len(s))
	}

	for _, s := range []string{"ab", "abcdef"} {
		result := Validate(form, Submission{Values: map[string]interface{}{"code": s}})
		require.False(t, result.IsValid, "length %d should be rejected", len(s))
		assert.Contains(t, result.Errors, "code")
	}
}

func TestValidatePatternIsFullStringMatch(t *testing.T) {
	form := &entity.FormDefinition{
		ID:     "form-3",
		Active: true,
		Fields: []entity.FieldDefinition{
			{
				ID:         "sku",
				Type:       entity.FieldTypeText,
				Required:   true,
				Validation: &entity.ValidationRules{Pattern: `[A-Z]{2}-\d{4}`},
			},
		},
	}

	result := Validate(form, Submission{Values: map[string]interface{}{"sku": "AB-1234"}})
	assert.True(t, result.IsValid)

	// substring matches must not pass
	result = Validate(form, Submission{Values: map[string]interface{}{"sku": "xxAB-1234xx"}})
	assert.False(t, result.IsValid)
}

func TestValidateChoiceMembership(t *testing.T) {
	for _, fieldType := range []entity.FieldType{entity.FieldTypeRadio, entity.FieldTypeSelect} {
		form := &entity.FormDefinition{
			ID:     "form-4",
			Active: true,
			Fields: []entity.FieldDefinition{
				{
					ID:       "size",
					Type:     fieldType,
					Required: true,
					Options:  []string{"small", "medium", "large"},
				},
			},
		}

		for _, option := range []string{"small", "medium", "large"} {
			result := Validate(form, Submission{Values: map[string]interface{}{"size": option}})
			assert.True(t, result.IsValid, "%s option %q should be accepted", fieldType, option)
		}

		result := Validate(form, Submission{Values: map[string]interface{}{"size": "extra-large"}})
		require.False(t, result.IsValid, "%s should reject non-member value", fieldType)
		assert.Contains(t, result.Errors, "size")
	}
}

func TestValidateCheckboxMultiSelect(t *testing.T) {
	form := &entity.FormDefinition{
		ID:     "form-5",
		Active: true,
		Fields: []entity.FieldDefinition{
			{
				ID:       "toppings",
				Type:     entity.FieldTypeCheckbox,
				Required: true,
				Options:  []string{"cheese", "onion", "pepper"},
			},
		},
	}

	result := Validate(form, Submission{Values: map[string]interface{}{
		"toppings": []interface{}{"cheese", "pepper"},
	}})
	assert.True(t, result.IsValid)

	result = Validate(form, Submission{Values: map[string]interface{}{"toppings": "onion"}})
	assert.True(t, result.IsValid, "a single selection is also valid")

	result = Validate(form, Submission{Values: map[string]interface{}{
		"toppings": []interface{}{"cheese", "pineapple"},
	}})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "toppings")
}

func TestValidateEmailField(t *testing.T) {
	form := &entity.FormDefinition{
		ID:     "form-6",
		Active: true,
		Fields: []entity.FieldDefinition{
			{ID: "contact", Type: entity.FieldTypeEmail, Required: true},
		},
	}

	result := Validate(form, Submission{Values: map[string]interface{}{"contact": "buyer@example.com"}})
	assert.True(t, result.IsValid)

	result = Validate(form, Submission{Values: map[string]interface{}{"contact": "not-an-email"}})
	assert.False(t, result.IsValid)
}

func TestValidateFirstFailingRuleWins(t *testing.T) {
	form := &entity.FormDefinition{
		ID:     "form-7",
		Active: true,
		Fields: []entity.FieldDefinition{
			{
				ID:       "code",
				Type:     entity.FieldTypeText,
				Label:    "Code",
				Required: true,
				Validation: &entity.ValidationRules{
					MinLength: intPtr(3),
					Pattern:   `\d+`,
				},
			},
		},
	}

	// both the length and the pattern rule fail; only the length error is kept
	result := Validate(form, Submission{Values: map[string]interface{}{"code": "ab"}})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors["code"], "at least 3 characters")
}

func TestValidateFileUploadPolicy(t *testing.T) {
	form := &entity.FormDefinition{
		ID:               "form-8",
		Active:           true,
		AllowFileUpload:  true,
		AllowedFileTypes: []string{"pdf", ".png"},
		MaxFileSize:      2,
		MaxFiles:         2,
		Fields: []entity.FieldDefinition{
			{ID: "remarks", Type: entity.FieldTypeText},
		},
	}

	ok := Submission{Files: []FileRef{
		{URL: "https://files/po.pdf", Filename: "po.pdf", Size: 1024},
		{URL: "https://files/logo.png", Filename: "logo.png", Size: 2048},
	}}
	assert.True(t, Validate(form, ok).IsValid)

	tooMany := Submission{Files: []FileRef{
		{Filename: "a.pdf"}, {Filename: "b.pdf"}, {Filename: "c.pdf"},
	}}
	result := Validate(form, tooMany)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, FilesErrorKey)

	badType := Submission{Files: []FileRef{{Filename: "notes.docx", Size: 100}}}
	result = Validate(form, badType)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[FilesErrorKey], "not allowed")

	tooBig := Submission{Files: []FileRef{{Filename: "scan.pdf", Size: 3 * 1024 * 1024}}}
	result = Validate(form, tooBig)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[FilesErrorKey], "maximum file size")
}

func TestValidateRejectsFilesWhenUploadsDisabled(t *testing.T) {
	form := orderForm()
	form.AllowFileUpload = false

	result := Validate(form, Submission{
		Values: map[string]interface{}{"quantity": float64(3)},
		Files:  []FileRef{{Filename: "po.pdf", Size: 10}},
	})

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, FormErrorKey)
}

func TestValidateIsIdempotent(t *testing.T) {
	form := orderForm()
	sub := Submission{Values: map[string]interface{}{"quantity": float64(9)}}

	first := Validate(form, sub)
	second := Validate(form, sub)

	assert.Equal(t, first, second)
}

func TestValidateEndToEndScenario(t *testing.T) {
	form := orderForm()

	result := Validate(form, Submission{Values: map[string]interface{}{"quantity": float64(3)}})
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)

	result = Validate(form, Submission{Values: map[string]interface{}{"quantity": float64(7)}})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors["quantity"], "at most 5")

	result = Validate(form, Submission{Values: map[string]interface{}{}})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors["quantity"], "required")
}
