package formengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ordernest/internal/domain/entity"
)

func TestCheckDefinitionAcceptsValidForm(t *testing.T) {
	assert.NoError(t, CheckDefinition(orderForm()))
}

func TestCheckDefinitionDuplicateFieldIDs(t *testing.T) {
	form := orderForm()
	form.Fields = append(form.Fields, entity.FieldDefinition{
		ID:   "quantity",
		Type: entity.FieldTypeText,
	})

	err := CheckDefinition(form)
	assert.ErrorContains(t, err, "duplicate field id")
}

func TestCheckDefinitionChoiceFieldNeedsOptions(t *testing.T) {
	form := orderForm()
	form.Fields = append(form.Fields, entity.FieldDefinition{
		ID:   "size",
		Type: entity.FieldTypeSelect,
	})

	err := CheckDefinition(form)
	assert.ErrorContains(t, err, "must declare options")
}

func TestCheckDefinitionNonChoiceFieldMustNotHaveOptions(t *testing.T) {
	form := orderForm()
	form.Fields[1].Options = []string{"a", "b"}

	err := CheckDefinition(form)
	assert.ErrorContains(t, err, "must not declare options")
}

func TestCheckDefinitionActiveFormNeedsFields(t *testing.T) {
	form := &entity.FormDefinition{ID: "empty", Active: true}
	assert.Error(t, CheckDefinition(form))

	form.Active = false
	assert.NoError(t, CheckDefinition(form), "a draft may be empty")
}

func TestCheckDefinitionRejectsBadPattern(t *testing.T) {
	form := orderForm()
	form.Fields[1].Validation = &entity.ValidationRules{Pattern: "("}

	err := CheckDefinition(form)
	assert.ErrorContains(t, err, "invalid pattern")
}
