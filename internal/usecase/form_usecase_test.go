package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordernest/internal/domain/entity"
	"ordernest/pkg/errors"
)

func basicFormInput() FormInput {
	return FormInput{
		Title:  "Weekly stock order",
		Active: true,
		Fields: []entity.FieldDefinition{
			{ID: "quantity", Type: entity.FieldTypeNumber, Label: "Quantity", Required: true},
		},
	}
}

func TestCreateFormRequiresRetailerAccount(t *testing.T) {
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(testCustomer()), 0)

	_, err := uc.CreateForm(context.Background(), "customer-1", basicFormInput())

	assert.True(t, errors.Is(err, "POLICY_VIOLATION"))
}

func TestCreateActiveFormRequiresSubscription(t *testing.T) {
	retailer := testRetailer()
	retailer.HasActiveSubscription = false
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(retailer), 0)

	_, err := uc.CreateForm(context.Background(), "retailer-1", basicFormInput())
	assert.True(t, errors.Is(err, "POLICY_VIOLATION"))

	// a draft is fine without a subscription
	input := basicFormInput()
	input.Active = false
	form, err := uc.CreateForm(context.Background(), "retailer-1", input)
	require.NoError(t, err)
	assert.False(t, form.Active)
}

func TestCreateFormDefaultsCancellationDeadline(t *testing.T) {
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(testRetailer()), 0)

	form, err := uc.CreateForm(context.Background(), "retailer-1", basicFormInput())

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCancellationDeadlineHours, form.CancellationDeadlineHours)
}

func TestCreateFormUsesConfiguredDefaultDeadline(t *testing.T) {
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(testRetailer()), 48)

	form, err := uc.CreateForm(context.Background(), "retailer-1", basicFormInput())

	require.NoError(t, err)
	assert.Equal(t, 48, form.CancellationDeadlineHours)
}

func TestCreateFormRejectsBrokenDefinition(t *testing.T) {
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(testRetailer()), 0)

	input := basicFormInput()
	input.Fields = append(input.Fields, entity.FieldDefinition{
		ID:   "quantity",
		Type: entity.FieldTypeText,
	})

	_, err := uc.CreateForm(context.Background(), "retailer-1", input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateFormClearsUploadPolicyWhenUploadsDisabled(t *testing.T) {
	uc := NewFormUseCase(newFakeFormRepo(), newFakeUserRepo(testRetailer()), 0)

	input := basicFormInput()
	input.AllowFileUpload = false
	input.AllowedFileTypes = []string{"pdf"}
	input.MaxFileSize = 5
	input.MaxFiles = 3

	form, err := uc.CreateForm(context.Background(), "retailer-1", input)

	require.NoError(t, err)
	assert.Empty(t, form.AllowedFileTypes)
	assert.Zero(t, form.MaxFileSize)
	assert.Zero(t, form.MaxFiles)
}

func TestUpdateFormOwnershipEnforced(t *testing.T) {
	other := testRetailer()
	other.ID = "retailer-2"
	uc := NewFormUseCase(newFakeFormRepo(testForm()), newFakeUserRepo(testRetailer(), other), 0)

	_, err := uc.UpdateForm(context.Background(), "form-1", "retailer-2", basicFormInput())

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSetFormActiveRequiresSubscriptionAndFields(t *testing.T) {
	retailer := testRetailer()
	retailer.HasActiveSubscription = false
	form := testForm()
	form.Active = false
	uc := NewFormUseCase(newFakeFormRepo(form), newFakeUserRepo(retailer), 0)

	_, err := uc.SetFormActive(context.Background(), "form-1", "retailer-1", true)
	assert.True(t, errors.Is(err, "POLICY_VIOLATION"))

	retailer.HasActiveSubscription = true
	updated, err := uc.SetFormActive(context.Background(), "form-1", "retailer-1", true)
	require.NoError(t, err)
	assert.True(t, updated.Active)

	// pausing never needs a subscription
	retailer.HasActiveSubscription = false
	updated, err = uc.SetFormActive(context.Background(), "form-1", "retailer-1", false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestGetFormHidesInactiveFromNonOwners(t *testing.T) {
	form := testForm()
	form.Active = false
	uc := NewFormUseCase(newFakeFormRepo(form), newFakeUserRepo(testRetailer(), testCustomer()), 0)

	_, err := uc.GetForm(context.Background(), "form-1", "customer-1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	got, err := uc.GetForm(context.Background(), "form-1", "retailer-1")
	require.NoError(t, err)
	assert.Equal(t, "form-1", got.ID)
}

func TestDeleteFormIsSoft(t *testing.T) {
	repo := newFakeFormRepo(testForm())
	uc := NewFormUseCase(repo, newFakeUserRepo(testRetailer()), 0)

	err := uc.DeleteForm(context.Background(), "form-1", "retailer-1")
	require.NoError(t, err)

	stored := repo.forms["form-1"]
	assert.NotNil(t, stored.DeletedAt, "record survives for orders that reference it")
	assert.False(t, stored.Active)
}
