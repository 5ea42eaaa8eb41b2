package usecase

import (
	"context"
	"time"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/formengine"
	"ordernest/internal/domain/repository"
	"ordernest/pkg/errors"
)

type FormUseCase struct {
	formRepo             repository.FormRepository
	userRepo             repository.UserRepository
	defaultDeadlineHours int
}

// NewFormUseCase builds the form management use case. defaultDeadlineHours is
// applied to forms that don't set their own cancellation window; zero falls
// back to the domain default.
func NewFormUseCase(formRepo repository.FormRepository, userRepo repository.UserRepository, defaultDeadlineHours int) *FormUseCase {
	if defaultDeadlineHours <= 0 {
		defaultDeadlineHours = entity.DefaultCancellationDeadlineHours
	}
	return &FormUseCase{
		formRepo:             formRepo,
		userRepo:             userRepo,
		defaultDeadlineHours: defaultDeadlineHours,
	}
}

type FormInput struct {
	Title       string
	Description string
	Fields      []entity.FieldDefinition
	Active      bool

	AllowFileUpload  bool
	AllowedFileTypes []string
	MaxFileSize      int64
	MaxFiles         int

	CancellationPolicy        string
	CancellationDeadlineHours int
	RequiresApproval          bool
	EmailNotifications        bool
	SubmitButtonText          string
	SuccessMessage            string
}

func (uc *FormUseCase) CreateForm(ctx context.Context, retailerID string, input FormInput) (*entity.FormDefinition, error) {
	retailer, err := uc.userRepo.GetByID(ctx, retailerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid retailer", err)
	}

	if !retailer.IsRetailer() {
		return nil, errors.Policy("Only retailer accounts may create forms", nil)
	}

	now := time.Now()
	if input.Active && !retailer.SubscriptionActive(now) {
		return nil, errors.Policy("An active subscription is required to activate forms", nil)
	}

	hours := input.CancellationDeadlineHours
	if hours <= 0 {
		hours = uc.defaultDeadlineHours
	}

	form := &entity.FormDefinition{
		RetailerID:                retailerID,
		Title:                     input.Title,
		Description:               input.Description,
		Fields:                    input.Fields,
		Active:                    input.Active,
		AllowFileUpload:           input.AllowFileUpload,
		AllowedFileTypes:          input.AllowedFileTypes,
		MaxFileSize:               input.MaxFileSize,
		MaxFiles:                  input.MaxFiles,
		CancellationPolicy:        input.CancellationPolicy,
		CancellationDeadlineHours: hours,
		RequiresApproval:          input.RequiresApproval,
		EmailNotifications:        input.EmailNotifications,
		SubmitButtonText:          input.SubmitButtonText,
		SuccessMessage:            input.SuccessMessage,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if !form.AllowFileUpload {
		// upload policy fields are meaningless without uploads
		form.AllowedFileTypes = nil
		form.MaxFileSize = 0
		form.MaxFiles = 0
	}

	if err := formengine.CheckDefinition(form); err != nil {
		return nil, errors.BadRequest(err.Error(), nil)
	}

	if err := uc.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

func (uc *FormUseCase) UpdateForm(ctx context.Context, formID, retailerID string, input FormInput) (*entity.FormDefinition, error) {
	form, err := uc.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if form.RetailerID != retailerID {
		return nil, errors.Forbidden("You don't have permission to update this form", nil)
	}

	if input.Active && !form.Active {
		retailer, err := uc.userRepo.GetByID(ctx, retailerID)
		if err != nil {
			return nil, errors.BadRequest("Invalid retailer", err)
		}
		if !retailer.SubscriptionActive(time.Now()) {
			return nil, errors.Policy("An active subscription is required to activate forms", nil)
		}
	}

	form.Title = input.Title
	form.Description = input.Description
	form.Fields = input.Fields
	form.Active = input.Active
	form.AllowFileUpload = input.AllowFileUpload
	form.AllowedFileTypes = input.AllowedFileTypes
	form.MaxFileSize = input.MaxFileSize
	form.MaxFiles = input.MaxFiles
	form.CancellationPolicy = input.CancellationPolicy
	if input.CancellationDeadlineHours > 0 {
		form.CancellationDeadlineHours = input.CancellationDeadlineHours
	}
	form.RequiresApproval = input.RequiresApproval
	form.EmailNotifications = input.EmailNotifications
	form.SubmitButtonText = input.SubmitButtonText
	form.SuccessMessage = input.SuccessMessage
	form.UpdatedAt = time.Now()

	if !form.AllowFileUpload {
		form.AllowedFileTypes = nil
		form.MaxFileSize = 0
		form.MaxFiles = 0
	}

	if err := formengine.CheckDefinition(form); err != nil {
		return nil, errors.BadRequest(err.Error(), nil)
	}

	if err := uc.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

// SetFormActive toggles whether the form accepts submissions. Deactivation is
// the soft-delete path; forms referenced by orders are never hard deleted.
func (uc *FormUseCase) SetFormActive(ctx context.Context, formID, retailerID string, active bool) (*entity.FormDefinition, error) {
	form, err := uc.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if form.RetailerID != retailerID {
		return nil, errors.Forbidden("You don't have permission to modify this form", nil)
	}

	if active {
		retailer, err := uc.userRepo.GetByID(ctx, retailerID)
		if err != nil {
			return nil, errors.BadRequest("Invalid retailer", err)
		}
		if !retailer.SubscriptionActive(time.Now()) {
			return nil, errors.Policy("An active subscription is required to activate forms", nil)
		}
		if len(form.Fields) == 0 {
			return nil, errors.BadRequest("Cannot activate a form without fields", nil)
		}
	}

	form.Active = active
	form.UpdatedAt = time.Now()

	if err := uc.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

// GetForm returns the form for its owner, or for anyone else only while it is
// active and not deleted.
func (uc *FormUseCase) GetForm(ctx context.Context, formID, viewerID string) (*entity.FormDefinition, error) {
	form, err := uc.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if form.RetailerID != viewerID {
		if form.DeletedAt != nil || !form.Active {
			return nil, errors.NotFound("Form", nil)
		}
	}

	return form, nil
}

func (uc *FormUseCase) ListMyForms(ctx context.Context, retailerID string, activeOnly bool, limit, offset int) ([]*entity.FormDefinition, int64, error) {
	return uc.formRepo.ListByRetailerID(ctx, retailerID, activeOnly, limit, offset)
}

func (uc *FormUseCase) DeleteForm(ctx context.Context, formID, retailerID string) error {
	form, err := uc.formRepo.GetByID(ctx, formID)
	if err != nil {
		return err
	}

	if form.RetailerID != retailerID {
		return errors.Forbidden("You don't have permission to delete this form", nil)
	}

	return uc.formRepo.SoftDelete(ctx, formID)
}
