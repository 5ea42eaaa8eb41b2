package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"ordernest/internal/domain/entity"
	"ordernest/internal/usecase"
	"ordernest/pkg/errors"
	"ordernest/pkg/response"
	"ordernest/pkg/utils"
)

type FormHandler struct {
	formUseCase *usecase.FormUseCase
}

func NewFormHandler(formUseCase *usecase.FormUseCase) *FormHandler {
	return &FormHandler{
		formUseCase: formUseCase,
	}
}

type formRequest struct {
	Title       string                   `json:"title" validate:"required,min=2"`
	Description string                   `json:"description"`
	Fields      []entity.FieldDefinition `json:"fields"`
	Active      bool                     `json:"active"`

	AllowFileUpload  bool     `json:"allow_file_upload"`
	AllowedFileTypes []string `json:"allowed_file_types"`
	MaxFileSize      int64    `json:"max_file_size" validate:"omitempty,min=1"`
	MaxFiles         int      `json:"max_files" validate:"omitempty,min=1"`

	CancellationPolicy        string `json:"cancellation_policy"`
	CancellationDeadlineHours int    `json:"cancellation_deadline_hours" validate:"omitempty,min=1,max=720"`
	RequiresApproval          bool   `json:"requires_approval"`
	EmailNotifications        bool   `json:"email_notifications"`
	SubmitButtonText          string `json:"submit_button_text"`
	SuccessMessage            string `json:"success_message"`
}

func (r formRequest) toInput() usecase.FormInput {
	return usecase.FormInput{
		Title:       r.Title,
		Description: r.Description,
		Fields:      r.Fields,
		Active:      r.Active,

		AllowFileUpload:  r.AllowFileUpload,
		AllowedFileTypes: r.AllowedFileTypes,
		MaxFileSize:      r.MaxFileSize,
		MaxFiles:         r.MaxFiles,

		CancellationPolicy:        r.CancellationPolicy,
		CancellationDeadlineHours: r.CancellationDeadlineHours,
		RequiresApproval:          r.RequiresApproval,
		EmailNotifications:        r.EmailNotifications,
		SubmitButtonText:          r.SubmitButtonText,
		SuccessMessage:            r.SuccessMessage,
	}
}

func (h *FormHandler) CreateForm(c echo.Context) error {
	var req formRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	form, err := h.formUseCase.CreateForm(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, form)
}

func (h *FormHandler) UpdateForm(c echo.Context) error {
	formID := c.Param("id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("Form ID is required", nil))
	}

	var req formRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	form, err := h.formUseCase.UpdateForm(c.Request().Context(), formID, uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, form)
}

func (h *FormHandler) SetFormActive(c echo.Context) error {
	formID := c.Param("id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("Form ID is required", nil))
	}

	var req struct {
		Active *bool `json:"active" validate:"required"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	form, err := h.formUseCase.SetFormActive(c.Request().Context(), formID, uid, *req.Active)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, form)
}

// GetForm is public: anonymous viewers and customers only see active forms,
// the owner sees drafts too. The optional token middleware sets uid when a
// valid token is presented.
func (h *FormHandler) GetForm(c echo.Context) error {
	formID := c.Param("id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("Form ID is required", nil))
	}

	viewerID, _ := c.Get("uid").(string)

	form, err := h.formUseCase.GetForm(c.Request().Context(), formID, viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, form)
}

func (h *FormHandler) ListMyForms(c echo.Context) error {
	uid := c.Get("uid").(string)

	activeOnly := false
	if v := c.QueryParam("active"); v != "" {
		activeOnly, _ = strconv.ParseBool(v)
	}

	pagination := utils.GetPaginationParams(c)

	forms, total, err := h.formUseCase.ListMyForms(c.Request().Context(), uid, activeOnly, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, forms, total, pagination.Page, pagination.PageSize)
}

func (h *FormHandler) DeleteForm(c echo.Context) error {
	formID := c.Param("id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("Form ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.formUseCase.DeleteForm(c.Request().Context(), formID, uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "deleted",
	})
}
