package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"ordernest/internal/usecase"
	"ordernest/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	DisplayName  string          `json:"display_name" validate:"omitempty,min=2"`
	Phone        string          `json:"phone" validate:"omitempty,e164"`
	BusinessName string          `json:"business_name"`
	Preferences  map[string]bool `json:"preferences"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName:  req.DisplayName,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		Preferences:  req.Preferences,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	if err := h.userUseCase.UpdatePassword(c.Request().Context(), uid, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "password updated",
	})
}

type updateSubscriptionRequest struct {
	Active  bool       `json:"active"`
	EndDate *time.Time `json:"end_date"`
}

// UpdateSubscription records the subscription state reported by the billing
// collaborator. Payment processing itself happens outside this service.
func (h *UserHandler) UpdateSubscription(c echo.Context) error {
	var req updateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateSubscription(c.Request().Context(), uid, req.Active, req.EndDate)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
