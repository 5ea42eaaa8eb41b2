package handler

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/formengine"
	"ordernest/internal/usecase"
	"ordernest/pkg/errors"
	"ordernest/pkg/response"
	"ordernest/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type submitOrderRequest struct {
	Values map[string]interface{} `json:"values"`
	Files  []formengine.FileRef   `json:"files"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,e164"`
	PurchaseOrder string `json:"purchase_order"`
	Notes         string `json:"notes"`
}

// SubmitOrder validates the submission against the form. A failing submission
// comes back as a field-error mapping and nothing is persisted; a passing one
// creates the order with its initial pending update.
func (h *OrderHandler) SubmitOrder(c echo.Context) error {
	formID := c.Param("id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("Form ID is required", nil))
	}

	var req submitOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	order, result, err := h.orderUseCase.SubmitOrder(c.Request().Context(), uid, formID, usecase.SubmitOrderInput{
		Values:        req.Values,
		Files:         req.Files,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PurchaseOrder: req.PurchaseOrder,
		Notes:         req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if result != nil && !result.IsValid {
		return response.ValidationFailed(c, result.Errors)
	}

	return response.Created(c, order)
}

type updateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Message string `json:"message"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), uid, orderID, usecase.UpdateStatusInput{
		Status:  entity.OrderStatus(req.Status),
		Message: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	uid := c.Get("uid").(string)

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), uid, status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetTimeline(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	uid := c.Get("uid").(string)

	updates, err := h.orderUseCase.GetTimeline(c.Request().Context(), uid, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updates)
}

func (h *OrderHandler) AcknowledgeUpdate(c echo.Context) error {
	orderID := c.Param("id")
	updateID := c.Param("updateId")
	if orderID == "" || updateID == "" {
		return response.Error(c, errors.BadRequest("Order ID and update ID are required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.orderUseCase.AcknowledgeUpdate(c.Request().Context(), uid, orderID, updateID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "acknowledged",
	})
}
