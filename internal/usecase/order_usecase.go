package usecase

import (
	"context"
	"time"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/formengine"
	"ordernest/internal/domain/repository"
	"ordernest/pkg/errors"
	"ordernest/pkg/logger"
	"ordernest/pkg/utils"
)

// OrderEventNotifier pushes status changes to connected clients. Delivery is
// best effort; order state never depends on it.
type OrderEventNotifier interface {
	NotifyOrderUpdate(order *entity.Order, update *entity.OrderUpdate)
}

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	formRepo  repository.FormRepository
	userRepo  repository.UserRepository
	fileRepo  repository.FileMetadataRepository
	notifier  OrderEventNotifier
	now       func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	formRepo repository.FormRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileMetadataRepository,
	notifier OrderEventNotifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		formRepo:  formRepo,
		userRepo:  userRepo,
		fileRepo:  fileRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

type SubmitOrderInput struct {
	Values        map[string]interface{}
	Files         []formengine.FileRef
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PurchaseOrder string
	Notes         string
}

// SubmitOrder validates a submission against the form and, when valid, creates
// the order together with its initial pending update in one atomic write. An
// invalid submission returns the validation result with a nil order and no
// error; policy violations fail before anything is written.
func (uc *OrderUseCase) SubmitOrder(ctx context.Context, customerID, formID string, input SubmitOrderInput) (*entity.Order, *formengine.Result, error) {
	customer, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, errors.BadRequest("Invalid customer", err)
	}

	if !customer.IsCustomer() {
		return nil, nil, errors.Policy("Only customer accounts may place orders", nil)
	}

	if !customer.EmailVerified {
		return nil, nil, errors.Policy("Email must be verified before placing orders", nil)
	}

	form, err := uc.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, nil, err
	}

	if form.DeletedAt != nil {
		return nil, nil, errors.NotFound("Form", nil)
	}

	result := formengine.Validate(form, formengine.Submission{
		Values: input.Values,
		Files:  input.Files,
	})
	if !result.IsValid {
		return nil, &result, nil
	}

	now := uc.now()
	deadline := now.Add(time.Duration(form.DeadlineHours()) * time.Hour)

	var fileURLs []string
	for _, f := range input.Files {
		fileURLs = append(fileURLs, f.URL)
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = customer.DisplayName
	}
	customerEmail := input.CustomerEmail
	if customerEmail == "" {
		customerEmail = customer.Email
	}

	order := &entity.Order{
		FormID:               form.ID,
		RetailerID:           form.RetailerID,
		CustomerID:           customerID,
		CustomerName:         customerName,
		CustomerEmail:        customerEmail,
		CustomerPhone:        input.CustomerPhone,
		PurchaseOrder:        input.PurchaseOrder,
		FormData:             input.Values,
		FileURLs:             fileURLs,
		Status:               entity.OrderStatusPending,
		Notes:                input.Notes,
		CancellationDeadline: deadline,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	initial := &entity.OrderUpdate{
		Status:    entity.OrderStatusPending,
		Message:   "Order received",
		CreatedBy: customerID,
		CreatedAt: now,
	}

	if err := uc.orderRepo.Create(ctx, order, initial); err != nil {
		return nil, nil, err
	}

	uc.attachFiles(ctx, order)
	uc.notify(order, initial)

	return order, &result, nil
}

// attachFiles stamps the order onto the metadata of every referenced upload so
// those files cannot be deleted out from under the order. A missing record is
// logged and skipped; the order itself is already committed.
func (uc *OrderUseCase) attachFiles(ctx context.Context, order *entity.Order) {
	if uc.fileRepo == nil {
		return
	}

	for _, url := range order.FileURLs {
		metadata, err := uc.fileRepo.GetByURL(ctx, url)
		if err != nil {
			logger.Warn("No file metadata for %s on order %s: %v", url, order.ID, err)
			continue
		}
		if err := uc.fileRepo.AttachToOrder(ctx, metadata.ID, order.ID); err != nil {
			logger.Warn("Failed to attach file %s to order %s: %v", metadata.ID, order.ID, err)
		}
	}
}

type UpdateStatusInput struct {
	Status  entity.OrderStatus
	Message string
}

// UpdateStatus appends a status update on behalf of the owning retailer. The
// customer may only request cancellation, and only before the order's
// cancellation deadline; the retailer is not bound by the deadline. On a
// concurrency conflict the transition is re-validated against the latest
// state and retried once.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actorID, orderID string, input UpdateStatusInput) (*entity.Order, error) {
	if !input.Status.Valid() {
		return nil, errors.BadRequest("Unknown order status", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isRetailer := order.RetailerID == actorID
	isCustomer := order.CustomerID == actorID

	if !isRetailer && !isCustomer {
		return nil, errors.Forbidden("You don't have permission to update this order", nil)
	}

	if isCustomer && !isRetailer && input.Status != entity.OrderStatusCancelled {
		return nil, errors.Forbidden("Customers may only request cancellation", nil)
	}

	order, err = uc.applyTransition(ctx, order, actorID, input, isCustomer && !isRetailer)
	if err == nil {
		return order, nil
	}

	// lost a race against a concurrent update: read the latest state,
	// re-validate the transition, retry once
	if !errors.Is(err, "CONFLICT") {
		return nil, err
	}
	logger.Warn("Concurrent update on order %s, retrying with latest state", orderID)

	order, getErr := uc.orderRepo.GetByID(ctx, orderID)
	if getErr != nil {
		return nil, getErr
	}

	return uc.applyTransition(ctx, order, actorID, input, isCustomer && !isRetailer)
}

func (uc *OrderUseCase) applyTransition(ctx context.Context, order *entity.Order, actorID string, input UpdateStatusInput, customerInitiated bool) (*entity.Order, error) {
	if !order.Status.CanTransitionTo(input.Status) {
		return nil, errors.InvalidTransition(string(order.Status), string(input.Status))
	}

	if customerInitiated && input.Status == entity.OrderStatusCancelled && !order.CancellableByCustomer(uc.now()) {
		return nil, errors.New(
			"INVALID_TRANSITION",
			"The cancellation deadline has passed; contact the retailer to cancel",
			409,
			nil,
		)
	}

	now := uc.now()
	update := &entity.OrderUpdate{
		OrderID:   order.ID,
		Status:    input.Status,
		Message:   input.Message,
		CreatedBy: actorID,
		CreatedAt: now,
	}

	if err := uc.orderRepo.AppendStatusUpdate(ctx, order.ID, order.Status, update); err != nil {
		return nil, err
	}

	order.Status = input.Status
	order.UpdatedAt = now

	uc.notify(order, update)

	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.RetailerID != userID && order.CustomerID != userID {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID, status string, page, limit int) ([]*entity.Order, int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, errors.NotFound("User", err)
	}

	orderStatus := entity.OrderStatus(status)
	if status != "" && !orderStatus.Valid() {
		return nil, 0, errors.BadRequest("Unknown order status", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)

	if user.IsRetailer() {
		return uc.orderRepo.ListByRetailerID(ctx, userID, orderStatus, pagination.PageSize, pagination.Offset)
	}
	return uc.orderRepo.ListByCustomerID(ctx, userID, orderStatus, pagination.PageSize, pagination.Offset)
}

// GetTimeline returns the append-only update log, oldest first.
func (uc *OrderUseCase) GetTimeline(ctx context.Context, userID, orderID string) ([]*entity.OrderUpdate, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.RetailerID != userID && order.CustomerID != userID {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}

	return uc.orderRepo.ListUpdates(ctx, orderID)
}

// AcknowledgeUpdate flips seenByCustomer on one update. Only the order's
// customer may acknowledge.
func (uc *OrderUseCase) AcknowledgeUpdate(ctx context.Context, customerID, orderID, updateID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.CustomerID != customerID {
		return errors.Forbidden("Only the order's customer can acknowledge updates", nil)
	}

	return uc.orderRepo.MarkUpdateSeen(ctx, orderID, updateID)
}

func (uc *OrderUseCase) notify(order *entity.Order, update *entity.OrderUpdate) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.NotifyOrderUpdate(order, update)
}
