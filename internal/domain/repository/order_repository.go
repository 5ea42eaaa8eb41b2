package repository

import (
	"context"

	"ordernest/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order, initial *entity.OrderUpdate) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByCustomerID(ctx context.Context, customerID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error)
	ListByRetailerID(ctx context.Context, retailerID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error)

	// AppendStatusUpdate atomically appends an update and sets the order's
	// denormalized status, guarded by the expected current status. A lost race
	// surfaces as a CONFLICT error and leaves the order untouched.
	AppendStatusUpdate(ctx context.Context, orderID string, expected entity.OrderStatus, update *entity.OrderUpdate) error

	ListUpdates(ctx context.Context, orderID string) ([]*entity.OrderUpdate, error)
	MarkUpdateSeen(ctx context.Context, orderID, updateID string) error
}
