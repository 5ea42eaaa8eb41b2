package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/repository"
	"ordernest/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) orderRef(id string) *firestore.DocumentRef {
	return r.client.Collection("orders").Doc(id)
}

func (r *firestoreOrderRepository) updateRef(orderID, updateID string) *firestore.DocumentRef {
	return r.orderRef(orderID).Collection("updates").Doc(updateID)
}

// Create writes the order and its initial status update in one transaction so
// no order is ever visible without its log entry.
func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order, initial *entity.OrderUpdate) error {
	if order.ID == "" {
		order.ID = r.client.Collection("orders").NewDoc().ID
	}

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	initial.ID = uuid.New().String()
	initial.OrderID = order.ID
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = now
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(r.orderRef(order.ID), order); err != nil {
			return err
		}
		return tx.Set(r.updateRef(order.ID, initial.ID), initial)
	})
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.orderRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

// AppendStatusUpdate appends the update and sets the denormalized status in a
// single transaction. The expected status acts as a compare-and-swap guard:
// when another writer got there first the caller sees a CONFLICT and can retry
// against the latest state.
func (r *firestoreOrderRepository) AppendStatusUpdate(ctx context.Context, orderID string, expected entity.OrderStatus, update *entity.OrderUpdate) error {
	update.ID = uuid.New().String()
	update.OrderID = orderID
	if update.CreatedAt.IsZero() {
		update.CreatedAt = time.Now()
	}

	conflict := errors.Conflict("Order was updated concurrently", nil)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(r.orderRef(orderID))
		if err != nil {
			return err
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return err
		}

		if order.Status != expected {
			return conflict
		}

		if err := tx.Set(r.updateRef(orderID, update.ID), update); err != nil {
			return err
		}
		return tx.Update(r.orderRef(orderID), []firestore.Update{
			{Path: "status", Value: update.Status},
			{Path: "updatedAt", Value: update.CreatedAt},
		})
	})

	if err != nil {
		if err == conflict || status.Code(err) == codes.Aborted {
			return conflict
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to append order update", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListUpdates(ctx context.Context, orderID string) ([]*entity.OrderUpdate, error) {
	iter := r.orderRef(orderID).Collection("updates").OrderBy("createdAt", firestore.Asc).Documents(ctx)

	var updates []*entity.OrderUpdate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate order updates", err)
		}

		var update entity.OrderUpdate
		if err := doc.DataTo(&update); err != nil {
			return nil, errors.Internal("Failed to parse order update data", err)
		}
		updates = append(updates, &update)
	}

	return updates, nil
}

func (r *firestoreOrderRepository) MarkUpdateSeen(ctx context.Context, orderID, updateID string) error {
	_, err := r.updateRef(orderID, updateID).Update(ctx, []firestore.Update{
		{Path: "seenByCustomer", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Order update", err)
		}
		return errors.Internal("Failed to mark order update as seen", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListByCustomerID(ctx context.Context, customerID string, orderStatus entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "customerId", customerID, orderStatus, limit, offset)
}

func (r *firestoreOrderRepository) ListByRetailerID(ctx context.Context, retailerID string, orderStatus entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "retailerId", retailerID, orderStatus, limit, offset)
}

func (r *firestoreOrderRepository) listByField(ctx context.Context, field, value string, orderStatus entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Query.Where(field, "==", value)

	if orderStatus != "" {
		query = query.Where("status", "==", string(orderStatus))
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}
