package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transitions leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// orderTransitions is the forward-only lifecycle; cancelled is reachable from
// pending and processing only.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionTo reports whether the lifecycle allows moving to next. It does
// not consider who requests the change; timing of customer cancellations is
// checked separately via Order.CancellableBy.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string `json:"id" firestore:"id"`
	FormID        string `json:"form_id" firestore:"formId"`
	RetailerID    string `json:"retailer_id" firestore:"retailerId"`
	CustomerID    string `json:"customer_id" firestore:"customerId"`
	CustomerName  string `json:"customer_name" firestore:"customerName"`
	CustomerEmail string `json:"customer_email" firestore:"customerEmail"`
	CustomerPhone string `json:"customer_phone,omitempty" firestore:"customerPhone,omitempty"`
	PurchaseOrder string `json:"purchase_order,omitempty" firestore:"purchaseOrder,omitempty"`

	FormData map[string]interface{} `json:"form_data" firestore:"formData"`
	FileURLs []string               `json:"file_urls,omitempty" firestore:"fileUrls,omitempty"`

	Status OrderStatus `json:"status" firestore:"status"`
	Notes  string      `json:"notes,omitempty" firestore:"notes,omitempty"`

	CancellationDeadline time.Time `json:"cancellation_deadline" firestore:"cancellationDeadline"`
	CreatedAt            time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt            time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CancellableBy reports whether the customer may still initiate cancellation
// at the given instant. Retailers are not bound by the deadline.
func (o *Order) CancellableByCustomer(at time.Time) bool {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return false
	}
	return !at.After(o.CancellationDeadline)
}

// OrderUpdate is one entry of the append-only status log. The order's
// denormalized Status is always the status of its latest update.
type OrderUpdate struct {
	ID             string      `json:"id" firestore:"id"`
	OrderID        string      `json:"order_id" firestore:"orderId"`
	Status         OrderStatus `json:"status" firestore:"status"`
	Message        string      `json:"message,omitempty" firestore:"message,omitempty"`
	CreatedBy      string      `json:"created_by" firestore:"createdBy"`
	SeenByCustomer bool        `json:"seen_by_customer" firestore:"seenByCustomer"`
	CreatedAt      time.Time   `json:"created_at" firestore:"createdAt"`
}
