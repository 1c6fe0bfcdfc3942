package models

import (
	"errors"
	"strings"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCooking   OrderStatus = "COOKING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every valid status.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCooking,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCooking, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status accepts no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
// PENDING -> COOKING -> COMPLETED is the normal path; CANCELLED is reachable
// from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	switch to {
	case OrderStatusCooking:
		return from == OrderStatusPending
	case OrderStatusCompleted:
		return from == OrderStatusPending || from == OrderStatusCooking
	case OrderStatusCancelled:
		return from == OrderStatusPending || from == OrderStatusCooking
	}
	return false
}

// OrderLine is a denormalized snapshot of a cart entry at submission time.
// It deliberately carries no menu item ID: later edits to the catalog must
// not change what an existing order says was sold.
type OrderLine struct {
	Name     string `db:"name" json:"name"`
	Price    int    `db:"price" json:"price"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Order represents a submitted customer order.
type Order struct {
	ID            string      `db:"id" json:"id"`
	Lines         []OrderLine `db:"-" json:"items"`
	TotalAmount   int         `db:"total_amount" json:"totalAmount"`
	Status        OrderStatus `db:"status" json:"status"`
	Timestamp     int64       `db:"-" json:"timestamp"`
	CustomerName  string      `db:"customer_name" json:"customerName"`
	CustomerPhone string      `db:"customer_phone" json:"customerPhone"`
	CustomerNote  string      `db:"customer_note" json:"customerNote"`

	CreatedAt time.Time `db:"created_at" json:"-"`
}

// SetTimestamp fills the wire-format timestamp (epoch milliseconds) from the
// stored creation time.
func (o *Order) SetTimestamp() {
	o.Timestamp = o.CreatedAt.UnixMilli()
}

// OrderRequest is used for order creation.
type OrderRequest struct {
	Items         []OrderLine `json:"items"`
	TotalAmount   int         `json:"totalAmount"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	CustomerNote  string      `json:"customerNote"`
}

var (
	ErrOrderEmpty          = errors.New("order must contain at least one line")
	ErrOrderLineInvalid    = errors.New("order line must have a name, a positive quantity and a non-negative price")
	ErrOrderNameRequired   = errors.New("customer name is required")
	ErrOrderPhoneRequired  = errors.New("customer phone is required")
	ErrOrderTotalMismatch  = errors.New("order total does not match line items")
	ErrOrderStatusInvalid  = errors.New("unknown order status")
	ErrOrderStatusTerminal = errors.New("order is in a terminal status")
)

// Validate checks the request invariants. The total must equal the sum of
// price times quantity over the lines; it is never recomputed afterwards.
func (r OrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrOrderEmpty
	}
	sum := 0
	for _, line := range r.Items {
		if line.Name == "" || line.Quantity <= 0 || line.Price < 0 {
			return ErrOrderLineInvalid
		}
		sum += line.Price * line.Quantity
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrOrderNameRequired
	}
	if strings.TrimSpace(r.CustomerPhone) == "" {
		return ErrOrderPhoneRequired
	}
	if sum != r.TotalAmount {
		return ErrOrderTotalMismatch
	}
	return nil
}

// StatusUpdateRequest is used for order status updates.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
