package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions is the reference state machine:
// PENDING -> {PROCESSING, CANCELLED}; PROCESSING -> {COMPLETED, CANCELLED};
// COMPLETED and CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// KnownOrderStatus reports whether s is one of the enumerated statuses.
func KnownOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// ValidTransition reports whether from -> to is part of the reference state
// machine. Status updates are not blocked on this check; callers use it to
// flag suspicious transitions.
func ValidTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order header. Rows are created only by the database-side
// order procedure; the core mutates nothing but the status afterwards. The
// total is fixed at creation time and never recomputed from the catalog.
type Order struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID int64           `json:"account_id" gorm:"not null;index"`
	PlacedAt  time.Time       `json:"placed_at" gorm:"not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(18,2);not null"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLine is one purchased item with its price locked at purchase time.
type OrderLine struct {
	OrderID   int64           `json:"order_id" gorm:"primaryKey"`
	CarID     int64           `json:"car_id" gorm:"primaryKey"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(18,2);not null"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}

type CreateOrderRequest struct {
	CarID    int64 `json:"car_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,min=1,max=10"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

// CreateOrderResult mirrors the order procedure's output contract.
type CreateOrderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// OrderSummary is one row of a customer's own order listing.
type OrderSummary struct {
	OrderID   int64           `json:"order_id"`
	PlacedAt  time.Time       `json:"placed_at"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CarID     int64           `json:"car_id"`
	CarName   string          `json:"car_name"`
	Brand     string          `json:"brand"`
	ImageRef  string          `json:"image_ref"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDetail is the full order view including the buyer.
type OrderDetail struct {
	OrderID     int64           `json:"order_id"`
	AccountID   int64           `json:"account_id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	PlacedAt    time.Time       `json:"placed_at"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	CarID       int64           `json:"car_id"`
	CarName     string          `json:"car_name"`
	Brand       string          `json:"brand"`
	ImageRef    string          `json:"image_ref"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// AdminOrderRow is one row of the back-office order listing.
type AdminOrderRow struct {
	OrderID   int64           `json:"order_id"`
	AccountID int64           `json:"account_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	PlacedAt  time.Time       `json:"placed_at"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CarID     int64           `json:"car_id"`
	CarName   string          `json:"car_name"`
	Brand     string          `json:"brand"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
