package model

import (
	"time"

	"github.com/sportify/backend/constant"
)

type OrderItemRequest struct {
	ProductID     uint64 `json:"product_id" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

type OrderResponse struct {
	OrderID        uint64    `json:"order_id"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	Tax            float64   `json:"tax"`
	ShippingCost   float64   `json:"shipping_cost"`
	Total          float64   `json:"total"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// InsertOrderTxItem carries the full pricing snapshot taken at creation time.
// The breakdown is never recomputed from live data afterwards.
type InsertOrderTxItem struct {
	UserID         uint64
	Status         constant.OrderStatus
	PaymentStatus  constant.PaymentStatus
	DiscountCode   *string
	Subtotal       float64
	DiscountAmount float64
	Tax            float64
	ShippingCost   float64
	Total          float64
	ExpiresAt      time.Time
}

type OrderItem struct {
	ID            uint64  `db:"id" json:"id"`
	OrderID       uint64  `db:"order_id" json:"order_id"`
	ProductID     uint64  `db:"product_id" json:"product_id"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	SelectedSize  string  `db:"selected_size" json:"selected_size,omitempty"`
	SelectedColor string  `db:"selected_color" json:"selected_color,omitempty"`
}

type OrderDetail struct {
	ID             uint64                 `db:"id" json:"id"`
	UserID         uint64                 `db:"user_id" json:"user_id"`
	Status         constant.OrderStatus   `db:"status" json:"status"`
	PaymentStatus  constant.PaymentStatus `db:"payment_status" json:"payment_status"`
	DiscountCode   *string                `db:"discount_code" json:"discount_code,omitempty"`
	Subtotal       float64                `db:"subtotal" json:"subtotal"`
	DiscountAmount float64                `db:"discount_amount" json:"discount_amount"`
	Tax            float64                `db:"tax" json:"tax"`
	ShippingCost   float64                `db:"shipping_cost" json:"shipping_cost"`
	Total          float64                `db:"total" json:"total"`
	ExpiresAt      *time.Time             `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled returned"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed refunded partially_refunded"`
}
