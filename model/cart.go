package model

import (
	"time"

	"github.com/sportify/backend/constant"
)

// Cart is the per-user line-item container. The totals breakdown is derived
// and persisted on every mutation so reads never see stale values.
type Cart struct {
	ID             uint64     `db:"id" json:"id"`
	UserID         uint64     `db:"user_id" json:"user_id"`
	DiscountCode   *string    `db:"discount_code" json:"discount_code,omitempty"`
	Subtotal       float64    `db:"subtotal" json:"subtotal"`
	DiscountAmount float64    `db:"discount_amount" json:"discount_amount"`
	Tax            float64    `db:"tax" json:"tax"`
	ShippingCost   float64    `db:"shipping_cost" json:"shipping_cost"`
	Total          float64    `db:"total" json:"total"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CartItem struct {
	ID            uint64  `db:"id" json:"id"`
	CartID        uint64  `db:"cart_id" json:"cart_id"`
	ProductID     uint64  `db:"product_id" json:"product_id"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	SelectedSize  string  `db:"selected_size" json:"selected_size,omitempty"`
	SelectedColor string  `db:"selected_color" json:"selected_color,omitempty"`
}

type CartResponse struct {
	Cart  *Cart      `json:"cart"`
	Items []CartItem `json:"items"`
}

type AddCartItemRequest struct {
	ProductID     uint64 `json:"product_id" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

type UpdateCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

// Discount is an operator-defined code granting a reduction on a subtotal
// within a validity window.
type Discount struct {
	ID        uint64                `db:"id" json:"id"`
	Code      string                `db:"code" json:"code"`
	Type      constant.DiscountType `db:"type" json:"type"`
	Value     float64               `db:"value" json:"value"`
	StartDate time.Time             `db:"start_date" json:"start_date"`
	EndDate   time.Time             `db:"end_date" json:"end_date"`
	IsActive  bool                  `db:"is_active" json:"is_active"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}

// IsValid reports whether the code may be redeemed at the given instant.
func (d *Discount) IsValid(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartDate) && !now.After(d.EndDate)
}

type CreateDiscountRequest struct {
	Code      string    `json:"code" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=percentage fixed"`
	Value     float64   `json:"value" validate:"required,gt=0"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// Settings is the single-row global configuration read fresh per totals
// computation.
type Settings struct {
	ID                    uint64     `db:"id" json:"id"`
	TaxRate               float64    `db:"tax_rate" json:"tax_rate"`
	ShippingFee           float64    `db:"shipping_fee" json:"shipping_fee"`
	FreeShippingThreshold float64    `db:"free_shipping_threshold" json:"free_shipping_threshold"`
	UpdatedAt             *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type UpdateSettingsRequest struct {
	TaxRate               *float64 `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	ShippingFee           *float64 `json:"shipping_fee,omitempty" validate:"omitempty,gte=0"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold,omitempty" validate:"omitempty,gte=0"`
}
