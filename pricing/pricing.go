// Package pricing computes the order price breakdown. All functions are
// pure: the tax rate and clock are passed in by the caller, never read from
// process-wide state, so recomputing from the same inputs always yields the
// same breakdown.
package pricing

import (
	"math"
	"time"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/utils/errors"
)

// LineItem is the minimal shape both cart items and order items satisfy.
type LineItem struct {
	UnitPrice float64
	Quantity  int64
}

// Breakdown is the derived pricing of a set of line items. Values stay
// unrounded; round only when presenting.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Tax            float64 `json:"tax"`
	ShippingCost   float64 `json:"shipping_cost"`
	Total          float64 `json:"total"`
}

// Subtotal sums unit price times quantity over the items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// ResolveDiscount returns the discount amount a code grants against the
// subtotal. A fixed discount is capped at the subtotal so the total can
// never go negative.
func ResolveDiscount(d *model.Discount, now time.Time, subtotal float64) (float64, error) {
	if d == nil {
		return 0, errors.SetCustomError(constant.ErrDiscountNotFound)
	}
	if !d.IsValid(now) {
		return 0, errors.SetCustomError(constant.ErrDiscountExpired)
	}

	switch d.Type {
	case constant.DiscountTypePercentage:
		return subtotal * d.Value / 100, nil
	case constant.DiscountTypeFixed:
		return math.Min(d.Value, subtotal), nil
	default:
		return 0, errors.SetCustomError(constant.ErrDiscountNotFound)
	}
}

// Tax is charged on the post-discount amount, never the raw subtotal.
func Tax(subtotal, discountAmount, taxRate float64) float64 {
	return (subtotal - discountAmount) * taxRate
}

// Total combines the four components.
func Total(subtotal, discountAmount, tax, shippingCost float64) float64 {
	return subtotal - discountAmount + tax + shippingCost
}

// Compute derives the full breakdown in one pass so no caller can update one
// component without the others. A nil discount means no code applied; an
// invalid code is an error, not a silent zero.
func Compute(items []LineItem, discount *model.Discount, now time.Time, taxRate, shippingCost float64) (Breakdown, error) {
	subtotal := Subtotal(items)

	var discountAmount float64
	if discount != nil {
		var err error
		discountAmount, err = ResolveDiscount(discount, now, subtotal)
		if err != nil {
			return Breakdown{}, err
		}
	}

	tax := Tax(subtotal, discountAmount, taxRate)
	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Tax:            tax,
		ShippingCost:   shippingCost,
		Total:          Total(subtotal, discountAmount, tax, shippingCost),
	}, nil
}

// Round2 rounds to two decimal places. Presentation boundary only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
