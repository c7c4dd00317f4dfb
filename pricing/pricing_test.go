package pricing_test

import (
	"testing"
	"time"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/pricing"
	cerr "github.com/sportify/backend/utils/errors"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func activeDiscount(dtype constant.DiscountType, value float64) *model.Discount {
	return &model.Discount{
		Code:      "TEST",
		Type:      dtype,
		Value:     value,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
		IsActive:  true,
	}
}

func TestCompute(t *testing.T) {
	items := []pricing.LineItem{
		{UnitPrice: 250, Quantity: 2},
		{UnitPrice: 500, Quantity: 1},
	}

	tests := []struct {
		name         string
		items        []pricing.LineItem
		discount     *model.Discount
		taxRate      float64
		shippingCost float64
		want         pricing.Breakdown
		wantErr      constant.ErrorType
	}{
		{
			name:         "percentage discount, tax on post-discount amount",
			items:        items,
			discount:     activeDiscount(constant.DiscountTypePercentage, 10),
			taxRate:      0.08,
			shippingCost: 50,
			want: pricing.Breakdown{
				Subtotal:       1000,
				DiscountAmount: 100,
				Tax:            72,
				ShippingCost:   50,
				Total:          1022,
			},
		},
		{
			name:         "no discount",
			items:        items,
			taxRate:      0.08,
			shippingCost: 50,
			want: pricing.Breakdown{
				Subtotal:       1000,
				DiscountAmount: 0,
				Tax:            80,
				ShippingCost:   50,
				Total:          1130,
			},
		},
		{
			name:         "fixed discount capped at subtotal",
			items:        []pricing.LineItem{{UnitPrice: 30, Quantity: 1}},
			discount:     activeDiscount(constant.DiscountTypeFixed, 100),
			taxRate:      0.1,
			shippingCost: 0,
			want: pricing.Breakdown{
				Subtotal:       30,
				DiscountAmount: 30,
				Tax:            0,
				ShippingCost:   0,
				Total:          0,
			},
		},
		{
			name:         "zero tax rate",
			items:        items,
			discount:     activeDiscount(constant.DiscountTypeFixed, 200),
			taxRate:      0,
			shippingCost: 25,
			want: pricing.Breakdown{
				Subtotal:       1000,
				DiscountAmount: 200,
				Tax:            0,
				ShippingCost:   25,
				Total:          825,
			},
		},
		{
			name:    "expired discount rejected",
			items:   items,
			taxRate: 0.08,
			discount: &model.Discount{
				Code:      "OLD",
				Type:      constant.DiscountTypePercentage,
				Value:     10,
				StartDate: now.Add(-48 * time.Hour),
				EndDate:   now.Add(-24 * time.Hour),
				IsActive:  true,
			},
			wantErr: constant.ErrDiscountExpired,
		},
		{
			name:    "inactive discount rejected",
			items:   items,
			taxRate: 0.08,
			discount: &model.Discount{
				Code:      "DISABLED",
				Type:      constant.DiscountTypePercentage,
				Value:     10,
				StartDate: now.Add(-24 * time.Hour),
				EndDate:   now.Add(24 * time.Hour),
				IsActive:  false,
			},
			wantErr: constant.ErrDiscountExpired,
		},
		{
			name:         "empty cart",
			items:        nil,
			taxRate:      0.08,
			shippingCost: 0,
			want:         pricing.Breakdown{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Compute(tt.items, tt.discount, now, tt.taxRate, tt.shippingCost)
			if tt.wantErr != 0 {
				if err == nil {
					t.Fatalf("Compute() error = nil, want %v", tt.wantErr)
				}
				if !cerr.Is(err, tt.wantErr) {
					t.Fatalf("Compute() error = %v, want code %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	items := []pricing.LineItem{
		{UnitPrice: 199.99, Quantity: 3},
		{UnitPrice: 49.5, Quantity: 2},
	}
	d := activeDiscount(constant.DiscountTypePercentage, 15)

	first, err := pricing.Compute(items, d, now, 0.11, 19.9)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := pricing.Compute(items, d, now, 0.11, 19.9)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if again != first {
			t.Fatalf("Compute() not idempotent: %+v vs %+v", again, first)
		}
	}
}

func TestComputeDiscountMonotonic(t *testing.T) {
	items := []pricing.LineItem{{UnitPrice: 120, Quantity: 4}}

	without, err := pricing.Compute(items, nil, now, 0.08, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	with, err := pricing.Compute(items, activeDiscount(constant.DiscountTypePercentage, 20), now, 0.08, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if with.Total > without.Total {
		t.Fatalf("discounted total %v exceeds undiscounted %v", with.Total, without.Total)
	}
	if with.Total < 0 {
		t.Fatalf("total went negative: %v", with.Total)
	}
}

func TestResolveDiscountNil(t *testing.T) {
	_, err := pricing.ResolveDiscount(nil, now, 100)
	if !cerr.Is(err, constant.ErrDiscountNotFound) {
		t.Fatalf("ResolveDiscount(nil) error = %v, want ErrDiscountNotFound", err)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 is stored slightly below 1.005
		{1.015, 1.01},
		{72.004, 72.0},
		{1022, 1022},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		if got := pricing.Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
