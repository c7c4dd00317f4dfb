package model

import (
	"time"

	"github.com/sportify/backend/constant"
)

// StockEntry is the per-product ledger row. AvailableStock, IsLowStock and
// IsOutOfStock are derived and recomputed on every mutation:
// available = current - reserved, low = available <= min_stock_level,
// out = available <= 0.
type StockEntry struct {
	ID             uint64    `db:"id" json:"id"`
	ProductID      uint64    `db:"product_id" json:"product_id"`
	CurrentStock   int64     `db:"current_stock" json:"current_stock"`
	ReservedStock  int64     `db:"reserved_stock" json:"reserved_stock"`
	AvailableStock int64     `db:"available_stock" json:"available_stock"`
	MinStockLevel  int64     `db:"min_stock_level" json:"min_stock_level"`
	ReorderPoint   int64     `db:"reorder_point" json:"reorder_point"`
	ReorderQty     int64     `db:"reorder_quantity" json:"reorder_quantity"`
	TotalStockIn   int64     `db:"total_stock_in" json:"total_stock_in"`
	TotalStockOut  int64     `db:"total_stock_out" json:"total_stock_out"`
	IsLowStock     bool      `db:"is_low_stock" json:"is_low_stock"`
	IsOutOfStock   bool      `db:"is_out_of_stock" json:"is_out_of_stock"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateStockFlags recomputes the derived fields from the counters.
func (e *StockEntry) UpdateStockFlags() {
	e.AvailableStock = e.CurrentStock - e.ReservedStock
	e.IsLowStock = e.AvailableStock <= e.MinStockLevel
	e.IsOutOfStock = e.AvailableStock <= 0
}

// StockMovement is one immutable entry in the per-product movement log.
type StockMovement struct {
	ID            uint64                `db:"id" json:"id"`
	ProductID     uint64                `db:"product_id" json:"product_id"`
	Type          constant.MovementType `db:"type" json:"type"`
	Quantity      int64                 `db:"quantity" json:"quantity"`
	PreviousStock int64                 `db:"previous_stock" json:"previous_stock"`
	NewStock      int64                 `db:"new_stock" json:"new_stock"`
	Reason        string                `db:"reason" json:"reason"`
	PerformedBy   uint64                `db:"performed_by" json:"performed_by"`
	Notes         string                `db:"notes" json:"notes,omitempty"`
	Cost          *float64              `db:"cost" json:"cost,omitempty"`
	Reference     string                `db:"reference" json:"reference,omitempty"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
}

type AddStockRequest struct {
	ProductID uint64   `json:"product_id" validate:"required"`
	Quantity  int64    `json:"quantity" validate:"required"`
	Reason    string   `json:"reason" validate:"required"`
	Cost      *float64 `json:"cost,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type RemoveStockRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type AdjustStockRequest struct {
	ProductID   uint64 `json:"product_id" validate:"required"`
	NewQuantity int64  `json:"new_quantity" validate:"gte=0"`
	Reason      string `json:"reason" validate:"required"`
	Notes       string `json:"notes,omitempty"`
}

// ReserveStockRequest covers both sides of a manual reservation: holding
// stock back and releasing the hold again.
type ReserveStockRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required"`
}

// LowStockAlert is published when a mutation leaves the current stock at or
// below the reorder point.
type LowStockAlert struct {
	ProductID     uint64 `json:"product_id"`
	ProductName   string `json:"product_name"`
	SupplierID    uint64 `json:"supplier_id"`
	SupplierEmail string `json:"supplier_email"`
	CurrentStock  int64  `json:"current_stock"`
	ReorderPoint  int64  `json:"reorder_point"`
	ReorderQty    int64  `json:"reorder_quantity"`
}
