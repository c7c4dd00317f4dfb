package stock

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/utils/errors"
)

type StockRepository interface {
	GetEntry(ctx context.Context, productID uint64) (*model.StockEntry, error)
	GetEntryForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockEntry, error)
	EnsureEntryTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error
	AddStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error
	RemoveStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error
	SetStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, newQty int64) error
	ReserveStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error
	ConsumeReservedTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error
	ReleaseReservedStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error
	RefreshFlagsTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error
	InsertMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error
	ListMovements(ctx context.Context, productID uint64, limit, offset int) ([]model.StockMovement, error)
	ListLowStock(ctx context.Context) ([]model.StockEntry, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

const (
	getEntryQuery = `SELECT id, product_id, current_stock, reserved_stock, available_stock, min_stock_level, reorder_point, reorder_quantity, total_stock_in, total_stock_out, is_low_stock, is_out_of_stock, created_at, updated_at
FROM stock_entry WHERE product_id = ?`

	// Flags are persisted denormalized so catalog reads never recompute them.
	refreshFlagsQuery = `UPDATE stock_entry
SET available_stock = current_stock - reserved_stock,
    is_low_stock = (current_stock - reserved_stock) <= min_stock_level,
    is_out_of_stock = (current_stock - reserved_stock) <= 0
WHERE product_id = ?`

	insertMovementQuery = `INSERT INTO stock_movement (product_id, type, quantity, previous_stock, new_stock, reason, performed_by, notes, cost, reference, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`
)

func (r *SQL) GetEntry(ctx context.Context, productID uint64) (*model.StockEntry, error) {
	var entry model.StockEntry
	if err := r.conn.GetContext(ctx, &entry, getEntryQuery, productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetEntryForUpdateTx reads the ledger row under a row lock so concurrent
// mutations against the same product serialize inside the transaction.
func (r *SQL) GetEntryForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockEntry, error) {
	var entry model.StockEntry
	if err := tx.GetContext(ctx, &entry, getEntryQuery+" FOR UPDATE", productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// EnsureEntryTx lazily creates the ledger row on first use of a product.
func (r *SQL) EnsureEntryTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error {
	_, err := tx.ExecContext(ctx, "INSERT IGNORE INTO stock_entry (product_id, created_at) VALUES (?, NOW())", productID)
	return err
}

func (r *SQL) AddStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE stock_entry SET current_stock = current_stock + ?, total_stock_in = total_stock_in + ? WHERE product_id = ?", qty, qty, productID)
	return err
}

// RemoveStockTx decrements conditionally: the WHERE guard re-checks
// availability at the storage layer so a concurrent writer can never drive
// available stock negative even outside the row lock.
func (r *SQL) RemoveStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE stock_entry SET current_stock = current_stock - ?, total_stock_out = total_stock_out + ? WHERE product_id = ? AND current_stock - reserved_stock >= ?", qty, qty, productID, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}
	return nil
}

// SetStockTx overwrites the counter for stock-takes. Reserved stock must
// still fit under the new quantity.
func (r *SQL) SetStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, newQty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE stock_entry SET current_stock = ? WHERE product_id = ? AND reserved_stock <= ?", newQty, productID, newQty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}
	return nil
}

func (r *SQL) ReserveStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE stock_entry SET reserved_stock = reserved_stock + ? WHERE product_id = ? AND current_stock - reserved_stock >= ?", qty, productID, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}
	return nil
}

// ConsumeReservedTx turns a reservation into an actual outflow: current and
// reserved drop together so available stock is unchanged by the conversion
// itself.
func (r *SQL) ConsumeReservedTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE stock_entry SET current_stock = current_stock - ?, reserved_stock = GREATEST(reserved_stock - ?, 0), total_stock_out = total_stock_out + ? WHERE product_id = ? AND current_stock >= ?", qty, qty, qty, productID, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}
	return nil
}

// ReleaseReservedStockTx floors at zero: releasing more than is reserved is
// clamped, not rejected.
func (r *SQL) ReleaseReservedStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE stock_entry SET reserved_stock = GREATEST(reserved_stock - ?, 0) WHERE product_id = ?", qty, productID)
	return err
}

func (r *SQL) RefreshFlagsTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error {
	_, err := tx.ExecContext(ctx, refreshFlagsQuery, productID)
	return err
}

func (r *SQL) InsertMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	_, err := tx.ExecContext(ctx, insertMovementQuery,
		m.ProductID, m.Type, m.Quantity, m.PreviousStock, m.NewStock, m.Reason, m.PerformedBy, m.Notes, m.Cost, m.Reference)
	return err
}

func (r *SQL) ListMovements(ctx context.Context, productID uint64, limit, offset int) ([]model.StockMovement, error) {
	q := `SELECT id, product_id, type, quantity, previous_stock, new_stock, reason, performed_by, notes, cost, reference, created_at
FROM stock_movement WHERE product_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.conn.QueryxContext(ctx, q, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]model.StockMovement, 0)
	for rows.Next() {
		var m model.StockMovement
		if err := rows.StructScan(&m); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (r *SQL) ListLowStock(ctx context.Context) ([]model.StockEntry, error) {
	q := `SELECT id, product_id, current_stock, reserved_stock, available_stock, min_stock_level, reorder_point, reorder_quantity, total_stock_in, total_stock_out, is_low_stock, is_out_of_stock, created_at, updated_at
FROM stock_entry WHERE is_low_stock = TRUE ORDER BY available_stock ASC`
	rows, err := r.conn.QueryxContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.StockEntry, 0)
	for rows.Next() {
		var e model.StockEntry
		if err := rows.StructScan(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
