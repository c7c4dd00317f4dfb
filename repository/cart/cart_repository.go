package cart

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/pricing"
)

type CartRepository interface {
	GetByUser(ctx context.Context, userID uint64) (*model.Cart, error)
	EnsureCart(ctx context.Context, userID uint64) (uint64, error)
	GetItems(ctx context.Context, cartID uint64) ([]model.CartItem, error)
	UpsertItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, productID uint64, qty int64) error
	DeleteItem(ctx context.Context, cartID, productID uint64) error
	SetDiscountCode(ctx context.Context, cartID uint64, code *string) error
	SaveTotals(ctx context.Context, cartID uint64, b pricing.Breakdown) error
	ClearCart(ctx context.Context, cartID uint64) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

const getCartQuery = `SELECT id, user_id, discount_code, subtotal, discount_amount, tax, shipping_cost, total, created_at, updated_at
FROM cart WHERE user_id = ?`

func (r *SQL) GetByUser(ctx context.Context, userID uint64) (*model.Cart, error) {
	var c model.Cart
	if err := r.conn.GetContext(ctx, &c, getCartQuery, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// EnsureCart returns the user's cart ID, creating the row on first use.
func (r *SQL) EnsureCart(ctx context.Context, userID uint64) (uint64, error) {
	existing, err := r.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	res, err := r.conn.ExecContext(ctx, "INSERT INTO cart (user_id, created_at) VALUES (?, NOW())", userID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetItems(ctx context.Context, cartID uint64) ([]model.CartItem, error) {
	q := `SELECT id, cart_id, product_id, quantity, unit_price, selected_size, selected_color FROM cart_item WHERE cart_id = ? ORDER BY id`
	rows, err := r.conn.QueryxContext(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CartItem, 0)
	for rows.Next() {
		var it model.CartItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// UpsertItem adds quantity to an existing line for the same variant or
// inserts a new one. Unit price keeps the first snapshot.
func (r *SQL) UpsertItem(ctx context.Context, item *model.CartItem) error {
	q := `INSERT INTO cart_item (cart_id, product_id, quantity, unit_price, selected_size, selected_color)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`
	_, err := r.conn.ExecContext(ctx, q, item.CartID, item.ProductID, item.Quantity, item.UnitPrice, item.SelectedSize, item.SelectedColor)
	return err
}

func (r *SQL) UpdateItemQuantity(ctx context.Context, cartID, productID uint64, qty int64) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE cart_item SET quantity = ? WHERE cart_id = ? AND product_id = ?", qty, cartID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQL) DeleteItem(ctx context.Context, cartID, productID uint64) error {
	_, err := r.conn.ExecContext(ctx, "DELETE FROM cart_item WHERE cart_id = ? AND product_id = ?", cartID, productID)
	return err
}

func (r *SQL) SetDiscountCode(ctx context.Context, cartID uint64, code *string) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE cart SET discount_code = ? WHERE id = ?", code, cartID)
	return err
}

// SaveTotals persists the whole breakdown in one statement so the stored
// values can never be partially updated.
func (r *SQL) SaveTotals(ctx context.Context, cartID uint64, b pricing.Breakdown) error {
	q := `UPDATE cart SET subtotal = ?, discount_amount = ?, tax = ?, shipping_cost = ?, total = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, q, b.Subtotal, b.DiscountAmount, b.Tax, b.ShippingCost, b.Total, cartID)
	return err
}

func (r *SQL) ClearCart(ctx context.Context, cartID uint64) error {
	if _, err := r.conn.ExecContext(ctx, "DELETE FROM cart_item WHERE cart_id = ?", cartID); err != nil {
		return err
	}
	q := `UPDATE cart SET discount_code = NULL, subtotal = 0, discount_amount = 0, tax = 0, shipping_cost = 0, total = 0, updated_at = NOW() WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, q, cartID)
	return err
}
