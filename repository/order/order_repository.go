package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error)
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.PaymentStatus) error
	GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.OrderDetail, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrderQuery = "INSERT INTO `order` (user_id, status, payment_status, discount_code, subtotal, discount_amount, tax, shipping_cost, total, expires_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	orderDetailColumns = "SELECT id, user_id, status, payment_status, discount_code, subtotal, discount_amount, tax, shipping_cost, total, expires_at, created_at FROM `order`"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		req.UserID, req.Status, req.PaymentStatus, req.DiscountCode,
		req.Subtotal, req.DiscountAmount, req.Tax, req.ShippingCost, req.Total, req.ExpiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	q := "INSERT INTO order_item (order_id, product_id, quantity, unit_price, selected_size, selected_color) VALUES (?, ?, ?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.SelectedSize, it.SelectedColor); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error) {
	q := "SELECT id, order_id, product_id, quantity, unit_price, selected_size, selected_color FROM order_item WHERE order_id = ? ORDER BY id"
	rows, err := tx.QueryxContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ? WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.PaymentStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET payment_status = ? WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	row := tx.QueryRowxContext(ctx, orderDetailColumns+" WHERE id = ? FOR UPDATE", orderID)
	if err := row.StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := r.conn.GetContext(ctx, &detail, orderDetailColumns+" WHERE id = ?", orderID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	rows, err := r.conn.QueryxContext(ctx, orderDetailColumns+" WHERE user_id = ? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.OrderDetail, 0)
	for rows.Next() {
		var d model.OrderDetail
		if err := rows.StructScan(&d); err != nil {
			return nil, err
		}
		orders = append(orders, d)
	}
	return orders, nil
}
