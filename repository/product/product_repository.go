package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	listProductsBase = `SELECT p.id, p.name, p.price, s.name as supplier_name,
COALESCE(se.available_stock, 0) as available_stock,
COALESCE(se.is_low_stock, FALSE) as is_low_stock,
COALESCE(se.is_out_of_stock, TRUE) as is_out_of_stock
FROM product p
JOIN supplier s ON p.supplier_id = s.id
LEFT JOIN stock_entry se ON se.product_id = p.id`

	countProductsQuery = `SELECT COUNT(*) FROM product`

	getProductDetail = `SELECT p.id, p.name, p.description, p.price, s.id as supplier_id, s.name as supplier_name, s.email as supplier_email,
COALESCE(se.available_stock, 0) as available_stock
FROM product p
JOIN supplier s ON p.supplier_id = s.id
LEFT JOIN stock_entry se ON se.product_id = p.id
WHERE p.id = ?`
)

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error) {
	offset := (page - 1) * perPage

	query := listProductsBase + " ORDER BY p.id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}

	// get total count
	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsQuery); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	if err := s.conn.QueryRowxContext(ctx, getProductDetail, id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}
