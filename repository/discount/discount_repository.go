package discount

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/model"
)

type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Discount, error)
	Create(ctx context.Context, d *model.Discount) (uint64, error)
	List(ctx context.Context) ([]model.Discount, error)
	SetActive(ctx context.Context, id uint64, active bool) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewDiscountRepository(conn *sqlx.DB) DiscountRepository {
	return &SQL{conn: conn}
}

const (
	getDiscountQuery = `SELECT id, code, type, value, start_date, end_date, is_active, created_at FROM discount WHERE code = ?`

	insertDiscountQuery = `INSERT INTO discount (code, type, value, start_date, end_date, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`
)

// GetByCode looks a code up case-insensitively; codes are stored uppercase.
func (r *SQL) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	var d model.Discount
	if err := r.conn.GetContext(ctx, &d, getDiscountQuery, strings.ToUpper(code)); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQL) Create(ctx context.Context, d *model.Discount) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, insertDiscountQuery,
		strings.ToUpper(d.Code), d.Type, d.Value, d.StartDate, d.EndDate, d.IsActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) List(ctx context.Context) ([]model.Discount, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT id, code, type, value, start_date, end_date, is_active, created_at FROM discount ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	discounts := make([]model.Discount, 0)
	for rows.Next() {
		var d model.Discount
		if err := rows.StructScan(&d); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}

func (r *SQL) SetActive(ctx context.Context, id uint64, active bool) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE discount SET is_active = ? WHERE id = ?", active, id)
	return err
}
