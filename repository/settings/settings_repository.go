package settings

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sportify/backend/model"
)

// SettingsRepository reads the single global settings row. Callers read it
// fresh per totals computation; no caching, so a tax-rate change takes
// effect on the next computation.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, req *model.UpdateSettingsRequest) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewSettingsRepository(conn *sqlx.DB) SettingsRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	if err := r.conn.GetContext(ctx, &s, "SELECT id, tax_rate, shipping_fee, free_shipping_threshold, updated_at FROM settings WHERE id = 1"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQL) Update(ctx context.Context, req *model.UpdateSettingsRequest) error {
	query := "UPDATE settings SET updated_at = NOW()"
	args := make([]any, 0, 3)

	if req.TaxRate != nil {
		query += ", tax_rate = ?"
		args = append(args, *req.TaxRate)
	}
	if req.ShippingFee != nil {
		query += ", shipping_fee = ?"
		args = append(args, *req.ShippingFee)
	}
	if req.FreeShippingThreshold != nil {
		query += ", free_shipping_threshold = ?"
		args = append(args, *req.FreeShippingThreshold)
	}

	query += " WHERE id = 1"
	_, err := r.conn.ExecContext(ctx, query, args...)
	return err
}
