package model

type ProductListItem struct {
	ID             uint64  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	SupplierName   string  `db:"supplier_name" json:"supplier_name"`
	AvailableStock int64   `db:"available_stock" json:"available_stock"`
	Price          float64 `db:"price" json:"price"`
	IsLowStock     bool    `db:"is_low_stock" json:"is_low_stock"`
	IsOutOfStock   bool    `db:"is_out_of_stock" json:"is_out_of_stock"`
}

type ProductDetail struct {
	ID             uint64  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Description    string  `db:"description" json:"description,omitempty"`
	SupplierID     uint64  `db:"supplier_id" json:"supplier_id"`
	SupplierName   string  `db:"supplier_name" json:"supplier_name"`
	SupplierEmail  string  `db:"supplier_email" json:"-"`
	AvailableStock int64   `db:"available_stock" json:"available_stock"`
	Price          float64 `db:"price" json:"price"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}
