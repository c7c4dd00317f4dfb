package constant

type MovementType string

const (
	MovementStockIn    MovementType = "stock_in"
	MovementStockOut   MovementType = "stock_out"
	MovementAdjustment MovementType = "adjustment"
	MovementDamage     MovementType = "damage"
	MovementReturn     MovementType = "return"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)
