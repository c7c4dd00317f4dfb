package constant

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSupplier UserRole = "supplier"
	RoleStaff    UserRole = "staff"
)
