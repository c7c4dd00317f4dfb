package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrInsufficientStock
	ErrInvalidQuantity
	ErrDiscountNotFound
	ErrDiscountExpired
	ErrInvalidOrderStatus
	ErrEmptyCart
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrCredentialExists:   "email or phone already exists",
	ErrInvalidPassword:    "password invalid",
	ErrInsufficientStock:  "insufficient stock",
	ErrInvalidQuantity:    "quantity must be a positive integer",
	ErrDiscountNotFound:   "discount code not found",
	ErrDiscountExpired:    "discount code expired or inactive",
	ErrInvalidOrderStatus: "order status does not allow this operation",
	ErrEmptyCart:          "cart is empty",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrCredentialExists:   http.StatusBadRequest,
	ErrInvalidPassword:    http.StatusBadRequest,
	ErrInsufficientStock:  http.StatusBadRequest,
	ErrInvalidQuantity:    http.StatusBadRequest,
	ErrDiscountNotFound:   http.StatusBadRequest,
	ErrDiscountExpired:    http.StatusBadRequest,
	ErrInvalidOrderStatus: http.StatusBadRequest,
	ErrEmptyCart:          http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrCredentialExists:   "0005",
	ErrInvalidPassword:    "0006",
	ErrInsufficientStock:  "0007",
	ErrInvalidQuantity:    "0008",
	ErrDiscountNotFound:   "0009",
	ErrDiscountExpired:    "0010",
	ErrInvalidOrderStatus: "0011",
	ErrEmptyCart:          "0012",
}
