package transport

import (
	"net/http"

	"github.com/sportify/backend/constant"
	utilsContext "github.com/sportify/backend/utils/context"
	"github.com/sportify/backend/utils/errors"
)

// CreateOrder handler
// @Summary Create order
// @Description Create an order from the current cart, reserving stock
// @Tags Order
// @Produce json
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /order [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.CreateOrder(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListOrders handler
// @Summary List orders
// @Tags Order
// @Produce json
// @Success 200 {array} model.OrderDetail
// @Router /order [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.ListOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderDetail
// @Failure 404 {object} errors.CustomError
// @Router /order/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID := pathID(r, "id")
	if orderID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PayOrder handler
// @Summary Pay order
// @Description Confirm payment, converting reservations into stock-out movements
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} successResponse
// @Failure 409 {object} errors.CustomError
// @Router /order/{id}/pay [post]
func (s *RestHandler) PayOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID := pathID(r, "id")
	if orderID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	// ownership gate before the payment path, which is also reachable
	// internally without a user
	if _, err := s.OrderApp.GetOrder(ctx, userID, orderID); err != nil {
		writeError(w, err)
		return
	}

	if err := s.OrderApp.PayOrder(ctx, orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CancelOrder handler
// @Summary Cancel order
// @Description Cancel an order, releasing reservations or restocking paid items
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} successResponse
// @Failure 409 {object} errors.CustomError
// @Router /order/{id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID := pathID(r, "id")
	if orderID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if _, err := s.OrderApp.GetOrder(ctx, userID, orderID); err != nil {
		writeError(w, err)
		return
	}

	if err := s.OrderApp.CancelOrder(ctx, orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
