package transport

import (
	"encoding/json"
	"net/http"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	utilsContext "github.com/sportify/backend/utils/context"
	"github.com/sportify/backend/utils/errors"
	validatorx "github.com/sportify/backend/utils/validator"
)

// GetCart handler
// @Summary Get cart
// @Description Get the current user's cart with recomputed totals
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Failure 401 {object} errors.CustomError
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.GetCart(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddCartItem handler
// @Summary Add cart item
// @Description Add a product to the cart, snapshotting its current price
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.AddCartItemRequest true "Add Item Request"
// @Success 200 {object} model.CartResponse
// @Failure 400 {object} errors.CustomError
// @Router /cart/item [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.AddItem(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCartItem handler
// @Summary Update cart item quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.UpdateCartItemRequest true "Update Item Request"
// @Success 200 {object} model.CartResponse
// @Failure 400 {object} errors.CustomError
// @Router /cart/item [put]
func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.UpdateItemQuantity(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveCartItem handler
// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} model.CartResponse
// @Failure 404 {object} errors.CustomError
// @Router /cart/item/{product_id} [delete]
func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	productID := pathID(r, "product_id")
	if productID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.RemoveItem(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplyCartDiscount handler
// @Summary Apply discount code
// @Description Attach a discount code to the cart and recompute totals
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.ApplyDiscountRequest true "Apply Discount Request"
// @Success 200 {object} model.CartResponse
// @Failure 400 {object} errors.CustomError
// @Router /cart/discount [post]
func (s *RestHandler) ApplyCartDiscount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.ApplyDiscount(ctx, userID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveCartDiscount handler
// @Summary Remove discount code
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Router /cart/discount [delete]
func (s *RestHandler) RemoveCartDiscount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.RemoveDiscount(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
