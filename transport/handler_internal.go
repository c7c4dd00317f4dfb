package transport

import (
	"encoding/json"
	"net/http"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	validatorx "github.com/sportify/backend/utils/validator"
	"go.uber.org/zap"
)

// systemActorID marks movements performed by the service itself rather than
// a logged-in operator.
const systemActorID uint64 = 0

// InternalCancelOrder handles the delayed-expiration callback. Cancelling an
// order that already left pending is a conflict and the message is dropped
// by the caller.
func (s *RestHandler) InternalCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := pathID(r, "id")
	if orderID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.CancelOrder(r.Context(), orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) InternalUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := pathID(r, "id")
	if orderID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.UpdateOrderStatus(r.Context(), orderID, constant.OrderStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// InternalLowStockNotify receives low-stock alerts from the queue consumer.
// Delivery to the supplier is out of band; the alert is recorded in the logs
// for the ops dashboard.
func (s *RestHandler) InternalLowStockNotify(w http.ResponseWriter, r *http.Request) {
	var alert model.LowStockAlert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	logger.Warn(
		"low stock alert",
		zap.Uint64("product_id", alert.ProductID),
		zap.String("product_name", alert.ProductName),
		zap.Uint64("supplier_id", alert.SupplierID),
		zap.Int64("current_stock", alert.CurrentStock),
		zap.Int64("reorder_point", alert.ReorderPoint),
		zap.Int64("reorder_quantity", alert.ReorderQty),
	)

	writeSuccess(w, nil)
}

func (s *RestHandler) InternalListLowStock(w http.ResponseWriter, r *http.Request) {
	res, err := s.StockApp.ListLowStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalAddStock(w http.ResponseWriter, r *http.Request) {
	var req model.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.AddStock(r.Context(), systemActorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalRemoveStock(w http.ResponseWriter, r *http.Request) {
	var req model.RemoveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.RemoveStock(r.Context(), systemActorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalAdjustStock(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.AdjustStock(r.Context(), systemActorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// InternalReserveStock holds stock back outside the checkout flow, e.g. for
// a phone order taken by support.
func (s *RestHandler) InternalReserveStock(w http.ResponseWriter, r *http.Request) {
	var req model.ReserveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.StockApp.ReserveStock(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) InternalReleaseStock(w http.ResponseWriter, r *http.Request) {
	var req model.ReserveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.StockApp.ReleaseReservedStock(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) InternalGetStock(w http.ResponseWriter, r *http.Request) {
	productID := pathID(r, "product_id")
	if productID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.GetEntry(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalListMovements(w http.ResponseWriter, r *http.Request) {
	productID := pathID(r, "product_id")
	if productID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.ListMovements(r.Context(), productID, queryInt(r, "page", 1), queryInt(r, "per_page", 20))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalCreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.DiscountApp.CreateDiscount(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalListDiscounts(w http.ResponseWriter, r *http.Request) {
	res, err := s.DiscountApp.ListDiscounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalDeactivateDiscount(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.DiscountApp.DeactivateDiscount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) InternalGetSettings(w http.ResponseWriter, r *http.Request) {
	res, err := s.SettingsApp.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) InternalUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.SettingsApp.UpdateSettings(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
