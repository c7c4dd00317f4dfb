package order

import (
	"context"
	"strconv"
	"time"

	"github.com/sportify/backend/cmd/config"
	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/pricing"
	cartrepo "github.com/sportify/backend/repository/cart"
	discountrepo "github.com/sportify/backend/repository/discount"
	orderrepo "github.com/sportify/backend/repository/order"
	productrepo "github.com/sportify/backend/repository/product"
	settingsrepo "github.com/sportify/backend/repository/settings"
	stockrepo "github.com/sportify/backend/repository/stock"
	txrepo "github.com/sportify/backend/repository/tx"
	"github.com/sportify/backend/thirdparty/rabbitmq"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, userID uint64) (*model.OrderResponse, error)
	PayOrder(ctx context.Context, orderID uint64) error
	CancelOrder(ctx context.Context, orderID uint64) error
	UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) error
	GetOrder(ctx context.Context, userID, orderID uint64) (*model.OrderDetail, error)
	ListOrders(ctx context.Context, userID uint64) ([]model.OrderDetail, error)
}

type orderAppImpl struct {
	config       *config.Config
	txRepo       txrepo.TxRepository
	orderRepo    orderrepo.OrderRepository
	cartRepo     cartrepo.CartRepository
	stockRepo    stockrepo.StockRepository
	productRepo  productrepo.ProductRepository
	discountRepo discountrepo.DiscountRepository
	settingsRepo settingsrepo.SettingsRepository
	publisher    rabbitmq.OrderPublisher
	now          func() time.Time
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, cartRepo cartrepo.CartRepository, stockRepo stockrepo.StockRepository, productRepo productrepo.ProductRepository, discountRepo discountrepo.DiscountRepository, settingsRepo settingsrepo.SettingsRepository, publisher rabbitmq.OrderPublisher) OrderApp {
	return &orderAppImpl{
		config:       config,
		txRepo:       txRepo,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// CreateOrder turns the user's cart into an order: the totals breakdown is
// computed once from the cart items, the applied discount and the fresh tax
// rate, snapshotted onto the order, and stock is reserved per item inside
// one transaction.
func (s *orderAppImpl) CreateOrder(ctx context.Context, userID uint64) (*model.OrderResponse, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		logger.Error("[CreateOrder] get cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cart == nil {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	items, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		logger.Error("[CreateOrder] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	// Re-validate the discount at order time: expired codes reject the
	// order instead of silently pricing at zero
	var discount *model.Discount
	if cart.DiscountCode != nil {
		discount, err = s.discountRepo.GetByCode(ctx, *cart.DiscountCode)
		if err != nil {
			logger.Error("[CreateOrder] get discount", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if discount == nil {
			return nil, errors.SetCustomError(constant.ErrDiscountNotFound)
		}
		if !discount.IsValid(s.now()) {
			return nil, errors.SetCustomError(constant.ErrDiscountExpired)
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Error("[CreateOrder] get settings", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	lineItems := make([]pricing.LineItem, 0, len(items))
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, pricing.LineItem{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		orderItems = append(orderItems, model.OrderItem{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
	}

	subtotal := pricing.Subtotal(lineItems)
	shipping := settings.ShippingFee
	if settings.FreeShippingThreshold > 0 && subtotal >= settings.FreeShippingThreshold {
		shipping = 0
	}

	breakdown, err := pricing.Compute(lineItems, discount, s.now(), settings.TaxRate, shipping)
	if err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// Reserve stock per item; the conditional update fails the whole
	// transaction on the first product that cannot cover its quantity
	for _, it := range items {
		if err := s.stockRepo.ReserveStockTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, constant.ErrInsufficientStock) {
				logger.Info("[CreateOrder] insufficient stock", zap.Uint64("product_id", it.ProductID), zap.Int64("need", it.Quantity))
				return nil, err
			}
			logger.Error("[CreateOrder] reserve stock", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.stockRepo.RefreshFlagsTx(ctx, tx, it.ProductID); err != nil {
			logger.Error("[CreateOrder] refresh flags", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	expiresAt := s.now().Add(s.config.Order.OrderExpiration)
	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		UserID:         userID,
		Status:         constant.OrderStatusPending,
		PaymentStatus:  constant.PaymentStatusPending,
		DiscountCode:   cart.DiscountCode,
		Subtotal:       breakdown.Subtotal,
		DiscountAmount: breakdown.DiscountAmount,
		Tax:            breakdown.Tax,
		ShippingCost:   breakdown.ShippingCost,
		Total:          breakdown.Total,
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, orderItems); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := s.cartRepo.ClearCart(ctx, cart.ID); err != nil {
		logger.Error("[CreateOrder] clear cart", zap.String("error", err.Error()))
	}

	if s.publisher != nil {
		msg := rabbitmq.OrderExpirationMessage{
			OrderID:   orderID,
			UserID:    userID,
			ExpiresAt: expiresAt,
		}
		if err := s.publisher.PublishOrderExpiration(msg); err != nil {
			logger.Error("[CreateOrder] publish order expiration", zap.String("error", err.Error()))
		}
	}

	return &model.OrderResponse{
		OrderID:        orderID,
		Subtotal:       pricing.Round2(breakdown.Subtotal),
		DiscountAmount: pricing.Round2(breakdown.DiscountAmount),
		Tax:            pricing.Round2(breakdown.Tax),
		ShippingCost:   pricing.Round2(breakdown.ShippingCost),
		Total:          pricing.Round2(breakdown.Total),
		ExpiresAt:      expiresAt,
	}, nil
}

// PayOrder converts the order's reservations into actual stock outflow:
// one stock_out movement per line, flags refreshed, payment marked paid and
// fulfilment moved to processing.
func (s *orderAppImpl) PayOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[PayOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	detail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[PayOrder] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if detail.Status != constant.OrderStatusPending ||
		!constant.CanTransitionPayment(detail.PaymentStatus, constant.PaymentStatusPaid) {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[PayOrder] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	type lowStockCandidate struct {
		productID    uint64
		newStock     int64
		reorderPoint int64
		reorderQty   int64
	}
	candidates := make([]lowStockCandidate, 0, len(items))

	for _, it := range items {
		entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, it.ProductID)
		if err != nil || entry == nil {
			logger.Error("[PayOrder] get stock entry", zap.Uint64("product_id", it.ProductID))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if err := s.stockRepo.ConsumeReservedTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, constant.ErrInsufficientStock) {
				return err
			}
			logger.Error("[PayOrder] consume reserved", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		newStock := entry.CurrentStock - it.Quantity
		movement := &model.StockMovement{
			ProductID:     it.ProductID,
			Type:          constant.MovementStockOut,
			Quantity:      it.Quantity,
			PreviousStock: entry.CurrentStock,
			NewStock:      newStock,
			Reason:        "order payment",
			PerformedBy:   detail.UserID,
			Reference:     orderReference(orderID),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[PayOrder] insert movement", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if err := s.stockRepo.RefreshFlagsTx(ctx, tx, it.ProductID); err != nil {
			logger.Error("[PayOrder] refresh flags", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if newStock <= entry.ReorderPoint {
			candidates = append(candidates, lowStockCandidate{
				productID:    it.ProductID,
				newStock:     newStock,
				reorderPoint: entry.ReorderPoint,
				reorderQty:   entry.ReorderQty,
			})
		}
	}

	if err := s.orderRepo.UpdatePaymentStatusTx(ctx, tx, orderID, constant.PaymentStatusPaid); err != nil {
		logger.Error("[PayOrder] update payment status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, constant.OrderStatusProcessing); err != nil {
		logger.Error("[PayOrder] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[PayOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	for _, c := range candidates {
		s.publishLowStock(ctx, c.productID, c.newStock, c.reorderPoint, c.reorderQty)
	}

	return nil
}

// CancelOrder releases reservations for unpaid orders, or restocks with a
// return movement and refunds for paid ones. Only reachable before shipment.
func (s *orderAppImpl) CancelOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	detail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[CancelOrder] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if !constant.CanTransitionOrder(detail.Status, constant.OrderStatusCancelled) {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[CancelOrder] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	// The payment state machine picks the branch: a pending payment can only
	// fail, a settled one refunds.
	switch {
	case constant.CanTransitionPayment(detail.PaymentStatus, constant.PaymentStatusFailed):
		// Unpaid: stock never left the ledger, drop the reservations and
		// close the payment window
		for _, it := range items {
			if err := s.stockRepo.ReleaseReservedStockTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
				logger.Error("[CancelOrder] release reservation", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			if err := s.stockRepo.RefreshFlagsTx(ctx, tx, it.ProductID); err != nil {
				logger.Error("[CancelOrder] refresh flags", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
		}
		if err := s.orderRepo.UpdatePaymentStatusTx(ctx, tx, orderID, constant.PaymentStatusFailed); err != nil {
			logger.Error("[CancelOrder] update payment status", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	case constant.CanTransitionPayment(detail.PaymentStatus, constant.PaymentStatusRefunded):
		// Paid: stock was consumed, put it back as a return and refund
		for _, it := range items {
			entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, it.ProductID)
			if err != nil || entry == nil {
				logger.Error("[CancelOrder] get stock entry", zap.Uint64("product_id", it.ProductID))
				return errors.SetCustomError(constant.ErrInternal)
			}
			if err := s.stockRepo.AddStockTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
				logger.Error("[CancelOrder] restock", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			movement := &model.StockMovement{
				ProductID:     it.ProductID,
				Type:          constant.MovementReturn,
				Quantity:      it.Quantity,
				PreviousStock: entry.CurrentStock,
				NewStock:      entry.CurrentStock + it.Quantity,
				Reason:        "order cancelled",
				PerformedBy:   detail.UserID,
				Reference:     orderReference(orderID),
			}
			if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
				logger.Error("[CancelOrder] insert movement", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			if err := s.stockRepo.RefreshFlagsTx(ctx, tx, it.ProductID); err != nil {
				logger.Error("[CancelOrder] refresh flags", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
		}
		if err := s.orderRepo.UpdatePaymentStatusTx(ctx, tx, orderID, constant.PaymentStatusRefunded); err != nil {
			logger.Error("[CancelOrder] update payment status", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	default:
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, constant.OrderStatusCancelled); err != nil {
		logger.Error("[CancelOrder] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// UpdateOrderStatus advances the fulfilment state machine. Cancellation goes
// through CancelOrder so stock is handled; everything else is a plain
// transition guarded by the state machine.
func (s *orderAppImpl) UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) error {
	if status == constant.OrderStatusCancelled {
		return s.CancelOrder(ctx, orderID)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateOrderStatus] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	detail, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if !constant.CanTransitionOrder(detail.Status, status) {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, status); err != nil {
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateOrderStatus] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, userID, orderID uint64) (*model.OrderDetail, error) {
	detail, err := s.orderRepo.GetOrderDetail(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order detail", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil || detail.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return detail, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListOrders] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) publishLowStock(ctx context.Context, productID uint64, newStock, reorderPoint, reorderQty int64) {
	if s.publisher == nil {
		return
	}

	detail, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || detail == nil {
		logger.Error("[publishLowStock] get product", zap.Uint64("product_id", productID))
		return
	}

	alert := model.LowStockAlert{
		ProductID:     productID,
		ProductName:   detail.Name,
		SupplierID:    detail.SupplierID,
		SupplierEmail: detail.SupplierEmail,
		CurrentStock:  newStock,
		ReorderPoint:  reorderPoint,
		ReorderQty:    reorderQty,
	}
	if err := s.publisher.PublishLowStockAlert(alert); err != nil {
		logger.Error("[publishLowStock] publish alert", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
	}
}

func orderReference(orderID uint64) string {
	return "order:" + strconv.FormatUint(orderID, 10)
}
