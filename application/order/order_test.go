package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	apporder "github.com/sportify/backend/application/order"
	"github.com/sportify/backend/cmd/config"
	"github.com/sportify/backend/constant"
	cartmocks "github.com/sportify/backend/mocks/repository/cart"
	discountmocks "github.com/sportify/backend/mocks/repository/discount"
	ordermocks "github.com/sportify/backend/mocks/repository/order"
	productmocks "github.com/sportify/backend/mocks/repository/product"
	settingsmocks "github.com/sportify/backend/mocks/repository/settings"
	stockmocks "github.com/sportify/backend/mocks/repository/stock"
	txmocks "github.com/sportify/backend/mocks/repository/tx"
	rabbitmqmocks "github.com/sportify/backend/mocks/thirdparty/rabbitmq"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/thirdparty/rabbitmq"
	cerr "github.com/sportify/backend/utils/errors"
	"github.com/stretchr/testify/mock"
)

type orderFields struct {
	txRepo       *txmocks.TxRepository
	orderRepo    *ordermocks.OrderRepository
	cartRepo     *cartmocks.CartRepository
	stockRepo    *stockmocks.StockRepository
	productRepo  *productmocks.ProductRepository
	discountRepo *discountmocks.DiscountRepository
	settingsRepo *settingsmocks.SettingsRepository
}

func newOrderFields(t *testing.T) orderFields {
	return orderFields{
		txRepo:       txmocks.NewTxRepository(t),
		orderRepo:    ordermocks.NewOrderRepository(t),
		cartRepo:     cartmocks.NewCartRepository(t),
		stockRepo:    stockmocks.NewStockRepository(t),
		productRepo:  productmocks.NewProductRepository(t),
		discountRepo: discountmocks.NewDiscountRepository(t),
		settingsRepo: settingsmocks.NewSettingsRepository(t),
	}
}

func (f orderFields) app() apporder.OrderApp {
	return f.appWith(nil)
}

func (f orderFields) appWith(pub rabbitmq.OrderPublisher) apporder.OrderApp {
	cfg := &config.Config{
		Order: config.OrderConfig{OrderExpiration: 30 * time.Minute},
	}
	return apporder.NewOrderApp(cfg, f.txRepo, f.orderRepo, f.cartRepo, f.stockRepo, f.productRepo, f.discountRepo, f.settingsRepo, pub)
}

var nilTx = (*sqlx.Tx)(nil)

func strPtr(s string) *string { return &s }

func TestOrderApp_CreateOrder(t *testing.T) {
	cartItems := []model.CartItem{
		{CartID: 11, ProductID: 1, Quantity: 2, UnitPrice: 250},
		{CartID: 11, ProductID: 2, Quantity: 1, UnitPrice: 500},
	}
	settings := &model.Settings{ID: 1, TaxRate: 0.08, ShippingFee: 50, FreeShippingThreshold: 2000}

	t.Run("success: snapshots breakdown and reserves every line", func(t *testing.T) {
		f := newOrderFields(t)
		pub := rabbitmqmocks.NewOrderPublisher(t)
		f.cartRepo.On("GetByUser", mock.Anything, uint64(5)).Return(&model.Cart{ID: 11, UserID: 5}, nil).Once()
		f.cartRepo.On("GetItems", mock.Anything, uint64(11)).Return(cartItems, nil).Once()
		f.settingsRepo.On("Get", mock.Anything).Return(settings, nil).Once()
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.stockRepo.On("ReserveStockTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.On("ReserveStockTx", mock.Anything, nilTx, uint64(2), int64(1)).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(2)).Return(nil).Once()
		f.orderRepo.
			On("InsertOrderTx", mock.Anything, nilTx, mock.MatchedBy(func(o *model.InsertOrderTxItem) bool {
				return o.UserID == 5 &&
					o.Status == constant.OrderStatusPending &&
					o.PaymentStatus == constant.PaymentStatusPending &&
					o.Subtotal == 1000 &&
					o.DiscountAmount == 0 &&
					o.Tax == 80 &&
					o.ShippingCost == 50 &&
					o.Total == 1130
			})).
			Return(uint64(42), nil).
			Once()
		f.orderRepo.
			On("InsertOrderItemsTx", mock.Anything, nilTx, uint64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
				return len(items) == 2 && items[0].UnitPrice == 250 && items[1].UnitPrice == 500
			})).
			Return(nil).
			Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
		f.cartRepo.On("ClearCart", mock.Anything, uint64(11)).Return(nil).Once()
		pub.
			On("PublishOrderExpiration", mock.MatchedBy(func(m rabbitmq.OrderExpirationMessage) bool {
				return m.OrderID == 42 && m.UserID == 5
			})).
			Return(nil).
			Once()

		got, err := f.appWith(pub).CreateOrder(context.Background(), 5)
		if err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}
		if got.OrderID != 42 {
			t.Fatalf("CreateOrder() order id = %d, want 42", got.OrderID)
		}
		if got.Total != 1130 {
			t.Fatalf("CreateOrder() total = %v, want 1130", got.Total)
		}
	})

	t.Run("error: empty cart", func(t *testing.T) {
		f := newOrderFields(t)
		f.cartRepo.On("GetByUser", mock.Anything, uint64(5)).Return(&model.Cart{ID: 11, UserID: 5}, nil).Once()
		f.cartRepo.On("GetItems", mock.Anything, uint64(11)).Return(nil, nil).Once()

		_, err := f.app().CreateOrder(context.Background(), 5)
		if !cerr.Is(err, constant.ErrEmptyCart) {
			t.Fatalf("CreateOrder() error = %v, want ErrEmptyCart", err)
		}
	})

	t.Run("error: discount expired between cart and checkout", func(t *testing.T) {
		f := newOrderFields(t)
		f.cartRepo.
			On("GetByUser", mock.Anything, uint64(5)).
			Return(&model.Cart{ID: 11, UserID: 5, DiscountCode: strPtr("SAVE10")}, nil).
			Once()
		f.cartRepo.On("GetItems", mock.Anything, uint64(11)).Return(cartItems, nil).Once()
		f.discountRepo.
			On("GetByCode", mock.Anything, "SAVE10").
			Return(&model.Discount{
				Code:      "SAVE10",
				Type:      constant.DiscountTypePercentage,
				Value:     10,
				StartDate: time.Now().Add(-48 * time.Hour),
				EndDate:   time.Now().Add(-time.Hour),
				IsActive:  true,
			}, nil).
			Once()

		_, err := f.app().CreateOrder(context.Background(), 5)
		if !cerr.Is(err, constant.ErrDiscountExpired) {
			t.Fatalf("CreateOrder() error = %v, want ErrDiscountExpired", err)
		}
	})

	t.Run("error: one line short on stock fails the whole order", func(t *testing.T) {
		f := newOrderFields(t)
		f.cartRepo.On("GetByUser", mock.Anything, uint64(5)).Return(&model.Cart{ID: 11, UserID: 5}, nil).Once()
		f.cartRepo.On("GetItems", mock.Anything, uint64(11)).Return(cartItems, nil).Once()
		f.settingsRepo.On("Get", mock.Anything).Return(settings, nil).Once()
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.stockRepo.On("ReserveStockTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.stockRepo.
			On("ReserveStockTx", mock.Anything, nilTx, uint64(2), int64(1)).
			Return(cerr.SetCustomError(constant.ErrInsufficientStock)).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		_, err := f.app().CreateOrder(context.Background(), 5)
		if !cerr.Is(err, constant.ErrInsufficientStock) {
			t.Fatalf("CreateOrder() error = %v, want ErrInsufficientStock", err)
		}
	})
}

func TestOrderApp_PayOrder(t *testing.T) {
	orderItems := []model.OrderItem{
		{OrderID: 42, ProductID: 1, Quantity: 2, UnitPrice: 250},
	}

	t.Run("success: consumes reservation and records stock_out", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusPending, PaymentStatus: constant.PaymentStatusPending}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.stockRepo.
			On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
			Return(&model.StockEntry{ProductID: 1, CurrentStock: 10, ReservedStock: 2, AvailableStock: 8, ReorderPoint: 3}, nil).
			Once()
		f.stockRepo.On("ConsumeReservedTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.
			On("InsertMovementTx", mock.Anything, nilTx, mock.MatchedBy(func(m *model.StockMovement) bool {
				return m.Type == constant.MovementStockOut &&
					m.Quantity == 2 &&
					m.PreviousStock == 10 &&
					m.NewStock == 8 &&
					m.Reference == "order:42"
			})).
			Return(nil).
			Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.orderRepo.On("UpdatePaymentStatusTx", mock.Anything, nilTx, uint64(42), constant.PaymentStatusPaid).Return(nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), constant.OrderStatusProcessing).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

		if err := f.app().PayOrder(context.Background(), 42); err != nil {
			t.Fatalf("PayOrder() error = %v", err)
		}
	})

	t.Run("error: paying a cancelled order", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusCancelled, PaymentStatus: constant.PaymentStatusPending}, nil).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().PayOrder(context.Background(), 42)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("PayOrder() error = %v, want ErrInvalidOrderStatus", err)
		}
	})

	t.Run("error: double payment", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusProcessing, PaymentStatus: constant.PaymentStatusPaid}, nil).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().PayOrder(context.Background(), 42)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("PayOrder() error = %v, want ErrInvalidOrderStatus", err)
		}
	})

	t.Run("error: failed payment cannot be retried", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusPending, PaymentStatus: constant.PaymentStatusFailed}, nil).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().PayOrder(context.Background(), 42)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("PayOrder() error = %v, want ErrInvalidOrderStatus", err)
		}
	})

	t.Run("error: unknown order", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.On("GetOrderDetailTx", mock.Anything, nilTx, uint64(404)).Return(nil, nil).Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().PayOrder(context.Background(), 404)
		if !cerr.Is(err, constant.ErrNotFound) {
			t.Fatalf("PayOrder() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("success: consumption at the reorder point raises one alert", func(t *testing.T) {
		f := newOrderFields(t)
		pub := rabbitmqmocks.NewOrderPublisher(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusPending, PaymentStatus: constant.PaymentStatusPending}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.stockRepo.
			On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
			Return(&model.StockEntry{ProductID: 1, CurrentStock: 10, ReservedStock: 2, AvailableStock: 8, ReorderPoint: 8, ReorderQty: 25}, nil).
			Once()
		f.stockRepo.On("ConsumeReservedTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.On("InsertMovementTx", mock.Anything, nilTx, mock.Anything).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.orderRepo.On("UpdatePaymentStatusTx", mock.Anything, nilTx, uint64(42), constant.PaymentStatusPaid).Return(nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), constant.OrderStatusProcessing).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
		f.productRepo.
			On("GetByID", mock.Anything, uint64(1)).
			Return(&model.ProductDetail{ID: 1, Name: "Court Shoe", SupplierID: 3, SupplierEmail: "orders@acme.test"}, nil).
			Once()
		pub.
			On("PublishLowStockAlert", model.LowStockAlert{
				ProductID:     1,
				ProductName:   "Court Shoe",
				SupplierID:    3,
				SupplierEmail: "orders@acme.test",
				CurrentStock:  8,
				ReorderPoint:  8,
				ReorderQty:    25,
			}).
			Return(nil).
			Once()

		if err := f.appWith(pub).PayOrder(context.Background(), 42); err != nil {
			t.Fatalf("PayOrder() error = %v", err)
		}
	})
}

func TestOrderApp_CancelOrder(t *testing.T) {
	orderItems := []model.OrderItem{
		{OrderID: 42, ProductID: 1, Quantity: 2, UnitPrice: 250},
	}

	t.Run("unpaid: releases reservations and fails the payment", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusPending, PaymentStatus: constant.PaymentStatusPending}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.stockRepo.On("ReleaseReservedStockTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.orderRepo.On("UpdatePaymentStatusTx", mock.Anything, nilTx, uint64(42), constant.PaymentStatusFailed).Return(nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), constant.OrderStatusCancelled).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

		if err := f.app().CancelOrder(context.Background(), 42); err != nil {
			t.Fatalf("CancelOrder() error = %v", err)
		}
	})

	t.Run("paid: restocks as return and refunds", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusProcessing, PaymentStatus: constant.PaymentStatusPaid}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.stockRepo.
			On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
			Return(&model.StockEntry{ProductID: 1, CurrentStock: 8, AvailableStock: 8}, nil).
			Once()
		f.stockRepo.On("AddStockTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.
			On("InsertMovementTx", mock.Anything, nilTx, mock.MatchedBy(func(m *model.StockMovement) bool {
				return m.Type == constant.MovementReturn &&
					m.Quantity == 2 &&
					m.PreviousStock == 8 &&
					m.NewStock == 10 &&
					m.Reference == "order:42"
			})).
			Return(nil).
			Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.orderRepo.On("UpdatePaymentStatusTx", mock.Anything, nilTx, uint64(42), constant.PaymentStatusRefunded).Return(nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), constant.OrderStatusCancelled).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

		if err := f.app().CancelOrder(context.Background(), 42); err != nil {
			t.Fatalf("CancelOrder() error = %v", err)
		}
	})

	t.Run("partially refunded: cancellation completes the refund", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusProcessing, PaymentStatus: constant.PaymentStatusPartiallyRefunded}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.stockRepo.
			On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
			Return(&model.StockEntry{ProductID: 1, CurrentStock: 8, AvailableStock: 8}, nil).
			Once()
		f.stockRepo.On("AddStockTx", mock.Anything, nilTx, uint64(1), int64(2)).Return(nil).Once()
		f.stockRepo.On("InsertMovementTx", mock.Anything, nilTx, mock.Anything).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
		f.orderRepo.On("UpdatePaymentStatusTx", mock.Anything, nilTx, uint64(42), constant.PaymentStatusRefunded).Return(nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), constant.OrderStatusCancelled).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

		if err := f.app().CancelOrder(context.Background(), 42); err != nil {
			t.Fatalf("CancelOrder() error = %v", err)
		}
	})

	t.Run("error: refunded order cannot be cancelled again", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusProcessing, PaymentStatus: constant.PaymentStatusRefunded}, nil).
			Once()
		f.orderRepo.On("GetOrderItemsTx", mock.Anything, nilTx, uint64(42)).Return(orderItems, nil).Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().CancelOrder(context.Background(), 42)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("CancelOrder() error = %v, want ErrInvalidOrderStatus", err)
		}
	})

	t.Run("error: shipped orders cannot be cancelled", func(t *testing.T) {
		f := newOrderFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.orderRepo.
			On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 5, Status: constant.OrderStatusShipped, PaymentStatus: constant.PaymentStatusPaid}, nil).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().CancelOrder(context.Background(), 42)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("CancelOrder() error = %v, want ErrInvalidOrderStatus", err)
		}
	})
}

func TestOrderApp_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    constant.OrderStatus
		to      constant.OrderStatus
		wantErr bool
	}{
		{name: "processing to shipped", from: constant.OrderStatusProcessing, to: constant.OrderStatusShipped},
		{name: "shipped to delivered", from: constant.OrderStatusShipped, to: constant.OrderStatusDelivered},
		{name: "pending cannot skip to shipped", from: constant.OrderStatusPending, to: constant.OrderStatusShipped, wantErr: true},
		{name: "delivered is terminal", from: constant.OrderStatusDelivered, to: constant.OrderStatusProcessing, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFields(t)
			f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
			f.orderRepo.
				On("GetOrderDetailTx", mock.Anything, nilTx, uint64(42)).
				Return(&model.OrderDetail{ID: 42, UserID: 5, Status: tt.from, PaymentStatus: constant.PaymentStatusPaid}, nil).
				Once()
			if tt.wantErr {
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			} else {
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, nilTx, uint64(42), tt.to).Return(nil).Once()
				f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
			}

			err := f.app().UpdateOrderStatus(context.Background(), 42, tt.to)
			if tt.wantErr {
				if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
					t.Fatalf("UpdateOrderStatus() error = %v, want ErrInvalidOrderStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateOrderStatus() error = %v", err)
			}
		})
	}
}

func TestOrderApp_GetOrder(t *testing.T) {
	t.Run("another user's order reads as not found", func(t *testing.T) {
		f := newOrderFields(t)
		f.orderRepo.
			On("GetOrderDetail", mock.Anything, uint64(42)).
			Return(&model.OrderDetail{ID: 42, UserID: 99, Status: constant.OrderStatusPending}, nil).
			Once()

		_, err := f.app().GetOrder(context.Background(), 5, 42)
		if !cerr.Is(err, constant.ErrNotFound) {
			t.Fatalf("GetOrder() error = %v, want ErrNotFound", err)
		}
	})
}
