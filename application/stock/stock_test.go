package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appstock "github.com/sportify/backend/application/stock"
	"github.com/sportify/backend/constant"
	productmocks "github.com/sportify/backend/mocks/repository/product"
	stockmocks "github.com/sportify/backend/mocks/repository/stock"
	txmocks "github.com/sportify/backend/mocks/repository/tx"
	rabbitmqmocks "github.com/sportify/backend/mocks/thirdparty/rabbitmq"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/thirdparty/rabbitmq"
	cerr "github.com/sportify/backend/utils/errors"
	"github.com/stretchr/testify/mock"
)

type stockFields struct {
	txRepo      *txmocks.TxRepository
	stockRepo   *stockmocks.StockRepository
	productRepo *productmocks.ProductRepository
}

func newStockFields(t *testing.T) stockFields {
	return stockFields{
		txRepo:      txmocks.NewTxRepository(t),
		stockRepo:   stockmocks.NewStockRepository(t),
		productRepo: productmocks.NewProductRepository(t),
	}
}

func (f stockFields) app() appstock.StockApp {
	return f.appWith(nil)
}

func (f stockFields) appWith(pub rabbitmq.StockPublisher) appstock.StockApp {
	return appstock.NewStockApp(f.txRepo, f.stockRepo, f.productRepo, pub)
}

var nilTx = (*sqlx.Tx)(nil)

func TestStockApp_AddStock(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.AddStockRequest
		mockCall func(f stockFields)
		wantErr  constant.ErrorType
	}{
		{
			name: "success: adds stock and writes one stock_in movement",
			req: &model.AddStockRequest{
				ProductID: 1,
				Quantity:  30,
				Reason:    "restock",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.On("EnsureEntryTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
					Return(&model.StockEntry{ProductID: 1, CurrentStock: 10, AvailableStock: 10}, nil).
					Once()
				f.stockRepo.On("AddStockTx", mock.Anything, nilTx, uint64(1), int64(30)).Return(nil).Once()
				f.stockRepo.
					On("InsertMovementTx", mock.Anything, nilTx, mock.MatchedBy(func(m *model.StockMovement) bool {
						return m.Type == constant.MovementStockIn &&
							m.Quantity == 30 &&
							m.PreviousStock == 10 &&
							m.NewStock == 40 &&
							m.Reason == "restock"
					})).
					Return(nil).
					Once()
				f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
				f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
				f.stockRepo.
					On("GetEntry", mock.Anything, uint64(1)).
					Return(&model.StockEntry{ProductID: 1, CurrentStock: 40, AvailableStock: 40}, nil).
					Once()
			},
		},
		{
			name: "error: zero quantity rejected before opening a transaction",
			req: &model.AddStockRequest{
				ProductID: 1,
				Quantity:  0,
				Reason:    "restock",
			},
			wantErr: constant.ErrInvalidQuantity,
		},
		{
			name: "error: negative quantity rejected",
			req: &model.AddStockRequest{
				ProductID: 1,
				Quantity:  -5,
				Reason:    "restock",
			},
			wantErr: constant.ErrInvalidQuantity,
		},
		{
			name: "error: movement insert failure rolls back",
			req: &model.AddStockRequest{
				ProductID: 1,
				Quantity:  10,
				Reason:    "restock",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.On("EnsureEntryTx", mock.Anything, nilTx, uint64(1)).Return(nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(1)).
					Return(&model.StockEntry{ProductID: 1, CurrentStock: 10, AvailableStock: 10}, nil).
					Once()
				f.stockRepo.On("AddStockTx", mock.Anything, nilTx, uint64(1), int64(10)).Return(nil).Once()
				f.stockRepo.
					On("InsertMovementTx", mock.Anything, nilTx, mock.Anything).
					Return(errors.New("db error")).
					Once()
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			},
			wantErr: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newStockFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().AddStock(context.Background(), 7, tt.req)
			if tt.wantErr != 0 {
				if !cerr.Is(err, tt.wantErr) {
					t.Fatalf("AddStock() error = %v, want code %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddStock() error = %v", err)
			}
			if got.CurrentStock != 40 {
				t.Fatalf("AddStock() current stock = %d, want 40", got.CurrentStock)
			}
		})
	}
}

func TestStockApp_RemoveStock(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.RemoveStockRequest
		mockCall func(f stockFields)
		wantErr  constant.ErrorType
	}{
		{
			name: "success: removes stock and writes one stock_out movement",
			req: &model.RemoveStockRequest{
				ProductID: 2,
				Quantity:  4,
				Reason:    "damaged in storage",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(2)).
					Return(&model.StockEntry{ProductID: 2, CurrentStock: 10, AvailableStock: 10}, nil).
					Once()
				f.stockRepo.On("RemoveStockTx", mock.Anything, nilTx, uint64(2), int64(4)).Return(nil).Once()
				f.stockRepo.
					On("InsertMovementTx", mock.Anything, nilTx, mock.MatchedBy(func(m *model.StockMovement) bool {
						return m.Type == constant.MovementStockOut &&
							m.Quantity == 4 &&
							m.PreviousStock == 10 &&
							m.NewStock == 6
					})).
					Return(nil).
					Once()
				f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(2)).Return(nil).Once()
				f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
				f.stockRepo.
					On("GetEntry", mock.Anything, uint64(2)).
					Return(&model.StockEntry{ProductID: 2, CurrentStock: 6, AvailableStock: 6}, nil).
					Once()
			},
		},
		{
			name: "error: insufficient available stock leaves ledger untouched",
			req: &model.RemoveStockRequest{
				ProductID: 2,
				Quantity:  50,
				Reason:    "oversell attempt",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(2)).
					Return(&model.StockEntry{ProductID: 2, CurrentStock: 10, ReservedStock: 3, AvailableStock: 7}, nil).
					Once()
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			},
			wantErr: constant.ErrInsufficientStock,
		},
		{
			name: "error: reserved stock shields availability",
			req: &model.RemoveStockRequest{
				ProductID: 2,
				Quantity:  9,
				Reason:    "shrinkage",
			},
			mockCall: func(f stockFields) {
				// 10 on hand but 3 reserved: only 7 removable
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(2)).
					Return(&model.StockEntry{ProductID: 2, CurrentStock: 10, ReservedStock: 3, AvailableStock: 7}, nil).
					Once()
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			},
			wantErr: constant.ErrInsufficientStock,
		},
		{
			name: "error: guarded update lost the race",
			req: &model.RemoveStockRequest{
				ProductID: 2,
				Quantity:  5,
				Reason:    "sale",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(2)).
					Return(&model.StockEntry{ProductID: 2, CurrentStock: 10, AvailableStock: 10}, nil).
					Once()
				f.stockRepo.
					On("RemoveStockTx", mock.Anything, nilTx, uint64(2), int64(5)).
					Return(cerr.SetCustomError(constant.ErrInsufficientStock)).
					Once()
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			},
			wantErr: constant.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newStockFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			_, err := f.app().RemoveStock(context.Background(), 7, tt.req)
			if tt.wantErr != 0 {
				if !cerr.Is(err, tt.wantErr) {
					t.Fatalf("RemoveStock() error = %v, want code %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RemoveStock() error = %v", err)
			}
		})
	}
}

func TestStockApp_AdjustStock(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.AdjustStockRequest
		mockCall func(f stockFields)
		wantErr  constant.ErrorType
	}{
		{
			name: "success: downward correction carries a negative delta",
			req: &model.AdjustStockRequest{
				ProductID:   3,
				NewQuantity: 8,
				Reason:      "stock take",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.On("EnsureEntryTx", mock.Anything, nilTx, uint64(3)).Return(nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(3)).
					Return(&model.StockEntry{ProductID: 3, CurrentStock: 12, AvailableStock: 12}, nil).
					Once()
				f.stockRepo.On("SetStockTx", mock.Anything, nilTx, uint64(3), int64(8)).Return(nil).Once()
				f.stockRepo.
					On("InsertMovementTx", mock.Anything, nilTx, mock.MatchedBy(func(m *model.StockMovement) bool {
						return m.Type == constant.MovementAdjustment &&
							m.Quantity == -4 &&
							m.PreviousStock == 12 &&
							m.NewStock == 8
					})).
					Return(nil).
					Once()
				f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(3)).Return(nil).Once()
				f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
				f.stockRepo.
					On("GetEntry", mock.Anything, uint64(3)).
					Return(&model.StockEntry{ProductID: 3, CurrentStock: 8, AvailableStock: 8}, nil).
					Once()
			},
		},
		{
			name: "error: negative target rejected",
			req: &model.AdjustStockRequest{
				ProductID:   3,
				NewQuantity: -1,
				Reason:      "stock take",
			},
			wantErr: constant.ErrInvalidQuantity,
		},
		{
			name: "error: cannot adjust below reserved quantity",
			req: &model.AdjustStockRequest{
				ProductID:   3,
				NewQuantity: 2,
				Reason:      "stock take",
			},
			mockCall: func(f stockFields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
				f.stockRepo.On("EnsureEntryTx", mock.Anything, nilTx, uint64(3)).Return(nil).Once()
				f.stockRepo.
					On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(3)).
					Return(&model.StockEntry{ProductID: 3, CurrentStock: 12, ReservedStock: 5, AvailableStock: 7}, nil).
					Once()
				f.stockRepo.
					On("SetStockTx", mock.Anything, nilTx, uint64(3), int64(2)).
					Return(cerr.SetCustomError(constant.ErrInsufficientStock)).
					Once()
				f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()
			},
			wantErr: constant.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newStockFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			_, err := f.app().AdjustStock(context.Background(), 7, tt.req)
			if tt.wantErr != 0 {
				if !cerr.Is(err, tt.wantErr) {
					t.Fatalf("AdjustStock() error = %v, want code %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AdjustStock() error = %v", err)
			}
		})
	}
}

func TestStockApp_ReserveStock(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newStockFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.stockRepo.On("ReserveStockTx", mock.Anything, nilTx, uint64(4), int64(2)).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(4)).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

		err := f.app().ReserveStock(context.Background(), &model.ReserveStockRequest{ProductID: 4, Quantity: 2})
		if err != nil {
			t.Fatalf("ReserveStock() error = %v", err)
		}
	})

	t.Run("insufficient available stock", func(t *testing.T) {
		f := newStockFields(t)
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.stockRepo.
			On("ReserveStockTx", mock.Anything, nilTx, uint64(4), int64(99)).
			Return(cerr.SetCustomError(constant.ErrInsufficientStock)).
			Once()
		f.txRepo.On("RollbackTx", nilTx).Return(nil).Once()

		err := f.app().ReserveStock(context.Background(), &model.ReserveStockRequest{ProductID: 4, Quantity: 99})
		if !cerr.Is(err, constant.ErrInsufficientStock) {
			t.Fatalf("ReserveStock() error = %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("invalid quantity", func(t *testing.T) {
		f := newStockFields(t)
		err := f.app().ReserveStock(context.Background(), &model.ReserveStockRequest{ProductID: 4})
		if !cerr.Is(err, constant.ErrInvalidQuantity) {
			t.Fatalf("ReserveStock() error = %v, want ErrInvalidQuantity", err)
		}
	})
}

func TestStockApp_ReleaseReservedStock(t *testing.T) {
	// Releasing more than is reserved is clamped in the repository, so the
	// application treats any release of a positive quantity as valid.
	f := newStockFields(t)
	f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
	f.stockRepo.On("ReleaseReservedStockTx", mock.Anything, nilTx, uint64(4), int64(10)).Return(nil).Once()
	f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(4)).Return(nil).Once()
	f.txRepo.On("CommitTx", nilTx).Return(nil).Once()

	err := f.app().ReleaseReservedStock(context.Background(), &model.ReserveStockRequest{ProductID: 4, Quantity: 10})
	if err != nil {
		t.Fatalf("ReleaseReservedStock() error = %v", err)
	}
}

func TestStockApp_LowStockAlert(t *testing.T) {
	entry := &model.StockEntry{ProductID: 5, CurrentStock: 10, AvailableStock: 10, ReorderPoint: 6, ReorderQty: 20}
	product := &model.ProductDetail{ID: 5, Name: "Trail Runner", SupplierID: 9, SupplierEmail: "orders@peakgear.test"}

	removeFlow := func(f stockFields, qty int64) {
		f.txRepo.On("BeginTx", mock.Anything).Return(nilTx, nil).Once()
		f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, nilTx, uint64(5)).Return(entry, nil).Once()
		f.stockRepo.On("RemoveStockTx", mock.Anything, nilTx, uint64(5), qty).Return(nil).Once()
		f.stockRepo.On("InsertMovementTx", mock.Anything, nilTx, mock.Anything).Return(nil).Once()
		f.stockRepo.On("RefreshFlagsTx", mock.Anything, nilTx, uint64(5)).Return(nil).Once()
		f.txRepo.On("CommitTx", nilTx).Return(nil).Once()
		f.stockRepo.
			On("GetEntry", mock.Anything, uint64(5)).
			Return(&model.StockEntry{ProductID: 5, CurrentStock: entry.CurrentStock - qty, AvailableStock: entry.CurrentStock - qty, ReorderPoint: 6, ReorderQty: 20}, nil).
			Once()
	}

	t.Run("removal crossing the reorder point raises exactly one alert", func(t *testing.T) {
		f := newStockFields(t)
		pub := rabbitmqmocks.NewStockPublisher(t)
		removeFlow(f, 5)
		f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(product, nil).Once()
		pub.
			On("PublishLowStockAlert", model.LowStockAlert{
				ProductID:     5,
				ProductName:   "Trail Runner",
				SupplierID:    9,
				SupplierEmail: "orders@peakgear.test",
				CurrentStock:  5,
				ReorderPoint:  6,
				ReorderQty:    20,
			}).
			Return(nil).
			Once()

		got, err := f.appWith(pub).RemoveStock(context.Background(), 7, &model.RemoveStockRequest{ProductID: 5, Quantity: 5, Reason: "sale"})
		if err != nil {
			t.Fatalf("RemoveStock() error = %v", err)
		}
		if got.CurrentStock != 5 {
			t.Fatalf("RemoveStock() current stock = %d, want 5", got.CurrentStock)
		}
	})

	t.Run("removal staying above the reorder point stays quiet", func(t *testing.T) {
		f := newStockFields(t)
		pub := rabbitmqmocks.NewStockPublisher(t)
		removeFlow(f, 2)

		if _, err := f.appWith(pub).RemoveStock(context.Background(), 7, &model.RemoveStockRequest{ProductID: 5, Quantity: 2, Reason: "sale"}); err != nil {
			t.Fatalf("RemoveStock() error = %v", err)
		}
	})

	t.Run("publish failure leaves the committed mutation untouched", func(t *testing.T) {
		f := newStockFields(t)
		pub := rabbitmqmocks.NewStockPublisher(t)
		removeFlow(f, 5)
		f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(product, nil).Once()
		pub.On("PublishLowStockAlert", mock.Anything).Return(errors.New("broker down")).Once()

		got, err := f.appWith(pub).RemoveStock(context.Background(), 7, &model.RemoveStockRequest{ProductID: 5, Quantity: 5, Reason: "sale"})
		if err != nil {
			t.Fatalf("RemoveStock() error = %v", err)
		}
		if got.CurrentStock != 5 {
			t.Fatalf("RemoveStock() current stock = %d, want 5", got.CurrentStock)
		}
	})
}

func TestStockApp_GetEntry(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newStockFields(t)
		f.stockRepo.On("GetEntry", mock.Anything, uint64(9)).Return(nil, nil).Once()

		_, err := f.app().GetEntry(context.Background(), 9)
		if !cerr.Is(err, constant.ErrNotFound) {
			t.Fatalf("GetEntry() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("derived fields follow the counters", func(t *testing.T) {
		f := newStockFields(t)
		f.stockRepo.
			On("GetEntry", mock.Anything, uint64(9)).
			Return(&model.StockEntry{ProductID: 9, CurrentStock: 6, ReservedStock: 4, MinStockLevel: 3}, nil).
			Once()

		got, err := f.app().GetEntry(context.Background(), 9)
		if err != nil {
			t.Fatalf("GetEntry() error = %v", err)
		}
		if got.AvailableStock != 2 {
			t.Fatalf("GetEntry() available = %d, want 2", got.AvailableStock)
		}
		if !got.IsLowStock || got.IsOutOfStock {
			t.Fatalf("GetEntry() flags = low %v out %v, want low true out false", got.IsLowStock, got.IsOutOfStock)
		}
	})
}

func TestStockApp_ListMovements(t *testing.T) {
	f := newStockFields(t)
	f.stockRepo.
		On("ListMovements", mock.Anything, uint64(1), 20, 20).
		Return([]model.StockMovement{{ProductID: 1, Type: constant.MovementStockIn, Quantity: 5}}, nil).
		Once()

	got, err := f.app().ListMovements(context.Background(), 1, 2, 20)
	if err != nil {
		t.Fatalf("ListMovements() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListMovements() len = %d, want 1", len(got))
	}
}
