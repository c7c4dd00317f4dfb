package stock

import (
	"context"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	productrepo "github.com/sportify/backend/repository/product"
	stockrepo "github.com/sportify/backend/repository/stock"
	txrepo "github.com/sportify/backend/repository/tx"
	"github.com/sportify/backend/thirdparty/rabbitmq"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

// StockApp is the authoritative stock ledger: per-product counters plus an
// append-only movement log. Every mutation runs in one transaction with the
// ledger row locked, writes exactly one movement, and recomputes the derived
// flags before commit.
type StockApp interface {
	AddStock(ctx context.Context, actorID uint64, req *model.AddStockRequest) (*model.StockEntry, error)
	RemoveStock(ctx context.Context, actorID uint64, req *model.RemoveStockRequest) (*model.StockEntry, error)
	AdjustStock(ctx context.Context, actorID uint64, req *model.AdjustStockRequest) (*model.StockEntry, error)
	ReserveStock(ctx context.Context, req *model.ReserveStockRequest) error
	ReleaseReservedStock(ctx context.Context, req *model.ReserveStockRequest) error
	GetEntry(ctx context.Context, productID uint64) (*model.StockEntry, error)
	ListMovements(ctx context.Context, productID uint64, page, perPage int) ([]model.StockMovement, error)
	ListLowStock(ctx context.Context) ([]model.StockEntry, error)
}

type stockAppImpl struct {
	txRepo      txrepo.TxRepository
	stockRepo   stockrepo.StockRepository
	productRepo productrepo.ProductRepository
	publisher   rabbitmq.StockPublisher
}

func NewStockApp(txRepo txrepo.TxRepository, stockRepo stockrepo.StockRepository, productRepo productrepo.ProductRepository, publisher rabbitmq.StockPublisher) StockApp {
	return &stockAppImpl{
		txRepo:      txRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

func (s *stockAppImpl) AddStock(ctx context.Context, actorID uint64, req *model.AddStockRequest) (*model.StockEntry, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AddStock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// Ledger rows are created lazily on first stock operation
	if err := s.stockRepo.EnsureEntryTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[AddStock] ensure entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, req.ProductID)
	if err != nil || entry == nil {
		logger.Error("[AddStock] get entry", zap.Uint64("product_id", req.ProductID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.AddStockTx(ctx, tx, req.ProductID, req.Quantity); err != nil {
		logger.Error("[AddStock] add stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	movement := &model.StockMovement{
		ProductID:     req.ProductID,
		Type:          constant.MovementStockIn,
		Quantity:      req.Quantity,
		PreviousStock: entry.CurrentStock,
		NewStock:      entry.CurrentStock + req.Quantity,
		Reason:        req.Reason,
		PerformedBy:   actorID,
		Notes:         req.Notes,
		Cost:          req.Cost,
	}
	if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
		logger.Error("[AddStock] insert movement", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.RefreshFlagsTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[AddStock] refresh flags", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AddStock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return s.snapshot(ctx, req.ProductID)
}

func (s *stockAppImpl) RemoveStock(ctx context.Context, actorID uint64, req *model.RemoveStockRequest) (*model.StockEntry, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RemoveStock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, req.ProductID)
	if err != nil {
		logger.Error("[RemoveStock] get entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entry == nil || entry.AvailableStock < req.Quantity {
		return nil, errors.SetCustomError(constant.ErrInsufficientStock)
	}

	if err := s.stockRepo.RemoveStockTx(ctx, tx, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, constant.ErrInsufficientStock) {
			return nil, err
		}
		logger.Error("[RemoveStock] remove stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	newStock := entry.CurrentStock - req.Quantity
	movement := &model.StockMovement{
		ProductID:     req.ProductID,
		Type:          constant.MovementStockOut,
		Quantity:      req.Quantity,
		PreviousStock: entry.CurrentStock,
		NewStock:      newStock,
		Reason:        req.Reason,
		PerformedBy:   actorID,
		Notes:         req.Notes,
		Reference:     req.Reference,
	}
	if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
		logger.Error("[RemoveStock] insert movement", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.RefreshFlagsTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[RemoveStock] refresh flags", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RemoveStock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.checkReorderPoint(ctx, req.ProductID, newStock, entry.ReorderPoint, entry.ReorderQty)

	return s.snapshot(ctx, req.ProductID)
}

func (s *stockAppImpl) AdjustStock(ctx context.Context, actorID uint64, req *model.AdjustStockRequest) (*model.StockEntry, error) {
	if req.NewQuantity < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AdjustStock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.stockRepo.EnsureEntryTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[AdjustStock] ensure entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, req.ProductID)
	if err != nil || entry == nil {
		logger.Error("[AdjustStock] get entry", zap.Uint64("product_id", req.ProductID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.SetStockTx(ctx, tx, req.ProductID, req.NewQuantity); err != nil {
		if errors.Is(err, constant.ErrInsufficientStock) {
			return nil, err
		}
		logger.Error("[AdjustStock] set stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Quantity carries the signed delta of the stock-take correction
	movement := &model.StockMovement{
		ProductID:     req.ProductID,
		Type:          constant.MovementAdjustment,
		Quantity:      req.NewQuantity - entry.CurrentStock,
		PreviousStock: entry.CurrentStock,
		NewStock:      req.NewQuantity,
		Reason:        req.Reason,
		PerformedBy:   actorID,
		Notes:         req.Notes,
	}
	if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
		logger.Error("[AdjustStock] insert movement", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.RefreshFlagsTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[AdjustStock] refresh flags", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AdjustStock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.checkReorderPoint(ctx, req.ProductID, req.NewQuantity, entry.ReorderPoint, entry.ReorderQty)

	return s.snapshot(ctx, req.ProductID)
}

func (s *stockAppImpl) ReserveStock(ctx context.Context, req *model.ReserveStockRequest) error {
	if req.Quantity <= 0 {
		return errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReserveStock] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.stockRepo.ReserveStockTx(ctx, tx, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, constant.ErrInsufficientStock) {
			return err
		}
		logger.Error("[ReserveStock] reserve", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.RefreshFlagsTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[ReserveStock] refresh flags", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReserveStock] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *stockAppImpl) ReleaseReservedStock(ctx context.Context, req *model.ReserveStockRequest) error {
	if req.Quantity <= 0 {
		return errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReleaseReservedStock] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// Over-release is clamped at zero, never an error
	if err := s.stockRepo.ReleaseReservedStockTx(ctx, tx, req.ProductID, req.Quantity); err != nil {
		logger.Error("[ReleaseReservedStock] release", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.stockRepo.RefreshFlagsTx(ctx, tx, req.ProductID); err != nil {
		logger.Error("[ReleaseReservedStock] refresh flags", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReleaseReservedStock] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *stockAppImpl) GetEntry(ctx context.Context, productID uint64) (*model.StockEntry, error) {
	entry, err := s.stockRepo.GetEntry(ctx, productID)
	if err != nil {
		logger.Error("[GetEntry] get entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entry == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	entry.UpdateStockFlags()
	return entry, nil
}

func (s *stockAppImpl) ListMovements(ctx context.Context, productID uint64, page, perPage int) ([]model.StockMovement, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	movements, err := s.stockRepo.ListMovements(ctx, productID, perPage, (page-1)*perPage)
	if err != nil {
		logger.Error("[ListMovements] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return movements, nil
}

func (s *stockAppImpl) ListLowStock(ctx context.Context) ([]model.StockEntry, error) {
	entries, err := s.stockRepo.ListLowStock(ctx)
	if err != nil {
		logger.Error("[ListLowStock] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entries, nil
}

// checkReorderPoint publishes at most one low-stock alert per mutation when
// the post-operation stock sits at or below the reorder point. Publish
// failures are logged, never propagated: the stock mutation already
// committed.
func (s *stockAppImpl) checkReorderPoint(ctx context.Context, productID uint64, newStock, reorderPoint, reorderQty int64) {
	if newStock > reorderPoint || s.publisher == nil {
		return
	}

	detail, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || detail == nil {
		logger.Error("[checkReorderPoint] get product", zap.Uint64("product_id", productID))
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
		logger.Error("[checkReorderPoint] publish alert", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
	}
}

// snapshot re-reads the entry after commit. Derived fields are recomputed
// from the counters just read, so the snapshot stays self-consistent even if
// another writer touched the row between commit and reload.
func (s *stockAppImpl) snapshot(ctx context.Context, productID uint64) (*model.StockEntry, error) {
	entry, err := s.stockRepo.GetEntry(ctx, productID)
	if err != nil || entry == nil {
		logger.Error("[snapshot] reload entry", zap.Uint64("product_id", productID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	entry.UpdateStockFlags()
	return entry, nil
}
