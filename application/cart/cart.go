package cart

import (
	"context"
	"strings"
	"time"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	"github.com/sportify/backend/pricing"
	cartrepo "github.com/sportify/backend/repository/cart"
	discountrepo "github.com/sportify/backend/repository/discount"
	productrepo "github.com/sportify/backend/repository/product"
	settingsrepo "github.com/sportify/backend/repository/settings"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

// CartApp owns the shopping cart. Every mutation recomputes the whole
// totals breakdown with the current tax rate and persists it, so the stored
// totals are never stale.
type CartApp interface {
	GetCart(ctx context.Context, userID uint64) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID uint64, req *model.UpdateCartItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, userID, productID uint64) (*model.CartResponse, error)
	ApplyDiscount(ctx context.Context, userID uint64, code string) (*model.CartResponse, error)
	RemoveDiscount(ctx context.Context, userID uint64) (*model.CartResponse, error)
}

type cartAppImpl struct {
	cartRepo     cartrepo.CartRepository
	productRepo  productrepo.ProductRepository
	discountRepo discountrepo.DiscountRepository
	settingsRepo settingsrepo.SettingsRepository
	now          func() time.Time
}

func NewCartApp(cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository, discountRepo discountrepo.DiscountRepository, settingsRepo settingsrepo.SettingsRepository) CartApp {
	return &cartAppImpl{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *cartAppImpl) GetCart(ctx context.Context, userID uint64) (*model.CartResponse, error) {
	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[GetCart] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return s.respond(ctx, userID, cartID)
}

func (s *cartAppImpl) AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	detail, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[AddItem] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if detail.AvailableStock < req.Quantity {
		return nil, errors.SetCustomError(constant.ErrInsufficientStock)
	}

	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[AddItem] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	item := &model.CartItem{
		CartID:        cartID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     detail.Price,
		SelectedSize:  req.SelectedSize,
		SelectedColor: req.SelectedColor,
	}
	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		logger.Error("[AddItem] upsert item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recompute(ctx, userID, cartID); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, cartID)
}

func (s *cartAppImpl) UpdateItemQuantity(ctx context.Context, userID uint64, req *model.UpdateCartItemRequest) (*model.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[UpdateItemQuantity] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, cartID, req.ProductID, req.Quantity); err != nil {
		logger.Error("[UpdateItemQuantity] update item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.recompute(ctx, userID, cartID); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, cartID)
}

func (s *cartAppImpl) RemoveItem(ctx context.Context, userID, productID uint64) (*model.CartResponse, error) {
	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[RemoveItem] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.cartRepo.DeleteItem(ctx, cartID, productID); err != nil {
		logger.Error("[RemoveItem] delete item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recompute(ctx, userID, cartID); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, cartID)
}

// ApplyDiscount validates the code before attaching it: an unknown or
// expired code is rejected outright and the cart keeps its previous state.
func (s *cartAppImpl) ApplyDiscount(ctx context.Context, userID uint64, code string) (*model.CartResponse, error) {
	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil {
		logger.Error("[ApplyDiscount] get discount", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if discount == nil {
		return nil, errors.SetCustomError(constant.ErrDiscountNotFound)
	}
	if !discount.IsValid(s.now()) {
		return nil, errors.SetCustomError(constant.ErrDiscountExpired)
	}

	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[ApplyDiscount] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	normalized := strings.ToUpper(code)
	if err := s.cartRepo.SetDiscountCode(ctx, cartID, &normalized); err != nil {
		logger.Error("[ApplyDiscount] set code", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recompute(ctx, userID, cartID); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, cartID)
}

func (s *cartAppImpl) RemoveDiscount(ctx context.Context, userID uint64) (*model.CartResponse, error) {
	cartID, err := s.cartRepo.EnsureCart(ctx, userID)
	if err != nil {
		logger.Error("[RemoveDiscount] ensure cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.cartRepo.SetDiscountCode(ctx, cartID, nil); err != nil {
		logger.Error("[RemoveDiscount] clear code", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recompute(ctx, userID, cartID); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, cartID)
}

// recompute derives the full breakdown from items, the applied discount and
// the settings read fresh, then persists it in one statement. A stored code
// that has since expired is detached (logged) rather than silently priced
// at zero.
func (s *cartAppImpl) recompute(ctx context.Context, userID, cartID uint64) error {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil || cart == nil {
		logger.Error("[recompute] get cart", zap.Uint64("cart_id", cartID))
		return errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.cartRepo.GetItems(ctx, cartID)
	if err != nil {
		logger.Error("[recompute] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	var discount *model.Discount
	if cart.DiscountCode != nil {
		discount, err = s.discountRepo.GetByCode(ctx, *cart.DiscountCode)
		if err != nil {
			logger.Error("[recompute] get discount", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if discount == nil || !discount.IsValid(s.now()) {
			logger.Info("[recompute] detaching invalid discount", zap.Uint64("cart_id", cartID), zap.String("code", *cart.DiscountCode))
			if err := s.cartRepo.SetDiscountCode(ctx, cartID, nil); err != nil {
				logger.Error("[recompute] clear code", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			discount = nil
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Error("[recompute] get settings", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	lineItems := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, pricing.LineItem{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}

	shipping := shippingCost(settings, pricing.Subtotal(lineItems), len(lineItems))
	breakdown, err := pricing.Compute(lineItems, discount, s.now(), settings.TaxRate, shipping)
	if err != nil {
		return err
	}

	if err := s.cartRepo.SaveTotals(ctx, cartID, breakdown); err != nil {
		logger.Error("[recompute] save totals", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func shippingCost(settings *model.Settings, subtotal float64, itemCount int) float64 {
	if itemCount == 0 {
		return 0
	}
	if settings.FreeShippingThreshold > 0 && subtotal >= settings.FreeShippingThreshold {
		return 0
	}
	return settings.ShippingFee
}

func (s *cartAppImpl) respond(ctx context.Context, userID, cartID uint64) (*model.CartResponse, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil || cart == nil {
		logger.Error("[respond] get cart", zap.Uint64("cart_id", cartID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.cartRepo.GetItems(ctx, cartID)
	if err != nil {
		logger.Error("[respond] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Presentation boundary: rounded copies, stored values stay unrounded
	cart.Subtotal = pricing.Round2(cart.Subtotal)
	cart.DiscountAmount = pricing.Round2(cart.DiscountAmount)
	cart.Tax = pricing.Round2(cart.Tax)
	cart.ShippingCost = pricing.Round2(cart.ShippingCost)
	cart.Total = pricing.Round2(cart.Total)

	return &model.CartResponse{Cart: cart, Items: items}, nil
}
