package discount

import (
	"context"
	"strings"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	discountrepo "github.com/sportify/backend/repository/discount"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

type DiscountApp interface {
	CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error)
	ListDiscounts(ctx context.Context) ([]model.Discount, error)
	DeactivateDiscount(ctx context.Context, id uint64) error
}

type discountAppImpl struct {
	discountRepo discountrepo.DiscountRepository
}

func NewDiscountApp(discountRepo discountrepo.DiscountRepository) DiscountApp {
	return &discountAppImpl{discountRepo: discountRepo}
}

func (s *discountAppImpl) CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	dtype := constant.DiscountType(req.Type)
	// A percentage over 100 would make the discount exceed the subtotal
	if dtype == constant.DiscountTypePercentage && req.Value > 100 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	existing, err := s.discountRepo.GetByCode(ctx, req.Code)
	if err != nil {
		logger.Error("[CreateDiscount] get by code", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	d := &model.Discount{
		Code:      strings.ToUpper(req.Code),
		Type:      dtype,
		Value:     req.Value,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  true,
	}
	id, err := s.discountRepo.Create(ctx, d)
	if err != nil {
		logger.Error("[CreateDiscount] create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	d.ID = id

	return d, nil
}

func (s *discountAppImpl) ListDiscounts(ctx context.Context) ([]model.Discount, error) {
	discounts, err := s.discountRepo.List(ctx)
	if err != nil {
		logger.Error("[ListDiscounts] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return discounts, nil
}

func (s *discountAppImpl) DeactivateDiscount(ctx context.Context, id uint64) error {
	if err := s.discountRepo.SetActive(ctx, id, false); err != nil {
		logger.Error("[DeactivateDiscount] set active", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
