package settings

import (
	"context"

	"github.com/sportify/backend/constant"
	"github.com/sportify/backend/model"
	settingsrepo "github.com/sportify/backend/repository/settings"
	"github.com/sportify/backend/utils/errors"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

type SettingsApp interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, req *model.UpdateSettingsRequest) (*model.Settings, error)
}

type settingsAppImpl struct {
	settingsRepo settingsrepo.SettingsRepository
}

func NewSettingsApp(settingsRepo settingsrepo.SettingsRepository) SettingsApp {
	return &settingsAppImpl{settingsRepo: settingsRepo}
}

func (s *settingsAppImpl) GetSettings(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Error("[GetSettings] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return settings, nil
}

func (s *settingsAppImpl) UpdateSettings(ctx context.Context, req *model.UpdateSettingsRequest) (*model.Settings, error) {
	if req.TaxRate == nil && req.ShippingFee == nil && req.FreeShippingThreshold == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.settingsRepo.Update(ctx, req); err != nil {
		logger.Error("[UpdateSettings] update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Error("[UpdateSettings] reload", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return settings, nil
}
