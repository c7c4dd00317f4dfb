package settings_test

import (
	"context"
	"testing"

	appsettings "github.com/sportify/backend/application/settings"
	"github.com/sportify/backend/constant"
	settingsmocks "github.com/sportify/backend/mocks/repository/settings"
	"github.com/sportify/backend/model"
	cerr "github.com/sportify/backend/utils/errors"
	"github.com/stretchr/testify/mock"
)

func floatPtr(v float64) *float64 { return &v }

func TestSettingsApp_UpdateSettings(t *testing.T) {
	t.Run("success: partial update reloads the row", func(t *testing.T) {
		repo := settingsmocks.NewSettingsRepository(t)
		req := &model.UpdateSettingsRequest{TaxRate: floatPtr(0.11)}
		repo.On("Update", mock.Anything, req).Return(nil).Once()
		repo.
			On("Get", mock.Anything).
			Return(&model.Settings{ID: 1, TaxRate: 0.11, ShippingFee: 50, FreeShippingThreshold: 2000}, nil).
			Once()

		app := appsettings.NewSettingsApp(repo)
		got, err := app.UpdateSettings(context.Background(), req)
		if err != nil {
			t.Fatalf("UpdateSettings() error = %v", err)
		}
		if got.TaxRate != 0.11 {
			t.Fatalf("UpdateSettings() tax rate = %v, want 0.11", got.TaxRate)
		}
	})

	t.Run("error: empty update rejected", func(t *testing.T) {
		repo := settingsmocks.NewSettingsRepository(t)
		app := appsettings.NewSettingsApp(repo)

		_, err := app.UpdateSettings(context.Background(), &model.UpdateSettingsRequest{})
		if !cerr.Is(err, constant.ErrInvalidRequest) {
			t.Fatalf("UpdateSettings() error = %v, want ErrInvalidRequest", err)
		}
	})
}
