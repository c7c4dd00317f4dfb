package model

import "testing"

func TestStockEntryUpdateStockFlags(t *testing.T) {
	tests := []struct {
		name          string
		entry         StockEntry
		wantAvailable int64
		wantLow       bool
		wantOut       bool
	}{
		{
			name:          "healthy stock",
			entry:         StockEntry{CurrentStock: 40, ReservedStock: 5, MinStockLevel: 10},
			wantAvailable: 35,
		},
		{
			name:          "reservations push availability to the threshold",
			entry:         StockEntry{CurrentStock: 12, ReservedStock: 2, MinStockLevel: 10},
			wantAvailable: 10,
			wantLow:       true,
		},
		{
			name:          "fully reserved reads as out of stock",
			entry:         StockEntry{CurrentStock: 8, ReservedStock: 8, MinStockLevel: 2},
			wantAvailable: 0,
			wantLow:       true,
			wantOut:       true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.entry.UpdateStockFlags()
			if tt.entry.AvailableStock != tt.wantAvailable {
				t.Fatalf("available = %d, want %d", tt.entry.AvailableStock, tt.wantAvailable)
			}
			if tt.entry.IsLowStock != tt.wantLow || tt.entry.IsOutOfStock != tt.wantOut {
				t.Fatalf("flags = low %v out %v, want low %v out %v",
					tt.entry.IsLowStock, tt.entry.IsOutOfStock, tt.wantLow, tt.wantOut)
			}
		})
	}
}
