package services

import (
	"gudang-app/models"
	"gudang-app/types"
)

// lotDraw adalah satu pengambilan dari satu lot hasil perencanaan FIFO.
type lotDraw struct {
	LotID     types.SnowflakeID
	WhsCode   string
	Quantity  int // jumlah yang diambil dari lot ini
	Remaining int // sisa lot setelah pengambilan; 0 berarti lot ditutup
}

// planAllocation menjalankan FIFO walk murni di atas lot yang sudah terurut
// (trans_date naik, id naik). Tidak menyentuh database sama sekali; kalau
// stok kurang, tidak ada draw yang dikembalikan.
func planAllocation(itemCode string, lots []models.StockMovement, requested int) ([]lotDraw, error) {
	if requested <= 0 {
		return nil, &types.ValidationError{Field: "quantity", Message: "quantity harus lebih dari 0"}
	}

	remaining := requested
	draws := make([]lotDraw, 0, len(lots))

	for _, lot := range lots {
		if remaining == 0 {
			break
		}

		if lot.Quantity <= remaining {
			// Lot habis dipakai seluruhnya
			draws = append(draws, lotDraw{
				LotID:     lot.ID,
				WhsCode:   lot.WhsCode,
				Quantity:  lot.Quantity,
				Remaining: 0,
			})
			remaining -= lot.Quantity
		} else {
			// Lot baru terpakai sebagian
			draws = append(draws, lotDraw{
				LotID:     lot.ID,
				WhsCode:   lot.WhsCode,
				Quantity:  remaining,
				Remaining: lot.Quantity - remaining,
			})
			remaining = 0
		}
	}

	if remaining > 0 {
		return nil, &types.InsufficientStockError{
			ItemCode:  itemCode,
			Requested: requested,
			ShortBy:   remaining,
		}
	}

	return draws, nil
}
