package services

import (
	"testing"
	"time"

	"gudang-app/models"
	"gudang-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lot(id int64, qty int, whs string, transDate time.Time) models.StockMovement {
	return models.StockMovement{
		ID:           types.SnowflakeID(id),
		TransDate:    transDate,
		ItemCode:     "X",
		Quantity:     qty,
		MovementType: models.MovementMasuk,
		WhsCode:      whs,
		Status:       models.StatusOpen,
	}
}

var baseTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// Permintaan lebih kecil dari lot pertama harus diambil seluruhnya dari lot
// pertama, tidak pernah menyentuh lot yang lebih muda.
func TestPlanAllocation_AmbilDariLotTertua(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 10, "GD1", baseTime),
		lot(2, 5, "GD2", baseTime.Add(time.Second)),
		lot(3, 7, "GD3", baseTime.Add(2*time.Second)),
	}

	draws, err := planAllocation("X", lots, 4)
	require.NoError(t, err)
	require.Len(t, draws, 1)

	assert.Equal(t, types.SnowflakeID(1), draws[0].LotID)
	assert.Equal(t, 4, draws[0].Quantity)
	assert.Equal(t, 6, draws[0].Remaining, "lot pertama tinggal 6 dan tetap open")
	assert.Equal(t, "GD1", draws[0].WhsCode)
}

// Skenario spesifikasi: lot A qty 10, lot B qty 5, minta 12 → lot A habis
// (10), lot B berkurang jadi 2, dua baris keluar total 12.
func TestPlanAllocation_DuaLotSebagian(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 10, "GD1", baseTime),
		lot(2, 5, "GD1", baseTime.Add(time.Second)),
	}

	draws, err := planAllocation("X", lots, 12)
	require.NoError(t, err)
	require.Len(t, draws, 2)

	assert.Equal(t, types.SnowflakeID(1), draws[0].LotID)
	assert.Equal(t, 10, draws[0].Quantity)
	assert.Equal(t, 0, draws[0].Remaining, "lot A harus ditutup")

	assert.Equal(t, types.SnowflakeID(2), draws[1].LotID)
	assert.Equal(t, 3, draws[1].Quantity)
	assert.Equal(t, 2, draws[1].Remaining, "lot B tinggal 2 dan tetap open")

	total := draws[0].Quantity + draws[1].Quantity
	assert.Equal(t, 12, total)
}

// Permintaan pas dengan total lot: semua lot ditutup, tidak ada sisa.
func TestPlanAllocation_PasHabis(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 10, "GD1", baseTime),
		lot(2, 5, "GD1", baseTime.Add(time.Second)),
	}

	draws, err := planAllocation("X", lots, 15)
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, 0, draws[0].Remaining)
	assert.Equal(t, 0, draws[1].Remaining)
}

// Skenario spesifikasi: minta 20 dari stok 15 → InsufficientStockError dengan
// short_by 5, tidak ada draw sama sekali.
func TestPlanAllocation_StokKurang(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 10, "GD1", baseTime),
		lot(2, 5, "GD1", baseTime.Add(time.Second)),
	}

	draws, err := planAllocation("X", lots, 20)
	require.Error(t, err)
	assert.Nil(t, draws)

	var stockErr *types.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "X", stockErr.ItemCode)
	assert.Equal(t, 20, stockErr.Requested)
	assert.Equal(t, 5, stockErr.ShortBy)
}

// Skenario spesifikasi: item tanpa lot open → langsung gagal, short_by sama
// dengan yang diminta.
func TestPlanAllocation_TanpaLot(t *testing.T) {
	draws, err := planAllocation("Y", nil, 1)
	require.Error(t, err)
	assert.Nil(t, draws)

	var stockErr *types.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Y", stockErr.ItemCode)
	assert.Equal(t, 1, stockErr.ShortBy)
}

// Baris keluar memakai gudang asal lot, bukan gudang dari caller.
func TestPlanAllocation_GudangIkutLot(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 3, "GD1", baseTime),
		lot(2, 3, "GD2", baseTime.Add(time.Second)),
	}

	draws, err := planAllocation("X", lots, 5)
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, "GD1", draws[0].WhsCode)
	assert.Equal(t, "GD2", draws[1].WhsCode)
}

// Konservasi: total draw selalu sama dengan yang diminta.
func TestPlanAllocation_TotalSamaDenganPermintaan(t *testing.T) {
	lots := []models.StockMovement{
		lot(1, 4, "GD1", baseTime),
		lot(2, 9, "GD1", baseTime.Add(time.Second)),
		lot(3, 2, "GD1", baseTime.Add(2*time.Second)),
	}

	for requested := 1; requested <= 15; requested++ {
		draws, err := planAllocation("X", lots, requested)
		require.NoError(t, err, "requested %d", requested)

		total := 0
		for _, d := range draws {
			assert.Greater(t, d.Quantity, 0)
			assert.GreaterOrEqual(t, d.Remaining, 0, "sisa lot tidak boleh negatif")
			total += d.Quantity
		}
		assert.Equal(t, requested, total)
	}
}

func TestPlanAllocation_QuantityTidakValid(t *testing.T) {
	lots := []models.StockMovement{lot(1, 10, "GD1", baseTime)}

	for _, requested := range []int{0, -1} {
		_, err := planAllocation("X", lots, requested)

		var validationErr *types.ValidationError
		require.ErrorAs(t, err, &validationErr)
	}
}

// Lot dengan trans_date sama (granularitas detik) sudah diurutkan pakai id
// naik oleh query; walk harus mengikuti urutan slice apa adanya.
func TestPlanAllocation_UrutanSliceDipertahankan(t *testing.T) {
	lots := []models.StockMovement{
		lot(7, 5, "GD1", baseTime),
		lot(9, 5, "GD1", baseTime),
	}

	draws, err := planAllocation("X", lots, 6)
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, types.SnowflakeID(7), draws[0].LotID)
	assert.Equal(t, types.SnowflakeID(9), draws[1].LotID)
}
