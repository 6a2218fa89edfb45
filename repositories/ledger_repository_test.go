package repositories_test

import (
	"testing"
	"time"

	"gudang-app/repositories"
	"gudang-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validasi input berjalan sebelum menyentuh database, jadi bisa dites tanpa
// koneksi. Jalur yang menyentuh database dicakup lewat skenario alokasi di
// package services.

func TestAppendInbound_ItemCodeKosong(t *testing.T) {
	ledger := repositories.NewLedgerRepository(nil)

	for _, itemCode := range []string{"", "   "} {
		_, err := ledger.AppendInbound(itemCode, 5, "GD1", time.Now(), 0)

		var validationErr *types.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "item_code", validationErr.Field)
	}
}

func TestAppendInbound_QuantityTidakPositif(t *testing.T) {
	ledger := repositories.NewLedgerRepository(nil)

	for _, quantity := range []int{0, -3} {
		_, err := ledger.AppendInbound("BRG-1", quantity, "GD1", time.Now(), 0)

		var validationErr *types.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "quantity", validationErr.Field)
	}
}

func TestAppendOutbound_ValidasiSamaDenganInbound(t *testing.T) {
	ledger := repositories.NewLedgerRepository(nil)

	_, err := ledger.AppendOutbound("", 5, "GD1", time.Now(), 0)
	var validationErr *types.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = ledger.AppendOutbound("BRG-1", 0, "GD1", time.Now(), 0)
	require.ErrorAs(t, err, &validationErr)
}

func TestReduceLot_QuantityNegatif(t *testing.T) {
	ledger := repositories.NewLedgerRepository(nil)

	err := ledger.ReduceLot(types.SnowflakeID(1), -1)

	var validationErr *types.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
