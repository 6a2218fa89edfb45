package types_test

import (
	"errors"
	"fmt"
	"testing"

	"gudang-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pesan error harus menyebut barang dan kekurangannya supaya bisa langsung
// ditampilkan ke user.
func TestInsufficientStockError_Pesan(t *testing.T) {
	err := &types.InsufficientStockError{ItemCode: "BRG-1", Requested: 20, ShortBy: 5}

	assert.Contains(t, err.Error(), "BRG-1")
	assert.Contains(t, err.Error(), "20")
	assert.Contains(t, err.Error(), "5")
}

func TestErrorTypes_BisaDiekstrakDariWrap(t *testing.T) {
	wrapped := fmt.Errorf("allocate: %w",
		&types.InsufficientStockError{ItemCode: "BRG-1", Requested: 3, ShortBy: 3})

	var stockErr *types.InsufficientStockError
	require.True(t, errors.As(wrapped, &stockErr))
	assert.Equal(t, 3, stockErr.ShortBy)

	var lockErr *types.LockTimeoutError
	assert.False(t, errors.As(wrapped, &lockErr))
}

func TestValidationError_DenganDanTanpaField(t *testing.T) {
	withField := &types.ValidationError{Field: "quantity", Message: "harus lebih dari 0"}
	assert.Contains(t, withField.Error(), "quantity")

	withoutField := &types.ValidationError{Message: "input rusak"}
	assert.Contains(t, withoutField.Error(), "input rusak")
}
