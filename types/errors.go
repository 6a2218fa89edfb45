package types

import "fmt"

// ValidationError untuk input yang tidak valid (qty <= 0, item code kosong, dll).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NotFoundError untuk lot yang tidak ditemukan atau sudah closed.
type NotFoundError struct {
	Resource string
	ID       SnowflakeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found or already closed", e.Resource, int64(e.ID))
}

// InsufficientStockError dikembalikan kalau FIFO walk tidak bisa memenuhi
// seluruh permintaan. Seluruh transaksi sudah di-rollback saat error ini muncul.
type InsufficientStockError struct {
	ItemCode  string
	Requested int
	ShortBy   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stok tidak mencukupi untuk barang %s: diminta %d, kurang %d",
		e.ItemCode, e.Requested, e.ShortBy)
}

// LockTimeoutError dikembalikan kalau antrian alokasi per item terlalu lama.
// Caller boleh retry.
type LockTimeoutError struct {
	ItemCode string
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for allocation lock on item %s", e.ItemCode)
}
