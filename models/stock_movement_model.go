package models

import (
	"time"

	"gudang-app/types"
)

const (
	// Tipe pergerakan stok, mengikuti istilah transaksi gudang
	MovementMasuk  = "masuk"
	MovementKeluar = "keluar"

	// Status lot masuk. Lot keluar tidak punya status.
	StatusOpen   = "open"   // masih ada sisa quantity yang bisa dipakai
	StatusClosed = "closed" // sudah habis dikonsumsi alokasi
)

// StockMovement adalah satu baris buku stok: lot masuk atau catatan keluar.
// Lot masuk hanya boleh dimutasi oleh allocator (pengurangan quantity atau
// penutupan status); catatan keluar tidak pernah diubah.
type StockMovement struct {
	ID           types.SnowflakeID `json:"id" gorm:"primaryKey"`
	TransDate    time.Time         `json:"trans_date" gorm:"index;not null"`
	ItemCode     string            `json:"item_code" gorm:"size:100;not null;index:idx_item_type_status,priority:1"`
	Quantity     int               `json:"quantity" gorm:"not null"`
	MovementType string            `json:"movement_type" gorm:"size:10;not null;index:idx_item_type_status,priority:2"`
	WhsCode      string            `json:"whs_code" gorm:"size:50;index"`
	Status       string            `json:"status" gorm:"size:10;index:idx_item_type_status,priority:3"`
	CreatedBy    int               `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
