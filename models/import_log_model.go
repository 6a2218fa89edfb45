package models

import "time"

// ImportLog mencatat file CSV yang sudah diproses supaya tidak diproses dua kali.
type ImportLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"size:255;uniqueIndex;not null"`
	RowsImported int       `json:"rows_imported"`
	RowsRejected int       `json:"rows_rejected"`
	ProcessedAt  time.Time `json:"processed_at"`
	CreatedAt    time.Time `json:"created_at"`
}
