package services

import (
	"errors"
	"strings"
	"time"

	"gudang-app/config"
	"gudang-app/pkg/logger"
	"gudang-app/repositories"
	"gudang-app/types"

	"gorm.io/gorm"
)

// AllocationResult adalah hasil alokasi yang sudah ter-commit.
type AllocationResult struct {
	ItemCode    string              `json:"item_code"`
	Allocated   int                 `json:"allocated"`
	OutboundIDs []types.SnowflakeID `json:"outbound_ids"`
	LotsUsed    int                 `json:"lots_used"`
}

// AllocationService memenuhi permintaan keluar dengan mengonsumsi lot masuk
// tertua lebih dulu. Semua mutasi satu permintaan jalan di satu transaksi:
// commit semua atau tidak sama sekali.
type AllocationService struct {
	db    *gorm.DB
	locks *itemLocks
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{db: db, locks: newItemLocks()}
}

// Allocate mengambil requested quantity untuk satu item dari lot-lot open,
// urutan FIFO. whsCode dari caller hanya informasi; lot TIDAK difilter per
// gudang dan baris keluar memakai gudang asal lot masing-masing, mengikuti
// perilaku sistem lama.
func (s *AllocationService) Allocate(itemCode string, quantity int, whsCode string, transDate time.Time, createdBy int) (*AllocationResult, error) {
	if strings.TrimSpace(itemCode) == "" {
		return nil, &types.ValidationError{Field: "item_code", Message: "item code tidak boleh kosong"}
	}
	if quantity <= 0 {
		return nil, &types.ValidationError{Field: "quantity", Message: "quantity harus lebih dari 0"}
	}

	// Serialisasi per item: dua alokasi item yang sama tidak boleh membaca
	// open lots yang sama sebelum salah satunya commit.
	if err := s.locks.acquire(itemCode, config.AllocLockTimeout); err != nil {
		return nil, err
	}
	defer s.locks.release(itemCode)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("failed to start transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ledger := repositories.NewLedgerRepository(tx)

	lots, err := ledger.OpenLotsForUpdate(itemCode)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	draws, err := planAllocation(itemCode, lots, quantity)
	if err != nil {
		// Stok kurang: tidak ada lot yang boleh berubah
		tx.Rollback()
		return nil, err
	}

	result := &AllocationResult{
		ItemCode:    itemCode,
		Allocated:   quantity,
		OutboundIDs: make([]types.SnowflakeID, 0, len(draws)),
		LotsUsed:    len(draws),
	}

	for _, draw := range draws {
		outboundID, err := ledger.AppendOutbound(itemCode, draw.Quantity, draw.WhsCode, transDate, createdBy)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		result.OutboundIDs = append(result.OutboundIDs, outboundID)

		if draw.Remaining == 0 {
			err = ledger.CloseLot(draw.LotID)
		} else {
			err = ledger.ReduceLot(draw.LotID, draw.Remaining)
		}
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info().
		Str("item_code", itemCode).
		Int("quantity", quantity).
		Int("lots_used", result.LotsUsed).
		Msg("Allocation committed")

	return result, nil
}
