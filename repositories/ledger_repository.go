package repositories

import (
	"errors"
	"strings"
	"time"

	"gudang-app/controllers/idgen"
	"gudang-app/models"
	"gudang-app/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository adalah satu-satunya pintu mutasi baris stock_movements.
// Untuk operasi di dalam transaksi, buat instance baru dengan tx sebagai db.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db}
}

func validateMovementInput(itemCode string, quantity int) error {
	if strings.TrimSpace(itemCode) == "" {
		return &types.ValidationError{Field: "item_code", Message: "item code tidak boleh kosong"}
	}
	if quantity <= 0 {
		return &types.ValidationError{Field: "quantity", Message: "quantity harus lebih dari 0"}
	}
	return nil
}

// AppendInbound mencatat lot masuk baru dengan status open.
func (r *LedgerRepository) AppendInbound(itemCode string, quantity int, whsCode string, transDate time.Time, createdBy int) (types.SnowflakeID, error) {
	if err := validateMovementInput(itemCode, quantity); err != nil {
		return 0, err
	}

	movement := models.StockMovement{
		ID:           types.SnowflakeID(idgen.GenerateID()),
		TransDate:    transDate,
		ItemCode:     itemCode,
		Quantity:     quantity,
		MovementType: models.MovementMasuk,
		WhsCode:      whsCode,
		Status:       models.StatusOpen,
		CreatedBy:    createdBy,
	}

	if err := r.db.Create(&movement).Error; err != nil {
		return 0, err
	}

	return movement.ID, nil
}

// AppendOutbound mencatat baris keluar. Baris keluar tidak punya status dan
// tidak pernah diubah setelah dibuat.
func (r *LedgerRepository) AppendOutbound(itemCode string, quantity int, whsCode string, transDate time.Time, createdBy int) (types.SnowflakeID, error) {
	if err := validateMovementInput(itemCode, quantity); err != nil {
		return 0, err
	}

	movement := models.StockMovement{
		ID:           types.SnowflakeID(idgen.GenerateID()),
		TransDate:    transDate,
		ItemCode:     itemCode,
		Quantity:     quantity,
		MovementType: models.MovementKeluar,
		WhsCode:      whsCode,
		CreatedBy:    createdBy,
	}

	if err := r.db.Create(&movement).Error; err != nil {
		return 0, err
	}

	return movement.ID, nil
}

// OpenLots mengembalikan semua lot masuk yang masih open untuk satu item,
// urut FIFO: trans_date naik, seri dipecah dengan id naik. Timestamp di sistem
// ini granularitas detik, jadi tie-break id wajib supaya urutannya deterministik.
func (r *LedgerRepository) OpenLots(itemCode string) ([]models.StockMovement, error) {
	var lots []models.StockMovement

	err := r.db.
		Where("item_code = ? AND movement_type = ? AND status = ?",
			itemCode, models.MovementMasuk, models.StatusOpen).
		Order("trans_date ASC, id ASC").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}

	return lots, nil
}

// OpenLotsForUpdate seperti OpenLots tapi mengunci baris terpilih
// (SELECT ... FOR UPDATE). Hanya dipanggil dari dalam transaksi alokasi.
func (r *LedgerRepository) OpenLotsForUpdate(itemCode string) ([]models.StockMovement, error) {
	var lots []models.StockMovement

	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_code = ? AND movement_type = ? AND status = ?",
			itemCode, models.MovementMasuk, models.StatusOpen).
		Order("trans_date ASC, id ASC").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}

	return lots, nil
}

// ReduceLot menurunkan quantity sebuah lot open. newQuantity 0 berarti lot
// habis dan ditutup. Quantity lot tidak pernah naik.
func (r *LedgerRepository) ReduceLot(lotID types.SnowflakeID, newQuantity int) error {
	if newQuantity < 0 {
		return &types.ValidationError{Field: "quantity", Message: "new quantity tidak boleh negatif"}
	}

	var lot models.StockMovement
	err := r.db.
		Where("id = ? AND movement_type = ? AND status = ?",
			lotID, models.MovementMasuk, models.StatusOpen).
		First(&lot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Resource: "lot", ID: lotID}
		}
		return err
	}

	if newQuantity > lot.Quantity {
		return &types.ValidationError{Field: "quantity", Message: "new quantity melebihi sisa lot"}
	}

	updates := map[string]interface{}{"quantity": newQuantity}
	if newQuantity == 0 {
		updates["status"] = models.StatusClosed
	}

	return r.db.Model(&models.StockMovement{}).
		Where("id = ?", lotID).
		Updates(updates).Error
}

// CloseLot menutup lot yang sudah habis dikonsumsi.
func (r *LedgerRepository) CloseLot(lotID types.SnowflakeID) error {
	return r.ReduceLot(lotID, 0)
}

type stockRow struct {
	ItemCode string
	Total    int
}

// StockOnHand menghitung sisa stok per item untuk satu gudang: jumlah quantity
// lot masuk yang masih open. Lot closed sudah bernilai nol jadi tidak dihitung.
// Item dengan sisa tidak positif tidak dimunculkan.
func (r *LedgerRepository) StockOnHand(whsCode string) (map[string]int, error) {
	var rows []stockRow

	err := r.db.Model(&models.StockMovement{}).
		Select("item_code, SUM(quantity) as total").
		Where("whs_code = ? AND movement_type = ? AND status = ?",
			whsCode, models.MovementMasuk, models.StatusOpen).
		Group("item_code").
		Having("SUM(quantity) > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stock := make(map[string]int, len(rows))
	for _, row := range rows {
		stock[row.ItemCode] = row.Total
	}

	return stock, nil
}

// ListMovements mengembalikan riwayat untuk dashboard, terbaru dulu.
func (r *LedgerRepository) ListMovements(limit, offset int) ([]models.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var movements []models.StockMovement
	err := r.db.
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	return movements, nil
}

// AllMovements scan read-only seluruh riwayat untuk export, terbaru dulu.
func (r *LedgerRepository) AllMovements() ([]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := r.db.Order("id DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
