package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gudang-app/models"
	"gudang-app/pkg/logger"
	"gudang-app/repositories"
	"gudang-app/services"
	"gudang-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type TransactionController struct {
	DB        *gorm.DB
	Allocator *services.AllocationService
}

func NewTransactionController(DB *gorm.DB) *TransactionController {
	return &TransactionController{
		DB:        DB,
		Allocator: services.NewAllocationService(DB),
	}
}

// CreateTransaction mencatat transaksi masuk atau keluar. Masuk langsung jadi
// lot open baru; keluar dipenuhi allocator dari lot-lot tertua.
func (c *TransactionController) CreateTransaction(ctx *fiber.Ctx) error {
	var input struct {
		ItemCode     string `json:"item_code" validate:"required"`
		Quantity     int    `json:"quantity" validate:"required,gt=0"`
		MovementType string `json:"movement_type" validate:"required,oneof=masuk keluar"`
		WhsCode      string `json:"whs_code"`
	}

	// Parse Body
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Validasi input
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	createdBy := 0
	if uid, ok := ctx.Locals("userID").(float64); ok {
		createdBy = int(uid)
	}

	now := time.Now()
	ledger := repositories.NewLedgerRepository(c.DB)

	if input.MovementType == models.MovementMasuk {
		id, err := ledger.AppendInbound(input.ItemCode, input.Quantity, input.WhsCode, now, createdBy)
		if err != nil {
			return writeLedgerError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"id": id},
		})
	}

	result, err := c.Allocator.Allocate(input.ItemCode, input.Quantity, input.WhsCode, now, createdBy)
	if err != nil {
		return writeLedgerError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// ListTransactions menampilkan riwayat untuk dashboard, terbaru dulu.
func (c *TransactionController) ListTransactions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	ledger := repositories.NewLedgerRepository(c.DB)
	movements, err := ledger.ListMovements(limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"transactions": movements,
			"limit":        limit,
			"offset":       offset,
		},
	})
}

// SearchOpenLots mencari lot open sebuah barang, lot tertua dulu.
func (c *TransactionController) SearchOpenLots(ctx *fiber.Ctx) error {
	var input struct {
		ItemCode string `json:"item_code" validate:"required"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ledger := repositories.NewLedgerRepository(c.DB)
	lots, err := ledger.OpenLots(input.ItemCode)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"item_code": input.ItemCode,
			"lots":      lots,
		},
	})
}

// Handler untuk generate dan kirim file Excel riwayat transaksi
func (c *TransactionController) ExportExcel(ctx *fiber.Ctx) error {
	ledger := repositories.NewLedgerRepository(c.DB)
	movements, err := ledger.AllMovements()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Buat file Excel baru
	f := excelize.NewFile()
	sheet := "Riwayat"
	f.SetSheetName("Sheet1", sheet)

	// Buat header
	f.SetCellValue(sheet, "A1", "ID")
	f.SetCellValue(sheet, "B1", "Tanggal")
	f.SetCellValue(sheet, "C1", "Item Code")
	f.SetCellValue(sheet, "D1", "Quantity")
	f.SetCellValue(sheet, "E1", "Tipe")
	f.SetCellValue(sheet, "F1", "Gudang")
	f.SetCellValue(sheet, "G1", "Status")

	// Isi data ke dalam sheet
	for i, m := range movements {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), int64(m.ID))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), m.TransDate.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), m.ItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), m.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), m.MovementType)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), m.WhsCode)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), m.Status)
	}

	// Simpan file ke dalam response
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="riwayat_gudang.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Gagal generate Excel")
	}

	return nil
}

// writeLedgerError memetakan error bertipe dari ledger/allocator ke status HTTP.
func writeLedgerError(ctx *fiber.Ctx, err error) error {
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	var stockErr *types.InsufficientStockError
	var lockErr *types.LockTimeoutError

	switch {
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &stockErr):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":     stockErr.Error(),
			"item_code": stockErr.ItemCode,
			"requested": stockErr.Requested,
			"short_by":  stockErr.ShortBy,
		})
	case errors.As(err, &lockErr):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": lockErr.Error(),
			"retry": true,
		})
	default:
		logger.Error().Err(err).Msg("Ledger operation failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
