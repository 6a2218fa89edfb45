package controllers

import (
	"gudang-app/repositories"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type WarehouseController struct {
	DB *gorm.DB
}

func NewWarehouseController(DB *gorm.DB) *WarehouseController {
	return &WarehouseController{DB: DB}
}

type warehouseStockRow struct {
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
}

// GetWarehouseStock menampilkan sisa stok per barang untuk satu gudang.
// Barang tanpa sisa positif tidak dimunculkan.
func (c *WarehouseController) GetWarehouseStock(ctx *fiber.Ctx) error {
	whsCode := ctx.Params("whs_code")
	if whsCode == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "whs_code wajib diisi"})
	}

	ledger := repositories.NewLedgerRepository(c.DB)
	stock, err := ledger.StockOnHand(whsCode)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Urutkan per item code supaya tampilannya stabil
	itemCodes := maps.Keys(stock)
	slices.Sort(itemCodes)

	rows := make([]warehouseStockRow, 0, len(itemCodes))
	for _, itemCode := range itemCodes {
		rows = append(rows, warehouseStockRow{ItemCode: itemCode, Quantity: stock[itemCode]})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"whs_code": whsCode,
			"stock":    rows,
		},
	})
}
