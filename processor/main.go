package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gudang-app/config"
	"gudang-app/controllers/idgen"
	"gudang-app/database"
	"gudang-app/migration"
	"gudang-app/models"
	"gudang-app/pkg/logger"
	"gudang-app/repositories"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Processor membaca file CSV penerimaan barang dari folder unprocessed,
// mencatat setiap baris valid sebagai lot masuk, lalu memindahkan file ke
// folder processed dan mengirim ringkasan lewat email.
//
// Format CSV: item_code,quantity,whs_code (dengan baris header).
func main() {
	config.LoadConfig()
	logger.Init("gudang-processor", config.APP_ENV == "development")

	db, err := database.OpenDatabaseConnection()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.CloseDatabaseConnection(db)

	if err := migration.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to auto migrate")
	}

	idgen.Init()

	processAllCSV(db)
}

// Proses semua file CSV di folder unprocessed
func processAllCSV(db *gorm.DB) {
	files, err := os.ReadDir(config.ImportDir)
	if err != nil {
		logger.Error().Err(err).Str("dir", config.ImportDir).Msg("Gagal membaca folder import")
		return
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) == ".csv" {
			filePath := filepath.Join(config.ImportDir, file.Name())
			processFile(db, filePath)
		}
	}
}

func processFile(db *gorm.DB, filename string) {
	fileNameOnly := filepath.Base(filename)

	// Cek apakah file sudah pernah diproses
	var existing models.ImportLog
	if err := db.Where("filename = ?", fileNameOnly).First(&existing).Error; err == nil {
		logger.Warn().Str("file", fileNameOnly).Msg("File sudah pernah diproses, skip")
		return
	}

	f, err := os.Open(filename)
	if err != nil {
		logger.Error().Err(err).Str("file", fileNameOnly).Msg("Gagal membaca file")
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)

	// Lewati baris header
	if _, err := reader.Read(); err != nil {
		logger.Error().Err(err).Str("file", fileNameOnly).Msg("Gagal membaca header CSV")
		return
	}

	ledger := repositories.NewLedgerRepository(db)
	now := time.Now()
	imported := 0
	rejected := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error().Err(err).Str("file", fileNameOnly).Msg("Baris CSV rusak")
			rejected++
			continue
		}

		if len(record) < 3 {
			rejected++
			continue
		}

		itemCode := record[0]
		whsCode := record[2]

		quantity, err := strconv.Atoi(record[1])
		if err != nil {
			rejected++
			continue
		}

		// Validasi quantity/item code sama dengan jalur API
		if _, err := ledger.AppendInbound(itemCode, quantity, whsCode, now, 0); err != nil {
			logger.Warn().Err(err).Str("item_code", itemCode).Msg("Baris ditolak")
			rejected++
			continue
		}

		imported++
	}

	// Simpan log file supaya tidak diproses dua kali
	importLog := models.ImportLog{
		Filename:     fileNameOnly,
		RowsImported: imported,
		RowsRejected: rejected,
		ProcessedAt:  now,
	}
	if err := db.Create(&importLog).Error; err != nil {
		logger.Error().Err(err).Str("file", fileNameOnly).Msg("Gagal menyimpan import log")
		return
	}

	moveToProcessed(filename, fileNameOnly)
	sendReport(fileNameOnly, imported, rejected)

	logger.Info().
		Str("file", fileNameOnly).
		Int("imported", imported).
		Int("rejected", rejected).
		Msg("File selesai diproses")
}

func moveToProcessed(srcPath, fileNameOnly string) {
	if err := os.MkdirAll(config.ProcessedDir, 0o755); err != nil {
		logger.Error().Err(err).Msg("Gagal membuat folder processed")
		return
	}

	dst := filepath.Join(config.ProcessedDir, fileNameOnly)
	if err := os.Rename(srcPath, dst); err != nil {
		logger.Error().Err(err).Str("file", fileNameOnly).Msg("Gagal memindahkan file")
	}
}

// Kirim ringkasan hasil import lewat email
func sendReport(fileNameOnly string, imported, rejected int) {
	if config.SMTPHost == "" || config.ReportToEmail == "" {
		return
	}

	body := fmt.Sprintf(
		"File %s selesai diproses.<br>Baris berhasil: %d<br>Baris ditolak: %d<br>Waktu: %s",
		fileNameOnly, imported, rejected, time.Now().Format("2006-01-02 15:04:05"),
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.ReportToEmail)
	msg.SetHeader("Subject", "Laporan Import Penerimaan: "+fileNameOnly)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.Error().Err(err).Msg("Gagal mengirim email laporan")
	}
}
