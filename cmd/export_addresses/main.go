package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/app/services"
	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/ports"
)

func main() {
	// Парсим флаги командной строки
	var (
		outputPath string
		format     string
		delimiter  string
		noHeader   bool
	)

	flag.StringVar(&outputPath, "output", "", "output file path (default: EXPORT_DIR/addresses_YYYYMMDD_HHMMSS.<format>)")
	flag.StringVar(&format, "format", "csv", "export format (csv, json)")
	flag.StringVar(&delimiter, "delimiter", ",", "CSV delimiter")
	flag.BoolVar(&noHeader, "no-header", false, "omit the CSV header row")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	// Создаём Manticore клиент
	client, err := bootstrap.NewManticoreClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Создаём сервис экспорта
	exportService := services.NewExportService(manticore.NewAddressRepository(client))

	// Определяем путь для экспорта
	exportPath, err := getExportPath(cfg.ExportDir, outputPath, format)
	if err != nil {
		log.Fatalf("Failed to create export path: %v", err)
	}

	comma := []rune(delimiter)
	if len(comma) != 1 {
		log.Fatalf("Delimiter must be a single character, got %q", delimiter)
	}

	// Настройки экспорта
	options := ports.ExportOptions{
		Format:        ports.ExportFormat(format),
		FilePath:      exportPath,
		IncludeHeader: !noHeader,
		Delimiter:     comma[0],
		BatchSize:     cfg.BatchSize * 10,
	}

	// Запускаем экспорт
	count, err := exportService.ExportAddresses(ctx, options)
	if err != nil {
		log.Fatalf("Export failed after %d records: %v", count, err)
	}

	log.Printf("Export completed successfully: %s", exportPath)
}

// getExportPath возвращает путь для экспорта
func getExportPath(exportDir, outputPath, format string) (string, error) {
	if outputPath != "" {
		// Используем указанный путь
		return outputPath, nil
	}

	// Создаём путь по умолчанию
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("addresses_%s.%s", timestamp, format)

	// Получаем абсолютный путь для ясности
	absPath, err := filepath.Abs(filepath.Join(exportDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return absPath, nil
}
