package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/app/builder"
	"github.com/terratensor/addresser/internal/app/services"
	"github.com/terratensor/addresser/internal/config"
)

func main() {
	var inputPath string
	flag.StringVar(&inputPath, "input", "", "NDJSON file with hierarchy chains (default: POSTGRES_DSN, PAYLOAD_URL or DATA_DIR/PAYLOAD_FILE)")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём контекст с отменой для graceful shutdown
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

	synonymProvider, err := bootstrap.NewSynonymProvider(cfg, client)
	if err != nil {
		log.Fatalf("Failed to init synonyms: %v", err)
	}

	source, err := bootstrap.OpenPayloadSource(ctx, cfg, inputPath)
	if err != nil {
		log.Fatalf("Failed to open payload source: %v", err)
	}
	defer source.Close()
	log.Printf("Reading hierarchies from %s", source.Description)

	// Создаём и запускаем импортер
	importer := services.NewImporter(cfg, source, builder.New(synonymProvider), manticore.NewAddressRepository(client))

	stats, err := importer.Run(ctx)
	if err != nil {
		log.Printf("Partial result: %s", stats)
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import completed successfully!")
}
