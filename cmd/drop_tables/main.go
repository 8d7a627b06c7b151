package main

import (
	"context"
	"log"
	"time"

	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём Manticore клиент
	client, err := bootstrap.NewManticoreClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	tables := []string{
		manticore.TableAddresses,
		manticore.TableSynonyms,
	}

	log.Println("Dropping existing tables...")

	for _, table := range tables {
		// Проверяем существует ли таблица
		exists, err := client.TableExists(ctx, table)
		if err != nil {
			log.Printf("Warning: failed to check table %s: %v", table, err)
			continue
		}

		if !exists {
			log.Printf("Table %s does not exist, skipping", table)
			continue
		}

		log.Printf("Dropping table %s...", table)
		if err := client.DropTable(ctx, table); err != nil {
			log.Printf("Error: %v", err)
			continue
		}
		log.Printf("Table %s dropped successfully", table)

		// Небольшая задержка между операциями
		time.Sleep(200 * time.Millisecond)
	}

	log.Println("Done. Run addresser to rebuild the addresses table")
}
