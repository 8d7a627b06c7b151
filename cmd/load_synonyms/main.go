// load_synonyms загружает YAML словарь синонимов в таблицу address_synonyms.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/adapters/synonyms"
	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/config"
)

func main() {
	var (
		filePath string
		truncate bool
	)
	flag.StringVar(&filePath, "file", "", "synonyms YAML file (default: SYNONYMS_FILE)")
	flag.BoolVar(&truncate, "truncate", false, "remove existing synonyms before loading")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if filePath == "" {
		filePath = cfg.SynonymsFile
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := synonyms.LoadYAMLFile(filePath)
	if err != nil {
		log.Fatal(err)
	}

	client, err := bootstrap.NewManticoreClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	if truncate {
		if err := client.TruncateTable(ctx, manticore.TableSynonyms); err != nil {
			log.Fatalf("Failed to truncate %s: %v", manticore.TableSynonyms, err)
		}
	}

	dict := provider.All()
	if err := manticore.NewSynonymRepository(client).SaveSynonyms(ctx, dict); err != nil {
		log.Fatalf("Failed to save synonyms: %v", err)
	}

	log.Printf("Loaded synonyms for %d objects from %s", len(dict), filePath)
}
