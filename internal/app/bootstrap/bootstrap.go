// Package bootstrap собирает адаптеры по конфигурации для команд из cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/terratensor/addresser/internal/adapters/downloader"
	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/adapters/sources/postgres"
	"github.com/terratensor/addresser/internal/adapters/synonyms"
	"github.com/terratensor/addresser/internal/app/pipeline"
	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/ports"
)

// NewManticoreClient создает клиент по MANTICORE_HOST/MANTICORE_PORT
func NewManticoreClient(cfg *config.Config) (*manticore.ManticoreClient, error) {
	client, err := manticore.NewClient(cfg.ManticoreURL(), cfg.ManticoreConnTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create manticore client: %w", err)
	}
	return client, nil
}

// NewSynonymProvider выбирает источник синонимов по SYNONYMS_SOURCE.
// Для manticore нужен client, для yaml читается SYNONYMS_FILE.
func NewSynonymProvider(cfg *config.Config, client *manticore.ManticoreClient) (ports.SynonymProvider, error) {
	switch cfg.SynonymsSource {
	case config.SynonymsSourceManticore:
		if client == nil {
			return nil, fmt.Errorf("manticore synonyms require a manticore client")
		}
		return manticore.NewSynonymRepository(client), nil
	case config.SynonymsSourceYAML:
		provider, err := synonyms.LoadYAMLFile(cfg.SynonymsFile)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded synonyms for %d objects from %s", len(provider.All()), cfg.SynonymsFile)
		return provider, nil
	case config.SynonymsSourceNone:
		return synonyms.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown SYNONYMS_SOURCE %q", cfg.SynonymsSource)
	}
}

// Source - источник иерархий с функцией освобождения ресурсов
type Source struct {
	ports.PayloadSource
	Description string
	closeFn     func()
}

func (s *Source) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// OpenPayloadSource выбирает источник иерархий:
// база ГАР при заданном POSTGRES_DSN, иначе NDJSON файл.
// Файл скачивается по PAYLOAD_URL, если он задан, а inputPath не указан.
func OpenPayloadSource(ctx context.Context, cfg *config.Config, inputPath string) (*Source, error) {
	if inputPath == "" && cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &Source{
			PayloadSource: postgres.NewPayloadSource(pool, cfg),
			Description:   "postgres",
			closeFn:       pool.Close,
		}, nil
	}

	path := inputPath
	if path == "" {
		if cfg.PayloadURL != "" {
			fetched, err := downloader.New(cfg).FetchPayload(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch payload: %w", err)
			}
			path = fetched
		} else {
			path = cfg.PayloadPath()
		}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("payload file: %w", err)
	}

	return &Source{
		PayloadSource: pipeline.NewPayloadParser(cfg, path),
		Description:   path,
	}, nil
}
