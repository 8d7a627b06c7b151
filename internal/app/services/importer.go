package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/domain"
	"github.com/terratensor/addresser/internal/core/ports"
)

// Importer строит адреса из цепочек иерархии и сохраняет их в хранилище
type Importer struct {
	cfg     *config.Config
	source  ports.PayloadSource
	builder ports.AddressBuilder
	repo    ports.AddressRepository

	mu    sync.Mutex
	stats ImportStats
}

// ImportStats - итоги импорта
type ImportStats struct {
	Read     int64
	Saved    int64
	Failures map[string]int64 // по видам ошибок построения
	Duration time.Duration
}

// Failed returns the number of payloads that produced no address.
func (s ImportStats) Failed() int64 {
	var n int64
	for _, c := range s.Failures {
		n += c
	}
	return n
}

func (s ImportStats) String() string {
	kinds := make([]string, 0, len(s.Failures))
	for kind := range s.Failures {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, s.Failures[kind]))
	}
	return fmt.Sprintf("read %d, saved %d, failed %d [%s] in %v",
		s.Read, s.Saved, s.Failed(), strings.Join(parts, " "), s.Duration.Round(time.Millisecond))
}

func NewImporter(cfg *config.Config, source ports.PayloadSource, builder ports.AddressBuilder, repo ports.AddressRepository) *Importer {
	return &Importer{
		cfg:     cfg,
		source:  source,
		builder: builder,
		repo:    repo,
	}
}

func (i *Importer) Run(ctx context.Context) (ImportStats, error) {
	start := time.Now()
	i.stats = ImportStats{Failures: make(map[string]int64)}

	// Инициализация схемы хранилища
	log.Println("Initializing database schema...")
	if err := i.repo.InitSchema(ctx); err != nil {
		return i.snapshot(start), fmt.Errorf("failed to init schema: %w", err)
	}

	read, err := i.source.Stream(ctx, i.handleBatch)

	i.mu.Lock()
	i.stats.Read = read
	i.mu.Unlock()

	stats := i.snapshot(start)
	if err != nil {
		return stats, fmt.Errorf("import interrupted: %w", err)
	}

	log.Printf("Import finished: %s", stats)
	return stats, nil
}

// handleBatch строит адреса пачки в WORKERS_COUNT горутин и сохраняет построенные
func (i *Importer) handleBatch(ctx context.Context, batch []*domain.Payload) error {
	results := make([]*domain.Address, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(i.cfg.WorkersCount, 1))

	for idx, payload := range batch {
		idx, payload := idx, payload
		g.Go(func() error {
			address, err := i.builder.Build(gctx, payload, nil)
			if err != nil {
				kind := failureKind(err)
				if kind == "" {
					return fmt.Errorf("object_id %d: %w", payload.ObjectID, err)
				}
				i.recordFailure(kind)
				log.Printf("Warning: address of object_id %d skipped: %v", payload.ObjectID, err)
				return nil
			}
			results[idx] = address
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	built := make([]*domain.Address, 0, len(results))
	for _, address := range results {
		if address != nil {
			built = append(built, address)
		}
	}

	if err := i.repo.SaveBatch(ctx, built); err != nil {
		return err
	}

	i.mu.Lock()
	i.stats.Saved += int64(len(built))
	i.mu.Unlock()
	return nil
}

func (i *Importer) recordFailure(kind string) {
	i.mu.Lock()
	i.stats.Failures[kind]++
	i.mu.Unlock()
}

func (i *Importer) snapshot(start time.Time) ImportStats {
	i.mu.Lock()
	defer i.mu.Unlock()

	stats := i.stats
	stats.Failures = make(map[string]int64, len(i.stats.Failures))
	for k, v := range i.stats.Failures {
		stats.Failures[k] = v
	}
	stats.Duration = time.Since(start)
	return stats
}

// failureKind возвращает вид ошибки построения; пустая строка - ошибка инфраструктуры, импорт прерывается
func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrSpecNotFound):
		return "spec_not_found"
	case errors.Is(err, domain.ErrBuildFailed):
		return "build_failed"
	case errors.Is(err, domain.ErrUnsupportedLevel):
		return "unsupported_level"
	case errors.Is(err, domain.ErrMalformedInput):
		return "malformed_input"
	}
	return ""
}
