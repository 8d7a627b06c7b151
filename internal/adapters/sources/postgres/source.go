// Package postgres streams hierarchy payloads straight from a GAR database.
package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"

	"github.com/terratensor/addresser/internal/app/pipeline"
	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/domain"
	"github.com/terratensor/addresser/internal/core/ports"
)

// querier is the part of *pgxpool.Pool the source needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// rowScanner is the part of pgx.Rows the source needs.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// PayloadSource выполняет запрос, возвращающий колонки hierarchy_id, object_id, parents
type PayloadSource struct {
	db        querier
	query     string
	batchSize int
	quiet     bool
}

var _ ports.PayloadSource = (*PayloadSource)(nil)

// Connect opens a pool for dsn. The caller closes it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return pool, nil
}

func NewPayloadSource(db *pgxpool.Pool, cfg *config.Config) *PayloadSource {
	return &PayloadSource{db: db, query: cfg.PostgresPayloadQuery, batchSize: cfg.BatchSize, quiet: cfg.Quiet}
}

func (s *PayloadSource) Stream(ctx context.Context, handle ports.PayloadHandler) (int64, error) {
	rows, err := s.db.Query(ctx, s.query)
	if err != nil {
		return 0, fmt.Errorf("failed to query payloads: %w", err)
	}
	return s.stream(ctx, rows, handle)
}

func (s *PayloadSource) stream(ctx context.Context, rows rowScanner, handle ports.PayloadHandler) (int64, error) {
	defer rows.Close()

	// объем выборки заранее неизвестен, показываем спиннер
	var bar *progressbar.ProgressBar
	if s.quiet {
		bar = progressbar.DefaultSilent(-1, "Reading payloads")
	} else {
		bar = progressbar.Default(-1, "Reading payloads")
	}
	defer bar.Finish()

	var processed, skipped int64
	batch := make([]*domain.Payload, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := handle(ctx, batch); err != nil {
			return fmt.Errorf("failed to handle batch: %w", err)
		}
		processed += int64(len(batch))
		batch = make([]*domain.Payload, 0, s.batchSize)
		return nil
	}

	for rows.Next() {
		var (
			hierarchyID, objectID int64
			parents               []byte
		)
		if err := rows.Scan(&hierarchyID, &objectID, &parents); err != nil {
			return processed, fmt.Errorf("failed to scan payload row: %w", err)
		}
		_ = bar.Add(1)

		payload, err := pipeline.DecodeRecord(hierarchyID, objectID, parents)
		if err != nil {
			log.Printf("Warning: failed to parse payload of object_id %d: %v", objectID, err)
			skipped++
			continue
		}

		batch = append(batch, payload)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return processed, err
			}
		}
	}

	if err := rows.Err(); err != nil {
		return processed, fmt.Errorf("failed to read payload rows: %w", err)
	}
	if err := flush(); err != nil {
		return processed, err
	}

	if skipped > 0 {
		log.Printf("Skipped %d malformed payloads", skipped)
	}
	return processed, nil
}
