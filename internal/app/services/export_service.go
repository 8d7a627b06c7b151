package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/terratensor/addresser/internal/adapters/exporters"
	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/app/services/export"
	"github.com/terratensor/addresser/internal/core/ports"
)

const defaultExportBatchSize = 10000

type ExportService struct {
	reader        ports.AddressReader
	writerFactory *exporters.WriterFactory
}

func NewExportService(reader ports.AddressReader) *ExportService {
	return &ExportService{
		reader:        reader,
		writerFactory: exporters.NewWriterFactory(),
	}
}

// ExportAddresses выгружает таблицу адресов в файл, возвращает число записей
func (s *ExportService) ExportAddresses(ctx context.Context, options ports.ExportOptions) (int64, error) {
	log.Printf("Starting export to %s: %s", options.Format, options.FilePath)
	start := time.Now()

	// Создаем writer
	writer, err := s.writerFactory.CreateFileWriter(options.FilePath, options)
	if err != nil {
		return 0, fmt.Errorf("failed to create writer: %w", err)
	}

	count, err := s.export(ctx, writer, options.BatchSize)
	closeErr := writer.Close()
	if err != nil {
		return count, err
	}
	if closeErr != nil {
		return count, fmt.Errorf("failed to close writer: %w", closeErr)
	}

	log.Printf("Export completed: %d records in %v", count, time.Since(start))
	return count, nil
}

func (s *ExportService) export(ctx context.Context, writer ports.RecordWriter, batchSize int) (int64, error) {
	// Пишем заголовок
	if err := writer.WriteHeader(manticore.AddressExportColumns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	// Потоковое чтение и запись
	recordCh, errCh := s.streamRecords(ctx, batchSize)

	var recordCount int64
	for record := range recordCh {
		if err := writer.WriteRecord(record); err != nil {
			// дочитываем канал, чтобы горутина чтения завершилась
			for range recordCh {
			}
			return recordCount, fmt.Errorf("failed to write record at %d: %w", recordCount, err)
		}
		recordCount++

		if recordCount%100000 == 0 {
			log.Printf("Exported %d records...", recordCount)
		}
	}

	// Проверяем ошибки из канала
	if err := <-errCh; err != nil {
		return recordCount, fmt.Errorf("error during streaming: %w", err)
	}

	return recordCount, nil
}

// streamRecords читает адреса страницами по id и отправляет в канал
func (s *ExportService) streamRecords(ctx context.Context, limit int) (<-chan map[string]interface{}, <-chan error) {
	if limit <= 0 {
		limit = defaultExportBatchSize
	}

	out := make(chan map[string]interface{})
	errCh := make(chan error, 1)

	go func() {
		defer close(out)

		var lastID uint64

		for {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}

			rows, err := s.reader.FetchAfter(ctx, lastID, limit)
			if err != nil {
				errCh <- fmt.Errorf("failed to fetch batch at ID %d: %w", lastID, err)
				return
			}

			for _, row := range rows {
				id, err := export.ToUint64(row["id"])
				if err != nil {
					errCh <- fmt.Errorf("bad row after ID %d: %w", lastID, err)
					return
				}
				lastID = id

				select {
				case out <- row:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}

			if len(rows) < limit {
				break
			}
		}

		errCh <- nil
	}()

	return out, errCh
}
