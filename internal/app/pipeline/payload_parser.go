package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/domain"
	"github.com/terratensor/addresser/internal/core/ports"
)

// PayloadParser reads a newline delimited dump of hierarchy payloads
type PayloadParser struct {
	*BaseParser
	filePath string
}

var _ ports.PayloadSource = (*PayloadParser)(nil)

func NewPayloadParser(cfg *config.Config, filePath string) *PayloadParser {
	return &PayloadParser{
		BaseParser: NewBaseParser(cfg),
		filePath:   filePath,
	}
}

// Stream parses the file and hands batches of payloads to handle.
// Malformed lines are logged and skipped. Returns the number of payloads handled.
func (p *PayloadParser) Stream(ctx context.Context, handle ports.PayloadHandler) (int64, error) {
	file, err := os.Open(p.filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Create progress bar
	bar, err := p.ProgressBar(file, fmt.Sprintf("Processing %s", p.filePath))
	if err != nil {
		return 0, err
	}

	batchChan := make(chan []*domain.Payload, p.bufferSize)
	errChan := make(chan error, 1)
	var processed atomic.Int64

	// Start consumer goroutine
	go p.startConsumer(ctx, handle, batchChan, errChan, &processed)

	// канал закрывается на любом выходе, чтобы потребитель не завис
	closed := false
	closeBatches := func() {
		if !closed {
			close(batchChan)
			closed = true
		}
	}
	defer closeBatches()

	scanner := p.LineScanner(file)

	batch := make([]*domain.Payload, 0, p.batchSize)
	var lineNum, skipped int64

	for scanner.Scan() {
		line := scanner.Bytes()
		lineNum++

		// Update progress bar
		_ = bar.Add(len(line) + 1)

		// Skip empty lines
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		payload, err := DecodePayload(line)
		if err != nil {
			log.Printf("Warning: failed to parse payload at line %d: %v", lineNum, err)
			skipped++
			continue
		}

		batch = append(batch, payload)

		// Send batch if full
		if len(batch) >= p.batchSize {
			if err := p.send(ctx, batchChan, errChan, batch); err != nil {
				return processed.Load(), err
			}
			batch = make([]*domain.Payload, 0, p.batchSize)
		}
	}

	if err := scanner.Err(); err != nil {
		closeBatches()
		<-errChan
		return processed.Load(), fmt.Errorf("error reading line %d: %w", lineNum+1, err)
	}

	// Send final batch
	if len(batch) > 0 {
		if err := p.send(ctx, batchChan, errChan, batch); err != nil {
			return processed.Load(), err
		}
	}

	// Wait for all batches to be processed
	closeBatches()

	if err := <-errChan; err != nil {
		return processed.Load(), err
	}

	if skipped > 0 {
		log.Printf("Skipped %d malformed payloads in %s", skipped, p.filePath)
	}

	return processed.Load(), nil
}

// send передает пакет потребителю; если потребитель уже завершился с ошибкой, возвращает ее
func (p *PayloadParser) send(ctx context.Context, batchChan chan<- []*domain.Payload, errChan <-chan error, batch []*domain.Payload) error {
	select {
	case batchChan <- batch:
		return nil
	case err := <-errChan:
		if err == nil {
			err = fmt.Errorf("consumer stopped unexpectedly")
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// startConsumer hands batches to the handler until the channel is closed
func (p *PayloadParser) startConsumer(ctx context.Context, handle ports.PayloadHandler, batchChan <-chan []*domain.Payload, errChan chan<- error, processed *atomic.Int64) {
	for batch := range batchChan {
		if err := ctx.Err(); err != nil {
			errChan <- err
			return
		}
		if err := handle(ctx, batch); err != nil {
			errChan <- fmt.Errorf("failed to handle batch: %w", err)
			return
		}
		processed.Add(int64(len(batch)))
	}
	errChan <- nil
}
