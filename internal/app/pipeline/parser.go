package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/terratensor/addresser/internal/config"
)

// maxLineSize - цепочка с большим количеством версий может занимать несколько мегабайт
const maxLineSize = 64 * 1024 * 1024

// BaseParser contains common functionality for file parsers
type BaseParser struct {
	batchSize  int
	bufferSize int
	quiet      bool
}

func NewBaseParser(cfg *config.Config) *BaseParser {
	return &BaseParser{
		batchSize:  cfg.BatchSize,
		bufferSize: cfg.ChannelBufferSize,
		quiet:      cfg.Quiet,
	}
}

// LineScanner creates a scanner for newline delimited records
func (p *BaseParser) LineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)
	return scanner
}

// ProgressBar creates a progress bar for file processing
func (p *BaseParser) ProgressBar(file *os.File, description string) (*progressbar.ProgressBar, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	if p.quiet {
		return progressbar.DefaultBytesSilent(stat.Size(), description), nil
	}

	return progressbar.NewOptions64(
		stat.Size(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	), nil
}
