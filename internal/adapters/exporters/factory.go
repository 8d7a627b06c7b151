package exporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/terratensor/addresser/internal/core/ports"
)

type WriterFactory struct{}

var _ ports.WriterFactory = (*WriterFactory)(nil)

func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

func (f *WriterFactory) CreateWriter(w io.Writer, options ports.ExportOptions) (ports.RecordWriter, error) {
	switch options.Format {
	case ports.FormatCSV:
		return NewCSVWriter(w, options)
	case ports.FormatJSON:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", options.Format)
	}
}

// CreateFileWriter создает writer для файла, недостающие каталоги создаются
func (f *WriterFactory) CreateFileWriter(filePath string, options ports.ExportOptions) (ports.RecordWriter, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	writer, err := f.CreateWriter(file, options)
	if err != nil {
		file.Close()
		return nil, err
	}

	// Возвращаем composit writer который закроет и файл
	return &fileWriter{
		RecordWriter: writer,
		file:         file,
	}, nil
}

type fileWriter struct {
	ports.RecordWriter
	file *os.File
}

func (w *fileWriter) Close() error {
	if err := w.RecordWriter.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
