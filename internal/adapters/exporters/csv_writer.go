package exporters

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/terratensor/addresser/internal/core/ports"
)

type CSVWriter struct {
	writer  *csv.Writer
	options ports.ExportOptions
	columns []string
}

func NewCSVWriter(w io.Writer, options ports.ExportOptions) (*CSVWriter, error) {
	csvWriter := csv.NewWriter(w)
	if options.Delimiter != 0 {
		csvWriter.Comma = options.Delimiter
	} else {
		csvWriter.Comma = ',' // default
	}

	return &CSVWriter{
		writer:  csvWriter,
		options: options,
	}, nil
}

// WriteHeader задает порядок колонок; сама строка заголовка пишется только с IncludeHeader
func (w *CSVWriter) WriteHeader(columns []string) error {
	w.columns = columns
	if !w.options.IncludeHeader {
		return nil
	}
	return w.writer.Write(columns)
}

func (w *CSVWriter) WriteRecord(record map[string]interface{}) error {
	if w.columns == nil {
		return fmt.Errorf("columns are not set, call WriteHeader first")
	}

	row := make([]string, len(w.columns))
	for i, col := range w.columns {
		row[i] = formatValue(record[col])
	}
	return w.writer.Write(row)
}

func (w *CSVWriter) Close() error {
	w.writer.Flush()
	return w.writer.Error()
}

// formatValue приводит значение из Manticore к строке
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
