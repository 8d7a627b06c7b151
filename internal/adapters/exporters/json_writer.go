package exporters

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter пишет записи в формате JSON lines, по одному объекту на строку
type JSONWriter struct {
	buf     *bufio.Writer
	encoder *json.Encoder
	columns []string
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	buf := bufio.NewWriter(w)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	return &JSONWriter{buf: buf, encoder: encoder}
}

// WriteHeader ограничивает набор полей; заголовочной строки в JSON lines нет
func (w *JSONWriter) WriteHeader(columns []string) error {
	w.columns = columns
	return nil
}

func (w *JSONWriter) WriteRecord(record map[string]interface{}) error {
	out := record
	if w.columns != nil {
		out = make(map[string]interface{}, len(w.columns))
		for _, col := range w.columns {
			if v, ok := record[col]; ok {
				out[col] = v
			}
		}
	}
	if err := w.encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

func (w *JSONWriter) Close() error {
	return w.buf.Flush()
}
