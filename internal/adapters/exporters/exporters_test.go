package exporters

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratensor/addresser/internal/core/ports"
)

var testColumns = []string{"id", "fias_id", "full_text", "address_level"}

func testRecord() map[string]interface{} {
	return map[string]interface{}{
		"id":            json.Number("9007199254740993"),
		"fias_id":       "0c5b2444-70a0-4932-980c-b4dc0d3f02b5",
		"full_text":     "г. Москва, ул. Ленина, д. 5",
		"address_level": float64(6),
		"updated_at":    json.Number("1700000000"),
	}
}

func TestCSVWriter(t *testing.T) {
	tests := []struct {
		name    string
		options ports.ExportOptions
		want    string
	}{
		{
			name:    "with header",
			options: ports.ExportOptions{Format: ports.FormatCSV, IncludeHeader: true},
			want: "id,fias_id,full_text,address_level\n" +
				"9007199254740993,0c5b2444-70a0-4932-980c-b4dc0d3f02b5,\"г. Москва, ул. Ленина, д. 5\",6\n",
		},
		{
			name:    "tab delimited without header",
			options: ports.ExportOptions{Format: ports.FormatCSV, Delimiter: '\t'},
			want:    "9007199254740993\t0c5b2444-70a0-4932-980c-b4dc0d3f02b5\tг. Москва, ул. Ленина, д. 5\t6\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriterFactory().CreateWriter(&buf, tt.options)
			require.NoError(t, err)

			require.NoError(t, w.WriteHeader(testColumns))
			require.NoError(t, w.WriteRecord(testRecord()))
			require.NoError(t, w.Close())

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCSVWriterRequiresColumns(t *testing.T) {
	w, err := NewCSVWriter(&bytes.Buffer{}, ports.ExportOptions{})
	require.NoError(t, err)
	assert.Error(t, w.WriteRecord(testRecord()))
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterFactory().CreateWriter(&buf, ports.ExportOptions{Format: ports.FormatJSON})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader(testColumns))
	require.NoError(t, w.WriteRecord(testRecord()))
	require.NoError(t, w.WriteRecord(map[string]interface{}{"fias_id": "second"}))
	require.NoError(t, w.Close())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	assert.JSONEq(t, `{
		"id": 9007199254740993,
		"fias_id": "0c5b2444-70a0-4932-980c-b4dc0d3f02b5",
		"full_text": "г. Москва, ул. Ленина, д. 5",
		"address_level": 6
	}`, string(lines[0]))
	assert.JSONEq(t, `{"fias_id": "second"}`, string(lines[1]))
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := NewWriterFactory().CreateWriter(&bytes.Buffer{}, ports.ExportOptions{Format: "xml"})
	assert.Error(t, err)
}

func TestCreateFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "addresses.jsonl")

	w, err := NewWriterFactory().CreateFileWriter(path, ports.ExportOptions{Format: ports.FormatJSON})
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"fias_id"}))
	require.NoError(t, w.WriteRecord(testRecord()))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"fias_id\":\"0c5b2444-70a0-4932-980c-b4dc0d3f02b5\"}\n", string(content))
}
