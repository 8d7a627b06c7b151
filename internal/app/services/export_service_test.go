package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratensor/addresser/internal/core/ports"
)

type fakeReader struct {
	rows    []map[string]interface{}
	calls   []uint64
	failAt  int
	failErr error
}

func (r *fakeReader) FetchAfter(_ context.Context, afterID uint64, limit int) ([]map[string]interface{}, error) {
	r.calls = append(r.calls, afterID)
	if r.failErr != nil && len(r.calls) == r.failAt {
		return nil, r.failErr
	}

	var page []map[string]interface{}
	for _, row := range r.rows {
		id, _ := row["id"].(json.Number).Int64()
		if uint64(id) > afterID && len(page) < limit {
			page = append(page, row)
		}
	}
	return page, nil
}

func addressRows(n int) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, map[string]interface{}{
			"id":          json.Number(strings.Repeat("1", i)),
			"fias_id":     "guid-" + strings.Repeat("a", i),
			"full_text":   "г. Москва, ул. Ленина",
			"postal_code": "101000",
			"updated_at":  json.Number("1715299200"),
		})
	}
	return rows
}

func TestExportAddressesJSONPaginates(t *testing.T) {
	reader := &fakeReader{rows: addressRows(5)}
	path := filepath.Join(t.TempDir(), "out", "addresses.jsonl")

	count, err := NewExportService(reader).ExportAddresses(context.Background(), ports.ExportOptions{
		Format:    ports.FormatJSON,
		FilePath:  path,
		BatchSize: 2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
	assert.Equal(t, []uint64{0, 11, 1111}, reader.calls)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 5)

	assert.Equal(t, "guid-a", lines[0]["fias_id"])
	assert.Equal(t, "101000", lines[0]["postal_code"])
	assert.NotContains(t, lines[0], "updated_at")
}

func TestExportAddressesCSVHeader(t *testing.T) {
	reader := &fakeReader{rows: addressRows(1)}
	path := filepath.Join(t.TempDir(), "addresses.csv")

	count, err := NewExportService(reader).ExportAddresses(context.Background(), ports.ExportOptions{
		Format:        ports.FormatCSV,
		FilePath:      path,
		IncludeHeader: true,
		Delimiter:     ';',
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id;fias_id;"))
	assert.True(t, strings.HasPrefix(lines[1], "1;guid-a;"))
}

func TestExportAddressesFetchError(t *testing.T) {
	fetchErr := errors.New("timeout")
	reader := &fakeReader{rows: addressRows(3), failAt: 2, failErr: fetchErr}

	count, err := NewExportService(reader).ExportAddresses(context.Background(), ports.ExportOptions{
		Format:    ports.FormatJSON,
		FilePath:  filepath.Join(t.TempDir(), "addresses.jsonl"),
		BatchSize: 2,
	})
	assert.ErrorIs(t, err, fetchErr)
	assert.EqualValues(t, 2, count)
}

func TestExportAddressesUnsupportedFormat(t *testing.T) {
	_, err := NewExportService(&fakeReader{}).ExportAddresses(context.Background(), ports.ExportOptions{
		Format:   "xml",
		FilePath: filepath.Join(t.TempDir(), "addresses.xml"),
	})
	assert.Error(t, err)
}
