package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/domain"
)

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hierarchy.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func payloadLine(objectID string) string {
	return `{"hierarchy_id": 1, "object_id": ` + objectID + `, "parents": [{"relation": {"relation_type": "addr_obj", "relation_is_active": 1, "relation_is_actual": 1, "relation_data": {"objectguid": "g", "name": "Москва", "typename": "г", "level": 1}}}]}`
}

func newTestParser(path string, batchSize int) *PayloadParser {
	p := NewPayloadParser(&config.Config{BatchSize: batchSize, ChannelBufferSize: 1}, path)
	p.quiet = true
	return p
}

func TestPayloadParserStream(t *testing.T) {
	path := writeDump(t,
		payloadLine("1"),
		"",
		payloadLine("2"),
		`{"object_id": 3, "parents": "not json"}`,
		payloadLine("4"),
		payloadLine("5"),
		payloadLine("6"),
	)

	var batches [][]int64
	count, err := newTestParser(path, 2).Stream(context.Background(), func(_ context.Context, batch []*domain.Payload) error {
		ids := make([]int64, 0, len(batch))
		for _, p := range batch {
			ids = append(ids, p.ObjectID)
		}
		batches = append(batches, ids)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Equal(t, [][]int64{{1, 2}, {4, 5}, {6}}, batches)
}

func TestPayloadParserHandlerError(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, payloadLine("1"))
	}
	path := writeDump(t, lines...)

	boom := errors.New("manticore is down")
	calls := 0
	count, err := newTestParser(path, 1).Stream(context.Background(), func(context.Context, []*domain.Payload) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), count)
}

func TestPayloadParserCanceled(t *testing.T) {
	path := writeDump(t, payloadLine("1"), payloadLine("2"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestParser(path, 1).Stream(ctx, func(context.Context, []*domain.Payload) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayloadParserMissingFile(t *testing.T) {
	_, err := newTestParser(filepath.Join(t.TempDir(), "missing.ndjson"), 1).Stream(context.Background(), func(context.Context, []*domain.Payload) error {
		return nil
	})
	assert.Error(t, err)
}
