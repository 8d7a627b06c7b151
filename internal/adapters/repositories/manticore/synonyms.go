package manticore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/terratensor/addresser/internal/core/ports"
)

// maxSynonyms ограничивает выборку синонимов одного объекта
const maxSynonyms = 1000

// SynonymRepository читает и пишет синонимы адресов в таблице address_synonyms
type SynonymRepository struct {
	client *ManticoreClient
}

var _ ports.SynonymProvider = (*SynonymRepository)(nil)

func NewSynonymRepository(client *ManticoreClient) *SynonymRepository {
	return &SynonymRepository{client: client}
}

// Synonyms returns the distinct synonyms stored for fiasID.
func (r *SynonymRepository) Synonyms(ctx context.Context, fiasID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT synonym FROM %s WHERE fias_id = '%s' ORDER BY id ASC LIMIT %d OPTION max_matches=%d`,
		TableSynonyms, escapeString(fiasID), maxSynonyms, maxSynonyms)

	rows, err := r.client.FetchRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch synonyms: %w", err)
	}

	var synonyms []string
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		synonym, ok := row["synonym"].(string)
		if !ok || synonym == "" || seen[synonym] {
			continue
		}
		seen[synonym] = true
		synonyms = append(synonyms, synonym)
	}
	return synonyms, nil
}

// SaveSynonyms заменяет синонимы объектов пачкой
func (r *SynonymRepository) SaveSynonyms(ctx context.Context, synonyms map[string][]string) error {
	commands := make([]map[string]interface{}, 0, len(synonyms))
	for fiasID, list := range synonyms {
		for _, synonym := range list {
			commands = append(commands, map[string]interface{}{
				"replace": map[string]interface{}{
					"table": TableSynonyms,
					"id":    synonymID(fiasID, synonym),
					"doc": map[string]interface{}{
						"fias_id": fiasID,
						"synonym": synonym,
					},
				},
			})
		}
	}

	if err := r.client.bulk(ctx, commands); err != nil {
		return fmt.Errorf("failed to save synonyms: %w", err)
	}
	return nil
}

func synonymID(fiasID, synonym string) uint64 {
	return DocumentID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(fiasID+"\x00"+synonym)).String())
}
