package manticore

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terratensor/addresser/internal/core/domain"
	"github.com/terratensor/addresser/internal/core/ports"
)

// listSeparator разделяет значения списков (синонимы, прежние названия) в одном поле
const listSeparator = " | "

// AddressRepository хранит адреса в таблице addresses
type AddressRepository struct {
	client *ManticoreClient
	now    func() time.Time
}

var _ ports.AddressRepository = (*AddressRepository)(nil)

func NewAddressRepository(client *ManticoreClient) *AddressRepository {
	return &AddressRepository{client: client, now: time.Now}
}

func (r *AddressRepository) InitSchema(ctx context.Context) error {
	return r.client.InitSchema(ctx)
}

// SaveBatch заменяет документы адресов пачкой, id документа выводится из fias id
func (r *AddressRepository) SaveBatch(ctx context.Context, addresses []*domain.Address) error {
	if len(addresses) == 0 {
		return nil
	}

	updatedAt := r.now().Unix()
	commands := make([]map[string]interface{}, 0, len(addresses))
	for _, a := range addresses {
		if a.FiasID == "" {
			return fmt.Errorf("address without fias id: %s", a)
		}

		doc := addressToDoc(a)
		doc["updated_at"] = updatedAt

		commands = append(commands, map[string]interface{}{
			"replace": map[string]interface{}{
				"table": TableAddresses,
				"id":    DocumentID(a.FiasID),
				"doc":   doc,
			},
		})
	}

	if err := r.client.bulk(ctx, commands); err != nil {
		return fmt.Errorf("failed to save %d addresses: %w", len(addresses), err)
	}
	return nil
}

func (r *AddressRepository) Count(ctx context.Context) (int64, error) {
	return r.client.GetTableCount(ctx, TableAddresses)
}

// FetchAfter возвращает до limit строк с id больше afterID в порядке возрастания id
func (r *AddressRepository) FetchAfter(ctx context.Context, afterID uint64, limit int) ([]map[string]interface{}, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE id > %d ORDER BY id ASC LIMIT %d OPTION max_matches=%d`,
		TableAddresses, afterID, limit, limit)
	return r.client.FetchRows(ctx, query)
}

// DocumentID maps an object guid onto a positive 63-bit document id.
func DocumentID(fiasID string) uint64 {
	id, err := uuid.Parse(fiasID)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fiasID))
	}
	return binary.BigEndian.Uint64(id[:8]) & math.MaxInt64
}

// addressToDoc конвертирует доменную модель в map для Manticore
func addressToDoc(a *domain.Address) map[string]interface{} {
	doc := map[string]interface{}{
		"fias_id":           a.FiasID,
		"address_level":     int(a.AddressLevel),
		"fias_level":        int(a.FiasLevel),
		"fias_hierarchy_id": a.FiasHierarchyID,
		"kladr_id":          deref(a.KladrID),
		"okato":             deref(a.Okato),
		"oktmo":             deref(a.Oktmo),
		"postal_code":       deref(a.PostalCode),
		"full_text":         a.String(),
		"synonyms":          strings.Join(a.Synonyms, listSeparator),
		"renaming":          strings.Join(a.Renaming, listSeparator),
	}

	levels := []domain.Level{
		domain.LevelRegion, domain.LevelArea, domain.LevelCity, domain.LevelSettlement,
		domain.LevelStreet, domain.LevelHouse, domain.LevelFlat, domain.LevelRoom,
	}
	for i, level := range levels {
		part := a.Part(level)
		if part == nil {
			continue
		}
		prefix := partPrefixes[i]
		doc[prefix+"_fias_id"] = part.FiasID
		doc[prefix+"_kladr_id"] = deref(part.KladrID)
		doc[prefix+"_name"] = deref(part.Name)
		doc[prefix+"_type"] = part.Type
		doc[prefix+"_type_full"] = part.TypeFull
		doc[prefix+"_type_position"] = int(part.TypePosition)
		doc[prefix+"_renaming"] = strings.Join(part.Renaming, listSeparator)
	}

	if a.House != nil {
		for slot, block := range []*domain.HouseBlock{a.House.Block1, a.House.Block2} {
			if block == nil {
				continue
			}
			prefix := fmt.Sprintf("house_block%d", slot+1)
			doc[prefix+"_number"] = deref(block.Number)
			doc[prefix+"_type"] = block.Type
			doc[prefix+"_type_full"] = block.TypeFull
		}
	}

	return doc
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
