package ports

import (
	"context"

	"github.com/terratensor/addresser/internal/core/domain"
)

// SynonymProvider отдаёт синонимы адресного объекта по его GUID ФИАС
type SynonymProvider interface {
	Synonyms(ctx context.Context, fiasID string) ([]string, error)
}

// AddressBuilder turns one hierarchy payload into an Address, optionally merging into existing.
type AddressBuilder interface {
	Build(ctx context.Context, payload *domain.Payload, existing *domain.Address) (*domain.Address, error)
}

// AddressRepository определяет порт для сохранения построенных адресов
type AddressRepository interface {
	InitSchema(ctx context.Context) error
	SaveBatch(ctx context.Context, addresses []*domain.Address) error
	Count(ctx context.Context) (int64, error)
}

// AddressReader отдаёт сохранённые адреса страницами по возрастанию id
type AddressReader interface {
	FetchAfter(ctx context.Context, afterID uint64, limit int) ([]map[string]interface{}, error)
}

// PayloadHandler receives decoded payloads in batches.
type PayloadHandler func(ctx context.Context, batch []*domain.Payload) error

// PayloadSource поставляет сырые иерархии из реестра
type PayloadSource interface {
	Stream(ctx context.Context, handle PayloadHandler) (int64, error)
}
