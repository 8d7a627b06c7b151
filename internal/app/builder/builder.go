// Package builder assembles a flat Address from a FIAS hierarchy chain.
package builder

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/terratensor/addresser/internal/app/specs"
	"github.com/terratensor/addresser/internal/core/domain"
	"github.com/terratensor/addresser/internal/core/ports"
)

// Builder формирует адрес на основе данных из ФИАС.
// Не хранит состояния между вызовами и может использоваться из нескольких горутин,
// если SynonymProvider потокобезопасен.
type Builder struct {
	addrObj    specs.NameResolver
	house      specs.CodeResolver
	houseBlock specs.CodeResolver
	apartment  specs.CodeResolver
	room       specs.CodeResolver
	synonyms   ports.SynonymProvider
	now        func() time.Time
	handlers   map[domain.Level]levelHandler
}

var _ ports.AddressBuilder = (*Builder)(nil)

type Option func(*Builder)

// WithClock overrides the current date used to filter expired params.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithResolvers replaces the default type spec tables.
func WithResolvers(addrObj specs.NameResolver, house, houseBlock, apartment, room specs.CodeResolver) Option {
	return func(b *Builder) {
		b.addrObj = addrObj
		b.house = house
		b.houseBlock = houseBlock
		b.apartment = apartment
		b.room = room
	}
}

// New creates a builder. A nil synonyms provider yields addresses without synonyms.
func New(synonyms ports.SynonymProvider, opts ...Option) *Builder {
	b := &Builder{
		addrObj:    specs.NewAddrObjResolver(),
		house:      specs.NewHouseResolver(),
		houseBlock: specs.NewHouseBlockResolver(),
		apartment:  specs.NewApartmentResolver(),
		room:       specs.NewRoomResolver(),
		synonyms:   synonyms,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.handlers = newHandlers()
	return b
}

// levelGroup - все версии элементов иерархии одного уровня ФИАС
type levelGroup struct {
	fiasLevel domain.FiasLevel
	level     domain.Level
	nodes     []*domain.HierarchyNode
}

// эти уровни не индексируем, таким образом сюда они попадать не должны
var unsupportedLevels = map[domain.Level]bool{
	domain.LevelStead:    true,
	domain.LevelCarPlace: true,
}

// Build builds the address of payload. When existing is not nil it is filled in place
// following the merge contract of domain.Address and returned.
func (b *Builder) Build(ctx context.Context, payload *domain.Payload, existing *domain.Address) (*domain.Address, error) {
	if payload == nil {
		return nil, &domain.MalformedInputError{Err: fmt.Errorf("nil payload")}
	}

	groups, err := groupByLevel(payload.Parents)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, &domain.BuildFailedError{ObjectID: payload.ObjectID, Reason: "empty hierarchy"}
	}

	// мы должны сохранить изменения внесенные другими проходами
	address := existing
	if address == nil {
		address = &domain.Address{}
	}

	now := b.now()

	for i, group := range groups {
		terminal := i == len(groups)-1

		if unsupportedLevels[group.level] {
			return nil, &domain.UnsupportedLevelError{Level: group.level}
		}

		handler, ok := b.handlers[group.level]
		if !ok {
			return nil, &domain.BuildFailedError{
				ObjectID: payload.ObjectID,
				Level:    group.fiasLevel,
				Reason:   fmt.Sprintf("address level %s has no type", group.level),
			}
		}

		live := selectLive(group.nodes)
		if len(live) > 1 {
			return nil, &domain.BuildFailedError{
				ObjectID: payload.ObjectID,
				Level:    group.fiasLevel,
				Count:    len(live),
				Reason:   fmt.Sprintf("there are %d actual relations for one fias level", len(live)),
			}
		}

		if len(live) == 0 {
			// нет актуальной версии: для промежуточного уровня просто нет fias id,
			// для последнего уровня это ошибка
			if terminal {
				return nil, &domain.BuildFailedError{
					ObjectID: payload.ObjectID,
					Level:    group.fiasLevel,
					Reason:   "empty fias id for terminal level",
				}
			}
			continue
		}

		lc := &levelContext{
			objectID: payload.ObjectID,
			group:    group,
			node:     live[0],
			params:   resolveActualParams(live[0].Params, now),
		}

		fiasID, err := handler(b, address, lc)
		if err != nil {
			return nil, err
		}

		// данные последнего уровня
		if terminal {
			if err := b.finalize(ctx, address, payload, lc, fiasID); err != nil {
				return nil, err
			}
		}
	}

	return address, nil
}

func (b *Builder) finalize(ctx context.Context, address *domain.Address, payload *domain.Payload, lc *levelContext, fiasID string) error {
	if fiasID == "" {
		return &domain.BuildFailedError{
			ObjectID: payload.ObjectID,
			Level:    lc.group.fiasLevel,
			Reason:   "empty fias id for terminal level",
		}
	}

	address.FiasID = fiasID
	address.AddressLevel = lc.group.level
	address.FiasLevel = lc.group.fiasLevel
	address.FiasHierarchyID = payload.HierarchyID
	address.KladrID = lc.params[domain.ParamKLADR]
	address.Okato = lc.params[domain.ParamOKATO]
	address.Oktmo = lc.params[domain.ParamOKTMO]
	address.PostalCode = lc.params[domain.ParamPostalCode]

	address.Synonyms = nil
	if b.synonyms != nil {
		synonyms, err := b.synonyms.Synonyms(ctx, fiasID)
		if err != nil {
			return fmt.Errorf("failed to get synonyms for %s: %w", fiasID, err)
		}
		address.Synonyms = synonyms
	}

	return nil
}

// groupByLevel раскладывает цепочку по уровням ФИАС, от субъекта к помещению
func groupByLevel(nodes []domain.HierarchyNode) ([]levelGroup, error) {
	var groups []levelGroup
	index := make(map[domain.FiasLevel]int)

	for i := range nodes {
		node := &nodes[i]

		fiasLevel, err := node.FiasLevel()
		if err != nil {
			return nil, err
		}

		level, ok := fiasLevel.AddressLevel()
		if !ok {
			return nil, &domain.MalformedInputError{Field: "level", Err: fmt.Errorf("unknown fias level %d", fiasLevel)}
		}

		pos, ok := index[fiasLevel]
		if !ok {
			pos = len(groups)
			index[fiasLevel] = pos
			groups = append(groups, levelGroup{fiasLevel: fiasLevel, level: level})
		}
		groups[pos].nodes = append(groups[pos].nodes, node)
	}

	slices.SortStableFunc(groups, func(a, b levelGroup) int {
		return cmp.Compare(a.fiasLevel, b.fiasLevel)
	})

	return groups, nil
}

func selectLive(nodes []*domain.HierarchyNode) []*domain.HierarchyNode {
	var live []*domain.HierarchyNode
	for _, node := range nodes {
		if node.IsLive() {
			live = append(live, node)
		}
	}
	return live
}
