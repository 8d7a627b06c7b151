package builder

import (
	"fmt"

	"github.com/terratensor/addresser/internal/core/domain"
)

// levelContext is what a handler needs to fill the fields of one level.
type levelContext struct {
	objectID int64
	group    levelGroup
	node     *domain.HierarchyNode
	params   map[domain.ParamType]*string
}

// levelHandler assigns the fields of one address level and returns its fias id.
type levelHandler func(b *Builder, address *domain.Address, lc *levelContext) (string, error)

func newHandlers() map[domain.Level]levelHandler {
	return map[domain.Level]levelHandler{
		domain.LevelRegion:     assignRegion,
		domain.LevelArea:       assignAddrObj,
		domain.LevelCity:       assignAddrObj,
		domain.LevelSettlement: assignAddrObj,
		domain.LevelStreet:     assignAddrObj,
		domain.LevelHouse:      assignHouse,
		domain.LevelFlat:       assignUnit,
		domain.LevelRoom:       assignUnit,
	}
}

func assignRegion(b *Builder, address *domain.Address, lc *levelContext) (string, error) {
	obj, err := objectData(lc.node)
	if err != nil {
		return "", err
	}

	if obj.ObjectGUID == "" {
		return "", &domain.BuildFailedError{ObjectID: lc.objectID, Level: lc.group.fiasLevel, Reason: "empty fias id for region level"}
	}
	if prepareString(obj.Name) == nil {
		return "", &domain.BuildFailedError{ObjectID: lc.objectID, Level: lc.group.fiasLevel, Reason: "empty name for region level"}
	}

	return assignAddrObj(b, address, lc)
}

// assignAddrObj fills region, area, city, settlement and street levels.
func assignAddrObj(b *Builder, address *domain.Address, lc *levelContext) (string, error) {
	obj, err := objectData(lc.node)
	if err != nil {
		return "", err
	}

	spec, err := b.addrObj.Resolve(lc.group.level, obj.TypeName)
	if err != nil {
		return "", err
	}

	name := prepareString(obj.Name)

	address.SetPart(lc.group.level, &domain.AddressPart{
		FiasID:       obj.ObjectGUID,
		KladrID:      lc.params[domain.ParamKLADR],
		Name:         name,
		Type:         spec.ShortName,
		TypeFull:     spec.FullName,
		TypePosition: spec.NamePosition,
		// учитываем переименование
		Renaming: resolveLevelRenaming(lc.group.nodes, name),
	})

	if renaming := address.Part(lc.group.level).Renaming; len(renaming) > 0 {
		address.Renaming = renaming
	}

	return obj.ObjectGUID, nil
}

func assignHouse(b *Builder, address *domain.Address, lc *levelContext) (string, error) {
	house := lc.node.House
	if house == nil {
		return "", &domain.MalformedInputError{Field: "relation_data", Err: fmt.Errorf("missing house data for %s", lc.node)}
	}

	// Респ Башкортостан, г Кумертау, ул Брикетная, влд 5 к А стр 1/6
	spec, err := b.house.Resolve(domain.LevelHouse, house.HouseType)
	if err != nil {
		return "", err
	}

	block1, err := b.resolveBlock(house.AddNum1, house.AddType1)
	if err != nil {
		return "", err
	}
	block2, err := b.resolveBlock(house.AddNum2, house.AddType2)
	if err != nil {
		return "", err
	}

	address.House = &domain.HousePart{
		AddressPart: domain.AddressPart{
			FiasID:       house.ObjectGUID,
			KladrID:      lc.params[domain.ParamKLADR],
			Name:         prepareString(house.HouseNum),
			Type:         spec.ShortName,
			TypeFull:     spec.FullName,
			TypePosition: spec.NamePosition,
		},
		Block1: block1,
		Block2: block2,
	}

	return house.ObjectGUID, nil
}

// resolveBlock builds one block slot; the slot is absent when it has neither number nor type.
func (b *Builder) resolveBlock(number string, typ int) (*domain.HouseBlock, error) {
	num := prepareString(number)
	if num == nil && typ == 0 {
		return nil, nil
	}

	block := &domain.HouseBlock{Number: num}
	if typ != 0 {
		spec, err := b.houseBlock.Resolve(domain.LevelHouse, typ)
		if err != nil {
			return nil, err
		}
		block.Type = spec.ShortName
		block.TypeFull = spec.FullName
	}
	return block, nil
}

// assignUnit fills flat and room levels.
func assignUnit(b *Builder, address *domain.Address, lc *levelContext) (string, error) {
	unit := lc.node.Unit
	if unit == nil {
		return "", &domain.MalformedInputError{Field: "relation_data", Err: fmt.Errorf("missing unit data for %s", lc.node)}
	}

	resolver := b.apartment
	if lc.group.level == domain.LevelRoom {
		resolver = b.room
	}

	spec, err := resolver.Resolve(lc.group.level, unit.UnitType)
	if err != nil {
		return "", err
	}

	address.SetPart(lc.group.level, &domain.AddressPart{
		FiasID:       unit.ObjectGUID,
		KladrID:      lc.params[domain.ParamKLADR],
		Name:         prepareString(unit.Number),
		Type:         spec.ShortName,
		TypeFull:     spec.FullName,
		TypePosition: spec.NamePosition,
	})

	return unit.ObjectGUID, nil
}

func objectData(node *domain.HierarchyNode) (*domain.ObjectData, error) {
	if node.Object == nil {
		return nil, &domain.MalformedInputError{Field: "relation_data", Err: fmt.Errorf("missing addr_obj data for %s", node)}
	}
	return node.Object, nil
}
