package domain

import "strings"

// AddressPart holds the fields of one populated address level.
type AddressPart struct {
	FiasID       string       `json:"fias_id"`
	KladrID      *string      `json:"kladr_id,omitempty"`
	Name         *string      `json:"name,omitempty"`
	Type         string       `json:"type,omitempty"`
	TypeFull     string       `json:"type_full,omitempty"`
	TypePosition NamePosition `json:"type_position"`
	Renaming     []string     `json:"renaming,omitempty"`
}

// HouseBlock is one additional house number slot (корпус, строение ...).
type HouseBlock struct {
	Number   *string `json:"number,omitempty"`
	Type     string  `json:"type,omitempty"`
	TypeFull string  `json:"type_full,omitempty"`
}

// HousePart is the house level: the house number plus two independent block slots.
type HousePart struct {
	AddressPart
	Block1 *HouseBlock `json:"block1,omitempty"`
	Block2 *HouseBlock `json:"block2,omitempty"`
}

// Address is the flat, leveled result of a build.
//
// Merge contract: an Address may be handed back to a builder as the existing
// value of another pass. A pass replaces only the parts of the levels it
// processes and the terminal summary fields; every other part is kept as is.
// After a failed pass the Address is level-partial and must not be reused.
type Address struct {
	Region     *AddressPart `json:"region,omitempty"`
	Area       *AddressPart `json:"area,omitempty"`
	City       *AddressPart `json:"city,omitempty"`
	Settlement *AddressPart `json:"settlement,omitempty"`
	Street     *AddressPart `json:"street,omitempty"`
	House      *HousePart   `json:"house,omitempty"`
	Flat       *AddressPart `json:"flat,omitempty"`
	Room       *AddressPart `json:"room,omitempty"`

	// Данные последнего уровня
	FiasID          string    `json:"fias_id"`
	AddressLevel    Level     `json:"address_level"`
	FiasLevel       FiasLevel `json:"fias_level"`
	FiasHierarchyID int64     `json:"fias_hierarchy_id"`
	KladrID         *string   `json:"kladr_id,omitempty"`
	Okato           *string   `json:"okato,omitempty"`
	Oktmo           *string   `json:"oktmo,omitempty"`
	PostalCode      *string   `json:"postal_code,omitempty"`
	Synonyms        []string  `json:"synonyms,omitempty"`
	Renaming        []string  `json:"renaming,omitempty"`
}

// Part returns the part stored for level, or nil.
func (a *Address) Part(level Level) *AddressPart {
	switch level {
	case LevelRegion:
		return a.Region
	case LevelArea:
		return a.Area
	case LevelCity:
		return a.City
	case LevelSettlement:
		return a.Settlement
	case LevelStreet:
		return a.Street
	case LevelHouse:
		if a.House == nil {
			return nil
		}
		return &a.House.AddressPart
	case LevelFlat:
		return a.Flat
	case LevelRoom:
		return a.Room
	}
	return nil
}

// SetPart replaces the part of an addr_obj, flat or room level.
func (a *Address) SetPart(level Level, part *AddressPart) {
	switch level {
	case LevelRegion:
		a.Region = part
	case LevelArea:
		a.Area = part
	case LevelCity:
		a.City = part
	case LevelSettlement:
		a.Settlement = part
	case LevelStreet:
		a.Street = part
	case LevelFlat:
		a.Flat = part
	case LevelRoom:
		a.Room = part
	}
}

// String renders the address as a comma separated line, e.g. "г Москва, ул Ленина, д. 5, корп. 2".
func (a *Address) String() string {
	var out []string

	for _, level := range []Level{LevelRegion, LevelArea, LevelCity, LevelSettlement, LevelStreet} {
		if s := a.Part(level).format(); s != "" {
			out = append(out, s)
		}
	}

	if a.House != nil {
		if s := a.House.format(); s != "" {
			out = append(out, s)
		}
		for _, block := range []*HouseBlock{a.House.Block1, a.House.Block2} {
			if s := block.format(); s != "" {
				out = append(out, s)
			}
		}
	}

	for _, part := range []*AddressPart{a.Flat, a.Room} {
		if s := part.format(); s != "" {
			out = append(out, s)
		}
	}

	return strings.Join(out, ", ")
}

func (p *AddressPart) format() string {
	if p == nil || p.Name == nil {
		return ""
	}
	return joinTyped(*p.Name, p.Type, p.TypePosition)
}

func (b *HouseBlock) format() string {
	if b == nil || b.Number == nil {
		return ""
	}
	return joinTyped(*b.Number, b.Type, NamePositionBefore)
}

func joinTyped(name, typ string, position NamePosition) string {
	if typ == "" {
		return name
	}
	if position == NamePositionAfter {
		return name + " " + typ
	}
	return typ + " " + name
}
