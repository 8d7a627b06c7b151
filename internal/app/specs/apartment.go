package specs

import "github.com/terratensor/addresser/internal/core/domain"

// apartment_types
var apartmentTypes = &codeTable{
	name:  "apartment_types",
	level: domain.LevelFlat,
	entries: map[int]codeEntry{
		1:  {"помещение", "пом."},
		2:  {"квартира", "кв."},
		3:  {"офис", "оф."},
		4:  {"комната", "комн."},
		5:  {"рабочий участок", "раб.уч."},
		6:  {"склад", "скл."},
		7:  {"торговый зал", "торг.зал"},
		8:  {"цех", "цех"},
		9:  {"павильон", "пав."},
		10: {"подвал", "подв."},
		11: {"котельная", "кот."},
		12: {"погреб", "погр."},
		13: {"гараж", "гар."},
	},
	// 0 - "не определено", в выгрузках почти всегда обычная квартира
	aliases: map[int]int{0: 2},
}

// room_types
var roomTypes = &codeTable{
	name:  "room_types",
	level: domain.LevelRoom,
	entries: map[int]codeEntry{
		1: {"комната", "комн."},
		2: {"помещение", "пом."},
	},
	// 0 - "не определено", используем вместо него "помещение"
	aliases: map[int]int{0: 2},
}

// NewApartmentResolver returns the resolver of apartment (flat) type codes.
func NewApartmentResolver() CodeResolver {
	return apartmentTypes
}

// NewRoomResolver returns the resolver of room type codes.
func NewRoomResolver() CodeResolver {
	return roomTypes
}
