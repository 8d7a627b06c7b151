package specs

import "github.com/terratensor/addresser/internal/core/domain"

// house_types
var houseTypes = &codeTable{
	name:  "house_types",
	level: domain.LevelHouse,
	entries: map[int]codeEntry{
		1:  {"владение", "влд."},
		2:  {"дом", "д."},
		3:  {"домовладение", "двлд."},
		4:  {"гараж", "гар."},
		5:  {"здание", "зд."},
		6:  {"шахта", "шахта"},
		7:  {"строение", "стр."},
		8:  {"сооружение", "соор."},
		9:  {"литера", "лит."},
		10: {"корпус", "корп."},
		11: {"подвал", "подв."},
		12: {"котельная", "кот."},
		13: {"погреб", "погр."},
		14: {"объект незавершенного строительства", "ОНС"},
	},
}

// addhouse_types: block qualifiers, a code space distinct from house_types
var houseBlockTypes = &codeTable{
	name:  "addhouse_types",
	level: domain.LevelHouse,
	entries: map[int]codeEntry{
		1: {"корпус", "корп."},
		2: {"строение", "стр."},
		3: {"сооружение", "соор."},
		4: {"литера", "лит."},
	},
}

// NewHouseResolver returns the resolver of house type codes.
func NewHouseResolver() CodeResolver {
	return houseTypes
}

// NewHouseBlockResolver returns the resolver of additional house number type codes.
func NewHouseBlockResolver() CodeResolver {
	return houseBlockTypes
}
