package domain

import "fmt"

// Level is the semantic address level used in the output Address.
type Level int

const (
	LevelRegion Level = iota + 1
	LevelArea
	LevelCity
	LevelSettlement
	LevelStreet
	LevelHouse
	LevelFlat
	LevelRoom
	LevelStead    // земельный участок
	LevelCarPlace // машино-место
)

var levelNames = map[Level]string{
	LevelRegion:     "region",
	LevelArea:       "area",
	LevelCity:       "city",
	LevelSettlement: "settlement",
	LevelStreet:     "street",
	LevelHouse:      "house",
	LevelFlat:       "flat",
	LevelRoom:       "room",
	LevelStead:      "stead",
	LevelCarPlace:   "car_place",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// IsAddrObj сообщает, описывается ли уровень адресообразующим элементом (addr_obj)
func (l Level) IsAddrObj() bool {
	return l >= LevelRegion && l <= LevelStreet
}

// FiasLevel is the registry's own level tag (GAR object_levels).
type FiasLevel int

const (
	FiasLevelRegion               FiasLevel = 1  // субъект РФ
	FiasLevelAdmArea              FiasLevel = 2  // административный район
	FiasLevelMunArea              FiasLevel = 3  // муниципальный район
	FiasLevelMunSettlement        FiasLevel = 4  // сельское/городское поселение
	FiasLevelCity                 FiasLevel = 5  // город
	FiasLevelSettlement           FiasLevel = 6  // населенный пункт
	FiasLevelPlanningStructure    FiasLevel = 7  // элемент планировочной структуры
	FiasLevelRoadNetwork          FiasLevel = 8  // элемент улично-дорожной сети
	FiasLevelStead                FiasLevel = 9  // земельный участок
	FiasLevelBuilding             FiasLevel = 10 // здание (сооружение)
	FiasLevelPremises             FiasLevel = 11 // помещение
	FiasLevelPremisesWithinPremis FiasLevel = 12 // помещение в пределах помещения
	FiasLevelCarPlace             FiasLevel = 17 // машино-место
)

// Дополнительные территории (СНТ, ГСК и т.п.) попадают на уровень поселения,
// поэтому несколько уровней ФИАС могут соответствовать одному уровню адреса.
var fiasToAddressLevel = map[FiasLevel]Level{
	FiasLevelRegion:               LevelRegion,
	FiasLevelAdmArea:              LevelArea,
	FiasLevelMunArea:              LevelArea,
	FiasLevelMunSettlement:        LevelSettlement,
	FiasLevelCity:                 LevelCity,
	FiasLevelSettlement:           LevelSettlement,
	FiasLevelPlanningStructure:    LevelSettlement,
	FiasLevelRoadNetwork:          LevelStreet,
	FiasLevelStead:                LevelStead,
	FiasLevelBuilding:             LevelHouse,
	FiasLevelPremises:             LevelFlat,
	FiasLevelPremisesWithinPremis: LevelRoom,
	FiasLevelCarPlace:             LevelCarPlace,
}

// AddressLevel maps the registry level onto the output address level.
func (f FiasLevel) AddressLevel() (Level, bool) {
	level, ok := fiasToAddressLevel[f]
	return level, ok
}

// RelationType discriminates the payload of a hierarchy node.
type RelationType string

const (
	RelationAddrObj   RelationType = "addr_obj"
	RelationHouse     RelationType = "house"
	RelationApartment RelationType = "apartment"
	RelationRoom      RelationType = "room"
	RelationCarPlace  RelationType = "carplace"
	RelationStead     RelationType = "stead"
)

// FixedFiasLevel returns the predetermined registry level of non-addr_obj relations.
func (r RelationType) FixedFiasLevel() (FiasLevel, bool) {
	switch r {
	case RelationHouse:
		return FiasLevelBuilding, true
	case RelationApartment:
		return FiasLevelPremises, true
	case RelationRoom:
		return FiasLevelPremisesWithinPremis, true
	case RelationCarPlace:
		return FiasLevelCarPlace, true
	case RelationStead:
		return FiasLevelStead, true
	default:
		return 0, false
	}
}
