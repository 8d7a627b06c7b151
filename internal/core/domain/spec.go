package domain

// NamePosition says whether the short type name precedes or follows the proper name.
type NamePosition int

const (
	NamePositionBefore NamePosition = iota + 1 // г. Москва
	NamePositionAfter                          // Московская обл.
)

// AddressLevelSpec describes how an address element type is displayed.
type AddressLevelSpec struct {
	Level        Level
	FullName     string
	ShortName    string
	NamePosition NamePosition
}
