package domain

import (
	"fmt"
	"time"
)

// ParamType is a GAR param_types identifier.
type ParamType int

const (
	ParamPostalCode ParamType = 5
	ParamOKATO      ParamType = 6
	ParamOKTMO      ParamType = 7
	ParamKLADR      ParamType = 10
)

// AddressParamTypes are the only params the builder copies onto an address.
var AddressParamTypes = []ParamType{ParamKLADR, ParamOKATO, ParamOKTMO, ParamPostalCode}

// TimedValue is one candidate value of a param with its validity interval.
// Zero ValidFrom means unbounded past, zero ValidTo means open-ended.
type TimedValue struct {
	Value     string
	ValidFrom time.Time
	ValidTo   time.Time
}

// ObjectData is the relation_data of an addr_obj relation.
type ObjectData struct {
	ObjectGUID string
	Name       string
	TypeName   string
	Level      FiasLevel
}

// HouseData is the relation_data of a house relation.
type HouseData struct {
	ObjectGUID string
	HouseNum   string
	HouseType  int
	AddNum1    string
	AddType1   int
	AddNum2    string
	AddType2   int
}

// UnitData is the relation_data of apartment and room relations.
type UnitData struct {
	ObjectGUID string
	Number     string
	UnitType   int
}

// HierarchyNode is one version of one element of the hierarchy chain.
type HierarchyNode struct {
	RelationType RelationType
	IsActive     bool
	IsActual     bool
	StartDate    time.Time
	EndDate      time.Time

	// Ровно одно из полей заполнено в зависимости от RelationType
	Object *ObjectData
	House  *HouseData
	Unit   *UnitData

	Params map[ParamType][]TimedValue
}

// Payload is the hierarchy chain of one address object, ancestors included.
type Payload struct {
	HierarchyID int64
	ObjectID    int64
	Parents     []HierarchyNode
}

// IsLive reports whether the node is the current version: active and actual at once.
func (n *HierarchyNode) IsLive() bool {
	return n.IsActive && n.IsActual
}

// FiasLevel resolves the registry level of the node.
func (n *HierarchyNode) FiasLevel() (FiasLevel, error) {
	if n.RelationType == RelationAddrObj {
		if n.Object == nil {
			return 0, &MalformedInputError{Field: "relation_data", Err: fmt.Errorf("missing addr_obj data")}
		}
		return n.Object.Level, nil
	}
	level, ok := n.RelationType.FixedFiasLevel()
	if !ok {
		return 0, &MalformedInputError{Field: "relation_type", Err: fmt.Errorf("unknown relation type %q", n.RelationType)}
	}
	return level, nil
}

// ObjectGUID returns the source identifier regardless of the payload variant.
func (n *HierarchyNode) ObjectGUID() string {
	switch {
	case n.Object != nil:
		return n.Object.ObjectGUID
	case n.House != nil:
		return n.House.ObjectGUID
	case n.Unit != nil:
		return n.Unit.ObjectGUID
	}
	return ""
}

// String returns a string representation of the node
func (n *HierarchyNode) String() string {
	return fmt.Sprintf("%s %s [active=%v actual=%v]", n.RelationType, n.ObjectGUID(), n.IsActive, n.IsActual)
}
