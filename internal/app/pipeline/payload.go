package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/terratensor/addresser/internal/core/domain"
)

const dateLayout = "2006-01-02"

// flexInt принимает как число, так и строку с числом
type flexInt int64

func (v *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*v = flexInt(n)
	return nil
}

// flexBool принимает true/false, 0/1 и их строковые варианты ("t", "f" из Postgres)
type flexBool bool

func (v *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch s {
	case "true", "t", "1":
		*v = true
	case "false", "f", "0", "", "null":
		*v = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// flexDate - дата в формате yyyy-MM-dd, пустая строка означает отсутствие границы
type flexDate time.Time

func (v *flexDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*v = flexDate(time.Time{})
		return nil
	}
	// допускаем полные метки времени, берем только дату
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %s", data)
	}
	*v = flexDate(t)
	return nil
}

type rawPayload struct {
	HierarchyID flexInt         `json:"hierarchy_id"`
	ObjectID    flexInt         `json:"object_id"`
	Parents     json.RawMessage `json:"parents"`
}

type rawParent struct {
	Relation rawRelation     `json:"relation"`
	Params   []rawParamGroup `json:"params"`
}

type rawRelation struct {
	RelationType string          `json:"relation_type"`
	IsActive     flexBool        `json:"relation_is_active"`
	IsActual     flexBool        `json:"relation_is_actual"`
	StartDate    flexDate        `json:"relation_start_date"`
	EndDate      flexDate        `json:"relation_end_date"`
	Data         json.RawMessage `json:"relation_data"`
}

type rawRelationData struct {
	ObjectGUID string  `json:"objectguid"`
	Name       string  `json:"name"`
	TypeName   string  `json:"typename"`
	Level      flexInt `json:"level"`

	HouseNum  string  `json:"housenum"`
	HouseType flexInt `json:"housetype"`
	AddNum1   string  `json:"addnum1"`
	AddType1  flexInt `json:"addtype1"`
	AddNum2   string  `json:"addnum2"`
	AddType2  flexInt `json:"addtype2"`

	Number    string  `json:"number"`
	ApartType flexInt `json:"aparttype"`
	RoomType  flexInt `json:"roomtype"`
}

type rawParamGroup struct {
	Values []rawParamValue `json:"values"`
}

type rawParamValue struct {
	TypeID    flexInt  `json:"type_id"`
	Value     string   `json:"value"`
	StartDate flexDate `json:"start_date"`
	EndDate   flexDate `json:"end_date"`
}

// DecodePayload parses one hierarchy record. parents may be a JSON array or
// a string holding the JSON array, as it is stored in the registry database.
func DecodePayload(data []byte) (*domain.Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.MalformedInputError{Err: err}
	}

	return DecodeRecord(int64(raw.HierarchyID), int64(raw.ObjectID), raw.Parents)
}

// DecodeRecord builds a payload from the columns of a registry row.
func DecodeRecord(hierarchyID, objectID int64, data []byte) (*domain.Payload, error) {
	parentsJSON, err := unwrapJSONString(data)
	if err != nil {
		return nil, &domain.MalformedInputError{Field: "parents", Err: err}
	}
	if len(parentsJSON) == 0 {
		return nil, &domain.MalformedInputError{Field: "parents", Err: fmt.Errorf("missing parents for object_id %d", objectID)}
	}

	var parents []rawParent
	if err := json.Unmarshal(parentsJSON, &parents); err != nil {
		return nil, &domain.MalformedInputError{Field: "parents", Err: err}
	}

	payload := &domain.Payload{
		HierarchyID: hierarchyID,
		ObjectID:    objectID,
		Parents:     make([]domain.HierarchyNode, 0, len(parents)),
	}

	for i := range parents {
		node, err := parents[i].toNode()
		if err != nil {
			return nil, err
		}
		payload.Parents = append(payload.Parents, node)
	}

	return payload, nil
}

func (p *rawParent) toNode() (domain.HierarchyNode, error) {
	rel := p.Relation
	node := domain.HierarchyNode{
		RelationType: domain.RelationType(rel.RelationType),
		IsActive:     bool(rel.IsActive),
		IsActual:     bool(rel.IsActual),
		StartDate:    time.Time(rel.StartDate),
		EndDate:      time.Time(rel.EndDate),
	}

	// земельные участки и машино-места не индексируются, данные не нужны
	if node.RelationType == domain.RelationStead || node.RelationType == domain.RelationCarPlace {
		return node, nil
	}

	dataJSON, err := unwrapJSONString(rel.Data)
	if err != nil {
		return node, &domain.MalformedInputError{Field: "relation_data", Err: err}
	}
	if len(dataJSON) == 0 {
		return node, &domain.MalformedInputError{Field: "relation_data", Err: fmt.Errorf("missing relation_data for %s relation", rel.RelationType)}
	}

	var data rawRelationData
	if err := json.Unmarshal(dataJSON, &data); err != nil {
		return node, &domain.MalformedInputError{Field: "relation_data", Err: err}
	}

	switch node.RelationType {
	case domain.RelationAddrObj:
		node.Object = &domain.ObjectData{
			ObjectGUID: data.ObjectGUID,
			Name:       data.Name,
			TypeName:   data.TypeName,
			Level:      domain.FiasLevel(data.Level),
		}
	case domain.RelationHouse:
		node.House = &domain.HouseData{
			ObjectGUID: data.ObjectGUID,
			HouseNum:   data.HouseNum,
			HouseType:  int(data.HouseType),
			AddNum1:    data.AddNum1,
			AddType1:   int(data.AddType1),
			AddNum2:    data.AddNum2,
			AddType2:   int(data.AddType2),
		}
	case domain.RelationApartment:
		node.Unit = &domain.UnitData{ObjectGUID: data.ObjectGUID, Number: data.Number, UnitType: int(data.ApartType)}
	case domain.RelationRoom:
		node.Unit = &domain.UnitData{ObjectGUID: data.ObjectGUID, Number: data.Number, UnitType: int(data.RoomType)}
	default:
		return node, &domain.MalformedInputError{Field: "relation_type", Err: fmt.Errorf("unknown relation type %q", rel.RelationType)}
	}

	for _, group := range p.Params {
		for _, v := range group.Values {
			if node.Params == nil {
				node.Params = make(map[domain.ParamType][]domain.TimedValue)
			}
			typ := domain.ParamType(v.TypeID)
			node.Params[typ] = append(node.Params[typ], domain.TimedValue{
				Value:     v.Value,
				ValidFrom: time.Time(v.StartDate),
				ValidTo:   time.Time(v.EndDate),
			})
		}
	}

	return node, nil
}

// unwrapJSONString returns the JSON document stored either inline or as a JSON string.
func unwrapJSONString(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] != '"' {
		return data, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return bytes.TrimSpace([]byte(s)), nil
}
