package pipeline

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratensor/addresser/internal/core/domain"
)

const parentsJSON = `[
	{
		"relation": {
			"relation_type": "addr_obj",
			"relation_is_active": 1,
			"relation_is_actual": "1",
			"relation_data": {"objectguid": "0c5b2444-70a0-4932-980c-b4dc0d3f02b5", "name": "Москва", "typename": "г", "level": "1"}
		},
		"params": [
			{"values": [
				{"type_id": 10, "value": "7700000000000", "start_date": "1900-01-01", "end_date": "2079-06-06"},
				{"type_id": "6", "value": "45000000000", "start_date": "1900-01-01", "end_date": ""}
			]}
		]
	},
	{
		"relation": {
			"relation_type": "house",
			"relation_is_active": true,
			"relation_is_actual": "t",
			"relation_start_date": "2011-09-13",
			"relation_end_date": "2079-06-06 00:00:00",
			"relation_data": {"objectguid": "house-guid", "housenum": "5", "housetype": "2", "addnum1": "А", "addtype1": 4, "addnum2": null, "addtype2": null}
		}
	},
	{
		"relation": {
			"relation_type": "apartment",
			"relation_is_active": false,
			"relation_is_actual": "f",
			"relation_data": "{\"objectguid\": \"flat-guid\", \"number\": \"10\", \"aparttype\": 2}"
		}
	},
	{
		"relation": {
			"relation_type": "room",
			"relation_is_active": 1,
			"relation_is_actual": 1,
			"relation_data": {"objectguid": "room-guid", "number": "2", "roomtype": 0}
		}
	}
]`

func TestDecodePayload(t *testing.T) {
	encoded, err := json.Marshal(parentsJSON)
	require.NoError(t, err)

	inputs := map[string]string{
		"inline parents":  `{"hierarchy_id": 77, "object_id": "1001", "parents": ` + parentsJSON + `}`,
		"encoded parents": `{"hierarchy_id": "77", "object_id": 1001, "parents": ` + string(encoded) + `}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			payload, err := DecodePayload([]byte(input))
			require.NoError(t, err)

			assert.Equal(t, int64(77), payload.HierarchyID)
			assert.Equal(t, int64(1001), payload.ObjectID)
			require.Len(t, payload.Parents, 4)

			region := payload.Parents[0]
			assert.Equal(t, domain.RelationAddrObj, region.RelationType)
			assert.True(t, region.IsLive())
			assert.Equal(t, &domain.ObjectData{
				ObjectGUID: "0c5b2444-70a0-4932-980c-b4dc0d3f02b5",
				Name:       "Москва",
				TypeName:   "г",
				Level:      domain.FiasLevelRegion,
			}, region.Object)
			assert.Equal(t, []domain.TimedValue{{
				Value:     "7700000000000",
				ValidFrom: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:   time.Date(2079, 6, 6, 0, 0, 0, 0, time.UTC),
			}}, region.Params[domain.ParamKLADR])
			require.Len(t, region.Params[domain.ParamOKATO], 1)
			assert.True(t, region.Params[domain.ParamOKATO][0].ValidTo.IsZero())

			house := payload.Parents[1]
			assert.True(t, house.IsLive())
			assert.Equal(t, time.Date(2011, 9, 13, 0, 0, 0, 0, time.UTC), house.StartDate)
			assert.Equal(t, time.Date(2079, 6, 6, 0, 0, 0, 0, time.UTC), house.EndDate)
			assert.Equal(t, &domain.HouseData{
				ObjectGUID: "house-guid",
				HouseNum:   "5",
				HouseType:  2,
				AddNum1:    "А",
				AddType1:   4,
			}, house.House)
			assert.Nil(t, house.Params)

			flat := payload.Parents[2]
			assert.False(t, flat.IsActive)
			assert.False(t, flat.IsActual)
			assert.Equal(t, &domain.UnitData{ObjectGUID: "flat-guid", Number: "10", UnitType: 2}, flat.Unit)

			room := payload.Parents[3]
			assert.Equal(t, &domain.UnitData{ObjectGUID: "room-guid", Number: "2", UnitType: 0}, room.Unit)
		})
	}
}

func TestDecodePayloadSteadWithoutData(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"object_id": 1, "parents": [{"relation": {"relation_type": "stead", "relation_is_active": 1, "relation_is_actual": 1}}]}`))
	require.NoError(t, err)
	require.Len(t, payload.Parents, 1)
	assert.Equal(t, domain.RelationStead, payload.Parents[0].RelationType)
}

func TestDecodePayloadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"not json", `{"object_id": `, ""},
		{"missing parents", `{"object_id": 1}`, "parents"},
		{"parents not an array", `{"object_id": 1, "parents": "{\"a\": 1}"}`, "parents"},
		{"bad bool", `{"object_id": 1, "parents": [{"relation": {"relation_type": "house", "relation_is_active": "yes"}}]}`, "parents"},
		{"bad date", `{"object_id": 1, "parents": [{"relation": {"relation_type": "house", "relation_end_date": "06.06.2079"}}]}`, "parents"},
		{"missing relation data", `{"object_id": 1, "parents": [{"relation": {"relation_type": "house"}}]}`, "relation_data"},
		{"unknown relation", `{"object_id": 1, "parents": [{"relation": {"relation_type": "garage", "relation_data": {}}}]}`, "relation_type"},
		{"bad level", `{"object_id": 1, "parents": [{"relation": {"relation_type": "addr_obj", "relation_data": {"level": "first"}}}]}`, "relation_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedInput))

			var malformed *domain.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}
