package specs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratensor/addresser/internal/core/domain"
)

func TestCodeResolvers(t *testing.T) {
	tests := []struct {
		name     string
		resolver CodeResolver
		level    domain.Level
		code     int
		full     string
		short    string
	}{
		{"room comnata", NewRoomResolver(), domain.LevelRoom, 1, "комната", "комн."},
		{"room pomeshenie", NewRoomResolver(), domain.LevelRoom, 2, "помещение", "пом."},
		{"room undefined aliased", NewRoomResolver(), domain.LevelRoom, 0, "помещение", "пом."},

		{"apartment pomeshenie", NewApartmentResolver(), domain.LevelFlat, 1, "помещение", "пом."},
		{"apartment kvartira", NewApartmentResolver(), domain.LevelFlat, 2, "квартира", "кв."},
		{"apartment komnata", NewApartmentResolver(), domain.LevelFlat, 4, "комната", "комн."},
		{"apartment pogreb", NewApartmentResolver(), domain.LevelFlat, 12, "погреб", "погр."},
		{"apartment garazh", NewApartmentResolver(), domain.LevelFlat, 13, "гараж", "гар."},
		{"apartment undefined aliased", NewApartmentResolver(), domain.LevelFlat, 0, "квартира", "кв."},

		{"house dom", NewHouseResolver(), domain.LevelHouse, 2, "дом", "д."},
		{"house litera", NewHouseResolver(), domain.LevelHouse, 9, "литера", "лит."},
		{"house korpus", NewHouseResolver(), domain.LevelHouse, 10, "корпус", "корп."},

		{"block korpus", NewHouseBlockResolver(), domain.LevelHouse, 1, "корпус", "корп."},
		{"block stroenie", NewHouseBlockResolver(), domain.LevelHouse, 2, "строение", "стр."},
		{"block litera", NewHouseBlockResolver(), domain.LevelHouse, 4, "литера", "лит."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.resolver.Resolve(tt.level, tt.code)
			require.NoError(t, err)
			assert.Equal(t, domain.AddressLevelSpec{
				Level:        tt.level,
				FullName:     tt.full,
				ShortName:    tt.short,
				NamePosition: domain.NamePositionBefore,
			}, spec)
		})
	}
}

func TestCodeResolversUnknownCode(t *testing.T) {
	tests := []struct {
		name     string
		resolver CodeResolver
		level    domain.Level
		code     int
		table    string
	}{
		{"room", NewRoomResolver(), domain.LevelRoom, 3, "room_types"},
		{"room big", NewRoomResolver(), domain.LevelRoom, 50000, "room_types"},
		{"apartment", NewApartmentResolver(), domain.LevelFlat, 50000, "apartment_types"},
		{"house", NewHouseResolver(), domain.LevelHouse, 50000, "house_types"},
		{"house has no undefined alias", NewHouseResolver(), domain.LevelHouse, 0, "house_types"},
		{"block", NewHouseBlockResolver(), domain.LevelHouse, 50000, "addhouse_types"},
		{"wrong level", NewRoomResolver(), domain.LevelFlat, 1, "room_types"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.resolver.Resolve(tt.level, tt.code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrSpecNotFound))

			var notFound *domain.SpecNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.level, notFound.Level)
			assert.Equal(t, tt.table, notFound.Resolver)
		})
	}
}

func TestCodeTablesAreTotalOverTheirCodes(t *testing.T) {
	for _, table := range []*codeTable{houseTypes, houseBlockTypes, apartmentTypes, roomTypes} {
		t.Run(table.name, func(t *testing.T) {
			for _, code := range table.Codes() {
				spec, err := table.Resolve(table.level, code)
				require.NoError(t, err, "code %d", code)
				assert.NotEmpty(t, spec.FullName)
				assert.NotEmpty(t, spec.ShortName)
			}
			for code, target := range table.aliases {
				_, ok := table.entries[target]
				assert.True(t, ok, "alias %d points to a missing entry", code)
			}
		})
	}
}

func TestAddrObjResolver(t *testing.T) {
	resolver := NewAddrObjResolver()

	tests := []struct {
		name     string
		level    domain.Level
		token    string
		full     string
		short    string
		position domain.NamePosition
	}{
		{"region oblast short", domain.LevelRegion, "обл", "область", "обл.", domain.NamePositionAfter},
		{"region oblast full", domain.LevelRegion, "Область", "область", "обл.", domain.NamePositionAfter},
		{"region republic precedes", domain.LevelRegion, "Респ", "республика", "респ.", domain.NamePositionBefore},
		{"area raion", domain.LevelArea, "р-н", "район", "р-н", domain.NamePositionAfter},
		{"city with dot", domain.LevelCity, " г. ", "город", "г.", domain.NamePositionBefore},
		{"moscow region level city", domain.LevelRegion, "г", "город", "г.", domain.NamePositionBefore},
		{"settlement with yo", domain.LevelSettlement, "Посёлок", "поселок", "п.", domain.NamePositionBefore},
		{"settlement snt", domain.LevelSettlement, "снт", "садовое некоммерческое товарищество", "снт", domain.NamePositionBefore},
		{"street ulitsa", domain.LevelStreet, "ул", "улица", "ул.", domain.NamePositionBefore},
		{"street shosse follows", domain.LevelStreet, "ш", "шоссе", "ш.", domain.NamePositionAfter},
		{"street extra spaces", domain.LevelStreet, "  пр-кт ", "проспект", "пр-кт", domain.NamePositionBefore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := resolver.Resolve(tt.level, tt.token)
			require.NoError(t, err)
			assert.Equal(t, domain.AddressLevelSpec{
				Level:        tt.level,
				FullName:     tt.full,
				ShortName:    tt.short,
				NamePosition: tt.position,
			}, spec)
		})
	}
}

func TestAddrObjResolverNotFound(t *testing.T) {
	resolver := NewAddrObjResolver()

	tests := []struct {
		name  string
		level domain.Level
		token string
	}{
		{"unknown token", domain.LevelStreet, "галактика"},
		{"empty token", domain.LevelCity, ""},
		{"house level is not addr_obj", domain.LevelHouse, "ул"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.level, tt.token)
			var notFound *domain.SpecNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.level, notFound.Level)
			assert.Equal(t, tt.token, notFound.Identifier)
			assert.Equal(t, "addr_obj_types", notFound.Resolver)
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Г.", "г"},
		{"  ул  ", "ул"},
		{"Посёлок", "поселок"},
		{"Край", "край"},
		{"м.р-н", "м.р-н"},
		{"Городской   округ", "городской округ"},
		{"Моско́вский", "московский"},
		{"Йошкар", "йошкар"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeToken(tt.input))
		})
	}
}
