package specs

import (
	"fmt"

	"github.com/terratensor/addresser/internal/core/domain"
)

type nameEntry struct {
	tokens   []string // краткое наименование и синонимы, в любом регистре
	full     string
	short    string
	position domain.NamePosition // 0 - по умолчанию для уровня
}

// addr_obj_types
var addrObjTypeEntries = []nameEntry{
	// субъекты
	{tokens: []string{"обл", "область"}, full: "область", short: "обл."},
	{tokens: []string{"респ", "республика"}, full: "республика", short: "респ.", position: domain.NamePositionBefore},
	{tokens: []string{"край"}, full: "край", short: "край"},
	{tokens: []string{"ао", "автономный округ"}, full: "автономный округ", short: "АО"},
	{tokens: []string{"аобл", "автономная область"}, full: "автономная область", short: "Аобл"},
	{tokens: []string{"г.ф.з", "город федерального значения"}, full: "город федерального значения", short: "г.ф.з.", position: domain.NamePositionBefore},
	{tokens: []string{"чувашия"}, full: "Чувашия", short: "Чувашия"},

	// районы и муниципальные образования
	{tokens: []string{"р-н", "район"}, full: "район", short: "р-н"},
	{tokens: []string{"м.р-н", "муниципальный район"}, full: "муниципальный район", short: "м.р-н"},
	{tokens: []string{"г.о", "го", "городской округ"}, full: "городской округ", short: "г.о."},
	{tokens: []string{"у", "улус"}, full: "улус", short: "у."},
	{tokens: []string{"вн.р-н", "внутригородской район"}, full: "внутригородской район", short: "вн.р-н"},
	{tokens: []string{"вн.тер.г", "внутригородская территория"}, full: "внутригородская территория", short: "вн.тер.г.", position: domain.NamePositionBefore},
	{tokens: []string{"с/с", "сельсовет"}, full: "сельсовет", short: "с/с", position: domain.NamePositionAfter},
	{tokens: []string{"с.п", "сельское поселение"}, full: "сельское поселение", short: "с.п.", position: domain.NamePositionAfter},
	{tokens: []string{"г.п", "городское поселение"}, full: "городское поселение", short: "г.п.", position: domain.NamePositionAfter},

	// города
	{tokens: []string{"г", "город"}, full: "город", short: "г.", position: domain.NamePositionBefore},

	// населённые пункты и дополнительные территории
	{tokens: []string{"пгт", "поселок городского типа"}, full: "поселок городского типа", short: "пгт"},
	{tokens: []string{"рп", "р.п", "рабочий поселок"}, full: "рабочий поселок", short: "р.п."},
	{tokens: []string{"кп", "к.п", "курортный поселок"}, full: "курортный поселок", short: "к.п."},
	{tokens: []string{"дп", "д.п", "дачный поселок"}, full: "дачный поселок", short: "д.п."},
	{tokens: []string{"с", "село"}, full: "село", short: "с."},
	{tokens: []string{"д", "деревня"}, full: "деревня", short: "д."},
	{tokens: []string{"п", "поселок"}, full: "поселок", short: "п."},
	{tokens: []string{"х", "хутор"}, full: "хутор", short: "х."},
	{tokens: []string{"ст-ца", "станица"}, full: "станица", short: "ст-ца"},
	{tokens: []string{"сл", "слобода"}, full: "слобода", short: "сл."},
	{tokens: []string{"аул"}, full: "аул", short: "аул"},
	{tokens: []string{"нп", "н.п", "населенный пункт"}, full: "населенный пункт", short: "н.п."},
	{tokens: []string{"ст", "станция"}, full: "станция", short: "ст."},
	{tokens: []string{"рзд", "разъезд"}, full: "разъезд", short: "рзд."},
	{tokens: []string{"м", "местечко"}, full: "местечко", short: "м."},
	{tokens: []string{"тер", "территория"}, full: "территория", short: "тер."},
	{tokens: []string{"снт", "садовое некоммерческое товарищество"}, full: "садовое некоммерческое товарищество", short: "снт"},
	{tokens: []string{"днп", "дачное некоммерческое партнерство"}, full: "дачное некоммерческое партнерство", short: "днп"},
	{tokens: []string{"гск", "гаражно-строительный кооператив"}, full: "гаражно-строительный кооператив", short: "гск"},
	{tokens: []string{"мкр", "микрорайон"}, full: "микрорайон", short: "мкр."},
	{tokens: []string{"кв-л", "квартал"}, full: "квартал", short: "кв-л"},
	{tokens: []string{"промзона", "промышленная зона"}, full: "промышленная зона", short: "промзона"},
	{tokens: []string{"ж/р", "жилой район"}, full: "жилой район", short: "ж/р"},

	// элементы улично-дорожной сети
	{tokens: []string{"ул", "улица"}, full: "улица", short: "ул."},
	{tokens: []string{"пр-кт", "просп", "проспект"}, full: "проспект", short: "пр-кт"},
	{tokens: []string{"пер", "переулок"}, full: "переулок", short: "пер."},
	{tokens: []string{"ш", "шоссе"}, full: "шоссе", short: "ш.", position: domain.NamePositionAfter},
	{tokens: []string{"наб", "набережная"}, full: "набережная", short: "наб."},
	{tokens: []string{"пл", "площадь"}, full: "площадь", short: "пл."},
	{tokens: []string{"б-р", "бульвар"}, full: "бульвар", short: "б-р"},
	{tokens: []string{"проезд"}, full: "проезд", short: "проезд"},
	{tokens: []string{"туп", "тупик"}, full: "тупик", short: "туп."},
	{tokens: []string{"аллея"}, full: "аллея", short: "аллея"},
	{tokens: []string{"линия"}, full: "линия", short: "линия"},
	{tokens: []string{"тракт"}, full: "тракт", short: "тракт"},
	{tokens: []string{"км", "километр"}, full: "километр", short: "км"},
	{tokens: []string{"ряд"}, full: "ряд", short: "ряд"},
	{tokens: []string{"просека"}, full: "просека", short: "просека"},
	{tokens: []string{"спуск"}, full: "спуск", short: "спуск"},
	{tokens: []string{"дор", "дорога"}, full: "дорога", short: "дор."},
	{tokens: []string{"мост"}, full: "мост", short: "мост"},
	{tokens: []string{"парк"}, full: "парк", short: "парк"},
	{tokens: []string{"сквер"}, full: "сквер", short: "сквер"},
	{tokens: []string{"въезд"}, full: "въезд", short: "въезд"},
	{tokens: []string{"платф", "платформа"}, full: "платформа", short: "платф."},
}

// Субъекты и районы пишутся после названия ("Московская обл."),
// остальные уровни - перед ("г. Москва", "ул. Ленина").
var defaultPositions = map[domain.Level]domain.NamePosition{
	domain.LevelRegion:     domain.NamePositionAfter,
	domain.LevelArea:       domain.NamePositionAfter,
	domain.LevelCity:       domain.NamePositionBefore,
	domain.LevelSettlement: domain.NamePositionBefore,
	domain.LevelStreet:     domain.NamePositionBefore,
}

var addrObjTypes = buildNameTable(addrObjTypeEntries)

func buildNameTable(entries []nameEntry) map[string]nameEntry {
	table := make(map[string]nameEntry, len(entries)*2)
	for _, e := range entries {
		for _, token := range e.tokens {
			key := normalizeToken(token)
			if _, dup := table[key]; dup {
				panic(fmt.Sprintf("specs: duplicate addr_obj type token %q", key))
			}
			table[key] = e
		}
	}
	return table
}

type addrObjResolver struct{}

// NewAddrObjResolver returns the resolver of region, area, city, settlement and street type names.
func NewAddrObjResolver() NameResolver {
	return addrObjResolver{}
}

func (addrObjResolver) Resolve(level domain.Level, name string) (domain.AddressLevelSpec, error) {
	position, ok := defaultPositions[level]
	if !ok {
		return domain.AddressLevelSpec{}, &domain.SpecNotFoundError{Level: level, Identifier: name, Resolver: "addr_obj_types"}
	}

	entry, ok := addrObjTypes[normalizeToken(name)]
	if !ok {
		return domain.AddressLevelSpec{}, &domain.SpecNotFoundError{Level: level, Identifier: name, Resolver: "addr_obj_types"}
	}

	if entry.position != 0 {
		position = entry.position
	}

	return domain.AddressLevelSpec{
		Level:        level,
		FullName:     entry.full,
		ShortName:    entry.short,
		NamePosition: position,
	}, nil
}
