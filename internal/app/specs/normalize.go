package specs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// удаляем ударение (U+0301) и трему (U+0308): "ё" → "е", "й" не трогаем
var stripMarks = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == '\u0301' || r == '\u0308'
}))

// normalizeToken приводит название типа к ключу таблицы
// Пример: " Г. " → "г", "Посёлок" → "поселок", "м.р-н" → "м.р-н"
func normalizeToken(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	// Caser не потокобезопасен
	result = cases.Lower(language.Russian).String(result)
	result = strings.Join(strings.Fields(result), " ")
	return strings.TrimRight(result, ".")
}
