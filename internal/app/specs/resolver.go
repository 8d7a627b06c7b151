// Package specs resolves FIAS type codes and type names into display specs.
//
// Every resolver is a static table built once at package init. Unknown codes fail
// with *domain.SpecNotFoundError; the few aliases (an "undefined" code mapped onto a
// real entry) are listed explicitly next to each table.
package specs

import (
	"strconv"

	"github.com/terratensor/addresser/internal/core/domain"
)

// CodeResolver resolves an integer type code of a fixed address level.
type CodeResolver interface {
	Resolve(level domain.Level, code int) (domain.AddressLevelSpec, error)
}

// NameResolver resolves a free-text type name of an addr_obj level.
type NameResolver interface {
	Resolve(level domain.Level, name string) (domain.AddressLevelSpec, error)
}

type codeEntry struct {
	full  string
	short string
}

// codeTable is a CodeResolver over a finite code space.
type codeTable struct {
	name    string
	level   domain.Level
	entries map[int]codeEntry
	aliases map[int]int
}

func (t *codeTable) Resolve(level domain.Level, code int) (domain.AddressLevelSpec, error) {
	if level != t.level {
		return domain.AddressLevelSpec{}, t.notFound(level, code)
	}

	if target, ok := t.aliases[code]; ok {
		code = target
	}

	entry, ok := t.entries[code]
	if !ok {
		return domain.AddressLevelSpec{}, t.notFound(level, code)
	}

	return domain.AddressLevelSpec{
		Level:        t.level,
		FullName:     entry.full,
		ShortName:    entry.short,
		NamePosition: domain.NamePositionBefore,
	}, nil
}

func (t *codeTable) notFound(level domain.Level, code int) error {
	return &domain.SpecNotFoundError{
		Level:      level,
		Identifier: strconv.Itoa(code),
		Resolver:   t.name,
	}
}

// Codes returns every code the table answers for, aliases included.
func (t *codeTable) Codes() []int {
	codes := make([]int, 0, len(t.entries)+len(t.aliases))
	for code := range t.entries {
		codes = append(codes, code)
	}
	for code := range t.aliases {
		codes = append(codes, code)
	}
	return codes
}
