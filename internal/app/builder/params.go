package builder

import (
	"slices"
	"strings"
	"time"

	"github.com/terratensor/addresser/internal/app/actuality"
	"github.com/terratensor/addresser/internal/core/domain"
)

// resolveActualParams выбирает по каждому типу параметра самое актуальное значение
func resolveActualParams(params map[domain.ParamType][]domain.TimedValue, now time.Time) map[domain.ParamType]*string {
	res := make(map[domain.ParamType]*string, len(domain.AddressParamTypes))

	for _, typ := range domain.AddressParamTypes {
		var best *domain.TimedValue

		for i := range params[typ] {
			candidate := &params[typ][i]

			// сразу пропускаем неактуальные
			if !actuality.IsLive(candidate.ValidTo, now) {
				continue
			}

			// обновляем только если новое значение более актуальное чем старое
			if best == nil || actuality.Compare(best.ValidFrom, best.ValidTo, candidate.ValidFrom, candidate.ValidTo) < 0 {
				best = candidate
			}
		}

		if best != nil {
			if value := prepareString(best.Value); value != nil {
				res[typ] = value
			}
		}
	}

	return res
}

// resolveLevelRenaming returns the distinct names of the non-live versions of a level,
// most recent first, without the current name.
func resolveLevelRenaming(nodes []*domain.HierarchyNode, current *string) []string {
	var stale []*domain.HierarchyNode
	for _, node := range nodes {
		if !node.IsLive() && node.Object != nil {
			stale = append(stale, node)
		}
	}

	slices.SortStableFunc(stale, func(a, b *domain.HierarchyNode) int {
		return actuality.Compare(b.StartDate, b.EndDate, a.StartDate, a.EndDate)
	})

	var names []string
	seen := make(map[string]bool)
	if current != nil {
		seen[*current] = true
	}

	for _, node := range stale {
		name := prepareString(node.Object.Name)
		if name == nil || seen[*name] {
			continue
		}
		seen[*name] = true
		names = append(names, *name)
	}

	return names
}

// prepareString обрезает пробелы, пустая строка превращается в nil
func prepareString(s string) *string {
	tmp := strings.TrimSpace(s)
	if tmp == "" {
		return nil
	}
	return &tmp
}
