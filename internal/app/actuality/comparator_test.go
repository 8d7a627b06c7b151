package actuality

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         int
	}{
		{"same interval", "2020-01-01", "2079-06-06", "2020-01-01", "2079-06-06", 0},
		{"later end wins", "2020-01-01", "2025-01-01", "2020-01-01", "2024-01-01", 1},
		{"earlier end loses", "2020-01-01", "2023-01-01", "2019-01-01", "2024-01-01", -1},
		{"equal end, later start wins", "2021-01-01", "2079-06-06", "2020-01-01", "2079-06-06", 1},
		{"equal end, earlier start loses", "2019-01-01", "2079-06-06", "2020-01-01", "2079-06-06", -1},
		{"open end beats bounded", "2010-01-01", "", "2020-01-01", "2079-06-06", 1},
		{"bounded loses to open", "2020-01-01", "2079-06-06", "2010-01-01", "", -1},
		{"both open, later start wins", "2020-01-01", "", "2010-01-01", "", 1},
		{"unbounded start loses", "", "2079-06-06", "2010-01-01", "2079-06-06", -1},
		{"both unbounded", "", "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

type interval struct {
	start, end time.Time
}

func randomInterval(r *rand.Rand) interval {
	base := date("2000-01-01")
	pick := func() time.Time {
		// небольшой диапазон дат, чтобы чаще встречались совпадения
		if r.Intn(6) == 0 {
			return time.Time{}
		}
		return base.AddDate(0, 0, r.Intn(10))
	}
	return interval{start: pick(), end: pick()}
}

func cmp(a, b interval) int {
	return Compare(a.start, a.end, b.start, b.end)
}

func TestComparePreorder(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		a, b, c := randomInterval(r), randomInterval(r), randomInterval(r)

		require.Equal(t, 0, cmp(a, a), "reflexivity for %+v", a)
		require.Equal(t, cmp(a, b), -cmp(b, a), "antisymmetry for %+v, %+v", a, b)

		if cmp(a, b) >= 0 && cmp(b, c) >= 0 {
			require.GreaterOrEqual(t, cmp(a, c), 0, "transitivity for %+v, %+v, %+v", a, b, c)
		}
		if cmp(a, b) == 0 && cmp(b, c) == 0 {
			require.Equal(t, 0, cmp(a, c), "equivalence transitivity for %+v, %+v, %+v", a, b, c)
		}
	}
}

func TestCompareOpenEndedDominates(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		bounded := randomInterval(r)
		if bounded.end.IsZero() {
			continue
		}
		open := interval{start: randomInterval(r).start}
		assert.GreaterOrEqual(t, cmp(open, bounded), 0)
	}
}

func TestIsLive(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  string
		want bool
	}{
		{"open end", "", true},
		{"future end", "2079-06-06", true},
		{"ends today", "2024-05-10", true},
		{"ended yesterday", "2024-05-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLive(date(tt.end), now))
		})
	}
}
