package query

import (
	"fmt"
	"sort"
	"strings"

	"TrendBoard/internal/domain/models"
)

// sortKey is the comparable value a sort field resolves to: either a
// number or a case-folded string.
type sortKey struct {
	num  float64
	str  string
	text bool
}

func numKey(v float64) sortKey { return sortKey{num: v} }
func textKey(s string) sortKey { return sortKey{str: strings.ToLower(s), text: true} }

// keyFor maps every member of the closed sort-field set to an explicit
// accessor. An unknown field is a programming error: callers must go
// through models.ParseSortField at the boundary.
func keyFor(f models.SortField, in models.Instrument) sortKey {
	switch f {
	case models.SortBySymbol:
		return textKey(in.Symbol)
	case models.SortByName:
		return textKey(in.Name)
	case models.SortByCurrentPrice:
		return numKey(in.CurrentPrice)
	case models.SortByPreviousClose:
		return numKey(in.PreviousClose)
	case models.SortByChange:
		return numKey(in.Change)
	case models.SortByChangePercent:
		return numKey(in.ChangePercent)
	case models.SortByVolume:
		return numKey(float64(in.Volume))
	case models.SortByMarketCap:
		return numKey(in.MarketCap)
	case models.SortBySector:
		return textKey(in.Sector)
	case models.SortByLastUpdated:
		return numKey(float64(in.LastUpdated.UnixNano()))
	case models.SortByPredDirection:
		return textKey(string(in.Prediction.Direction))
	case models.SortByPredConfidence:
		return numKey(in.Prediction.Confidence)
	case models.SortByPredTargetPrice:
		return numKey(in.Prediction.TargetPrice)
	case models.SortByPredAccuracy:
		return numKey(in.Prediction.Accuracy)
	}
	panic(fmt.Sprintf("query: unresolvable sort field %q", f))
}

func (k sortKey) compare(o sortKey) int {
	if k.text {
		return strings.Compare(k.str, o.str)
	}
	switch {
	case k.num < o.num:
		return -1
	case k.num > o.num:
		return 1
	}
	return 0
}

// Compare is a three-way comparison of two instruments under the sort
// criteria. Descending is the exact inverse of ascending; ties are not
// broken by any secondary key.
func Compare(a, b models.Instrument, sc models.SortCriteria) int {
	c := keyFor(sc.Field, a).compare(keyFor(sc.Field, b))
	if sc.Direction == models.SortDesc {
		return -c
	}
	return c
}

// SortInstruments orders a copy of records under the sort criteria.
// The input slice is never mutated; repeated sorts of a shared dataset
// must not corrupt other references to it.
func SortInstruments(records []models.Instrument, sc models.SortCriteria) []models.Instrument {
	out := make([]models.Instrument, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i], out[j], sc) < 0
	})
	return out
}
