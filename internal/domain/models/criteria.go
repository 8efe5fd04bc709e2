package models

import (
	"fmt"
	"math"
	"time"
)

// Sentinels meaning "no constraint" for the corresponding filter.
const (
	SectorAll    = "all"
	DirectionAll = "all"
)

// Domain default bounds. Absent request parameters resolve to these,
// and the evaluator applies them exactly like any caller-supplied bound.
const (
	DefaultMinPrice      = 0
	DefaultMaxPrice      = 1000
	DefaultMinChange     = -10
	DefaultMaxChange     = 10
	DefaultMinConfidence = 0
	DefaultMaxConfidence = 100

	DefaultPage     = 1
	DefaultPageSize = 25
)

// Range is an inclusive numeric interval. Min > Max is malformed and
// matches nothing.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive on both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// DatePreset labels a date-range shortcut. The preset is resolved to
// concrete bounds before the criteria reach the pipeline.
type DatePreset string

const (
	PresetAllTime DatePreset = "all"
	PresetToday   DatePreset = "today"
	PresetWeek    DatePreset = "week"
	PresetMonth   DatePreset = "month"
	PresetQuarter DatePreset = "quarter"
	PresetCustom  DatePreset = "custom"
)

// DateRange bounds the lastUpdated timestamp. Zero From/To mean an
// open bound on that side. Preset == PresetAllTime disables the filter.
type DateRange struct {
	From   time.Time  `json:"from,omitempty"`
	To     time.Time  `json:"to,omitempty"`
	Preset DatePreset `json:"preset"`
}

// Materialize resolves a preset to concrete bounds relative to now.
// Custom presets keep whatever bounds the caller set.
func (p DatePreset) Materialize(now time.Time) DateRange {
	switch p {
	case PresetToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return DateRange{From: start, To: now, Preset: p}
	case PresetWeek:
		return DateRange{From: now.AddDate(0, 0, -7), To: now, Preset: p}
	case PresetMonth:
		return DateRange{From: now.AddDate(0, -1, 0), To: now, Preset: p}
	case PresetQuarter:
		return DateRange{From: now.AddDate(0, -3, 0), To: now, Preset: p}
	default:
		return DateRange{Preset: PresetAllTime}
	}
}

// DirectionFilter narrows records by prediction direction; DirectionAll
// disables the constraint.
type DirectionFilter string

// FilterCriteria is the full filter parameter set for one query.
// It is a comparable value type so parameter-change detection is plain !=.
type FilterCriteria struct {
	Search     string          `json:"search"`
	Sector     string          `json:"sector"`
	Price      Range           `json:"priceRange"`
	Change     Range           `json:"changeRange"`
	Direction  DirectionFilter `json:"predictionDirection"`
	Confidence Range           `json:"confidenceRange"`
	Date       DateRange       `json:"dateRange"`
}

// DefaultFilter returns criteria that constrain nothing beyond the
// domain default bounds.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		Sector:     SectorAll,
		Price:      Range{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Change:     Range{Min: DefaultMinChange, Max: DefaultMaxChange},
		Direction:  DirectionAll,
		Confidence: Range{Min: DefaultMinConfidence, Max: DefaultMaxConfidence},
		Date:       DateRange{Preset: PresetAllTime},
	}
}

// SortDirection orders ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField is the closed set of sortable fields. Nested prediction
// fields use a dotted name on the wire but map to explicit accessors;
// nothing is resolved dynamically.
type SortField string

const (
	SortBySymbol          SortField = "symbol"
	SortByName            SortField = "name"
	SortByCurrentPrice    SortField = "currentPrice"
	SortByPreviousClose   SortField = "previousClose"
	SortByChange          SortField = "change"
	SortByChangePercent   SortField = "changePercent"
	SortByVolume          SortField = "volume"
	SortByMarketCap       SortField = "marketCap"
	SortBySector          SortField = "sector"
	SortByLastUpdated     SortField = "lastUpdated"
	SortByPredDirection   SortField = "prediction.direction"
	SortByPredConfidence  SortField = "prediction.confidence"
	SortByPredTargetPrice SortField = "prediction.targetPrice"
	SortByPredAccuracy    SortField = "prediction.accuracy"
)

var sortFields = map[SortField]struct{}{
	SortBySymbol: {}, SortByName: {}, SortByCurrentPrice: {},
	SortByPreviousClose: {}, SortByChange: {}, SortByChangePercent: {},
	SortByVolume: {}, SortByMarketCap: {}, SortBySector: {},
	SortByLastUpdated: {}, SortByPredDirection: {}, SortByPredConfidence: {},
	SortByPredTargetPrice: {}, SortByPredAccuracy: {},
}

// ParseSortField rejects unknown fields at the boundary. An unknown
// field past this point is a programming error.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if _, ok := sortFields[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

// SortCriteria is a total order over instruments.
type SortCriteria struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Criteria is the combined filter+sort+pagination parameter set for one
// query, passed by value into the engine.
type Criteria struct {
	Filter   FilterCriteria `json:"filter"`
	Sort     SortCriteria   `json:"sort"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// DefaultCriteria returns the first-page query with default bounds,
// sorted by symbol ascending.
func DefaultCriteria() Criteria {
	return Criteria{
		Filter:   DefaultFilter(),
		Sort:     SortCriteria{Field: SortBySymbol, Direction: SortAsc},
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// PaginationState describes one page of a result set. Total is derived
// from the filtered sequence, never client-authoritative.
type PaginationState struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationState derives TotalPages from total and pageSize;
// zero total means zero pages.
func NewPaginationState(page, pageSize, total int) PaginationState {
	pages := 0
	if total > 0 && pageSize > 0 {
		pages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return PaginationState{Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}

// QueryResult is one page of instruments plus the filled-in pagination
// state. Produced fresh on every query, never mutated afterwards.
type QueryResult struct {
	Data       []Instrument    `json:"data"`
	Pagination PaginationState `json:"pagination"`
}
