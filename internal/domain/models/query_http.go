package models

import (
	"fmt"

	"TrendBoard/pkg/util"
)

// InstrumentQueryRequest is the wire form of one dashboard query.
// Absent numeric bounds mean "use the domain default", not zero, so the
// bound fields are pointers.
type InstrumentQueryRequest struct {
	Page      int    `query:"page" json:"page" default:"1" validate:"gte=1"`
	PageSize  int    `query:"pageSize" json:"pageSize" default:"25" validate:"gte=1,lte=500"`
	Search    string `query:"search" json:"search"`
	Sector    string `query:"sector" json:"sector" default:"all"`
	Direction string `query:"prediction" json:"prediction" default:"all" validate:"oneof=all up down neutral"`
	SortBy    string `query:"sortBy" json:"sortBy" default:"symbol"`
	SortOrder string `query:"sortOrder" json:"sortOrder" default:"asc" validate:"oneof=asc desc"`

	MinPrice      *float64 `query:"minPrice" json:"minPrice,omitempty"`
	MaxPrice      *float64 `query:"maxPrice" json:"maxPrice,omitempty"`
	MinChange     *float64 `query:"minChange" json:"minChange,omitempty"`
	MaxChange     *float64 `query:"maxChange" json:"maxChange,omitempty"`
	MinConfidence *float64 `query:"minConfidence" json:"minConfidence,omitempty"`
	MaxConfidence *float64 `query:"maxConfidence" json:"maxConfidence,omitempty"`

	FromDate string `query:"fromDate" json:"fromDate,omitempty"`
	ToDate   string `query:"toDate" json:"toDate,omitempty"`
}

func bound(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

// Criteria converts the wire request into pipeline criteria. The only
// rejectable input is an unknown sort field; everything else has a
// well-defined meaning, including malformed ranges (which match nothing).
func (r *InstrumentQueryRequest) Criteria() (Criteria, error) {
	field, err := ParseSortField(r.SortBy)
	if err != nil {
		return Criteria{}, err
	}

	f := FilterCriteria{
		Search:     r.Search,
		Sector:     r.Sector,
		Direction:  DirectionFilter(r.Direction),
		Price:      Range{Min: bound(r.MinPrice, DefaultMinPrice), Max: bound(r.MaxPrice, DefaultMaxPrice)},
		Change:     Range{Min: bound(r.MinChange, DefaultMinChange), Max: bound(r.MaxChange, DefaultMaxChange)},
		Confidence: Range{Min: bound(r.MinConfidence, DefaultMinConfidence), Max: bound(r.MaxConfidence, DefaultMaxConfidence)},
		Date:       DateRange{Preset: PresetAllTime},
	}
	if r.FromDate != "" || r.ToDate != "" {
		f.Date.Preset = PresetCustom
		if t, ok := util.ParseTime(r.FromDate); ok {
			f.Date.From = t
		}
		if t, ok := util.ParseTime(r.ToDate); ok {
			f.Date.To = t
		}
	}

	return Criteria{
		Filter:   f,
		Sort:     SortCriteria{Field: field, Direction: SortDirection(r.SortOrder)},
		Page:     r.Page,
		PageSize: r.PageSize,
	}, nil
}

// CacheKey is a normalized representation of the request, stable across
// equivalent queries.
func (r *InstrumentQueryRequest) CacheKey() string {
	return fmt.Sprintf("instruments:%d:%d:%s:%s:%s:%s:%s:%g:%g:%g:%g:%g:%g:%s:%s",
		r.Page, r.PageSize, r.Search, r.Sector, r.Direction, r.SortBy, r.SortOrder,
		bound(r.MinPrice, DefaultMinPrice), bound(r.MaxPrice, DefaultMaxPrice),
		bound(r.MinChange, DefaultMinChange), bound(r.MaxChange, DefaultMaxChange),
		bound(r.MinConfidence, DefaultMinConfidence), bound(r.MaxConfidence, DefaultMaxConfidence),
		r.FromDate, r.ToDate)
}

// QueryResponse is the response envelope for instrument queries.
// Failures carry an empty data slice and a message; pagination is only
// present on success.
type QueryResponse struct {
	Data       []Instrument     `json:"data"`
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Pagination *PaginationState `json:"pagination,omitempty"`
}

// InstrumentResponse is the envelope for single-record lookups.
type InstrumentResponse struct {
	Data    *Instrument `json:"data"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// SectorsResponse lists the distinct sectors present in the dataset.
type SectorsResponse struct {
	Data    []string `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
}
