package query

import "TrendBoard/internal/domain/models"

// Engine is the pure filter → sort → paginate transform. The stage
// order is mandatory: reordering the stages changes results. The same
// engine serves the HTTP endpoint and the local fallback, so both sides
// of a query produce identical pages for identical criteria.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Run evaluates one query against a read-only dataset. The dataset is
// never mutated: filtering materializes a fresh slice and sorting
// operates on a copy. The criteria value is not retained after return.
func (e *Engine) Run(dataset []models.Instrument, c models.Criteria) models.QueryResult {
	filtered := make([]models.Instrument, 0, len(dataset))
	for _, in := range dataset {
		if Matches(in, c.Filter) {
			filtered = append(filtered, in)
		}
	}

	sorted := SortInstruments(filtered, c.Sort)

	data, pagination := Paginate(sorted, c.Page, c.PageSize)
	return models.QueryResult{Data: data, Pagination: pagination}
}
