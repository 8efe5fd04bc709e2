package query

import (
	"testing"

	"TrendBoard/internal/domain/models"
)

func TestEngineFilterSortPaginateOrder(t *testing.T) {
	eng := NewEngine()

	c := models.DefaultCriteria()
	c.Filter.Direction = models.DirectionFilter(models.DirectionUp)
	c.Sort = models.SortCriteria{Field: models.SortByPredConfidence, Direction: models.SortDesc}
	c.PageSize = 2

	res := eng.Run(testInstruments(), c)

	// Three "up" records; page 1 of 2 holds the two highest confidences.
	if res.Pagination.Total != 3 || res.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination %+v", res.Pagination)
	}
	if len(res.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Data))
	}
	if res.Data[0].Symbol != "MSFT" || res.Data[1].Symbol != "AAPL" {
		t.Fatalf("unexpected order %s, %s", res.Data[0].Symbol, res.Data[1].Symbol)
	}
}

func TestEngineDeterministic(t *testing.T) {
	eng := NewEngine()
	c := models.DefaultCriteria()
	c.Sort = models.SortCriteria{Field: models.SortByChangePercent, Direction: models.SortAsc}

	a := eng.Run(testInstruments(), c)
	b := eng.Run(testInstruments(), c)

	if len(a.Data) != len(b.Data) {
		t.Fatalf("result sizes differ")
	}
	for i := range a.Data {
		if a.Data[i].ID != b.Data[i].ID {
			t.Fatalf("position %d differs: %s vs %s", i, a.Data[i].ID, b.Data[i].ID)
		}
	}
}

func TestEngineDoesNotMutateDataset(t *testing.T) {
	eng := NewEngine()
	dataset := testInstruments()
	original := make([]models.Instrument, len(dataset))
	copy(original, dataset)

	c := models.DefaultCriteria()
	c.Sort = models.SortCriteria{Field: models.SortByCurrentPrice, Direction: models.SortDesc}
	eng.Run(dataset, c)

	for i := range dataset {
		if dataset[i].ID != original[i].ID {
			t.Fatalf("dataset mutated at %d", i)
		}
	}
}

func TestEngineMalformedRangeYieldsEmptyResult(t *testing.T) {
	eng := NewEngine()
	c := models.DefaultCriteria()
	c.Filter.Confidence = models.Range{Min: 80, Max: 20}

	res := eng.Run(testInstruments(), c)
	if len(res.Data) != 0 || res.Pagination.Total != 0 || res.Pagination.TotalPages != 0 {
		t.Fatalf("expected empty result, got %+v", res.Pagination)
	}
}

func TestEnginePageFourOfThirty(t *testing.T) {
	dataset := make([]models.Instrument, 0, 30)
	for i := 0; i < 30; i++ {
		dataset = append(dataset, inst(
			string(rune('A'+i%26))+string(rune('A'+i/26)), "Corp", "Technology",
			float64(10+i), 0, 50, models.DirectionUp, 0,
		))
	}

	c := models.DefaultCriteria()
	c.Page = 4
	c.PageSize = 10

	res := NewEngine().Run(dataset, c)
	if len(res.Data) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(res.Data))
	}
	if res.Pagination.Total != 30 || res.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination %+v", res.Pagination)
	}
}
