package query

import (
	"testing"
	"time"

	"TrendBoard/internal/domain/models"
)

func TestMatchesDefaultFilterAcceptsAll(t *testing.T) {
	f := models.DefaultFilter()
	for _, in := range testInstruments() {
		if !Matches(in, f) {
			t.Fatalf("default filter rejected %s", in.Symbol)
		}
	}
}

func TestMatchesSearchSymbolOrName(t *testing.T) {
	f := models.DefaultFilter()
	f.Search = "aapl"

	var hits []string
	for _, in := range testInstruments() {
		if Matches(in, f) {
			hits = append(hits, in.Symbol)
		}
	}
	if len(hits) != 1 || hits[0] != "AAPL" {
		t.Fatalf("unexpected hits %v", hits)
	}

	// Name substring matches too: AAPL by symbol, XYZ by name.
	f.Search = "Apple"
	hits = nil
	for _, in := range testInstruments() {
		if Matches(in, f) {
			hits = append(hits, in.Symbol)
		}
	}
	if len(hits) != 2 || hits[0] != "AAPL" || hits[1] != "XYZ" {
		t.Fatalf("unexpected hits %v", hits)
	}
}

func TestMatchesSectorSentinel(t *testing.T) {
	f := models.DefaultFilter()
	f.Sector = "Finance"

	for _, in := range testInstruments() {
		got := Matches(in, f)
		want := in.Sector == "Finance"
		if got != want {
			t.Fatalf("%s: got %v want %v", in.Symbol, got, want)
		}
	}
}

func TestMatchesRangeInclusiveBounds(t *testing.T) {
	f := models.DefaultFilter()
	in := testInstruments()[0] // AAPL at 192

	f.Price = models.Range{Min: 192, Max: 192}
	if !Matches(in, f) {
		t.Fatalf("expected inclusive bound to match")
	}
	f.Price = models.Range{Min: 192.01, Max: 500}
	if Matches(in, f) {
		t.Fatalf("expected out-of-range price to fail")
	}
}

func TestMatchesMalformedRangeMatchesNothing(t *testing.T) {
	f := models.DefaultFilter()
	f.Price = models.Range{Min: 500, Max: 100}
	for _, in := range testInstruments() {
		if Matches(in, f) {
			t.Fatalf("malformed range matched %s", in.Symbol)
		}
	}
}

func TestMatchesDirectionFilter(t *testing.T) {
	f := models.DefaultFilter()
	f.Direction = models.DirectionFilter(models.DirectionDown)

	for _, in := range testInstruments() {
		got := Matches(in, f)
		want := in.Prediction.Direction == models.DirectionDown
		if got != want {
			t.Fatalf("%s: got %v want %v", in.Symbol, got, want)
		}
	}
}

func TestMatchesDateRange(t *testing.T) {
	f := models.DefaultFilter()
	f.Date = models.DateRange{
		From:   testBase.Add(-24 * time.Hour),
		To:     testBase,
		Preset: models.PresetCustom,
	}

	var hits int
	for _, in := range testInstruments() {
		if Matches(in, f) {
			hits++
		}
	}
	// AAPL (1h) and MSFT (2h) fall inside the last 24 hours.
	if hits != 2 {
		t.Fatalf("expected 2 hits, got %d", hits)
	}

	// Open upper bound: only From is set.
	f.Date = models.DateRange{From: testBase.Add(-50 * time.Hour), Preset: models.PresetCustom}
	hits = 0
	for _, in := range testInstruments() {
		if Matches(in, f) {
			hits++
		}
	}
	if hits != 4 {
		t.Fatalf("expected 4 hits with open upper bound, got %d", hits)
	}
}

// Conjunction: starting from a criteria set every active condition of
// which passes, flipping any single condition to fail must flip the
// overall result.
func TestMatchesConjunction(t *testing.T) {
	in := inst("AAPL", "Apple Inc", "Technology", 192, 1.3, 78, models.DirectionUp, time.Hour)

	pass := models.FilterCriteria{
		Search:     "aap",
		Sector:     "Technology",
		Price:      models.Range{Min: 100, Max: 300},
		Change:     models.Range{Min: 0, Max: 5},
		Direction:  models.DirectionFilter(models.DirectionUp),
		Confidence: models.Range{Min: 50, Max: 100},
		Date:       models.DateRange{From: testBase.Add(-2 * time.Hour), To: testBase, Preset: models.PresetCustom},
	}
	if !Matches(in, pass) {
		t.Fatalf("expected all-active criteria to pass")
	}

	flips := []func(*models.FilterCriteria){
		func(f *models.FilterCriteria) { f.Search = "zzz" },
		func(f *models.FilterCriteria) { f.Sector = "Energy" },
		func(f *models.FilterCriteria) { f.Price = models.Range{Min: 0, Max: 100} },
		func(f *models.FilterCriteria) { f.Change = models.Range{Min: 2, Max: 5} },
		func(f *models.FilterCriteria) { f.Direction = models.DirectionFilter(models.DirectionDown) },
		func(f *models.FilterCriteria) { f.Confidence = models.Range{Min: 90, Max: 100} },
		func(f *models.FilterCriteria) {
			f.Date = models.DateRange{From: testBase.Add(-30 * time.Minute), To: testBase, Preset: models.PresetCustom}
		},
	}
	for i, flip := range flips {
		f := pass
		flip(&f)
		if Matches(in, f) {
			t.Fatalf("flip %d: expected overall failure", i)
		}
	}
}
