package query

import (
	"strings"

	"TrendBoard/internal/domain/models"
)

// Matches reports whether one instrument satisfies every active
// constraint of the filter. Pure; all conditions are conjunctive.
func Matches(in models.Instrument, f models.FilterCriteria) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(in.Symbol), q) &&
			!strings.Contains(strings.ToLower(in.Name), q) {
			return false
		}
	}

	if f.Sector != models.SectorAll && in.Sector != f.Sector {
		return false
	}

	// Ranges are always active; default bounds are applied exactly like
	// caller-supplied ones. Min > Max simply matches nothing.
	if !f.Price.Contains(in.CurrentPrice) {
		return false
	}
	if !f.Change.Contains(in.ChangePercent) {
		return false
	}
	if !f.Confidence.Contains(in.Prediction.Confidence) {
		return false
	}

	if f.Direction != models.DirectionAll && in.Prediction.Direction != models.Direction(f.Direction) {
		return false
	}

	if f.Date.Preset != models.PresetAllTime {
		if !f.Date.From.IsZero() && in.LastUpdated.Before(f.Date.From) {
			return false
		}
		if !f.Date.To.IsZero() && in.LastUpdated.After(f.Date.To) {
			return false
		}
	}

	return true
}
