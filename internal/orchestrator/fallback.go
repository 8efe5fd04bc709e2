package orchestrator

import (
	"TrendBoard/internal/domain/models"
	"TrendBoard/internal/query"
)

// View is what the presentation layer renders: either the remote result
// or, when the remote side failed or returned nothing, a locally
// computed one. TotalAvailable is the size of the full local dataset;
// it diverges from Result.Pagination.Total whenever filters are active.
type View struct {
	Result         models.QueryResult
	FromFallback   bool
	TotalAvailable int
	Err            string
}

// Resolve substitutes a local query result when the snapshot carries an
// error or no data, so the consumer always has an ordered, paginated
// page to show. The local dataset is evaluated with the same criteria
// the remote request used.
func Resolve(snap Snapshot, local []models.Instrument, c models.Criteria, eng *query.Engine) View {
	if snap.Err == "" && len(snap.Data) > 0 {
		return View{
			Result:         models.QueryResult{Data: snap.Data, Pagination: snap.Pagination},
			TotalAvailable: len(local),
		}
	}

	return View{
		Result:         eng.Run(local, c),
		FromFallback:   true,
		TotalAvailable: len(local),
		Err:            snap.Err,
	}
}
