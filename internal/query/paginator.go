package query

import "TrendBoard/internal/domain/models"

// Paginate slices an ordered sequence into one page and reports the
// total before slicing. Only the lower bound is clamped: a page past
// the end yields an empty slice, which is the correct observable
// outcome, not an error.
func Paginate[T any](items []T, page, pageSize int) ([]T, models.PaginationState) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, models.NewPaginationState(page, pageSize, total)
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, models.NewPaginationState(page, pageSize, total)
}
