package aggregation

// PageRequest is a 1-based page selection over a derived ordering.
type PageRequest struct {
	Page     int
	PageSize int
}

// Resolve normalizes the request: page defaults to 1, page size to
// defaultSize when absent or non-positive.
func (p PageRequest) Resolve(defaultSize int) (offset int, limit int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = defaultSize
	}
	return (page - 1) * size, size
}

// InRange reports whether the offset points inside the available rows. A
// request past the end makes no repository page call at all; only the total
// count is returned.
func InRange(offset int, total int64) bool {
	return int64(offset) < total
}

// Batches splits ids into chunks of at most size, bounding the width of a
// single batched lookup round-trip.
func Batches(ids []string, size int) [][]string {
	if size < 1 || len(ids) == 0 {
		return nil
	}
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
