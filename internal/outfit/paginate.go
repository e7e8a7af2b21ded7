package outfit

// DefaultPageSize is the number of days shown per page.
const DefaultPageSize = 3

// Page is one slice of a plan.
type Page struct {
	Days       []DailyOutfit
	Page       int // 1-based
	PageSize   int
	TotalPages int
	TotalDays  int
}

// TotalPages returns the number of pages needed for n days.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate slices days into fixed-size pages. A page below 1 is treated as 1;
// a page past the end is empty. Size defaults to DefaultPageSize.
func Paginate(days []DailyOutfit, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	result := Page{
		Days:       []DailyOutfit{},
		Page:       page,
		PageSize:   size,
		TotalPages: TotalPages(len(days), size),
		TotalDays:  len(days),
	}

	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * size
	end := start + size
	if end > len(days) {
		end = len(days)
	}
	result.Days = days[start:end]
	return result
}
