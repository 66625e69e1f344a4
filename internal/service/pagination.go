package service

// PerPageMax caps every paginated listing.
const PerPageMax = 50

func totalPages(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// NormalizePage clamps user-supplied pagination values.
func NormalizePage(page, perPage, defaultPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > PerPageMax {
		perPage = PerPageMax
	}
	return page, perPage
}
