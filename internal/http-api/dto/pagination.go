package dto

// PageCount returns the number of pages needed for total records. An empty
// result set still has one (empty) page.
func PageCount(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

// NormalizePage clamps an out-of-range page number to the nearest valid page.
// Out-of-range requests are not an error condition.
func NormalizePage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
