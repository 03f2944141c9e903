package services

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
}

// normalizePage clamps page/limit to their defaults when the caller
// passed zero or a negative value.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// paginate computes the pagination block for a result set. TotalPages
// is ceil(total/limit) and CurrentPage always echoes the request.
func paginate(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}
}
