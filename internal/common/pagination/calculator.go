package pagination

// CalculateOffset converts a 1-based page into the number of items to skip.
//
//   - Page 1, Limit 10 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages uses ceiling division and never returns less than 1.
//
//   - Total 0, Limit 10 -> 1 page
//   - Total 21, Limit 10 -> 3 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// BuildMetadata returns the metadata of params' page over total items.
// Next is set when items remain after the page, Prev when items precede it.
func BuildMetadata(params Params, total int64) Metadata {
	md := Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}

	start := int64(CalculateOffset(params.Page, params.Limit))
	end := start + int64(params.Limit)
	if end < total {
		md.Next = &PageRef{Page: params.Page + 1, Limit: params.Limit}
	}
	if start > 0 {
		md.Prev = &PageRef{Page: params.Page - 1, Limit: params.Limit}
	}
	return md
}
