package pagination

// QueryParams carries the LIMIT/OFFSET values a repository query needs.
type QueryParams struct {
	Offset int
	Limit  int
}

// OffsetStrategy translates 1-based page selections into LIMIT/OFFSET
// queries and builds the matching response metadata.
type OffsetStrategy struct{}

// CalculateQuery converts the page selection into query parameters.
// Page 1 starts at offset 0.
func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	}
}

// BuildMetadata assembles the metadata for a page given the collection
// total. An empty collection still reports one page so clients always have
// a valid page range.
func (s OffsetStrategy) BuildMetadata(params Params, total int64, _ bool) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pageCount(total, params.Limit),
	}
}

// pageCount is ceil(total/limit) with a floor of 1.
func pageCount(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
