package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxWindow matches the default index.max_result_window of Elasticsearch.
	MaxWindow = 10000
)

// Calculate turns a 1-based page and a page size into an offset and limit.
// Out-of-range values fall back to the first page and the default size, and
// pages past MaxWindow are pinned to the last page that fits in it.
func Calculate(page, size int) (from, limit int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := MaxWindow / size; page > maxPage {
		page = maxPage
	}
	from = (page - 1) * size
	return from, size
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
