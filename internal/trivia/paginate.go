package trivia

import "strconv"

// DefaultPageSize is the number of questions per page.
const DefaultPageSize = 10

// ParsePage reads a 1-based page number from a query value.
// Missing or non-numeric values fall back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*size : page*size]. An empty page is reported as ErrNotFound.
func Paginate[T any](items []T, page, size int) ([]T, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(items) + size - 1) / size
	if page < 1 || page > pages {
		return nil, notFound("page %d not found", page)
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], nil
}
