package pagination

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the feed page size.
const DefaultPerPage = 10

// Page describes one window of an ordered listing. Number is 1-based.
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`

	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// Paginate picks the page named by pageParam out of total items. A missing or
// non-numeric page is the first page and out of range numbers clamp to the
// nearest valid page, so it never fails.
func Paginate(total int64, pageParam string, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(pageParam))
	switch {
	case err != nil, number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		Count:       total,
		PerPage:     perPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Offset:      (number - 1) * perPage,
		Limit:       perPage,
	}
}
