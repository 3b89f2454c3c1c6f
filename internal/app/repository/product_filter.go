package repository

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFilter = errors.New("invalid filter value")

// Columns a listing request may filter on by equality. Anything else in the
// query string is ignored.
var ProductFilterableFields = map[string]filterKind{
	"title":       filterText,
	"description": filterText,
	"type_id":     filterUint,
	"user_id":     filterUint,
	"author":      filterText,
	"image":       filterText,
	"score":       filterFloat,
}

// Columns a listing request may sort on.
var ProductSortableFields = map[string]bool{
	"id":          true,
	"title":       true,
	"description": true,
	"type_id":     true,
	"user_id":     true,
	"author":      true,
	"score":       true,
	"created_at":  true,
	"updated_at":  true,
}

type filterKind int

const (
	filterText filterKind = iota
	filterUint
	filterFloat
)

type ProductFilter struct {
	Equals        map[string]interface{}
	TitleContains string
	SortField     string
	SortDesc      bool
	Limit         int
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// NewProductFilter builds a filter from listing query parameters. now anchors
// the created_at=this_week window.
func NewProductFilter(params url.Values, now time.Time) (ProductFilter, error) {
	filter := ProductFilter{Equals: map[string]interface{}{}}

	for field, kind := range ProductFilterableFields {
		if !params.Has(field) {
			continue
		}
		raw := params.Get(field)
		switch kind {
		case filterUint:
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return ProductFilter{}, fmt.Errorf("%w: %s", ErrInvalidFilter, field)
			}
			filter.Equals[field] = v
		case filterFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return ProductFilter{}, fmt.Errorf("%w: %s", ErrInvalidFilter, field)
			}
			filter.Equals[field] = v
		default:
			filter.Equals[field] = raw
		}
	}

	if params.Has("title_contains") {
		filter.TitleContains = params.Get("title_contains")
	}

	if sort := params.Get("sort"); sort != "" {
		parts := strings.Split(sort, ":")
		if len(parts) == 2 && ProductSortableFields[parts[0]] {
			switch strings.ToLower(parts[1]) {
			case "asc":
				filter.SortField = parts[0]
			case "desc":
				filter.SortField = parts[0]
				filter.SortDesc = true
			}
		}
	}

	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	if params.Get("created_at") == "this_week" {
		from, to := ThisWeek(now)
		filter.CreatedFrom = &from
		filter.CreatedTo = &to
	}

	return filter, nil
}

// ThisWeek returns the Sunday 00:00:00 that starts the week containing now
// and the Saturday 23:59:59 that ends it, in now's location.
func ThisWeek(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}
