package wordpress

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Filter narrows a list query, using the WP meta-query conventions.
type Filter struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Compare string `json:"compare,omitempty"` // "=", "LIKE", "BETWEEN"
	Type    string `json:"type,omitempty"`    // "CHAR", "NUMERIC", "DATE" or ""
}

// ListQuery describes a paginated, ordered, filtered collection request.
// Zero fields are omitted from the query string entirely.
type ListQuery struct {
	Page    int
	PerPage int
	OrderBy string
	Order   string // "asc" or "desc"
	Filters []Filter
}

// Structural sort keys WordPress can order by directly. Anything else must go
// through the meta_value/meta_key indirection.
var standardOrderBy = map[string]bool{
	"none": true, "rand": true, "id": true, "title": true, "slug": true,
	"modified": true, "parent": true, "menu_order": true, "comment_count": true,
	"date": true,
}

// ParseListQuery reads the dashboard's list parameters from an inbound query
// string. Filters travel as a JSON array under "filters".
func ParseListQuery(values url.Values) (ListQuery, error) {
	var q ListQuery
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = n
	}
	if raw := values.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid per_page %q", raw)
		}
		q.PerPage = n
	}
	q.OrderBy = values.Get("orderby")
	q.Order = values.Get("order")
	if raw := values.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filters); err != nil {
			return q, fmt.Errorf("invalid filters: %w", err)
		}
	}
	return q, nil
}

func (q ListQuery) values() url.Values {
	params := url.Values{}

	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}

	if q.OrderBy != "" {
		if standardOrderBy[q.OrderBy] {
			params.Set("orderby", q.OrderBy)
		} else {
			params.Set("orderby", "meta_value")
			params.Set("meta_key", q.OrderBy)
		}
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	for _, f := range q.Filters {
		switch f.Key {
		case "id":
			// Restrict-to-IDs convention.
			params.Set("include", f.Value)
		case "title":
			// No exact-title filter exists upstream; free-text search is the
			// closest approximation.
			params.Set("search", f.Value)
		case "include":
			params.Set("include", f.Value)
		default:
			params.Set("meta_value_"+f.Key, f.Value)
			if f.Type != "" {
				params.Set("meta_type_"+f.Key, f.Type)
			}
			if f.Compare != "" {
				params.Set("meta_compare_"+f.Key, f.Compare)
			}
		}
	}

	return params
}
