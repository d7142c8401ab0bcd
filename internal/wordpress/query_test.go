package wordpress

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryValuesOmitsZeroPagination(t *testing.T) {
	q := ListQuery{}
	params := q.values()
	assert.Empty(t, params.Get("page"))
	assert.Empty(t, params.Get("per_page"))
	assert.Empty(t, params.Get("orderby"))
	assert.Empty(t, params.Get("order"))
}

func TestListQueryValuesPagination(t *testing.T) {
	q := ListQuery{Page: 2, PerPage: 50, Order: "desc"}
	params := q.values()
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "50", params.Get("per_page"))
	assert.Equal(t, "desc", params.Get("order"))
}

func TestListQueryValuesStandardOrderBy(t *testing.T) {
	for _, key := range []string{"none", "rand", "id", "title", "slug", "modified", "parent", "menu_order", "comment_count", "date"} {
		params := ListQuery{OrderBy: key}.values()
		assert.Equal(t, key, params.Get("orderby"), key)
		assert.Empty(t, params.Get("meta_key"), key)
	}
}

func TestListQueryValuesMetaOrderBy(t *testing.T) {
	params := ListQuery{OrderBy: "sea_id"}.values()
	assert.Equal(t, "meta_value", params.Get("orderby"))
	assert.Equal(t, "sea_id", params.Get("meta_key"))
}

func TestListQueryValuesFilterTranslation(t *testing.T) {
	q := ListQuery{
		Page:    1,
		PerPage: 100,
		OrderBy: "date",
		Order:   "asc",
		Filters: []Filter{
			{Key: "id", Value: "12,13"},
			{Key: "title", Value: "forno"},
			{Key: "zone_id", Value: "7", Compare: "=", Type: "NUMERIC"},
		},
	}
	params := q.values()

	assert.Equal(t, "12,13", params.Get("include"))
	assert.Equal(t, "forno", params.Get("search"))
	assert.Equal(t, "7", params.Get("meta_value_zone_id"))
	assert.Equal(t, "NUMERIC", params.Get("meta_type_zone_id"))
	assert.Equal(t, "=", params.Get("meta_compare_zone_id"))
}

func TestListQueryValuesCombined(t *testing.T) {
	q := ListQuery{
		Page:    2,
		PerPage: 20,
		OrderBy: "sea_customer_code",
		Order:   "desc",
		Filters: []Filter{{Key: "id", Value: "5,6"}},
	}
	params := q.values()

	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "20", params.Get("per_page"))
	assert.Equal(t, "meta_value", params.Get("orderby"))
	assert.Equal(t, "sea_customer_code", params.Get("meta_key"))
	assert.Equal(t, "desc", params.Get("order"))
	assert.Equal(t, "5,6", params.Get("include"))
	assert.Empty(t, params.Get("meta_value_id"))
}

func TestListQueryValuesIncludeFilter(t *testing.T) {
	params := ListQuery{Filters: []Filter{{Key: "include", Value: "4,5"}}}.values()
	assert.Equal(t, "4,5", params.Get("include"))
}

func TestListQueryValuesLastWriteWins(t *testing.T) {
	q := ListQuery{Filters: []Filter{
		{Key: "zone_id", Value: "1"},
		{Key: "zone_id", Value: "2"},
	}}
	params := q.values()
	require.Len(t, params["meta_value_zone_id"], 1)
	assert.Equal(t, "2", params.Get("meta_value_zone_id"))
}

func TestListQueryValuesMetaFilterWithoutCompare(t *testing.T) {
	params := ListQuery{Filters: []Filter{{Key: "warehouse_id", Value: "3"}}}.values()
	assert.Equal(t, "3", params.Get("meta_value_warehouse_id"))
	assert.Empty(t, params.Get("meta_type_warehouse_id"))
	assert.Empty(t, params.Get("meta_compare_warehouse_id"))
}

func TestParseListQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("per_page", "25")
	values.Set("orderby", "date")
	values.Set("order", "desc")
	values.Set("filters", `[{"key":"zone_id","value":"9","compare":"=","type":"NUMERIC"}]`)

	q, err := ParseListQuery(values)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PerPage)
	assert.Equal(t, "date", q.OrderBy)
	assert.Equal(t, "desc", q.Order)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, Filter{Key: "zone_id", Value: "9", Compare: "=", Type: "NUMERIC"}, q.Filters[0])
}

func TestParseListQueryRejectsBadNumbers(t *testing.T) {
	_, err := ParseListQuery(url.Values{"page": {"abc"}})
	assert.Error(t, err)

	_, err = ParseListQuery(url.Values{"per_page": {"-"}})
	assert.Error(t, err)

	_, err = ParseListQuery(url.Values{"filters": {"{not json"}})
	assert.Error(t, err)
}
