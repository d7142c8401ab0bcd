package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

func testDefinitions() []Definition {
	return []Definition{
		{Key: "title", Title: "Cliente", Type: TypeText},
		{Key: "zone_id", Title: "Zona", Type: TypeNumber},
		{Key: "document", Title: "Documento", Type: TypeSelect, Options: []Option{{Value: "ddt", Label: "DDT"}}},
		{Key: "date", Title: "Data", Type: TypeDateRange},
	}
}

func TestCompareAndTypeDerivation(t *testing.T) {
	cases := []struct {
		filterType Type
		compare    string
		metaType   string
	}{
		{TypeText, "LIKE", "CHAR"},
		{TypeNumber, "=", "NUMERIC"},
		{TypeSelect, "=", ""},
		{TypeDate, "=", ""},
		{TypeDateRange, "BETWEEN", "DATE"},
	}
	for _, tc := range cases {
		compare, metaType := compareAndType(tc.filterType)
		assert.Equal(t, tc.compare, compare, tc.filterType)
		assert.Equal(t, tc.metaType, metaType, tc.filterType)
	}
}

func TestRangeValue(t *testing.T) {
	assert.Equal(t, "2026-03-01 00:00:00,2026-03-07 23:59:59", RangeValue("2026-03-01", "2026-03-07"))
	// One-sided ranges keep the separator.
	assert.Equal(t, "2026-03-01 00:00:00,", RangeValue("2026-03-01", ""))
	assert.Equal(t, ",2026-03-07 23:59:59", RangeValue("", "2026-03-07"))
	assert.Equal(t, "", RangeValue("", ""))
}

func TestSetInputStagesWithoutCommitting(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("zone_id", "7"))

	assert.Empty(t, p.Committed())
	pending := p.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, wordpress.Filter{Key: "zone_id", Value: "7", Compare: "=", Type: "NUMERIC"}, pending[0])
}

func TestApplyPromotesPendingAtomically(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("title", "forno"))
	require.NoError(t, p.SetRange("date", "2026-03-01", "2026-03-07"))

	p.Apply()

	committed := p.Committed()
	require.Len(t, committed, 2)
	assert.Equal(t, wordpress.Filter{Key: "title", Value: "forno", Compare: "LIKE", Type: "CHAR"}, committed[0])
	assert.Equal(t, wordpress.Filter{Key: "date", Value: "2026-03-01 00:00:00,2026-03-07 23:59:59", Compare: "BETWEEN", Type: "DATE"}, committed[1])
}

func TestEmptyInputStagesRemoval(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("zone_id", "7"))
	p.Apply()
	require.Len(t, p.Committed(), 1)

	require.NoError(t, p.SetInput("zone_id", ""))
	// Still committed until applied.
	assert.Len(t, p.Committed(), 1)

	p.Apply()
	assert.Empty(t, p.Committed())
}

func TestRemoveIsImmediate(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("zone_id", "7"))
	require.NoError(t, p.SetInput("title", "forno"))
	p.Apply()
	require.Len(t, p.Committed(), 2)

	p.Remove("zone_id")
	committed := p.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "title", committed[0].Key)
	assert.Len(t, p.Pending(), 1)
}

func TestRemoveAllIsImmediate(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("zone_id", "7"))
	require.NoError(t, p.SetInput("title", "forno"))
	p.Apply()

	p.RemoveAll()
	assert.Empty(t, p.Committed())
	assert.Empty(t, p.Pending())
}

func TestSetInputRejectsUnknownAndRangeKeys(t *testing.T) {
	p := NewPipeline(testDefinitions())
	assert.Error(t, p.SetInput("ghost", "x"))
	assert.Error(t, p.SetInput("date", "2026-03-01"))
	assert.Error(t, p.SetRange("zone_id", "a", "b"))
	assert.Error(t, p.SetRange("ghost", "a", "b"))
}

func TestSetRangeOneSided(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetRange("date", "2026-03-01", ""))
	p.Apply()

	committed := p.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "2026-03-01 00:00:00,", committed[0].Value)
	assert.Equal(t, "BETWEEN", committed[0].Compare)
	assert.Equal(t, "DATE", committed[0].Type)
}

func TestSetRangeBothEmptyStagesRemoval(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetRange("date", "2026-03-01", "2026-03-07"))
	p.Apply()
	require.Len(t, p.Committed(), 1)

	require.NoError(t, p.SetRange("date", "", ""))
	p.Apply()
	assert.Empty(t, p.Committed())
}

func TestOrderFollowsDefinitions(t *testing.T) {
	p := NewPipeline(testDefinitions())
	// Stage in reverse declaration order.
	require.NoError(t, p.SetRange("date", "2026-03-01", "2026-03-07"))
	require.NoError(t, p.SetInput("zone_id", "7"))
	require.NoError(t, p.SetInput("title", "forno"))
	p.Apply()

	committed := p.Committed()
	require.Len(t, committed, 3)
	assert.Equal(t, "title", committed[0].Key)
	assert.Equal(t, "zone_id", committed[1].Key)
	assert.Equal(t, "date", committed[2].Key)
}

func TestApplyAfterEditDoesNotLeakPartialState(t *testing.T) {
	p := NewPipeline(testDefinitions())
	require.NoError(t, p.SetInput("zone_id", "7"))
	p.Apply()

	require.NoError(t, p.SetInput("zone_id", "9"))
	committed := p.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "7", committed[0].Value)

	p.Apply()
	committed = p.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "9", committed[0].Value)
}
