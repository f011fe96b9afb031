package substack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateRangeValidate(t *testing.T) {
	require.NoError(t, DateRange{}.Validate())

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, DateRange{Start: start, End: end}.Validate())
	require.NoError(t, DateRange{Start: start}.Validate())
	require.NoError(t, DateRange{End: end}.Validate())
	require.Error(t, DateRange{Start: end, End: start}.Validate())
}

func TestDateRangeBoundsAreInclusive(t *testing.T) {
	r := DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	require.True(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, r.Contains(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
	// the end day counts in full
	require.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
}

func TestDateRangeKeepsUndatedPosts(t *testing.T) {
	r := DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.True(t, r.Contains(time.Time{}))
}

func TestFilterByDate(t *testing.T) {
	refs := []PostReference{
		{Slug: "a", PublishedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "b", PublishedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Slug: "c"},
		{Slug: "d", PublishedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	}
	r := DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	got := FilterByDate(refs, r)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].Slug)
	require.Equal(t, "c", got[1].Slug)

	// a zero range passes everything through untouched
	require.Equal(t, refs, FilterByDate(refs, DateRange{}))
}
