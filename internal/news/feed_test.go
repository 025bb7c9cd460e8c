package news

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacson-f/stock-bot/internal/models"
)

func sampleFeed() *Feed {
	base := time.Date(2023, 10, 13, 0, 0, 0, 0, time.UTC)
	return NewFeed("AAPL", []models.NewsStory{
		{Headline: "one", Source: "Reuters", URL: "u1", Category: "company", Datetime: base},
		{Headline: "two", Source: "Yahoo", URL: "u2", Category: "company", Datetime: base.Add(-time.Hour)},
		{Headline: "three", Source: "CNBC", URL: "u3", Category: "company", Datetime: base.Add(-2 * time.Hour)},
	})
}

func TestFeed_CountZeroMeansAll(t *testing.T) {
	f := sampleFeed()

	got, err := f.Headlines(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)
	assert.Equal(t, "AAPL", f.Source())
	assert.Equal(t, 3, f.Len())
}

func TestFeed_CountLimits(t *testing.T) {
	f := sampleFeed()

	sources, err := f.Sources(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Reuters", "Yahoo"}, sources)

	urls, err := f.URLs(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, urls)

	times, err := f.Datetimes(3)
	require.NoError(t, err)
	assert.True(t, times[0].After(times[2]))
}

func TestFeed_CountTooLarge(t *testing.T) {
	f := sampleFeed()

	_, err := f.Summaries(4)

	var countErr *CountError
	require.True(t, errors.As(err, &countErr))
	assert.Equal(t, 4, countErr.Requested)
	assert.Equal(t, 3, countErr.Available)
}

func TestFeed_IsolatedFromCaller(t *testing.T) {
	stories := []models.NewsStory{{Headline: "orig"}}
	f := NewFeed("general", stories)
	stories[0].Headline = "changed"

	got, err := f.Stories(0)
	require.NoError(t, err)
	got[0].Headline = "mutated"

	again, err := f.Headlines(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"orig"}, again)
}

func TestFeed_Empty(t *testing.T) {
	f := NewFeed("XYZ", nil)

	h, err := f.Headlines(0)
	require.NoError(t, err)
	assert.Empty(t, h)

	_, err = f.Categories(1)
	assert.Error(t, err)
}
