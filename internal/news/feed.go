// Package news wraps a list of stories with count-limited field accessors.
package news

import (
	"fmt"
	"time"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// CountError is returned when more stories are requested than the feed holds.
type CountError struct {
	Requested int
	Available int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("requested %d stories, only %d available", e.Requested, e.Available)
}

// Feed is an ordered, read-only list of stories for one company or category.
type Feed struct {
	source  string
	stories []models.NewsStory
}

// NewFeed copies stories into a feed labelled with its source (ticker or
// category).
func NewFeed(source string, stories []models.NewsStory) *Feed {
	cp := make([]models.NewsStory, len(stories))
	copy(cp, stories)
	return &Feed{source: source, stories: cp}
}

// Source returns the ticker or category the feed was built for.
func (f *Feed) Source() string { return f.source }

// Len returns the number of stories.
func (f *Feed) Len() int { return len(f.stories) }

// Stories returns the first count stories. Zero or a negative count means all.
func (f *Feed) Stories(count int) ([]models.NewsStory, error) {
	n, err := f.limit(count)
	if err != nil {
		return nil, err
	}
	out := make([]models.NewsStory, n)
	copy(out, f.stories[:n])
	return out, nil
}

func (f *Feed) limit(count int) (int, error) {
	if count <= 0 {
		return len(f.stories), nil
	}
	if count > len(f.stories) {
		return 0, &CountError{Requested: count, Available: len(f.stories)}
	}
	return count, nil
}

func collect[T any](f *Feed, count int, field func(models.NewsStory) T) ([]T, error) {
	n, err := f.limit(count)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = field(f.stories[i])
	}
	return out, nil
}

// Headlines returns the first count headlines.
func (f *Feed) Headlines(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.Headline })
}

// Datetimes returns the first count publication times.
func (f *Feed) Datetimes(count int) ([]time.Time, error) {
	return collect(f, count, func(s models.NewsStory) time.Time { return s.Datetime })
}

// Summaries returns the first count summaries.
func (f *Feed) Summaries(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.Summary })
}

// Sources returns the first count publishers.
func (f *Feed) Sources(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.Source })
}

// Images returns the first count image URLs.
func (f *Feed) Images(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.Image })
}

// URLs returns the first count article URLs.
func (f *Feed) URLs(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.URL })
}

// Categories returns the first count categories.
func (f *Feed) Categories(count int) ([]string, error) {
	return collect(f, count, func(s models.NewsStory) string { return s.Category })
}
