package models

import "time"

// NewsStory is a single headline returned by a news provider.
type NewsStory struct {
	ID       int64     `json:"id"`
	Category string    `json:"category"`
	Datetime time.Time `json:"datetime"`
	Headline string    `json:"headline"`
	Image    string    `json:"image"`
	Related  string    `json:"related"`
	Source   string    `json:"source"`
	Summary  string    `json:"summary"`
	URL      string    `json:"url"`
}

// Market news categories. Anything else is treated as a company symbol.
const (
	NewsCategoryGeneral = "general"
	NewsCategoryForex   = "forex"
	NewsCategoryCrypto  = "crypto"
	NewsCategoryMerger  = "merger"
)

// IsMarketNewsCategory reports whether category names a market-wide feed.
func IsMarketNewsCategory(category string) bool {
	switch category {
	case NewsCategoryGeneral, NewsCategoryForex, NewsCategoryCrypto, NewsCategoryMerger:
		return true
	}
	return false
}
