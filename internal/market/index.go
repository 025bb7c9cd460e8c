package market

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// DefaultSP500URL is the Wikipedia page listing S&P 500 components.
const DefaultSP500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// WikipediaIndex reads index constituents from the "constituents" table of
// a Wikipedia list page.
type WikipediaIndex struct {
	url        string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewWikipediaIndex creates a reader for pageURL. An empty URL means the
// S&P 500 list.
func NewWikipediaIndex(pageURL string, httpClient *http.Client, logger arbor.ILogger) *WikipediaIndex {
	if pageURL == "" {
		pageURL = DefaultSP500URL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &WikipediaIndex{url: pageURL, httpClient: httpClient, logger: logger}
}

// Constituents fetches and parses the constituents table.
func (w *WikipediaIndex) Constituents(ctx context.Context) ([]models.Constituent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "stock-bot/1.0")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var out []models.Constituent
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		symbol := strings.TrimSpace(cells.Eq(0).Text())
		if symbol == "" {
			return
		}
		c := models.Constituent{
			// Class shares are listed as BRK.B; providers expect BRK-B.
			Symbol: strings.ReplaceAll(symbol, ".", "-"),
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
		}
		if cells.Length() > 2 {
			c.Sector = strings.TrimSpace(cells.Eq(2).Text())
		}
		out = append(out, c)
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no constituents found at %s", w.url)
	}

	if w.logger != nil {
		w.logger.Debug().
			Str("url", w.url).
			Int("count", len(out)).
			Msg("Index constituents parsed")
	}
	return out, nil
}

// FileIndex reads constituents from a YAML file:
//
//	constituents:
//	  - symbol: AAPL
//	    name: Apple Inc.
//	    market_cap: "2700000000000"
//	    price: "175.5"
type FileIndex struct {
	path string
}

// NewFileIndex creates a reader for the YAML file at path.
func NewFileIndex(path string) *FileIndex {
	return &FileIndex{path: path}
}

type indexFile struct {
	Constituents []models.Constituent `yaml:"constituents"`
}

// Constituents reads and validates the file.
func (f *FileIndex) Constituents(_ context.Context) ([]models.Constituent, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var file indexFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse index file %s: %w", f.path, err)
	}

	for i, c := range file.Constituents {
		if strings.TrimSpace(c.Symbol) == "" {
			return nil, fmt.Errorf("index file %s: entry %d has no symbol", f.path, i)
		}
		file.Constituents[i].Symbol = strings.ToUpper(strings.TrimSpace(c.Symbol))
	}
	return file.Constituents, nil
}
