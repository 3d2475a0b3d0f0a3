package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bis-schedules/internal/game"
	"github.com/pfrederiksen/bis-schedules/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ScheduleURL = "https://boulderindoorsoccer.com/bis-academy/bis-schedules/"
	UserAgent   = "bis-schedules/1.0 (github.com/pfrederiksen/bis-schedules)"
	Timeout     = 30 * time.Second
)

const (
	// Class selectors match whole tokens, so "tablepressFoo" is not selected.
	tableClass      = "tablepress"
	tableSelector   = "." + tableClass
	badWeatherClass = "badweathertable"
	columnCount     = 5
)

// ErrStructuralMismatch is returned when the page does not have the expected table layout
var ErrStructuralMismatch = errors.New("structural mismatch")

// Scraper handles fetching and parsing the schedule page
type Scraper struct {
	client *http.Client
	url    string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the schedule page URL
func WithURL(url string) Option {
	return func(s *Scraper) {
		s.url = url
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = timeout
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: ScheduleURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchSchedule fetches the schedule page and extracts every team's games
func (s *Scraper) FetchSchedule(ctx context.Context) (*game.Schedule, error) {
	data, err := s.fetchPage(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractHTML(data)
}

// FetchDocument fetches and parses the schedule page
func (s *Scraper) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	data, err := s.fetchPage(ctx)
	if err != nil {
		return nil, err
	}
	return ParseDocument(bytes.NewReader(data))
}

// fetchPage downloads the schedule page
func (s *Scraper) fetchPage(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	logger.RecordTiming("fetch", time.Since(start))

	return data, nil
}

// ParseDocument parses an HTML document
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// ExtractFromReader reads an HTML document and extracts its schedule tables
func ExtractFromReader(r io.Reader) (*game.Schedule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return ExtractHTML(data)
}

// ExtractHTML extracts the schedule tables of an HTML document.
// Unlike Extract, it also rejects schedule tables with no <tbody> tag in the source.
func ExtractHTML(data []byte) (*game.Schedule, error) {
	if err := checkExplicitBodies(data); err != nil {
		return nil, err
	}

	doc, err := ParseDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Extract(doc)
}

// checkExplicitBodies fails when a table with the tablepress class has no
// <tbody> start tag of its own. The HTML parser wraps bare rows in a tbody,
// so only the source tokens show whether one was written.
func checkExplicitBodies(data []byte) error {
	type openTable struct {
		index    int
		schedule bool
		bodies   int
	}

	var (
		stack  []openTable
		tables int
	)
	closeTable := func() error {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.schedule && top.bodies == 0 {
			return fmt.Errorf("%w: schedule table %d has no tbody tag", ErrStructuralMismatch, top.index)
		}
		return nil
	}

	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return fmt.Errorf("parsing HTML: %w", z.Err())
			}
			// Unclosed tables end with the document.
			for len(stack) > 0 {
				if err := closeTable(); err != nil {
					return err
				}
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Table:
				t := openTable{schedule: hasClassToken(tok, tableClass)}
				if t.schedule {
					tables++
					t.index = tables
				}
				stack = append(stack, t)
			case atom.Tbody:
				if len(stack) > 0 {
					stack[len(stack)-1].bodies++
				}
			}

		case html.EndTagToken:
			if tok := z.Token(); tok.DataAtom == atom.Table && len(stack) > 0 {
				if err := closeTable(); err != nil {
					return err
				}
			}
		}
	}
}

// hasClassToken reports whether the tag's class attribute contains class as a whole token
func hasClassToken(tok html.Token, class string) bool {
	for _, attr := range tok.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// Extract collects the games of every schedule table in the document.
// Each game is listed under both its home team and its away team.
func Extract(doc *goquery.Document) (*game.Schedule, error) {
	start := time.Now()
	schedule := game.NewSchedule()

	var extractErr error
	doc.Find(tableSelector).EachWithBreak(func(i int, table *goquery.Selection) bool {
		logger.IncrCounter("tables")
		if err := extractTable(table, schedule); err != nil {
			extractErr = fmt.Errorf("table %d: %w", i+1, err)
			return false
		}
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	logger.RecordTiming("extract", time.Since(start))
	logger.SetGauge("teams", float64(schedule.Len()))

	return schedule, nil
}

// extractTable appends the games of one table to the schedule
func extractTable(table *goquery.Selection, schedule *game.Schedule) error {
	badWeather := table.HasClass(badWeatherClass)

	bodies := table.ChildrenFiltered("tbody")
	if n := bodies.Length(); n != 1 {
		return fmt.Errorf("%w: expected exactly one tbody, found %d", ErrStructuralMismatch, n)
	}

	var rowErr error
	bodies.ChildrenFiltered("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		logger.IncrCounter("rows")
		rec, ok, err := extractRow(row, badWeather)
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", i+1, err)
			return false
		}
		if !ok {
			logger.IncrCounter("rows.skipped")
			return true
		}
		schedule.Add(rec)
		logger.IncrCounter("games")
		return true
	})

	return rowErr
}

// extractRow reads a data row. ok is false for separator rows, which have no
// text in their date cell.
func extractRow(row *goquery.Selection, badWeather bool) (game.GameRecord, bool, error) {
	cells := row.ChildrenFiltered("td")

	values := make([]string, 0, columnCount)
	var rowErr error
	cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		text, present, err := cellText(cell)
		if err != nil {
			rowErr = fmt.Errorf("cell %d: %w", i+1, err)
			return false
		}
		if i == 0 && !present {
			return false
		}
		values = append(values, text)
		return true
	})
	if rowErr != nil {
		return game.GameRecord{}, false, rowErr
	}
	if len(values) == 0 {
		return game.GameRecord{}, false, nil
	}

	if n := cells.Length(); n != columnCount {
		return game.GameRecord{}, false, fmt.Errorf("%w: expected %d cells, found %d", ErrStructuralMismatch, columnCount, n)
	}

	date, timeText, home, away, field := values[0], values[1], values[2], values[3], values[4]
	rec, err := game.NewGameRecord(date, timeText, home, away, badWeather, field)
	if err != nil {
		return game.GameRecord{}, false, fmt.Errorf("%w: %v", ErrStructuralMismatch, err)
	}

	return rec, true, nil
}

// cellText returns the cell's only direct text node. present is false when the
// cell has no text node at all.
func cellText(cell *goquery.Selection) (text string, present bool, err error) {
	var texts []string
	for _, node := range cell.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				texts = append(texts, c.Data)
			}
		}
	}

	switch len(texts) {
	case 0:
		return "", false, nil
	case 1:
		return strings.TrimSpace(texts[0]), true, nil
	default:
		return "", false, fmt.Errorf("%w: expected one text node, found %d", ErrStructuralMismatch, len(texts))
	}
}
