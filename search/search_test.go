package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MalvinJazz/fresh-news-robot/browser"
	"github.com/MalvinJazz/fresh-news-robot/news"
	"github.com/MalvinJazz/fresh-news-robot/workitems"
)

// TestCutoffDate_MultipleMonths verifies the window opens on the first day
// of the month months-1 months back
func TestCutoffDate_MultipleMonths(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	cutoff := CutoffDate(now, 3)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), cutoff)
}

// TestCutoffDate_ZeroMonths verifies zero means the first day of the
// current month
func TestCutoffDate_ZeroMonths(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	cutoff := CutoffDate(now, 0)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), cutoff)
}

// TestCutoffDate_OneMonth verifies one month also means the first day of
// the current month
func TestCutoffDate_OneMonth(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	cutoff := CutoffDate(now, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), cutoff)
}

// TestCutoffDate_YearBoundary verifies the window crosses year boundaries
func TestCutoffDate_YearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	cutoff := CutoffDate(now, 4)
	assert.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), cutoff)
}

// stubSource is a canned Source used to exercise the orchestrator without a
// browser.
type stubSource struct {
	articles []news.Article
	session  browser.Session
	calls    []string
}

func (s *stubSource) OpenSite() error {
	s.calls = append(s.calls, "open")
	return nil
}

func (s *stubSource) EnterPhrase(query string) error {
	s.calls = append(s.calls, "phrase:"+query)
	return nil
}

func (s *stubSource) OrderAndSelectCategory(topic string) error {
	s.calls = append(s.calls, "filter:"+topic)
	return nil
}

func (s *stubSource) Collect(months int) ([]news.Article, error) {
	s.calls = append(s.calls, "collect")
	return s.articles, nil
}

func (s *stubSource) SetBrowser(session browser.Session) {
	s.session = session
}

// TestSearch_EndToEnd verifies the pipeline order and the rendered report
// for a stubbed two-article search
func TestSearch_EndToEnd(t *testing.T) {
	stub := &stubSource{
		articles: []news.Article{
			{
				Title:       "Economy rebounds",
				Date:        time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC),
				Description: "The economy grew by $50 million",
				Image:       "0-1714645800000-1.png",
			},
			{
				Title:       "Sports roundup",
				Date:        time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
				Description: "Local team wins again",
				Image:       "0-1714550400000-2.png",
			},
		},
	}

	outDir := t.TempDir()
	searcher := NewSearcher(stub, nil, outDir, zap.NewNop())

	params := workitems.Parameters{Phrase: "economy", Months: 1, Topic: ""}
	require.NoError(t, searcher.Search(params))

	assert.Equal(t, []string{"open", "phrase:economy", "filter:", "collect"}, stub.calls)

	f, err := excelize.OpenFile(filepath.Join(outDir, ReportFilename))
	require.NoError(t, err, "should write the report workbook")
	defer f.Close()

	rows, err := f.GetRows(news.ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "TRUE", rows[1][3], "first article mentions money")
	assert.Equal(t, "1", rows[1][4], "phrase appears once in first article")
	assert.Equal(t, "FALSE", rows[2][3], "second article mentions no money")
	assert.Equal(t, "0", rows[2][4], "phrase absent from second article")
}

// TestSetSource verifies the strategy can be swapped after construction
func TestSetSource(t *testing.T) {
	first := &stubSource{}
	second := &stubSource{}

	searcher := NewSearcher(first, nil, t.TempDir(), zap.NewNop())
	require.Same(t, first, searcher.Source())

	searcher.SetSource(second)
	assert.Same(t, second, searcher.Source())
}
