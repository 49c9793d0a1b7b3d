package search

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/MalvinJazz/fresh-news-robot/browser"
	"github.com/MalvinJazz/fresh-news-robot/news"
	"github.com/MalvinJazz/fresh-news-robot/workitems"
)

// ReportFilename is the name of the spreadsheet written after each run.
const ReportFilename = "fresh_news.xlsx"

// Searcher runs one search end to end against an injected Source and
// renders the spreadsheet report. Failures in any pipeline stage propagate;
// there is no recovery at this layer.
type Searcher struct {
	source Source
	outDir string
	log    *zap.Logger
}

// NewSearcher wires session into source and returns the orchestrator.
// Reports and images land under outDir.
func NewSearcher(source Source, session browser.Session, outDir string, log *zap.Logger) *Searcher {
	source.SetBrowser(session)
	return &Searcher{
		source: source,
		outDir: outDir,
		log:    log,
	}
}

// Source returns the current site strategy.
func (s *Searcher) Source() Source {
	return s.source
}

// SetSource swaps the site strategy.
func (s *Searcher) SetSource(source Source) {
	s.source = source
}

// Search executes the fixed pipeline: open site, submit the phrase, apply
// ordering and category filter, collect articles bounded by the month
// cutoff, and write the report.
func (s *Searcher) Search(params workitems.Parameters) error {
	if err := s.source.OpenSite(); err != nil {
		return fmt.Errorf("failed to open site: %w", err)
	}
	if err := s.source.EnterPhrase(params.Phrase); err != nil {
		return fmt.Errorf("failed to enter phrase: %w", err)
	}
	if err := s.source.OrderAndSelectCategory(params.Topic); err != nil {
		return fmt.Errorf("failed to order and filter: %w", err)
	}

	articles, err := s.source.Collect(params.Months)
	if err != nil {
		return fmt.Errorf("failed to collect articles: %w", err)
	}
	s.log.Info("collection finished", zap.Int("articles", len(articles)))

	reportPath := filepath.Join(s.outDir, ReportFilename)
	if err := news.WriteReport(articles, params.Phrase, reportPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	s.log.Info("report written", zap.String("path", reportPath))
	return nil
}
