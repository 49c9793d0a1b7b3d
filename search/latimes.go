package search

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/MalvinJazz/fresh-news-robot/browser"
	"github.com/MalvinJazz/fresh-news-robot/news"
)

// pageClickAttempts bounds how often an intercepted next-page click is
// retried before the loop proceeds anyway.
const pageClickAttempts = 3

// elementWait bounds how long the strategy waits for individual controls.
const elementWait = 5 * time.Second

// SiteConfig names the markup hooks a strategy needs on a site's search
// pages. All selectors follow the browser.Session convention: "//"-prefixed
// strings are XPath, the rest CSS. The item-level selectors are evaluated
// with goquery relative to each result item.
type SiteConfig struct {
	URL string `yaml:"url"`

	SearchButton string `yaml:"search_button"`
	SearchInput  string `yaml:"search_input"`
	SearchSubmit string `yaml:"search_submit"`

	SortSelect      string `yaml:"sort_select"`
	SortNewestLabel string `yaml:"sort_newest_label"`

	FiltersOpenButton string `yaml:"filters_open_button"`
	// TopicCheckbox is a format string; the trimmed topic replaces %s.
	TopicCheckbox string `yaml:"topic_checkbox"`

	ResultsList    string `yaml:"results_list"`
	ResultItem     string `yaml:"result_item"`
	TitleSel       string `yaml:"title"`
	DescriptionSel string `yaml:"description"`
	TimestampSel   string `yaml:"timestamp"`
	TimestampAttr  string `yaml:"timestamp_attr"`
	ImageSel       string `yaml:"image"`

	NextPageLink string `yaml:"next_page_link"`
}

// LATimesConfig returns the markup hooks for the LA Times search pages.
func LATimesConfig() SiteConfig {
	return SiteConfig{
		URL: "https://www.latimes.com/",

		SearchButton: `button[data-element="search-button"]`,
		SearchInput:  `input[data-element="search-form-input"]`,
		SearchSubmit: `button[data-element="search-submit-button"]`,

		SortSelect:      `select[name="s"]`,
		SortNewestLabel: "Newest",

		FiltersOpenButton: `button.filters-open-button`,
		TopicCheckbox:     `//label[@class='checkbox-input-label' and span[text()='%s']]/input`,

		ResultsList:    `ul.search-results-module-results-menu`,
		ResultItem:     `li`,
		TitleSel:       `h3.promo-title a`,
		DescriptionSel: `p.promo-description`,
		TimestampSel:   `p.promo-timestamp`,
		TimestampAttr:  "data-timestamp",
		ImageSel:       `div.promo-media a picture img`,

		NextPageLink: `div.search-results-module-next-page a`,
	}
}

// LATimes implements Source against the LA Times search pages. All
// site-specific knowledge lives here; the orchestrator only sees the Source
// interface.
type LATimes struct {
	cfg        SiteConfig
	session    browser.Session
	downloader *Downloader
	outDir     string
	log        *zap.Logger

	retryDelay time.Duration
	now        func() time.Time
}

// NewLATimes creates the strategy. outDir is the run's output directory;
// thumbnails land in its news/ subfolder.
func NewLATimes(cfg SiteConfig, outDir string, log *zap.Logger) *LATimes {
	return &LATimes{
		cfg:        cfg,
		downloader: NewDownloader(),
		outDir:     outDir,
		log:        log,
		retryDelay: time.Second,
		now:        time.Now,
	}
}

// SetBrowser injects the automation session. Must run before any other
// method.
func (s *LATimes) SetBrowser(session browser.Session) {
	s.session = session
}

// OpenSite navigates to the site's entry URL.
func (s *LATimes) OpenSite() error {
	return s.session.Navigate(s.cfg.URL)
}

// EnterPhrase submits query through the site's search form.
func (s *LATimes) EnterPhrase(query string) error {
	if err := s.session.Click(s.cfg.SearchButton); err != nil {
		return fmt.Errorf("failed to open search form: %w", err)
	}
	if err := s.session.Input(s.cfg.SearchInput, query); err != nil {
		return fmt.Errorf("failed to enter search phrase: %w", err)
	}
	if err := s.session.Click(s.cfg.SearchSubmit); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	return nil
}

// OrderAndSelectCategory sorts the results newest-first and selects the
// topic checkbox when one is requested. A topic that never shows up within
// the bounded wait is logged and skipped; filtering is best-effort.
func (s *LATimes) OrderAndSelectCategory(topic string) error {
	if err := s.session.WaitVisible(s.cfg.SortSelect, elementWait); err != nil {
		return fmt.Errorf("failed to find sort control: %w", err)
	}
	if err := s.session.SelectOption(s.cfg.SortSelect, s.cfg.SortNewestLabel); err != nil {
		return fmt.Errorf("failed to sort by newest: %w", err)
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}
	checkbox := fmt.Sprintf(s.cfg.TopicCheckbox, topic)

	if open, err := s.session.IsVisible(s.cfg.FiltersOpenButton); err == nil && open {
		if err := s.session.Click(s.cfg.FiltersOpenButton); err != nil {
			return fmt.Errorf("failed to open filter panel: %w", err)
		}
	}

	if err := s.session.WaitVisible(checkbox, elementWait); err != nil {
		s.log.Error("unable to find topic section, continuing unfiltered",
			zap.String("topic", topic), zap.Error(err))
		return nil
	}

	if visible, err := s.session.IsVisible(checkbox); err == nil && visible {
		if err := s.session.Click(checkbox); err != nil {
			return fmt.Errorf("failed to select topic %q: %w", topic, err)
		}
	}

	if open, err := s.session.IsVisible(s.cfg.FiltersOpenButton); err == nil && open {
		if err := s.session.Click(s.cfg.FiltersOpenButton); err != nil {
			return fmt.Errorf("failed to close filter panel: %w", err)
		}
	}
	return nil
}

// Collect paginates through the result pages, newest first, gathering one
// Article per result until a publication date falls before the month cutoff
// or the next-page control disappears. Results are assumed to arrive in
// descending date order, so the first out-of-window date ends the run.
func (s *LATimes) Collect(months int) ([]news.Article, error) {
	cutoff := CutoffDate(s.now(), months)
	collected := []news.Article{}
	page := 0

	for {
		visible, err := s.session.IsVisible(s.cfg.NextPageLink)
		if err != nil {
			return nil, fmt.Errorf("failed to probe next-page control: %w", err)
		}
		if !visible {
			return collected, nil
		}

		listHTML, err := s.session.OuterHTML(s.cfg.ResultsList)
		if err != nil {
			return nil, fmt.Errorf("failed to read results list: %w", err)
		}

		items, reachedCutoff, err := s.collectPage(listHTML, page, cutoff)
		collected = append(collected, items...)
		if err != nil {
			return nil, err
		}
		if reachedCutoff {
			return collected, nil
		}

		if err := s.nextPage(); err != nil {
			return nil, err
		}
		page++
	}
}

// collectPage extracts every result on one page. It reports reachedCutoff
// when an item's date precedes the cutoff; items collected before that point
// are still returned.
func (s *LATimes) collectPage(listHTML string, page int, cutoff time.Time) (items []news.Article, reachedCutoff bool, err error) {
	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(listHTML))
	if parseErr != nil {
		return nil, false, fmt.Errorf("failed to parse results page: %w", parseErr)
	}

	doc.Find(s.cfg.ResultItem).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		index := i + 1 // result items are 1-indexed within the page

		rawTS, _ := sel.Find(s.cfg.TimestampSel).First().Attr(s.cfg.TimestampAttr)
		date := s.now()
		if ms, convErr := strconv.ParseInt(strings.TrimSpace(rawTS), 10, 64); convErr == nil {
			date = time.UnixMilli(ms)
		} else {
			s.log.Error("could not convert timestamp to date, using current time",
				zap.Int("index", index), zap.String("timestamp", rawTS))
		}

		if date.Before(cutoff) {
			reachedCutoff = true
			return false
		}

		imageURL, _ := sel.Find(s.cfg.ImageSel).First().Attr("src")
		filename := fmt.Sprintf("%d-%s-%d.png", page, rawTS, index)
		if fetchErr := s.downloader.Fetch(imageURL, filepath.Join(s.outDir, "news", filename)); fetchErr != nil {
			err = fmt.Errorf("failed to download thumbnail: %w", fetchErr)
			return false
		}

		items = append(items, news.Article{
			Title:       normalizeSpace(sel.Find(s.cfg.TitleSel).First().Text()),
			Date:        date,
			Description: normalizeSpace(sel.Find(s.cfg.DescriptionSel).First().Text()),
			Image:       filename,
		})
		return true
	})

	return items, reachedCutoff, err
}

// nextPage activates the next-page link. An intercepted click is retried a
// bounded number of times with a short pause; when every attempt is
// intercepted control still returns so the caller re-checks the control's
// presence. Any other click failure propagates.
func (s *LATimes) nextPage() error {
	for attempt := 1; attempt <= pageClickAttempts; attempt++ {
		err := s.session.Click(s.cfg.NextPageLink)
		if err == nil {
			return nil
		}
		if !errors.Is(err, browser.ErrClickIntercepted) {
			return fmt.Errorf("failed to advance to next page: %w", err)
		}
		s.log.Warn("next-page click intercepted", zap.Int("attempt", attempt))
		time.Sleep(s.retryDelay)
	}
	return nil
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
