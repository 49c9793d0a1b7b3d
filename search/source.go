// Package search drives one news-site search end to end: submit a phrase,
// sort and filter, paginate within a date window, and report the results.
package search

import (
	"time"

	"github.com/MalvinJazz/fresh-news-robot/browser"
	"github.com/MalvinJazz/fresh-news-robot/news"
)

// Source is the capability a site strategy provides. The orchestrator calls
// the methods in this fixed order: SetBrowser, OpenSite, EnterPhrase,
// OrderAndSelectCategory, Collect. One Source instance handles exactly one
// search.
type Source interface {
	// OpenSite navigates to the site's entry URL.
	OpenSite() error

	// EnterPhrase submits query through the site's search UI.
	EnterPhrase(query string) error

	// OrderAndSelectCategory sorts results newest-first and, when topic is
	// non-empty after trimming, selects the matching category checkbox.
	// A topic that cannot be found is logged and skipped, not an error.
	OrderAndSelectCategory(topic string) error

	// Collect paginates through the results and returns every article
	// published on or after the month cutoff derived from months.
	Collect(months int) ([]news.Article, error)

	// SetBrowser injects the automation session the strategy drives. Must
	// be called before any other method.
	SetBrowser(session browser.Session)
}

// CutoffDate returns the earliest publication date still in scope: the first
// day of the month months-1 months before now's month, or the first day of
// now's month when months is zero.
func CutoffDate(now time.Time, months int) time.Time {
	back := 0
	if months > 0 {
		back = months - 1
	}
	return time.Date(now.Year(), now.Month()-time.Month(back), 1, 0, 0, 0, 0, now.Location())
}
