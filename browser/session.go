// Package browser wraps the automation driver behind a small session
// interface so site strategies never touch chromedp directly.
package browser

import (
	"errors"
	"time"
)

// Custom errors for browser interactions
var (
	// ErrClickIntercepted signals that another element covers the click
	// target, typically an overlay or a late-loading ad.
	ErrClickIntercepted = errors.New("click intercepted by overlaying element")

	// ErrNoSuchElement signals that the selector matched nothing.
	ErrNoSuchElement = errors.New("no such element")
)

// Session is the surface of a driven browser page. Selectors beginning with
// "//" are treated as XPath expressions, anything else as CSS selectors.
type Session interface {
	// Navigate loads url in the current tab.
	Navigate(url string) error

	// Click activates the first element matching sel. Returns
	// ErrClickIntercepted when another element covers the target.
	Click(sel string) error

	// Input types text into the element matching sel.
	Input(sel, text string) error

	// SelectOption picks the option with the given visible label from the
	// select element matching sel.
	SelectOption(sel, label string) error

	// WaitVisible blocks until the element matching sel is visible or the
	// timeout elapses.
	WaitVisible(sel string, timeout time.Duration) error

	// IsVisible reports whether an element matching sel is currently
	// rendered with a non-empty box.
	IsVisible(sel string) (bool, error)

	// Text returns the visible text of the first element matching sel.
	Text(sel string) (string, error)

	// Attribute returns the value of the named attribute on the first
	// element matching sel, and whether the attribute is present.
	Attribute(sel, name string) (string, bool, error)

	// OuterHTML returns the serialized markup of the first element
	// matching sel.
	OuterHTML(sel string) (string, error)
}
