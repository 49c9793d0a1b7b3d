package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Chrome drives a Chrome tab through chromedp. The context must come from
// chromedp.NewContext and stays bound to the session for its whole life;
// one Chrome value serves exactly one search run.
type Chrome struct {
	ctx context.Context
}

// NewChrome wraps an established chromedp context in a Session.
func NewChrome(ctx context.Context) *Chrome {
	return &Chrome{ctx: ctx}
}

// isXPath reports whether sel is an XPath expression rather than a CSS
// selector.
func isXPath(sel string) bool {
	return strings.HasPrefix(sel, "//") || strings.HasPrefix(sel, "(//")
}

// by returns the chromedp query option matching the selector flavor.
func by(sel string) chromedp.QueryOption {
	if isXPath(sel) {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// locateJS builds a JavaScript expression resolving sel to a DOM node, or
// null when nothing matches.
func locateJS(sel string) string {
	if isXPath(sel) {
		return fmt.Sprintf(
			`document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue`,
			sel)
	}
	return fmt.Sprintf(`document.querySelector(%q)`, sel)
}

// Navigate loads url in the current tab.
func (c *Chrome) Navigate(url string) error {
	if err := chromedp.Run(c.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// clickStateJS builds the hit-test expression for Click. The target is
// scrolled into view first so its center lands inside the viewport; a null
// elementFromPoint result means the point is still outside the viewport and
// must count as clear, since the click itself scrolls before dispatching.
func clickStateJS(sel string) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) return "missing";
		el.scrollIntoView({block: "center", inline: "center"});
		const r = el.getBoundingClientRect();
		const hit = document.elementFromPoint(r.x + r.width / 2, r.y + r.height / 2);
		if (!hit) return "clear";
		return (el.contains(hit) || hit.contains(el)) ? "clear" : "covered";
	})()`, locateJS(sel))
}

// Click activates the first element matching sel. A hit test runs first: if
// the point at the element's center resolves to an unrelated element, the
// click would land on the overlay instead and ErrClickIntercepted is
// returned.
func (c *Chrome) Click(sel string) error {
	var state string
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(clickStateJS(sel), &state)); err != nil {
		return fmt.Errorf("failed to hit-test %s: %w", sel, err)
	}
	switch state {
	case "missing":
		return fmt.Errorf("click %s: %w", sel, ErrNoSuchElement)
	case "covered":
		return fmt.Errorf("click %s: %w", sel, ErrClickIntercepted)
	}

	if err := chromedp.Run(c.ctx, chromedp.Click(sel, by(sel))); err != nil {
		return fmt.Errorf("failed to click %s: %w", sel, err)
	}
	return nil
}

// Input types text into the element matching sel.
func (c *Chrome) Input(sel, text string) error {
	err := chromedp.Run(c.ctx,
		chromedp.Clear(sel, by(sel)),
		chromedp.SendKeys(sel, text, by(sel)),
	)
	if err != nil {
		return fmt.Errorf("failed to type into %s: %w", sel, err)
	}
	return nil
}

// SelectOption picks the option with the given visible label from the select
// element matching sel and fires a change event, matching what a user
// selection does.
func (c *Chrome) SelectOption(sel, label string) error {
	js := fmt.Sprintf(`(() => {
		const el = %s;
		if (!el || !el.options) return false;
		for (const opt of el.options) {
			if (opt.label === %q || opt.text === %q) {
				el.value = opt.value;
				el.dispatchEvent(new Event("change", {bubbles: true}));
				return true;
			}
		}
		return false;
	})()`, locateJS(sel), label, label)

	var ok bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, sel, err)
	}
	if !ok {
		return fmt.Errorf("select %q in %s: %w", label, sel, ErrNoSuchElement)
	}
	return nil
}

// WaitVisible blocks until the element matching sel is visible or the
// timeout elapses.
func (c *Chrome) WaitVisible(sel string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitVisible(sel, by(sel))); err != nil {
		return fmt.Errorf("failed waiting for %s: %w", sel, err)
	}
	return nil
}

// IsVisible reports whether an element matching sel is currently rendered
// with a non-empty box.
func (c *Chrome) IsVisible(sel string) (bool, error) {
	js := fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) return false;
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	})()`, locateJS(sel))

	var visible bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &visible)); err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", sel, err)
	}
	return visible, nil
}

// Text returns the visible text of the first element matching sel.
func (c *Chrome) Text(sel string) (string, error) {
	var text string
	if err := chromedp.Run(c.ctx, chromedp.Text(sel, &text, by(sel))); err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", sel, err)
	}
	return text, nil
}

// Attribute returns the value of the named attribute on the first element
// matching sel, and whether the attribute is present.
func (c *Chrome) Attribute(sel, name string) (string, bool, error) {
	var value string
	var ok bool
	if err := chromedp.Run(c.ctx, chromedp.AttributeValue(sel, name, &value, &ok, by(sel))); err != nil {
		return "", false, fmt.Errorf("failed to read attribute %s of %s: %w", name, sel, err)
	}
	return value, ok, nil
}

// OuterHTML returns the serialized markup of the first element matching sel.
func (c *Chrome) OuterHTML(sel string) (string, error) {
	var html string
	if err := chromedp.Run(c.ctx, chromedp.OuterHTML(sel, &html, by(sel))); err != nil {
		return "", fmt.Errorf("failed to read markup of %s: %w", sel, err)
	}
	return html, nil
}
