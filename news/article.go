package news

import (
	"regexp"
	"strings"
	"time"
)

// moneyPattern matches currency-like amounts: a dollar sign followed by an
// amount with optional thousands grouping and decimals, or a bare amount
// followed by "dollars" or "USD". Bare numbers with neither marker do not
// count as money.
var moneyPattern = regexp.MustCompile(`\$\s?\d{1,3}(,\d{3})*(\.\d+)?(\s?(dollars|USD))?|\d{1,3}(,\d{3})*(\.\d+)?\s?(dollars|USD)`)

// Article represents the metadata collected for a single search result.
type Article struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Image       string    `json:"image"` // local filename of the downloaded thumbnail
}

// CountPhraseOccurrences returns the number of non-overlapping literal
// occurrences of phrase in the article's title plus its description. An
// empty phrase counts as zero occurrences.
func (a *Article) CountPhraseOccurrences(phrase string) int {
	if phrase == "" {
		return 0
	}
	return strings.Count(a.Title, phrase) + strings.Count(a.Description, phrase)
}

// HasMoney reports whether the title or the description mentions a
// currency-like amount.
func (a *Article) HasMoney() bool {
	return moneyPattern.MatchString(a.Title) || moneyPattern.MatchString(a.Description)
}
