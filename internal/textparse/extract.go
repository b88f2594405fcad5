// Package textparse extracts structured product fields from free-form
// post text. All functions are pure and total: any input yields either a
// best-effort match or an explicit miss, never an error.
package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxTitleLen = 128
	maxSizesLen = 120
)

// Price patterns are tried in priority order; the first strategy that
// matches anywhere in the text wins, regardless of position.
var pricePatterns = []*regexp.Regexp{
	// labeled amount: "Цена: 4 990 ₽", "price 4990 rub"
	regexp.MustCompile(`(?i)(?:цена|price)\s*[:\-]?\s*(\d[\d\s.]{0,12})\s*(?:₽|руб\.?|rub|р)(?:[^\p{L}\d]|$)`),
	// bare amount with currency token, word-bounded on both sides
	regexp.MustCompile(`(?im)(?:^|[^\p{L}\d])(\d[\d\s.]{0,12})\s*(?:₽|руб\.?|rub|р)(?:[^\p{L}\d]|$)`),
}

// numberLine matches a line consisting solely of a number-like token.
var numberLine = regexp.MustCompile(`^\s*\d[\d\s.]{0,12}\s*$`)

var (
	sizesLabeled = regexp.MustCompile(`(?i)(?:размеры?|sizes?)\s*[:\-–]\s*([A-Za-zА-Яа-я0-9 ,/\-]+)`)
	sizesLine    = regexp.MustCompile(`^\s*(?:[A-Za-zА-Яа-я0-9]{1,3}[\s,/\-]+){1,10}[A-Za-zА-Яа-я0-9]{1,3}\s*$`)
	hashTag      = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	wsRun        = regexp.MustCompile(`\s+`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// normalize replaces non-breaking spaces, which channel posts use as
// thousands separators, with plain spaces.
func normalize(text string) string {
	return strings.ReplaceAll(text, " ", " ")
}

// ExtractPrice searches text for an amount in rubles and returns it in
// minor units (kopecks). Recognizes labeled amounts ("Цена: 4 990 ₽"),
// bare currency-marked amounts ("4990 руб") and, failing both, a line
// holding nothing but a number. Digits may be grouped with spaces or
// dots; the grouping is stripped before parsing.
func ExtractPrice(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}
	t := normalize(text)

	for _, pat := range pricePatterns {
		m := pat.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok {
			return v, true
		}
	}

	for _, line := range strings.Split(t, "\n") {
		if !numberLine.MatchString(line) {
			continue
		}
		if v, ok := parseAmount(line); ok {
			return v, true
		}
	}
	return 0, false
}

// parseAmount strips grouping characters and converts major units to
// minor units.
func parseAmount(s string) (int64, bool) {
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n * 100, true
}

// ExtractSizes finds a size descriptor such as "Размеры: S, M, L" or
// "sizes: 42/44/46". Without a label, a standalone line made of short
// alphanumeric tokens separated by commas, slashes or dashes qualifies.
// Internal whitespace runs collapse to a single space; the result is
// capped at 120 characters.
func ExtractSizes(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	t := normalize(text)

	if m := sizesLabeled.FindStringSubmatch(t); m != nil {
		sizes := wsRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		return truncate(sizes, maxSizesLen), true
	}

	for _, line := range strings.Split(t, "\n") {
		if sizesLine.MatchString(line) {
			return truncate(strings.TrimSpace(line), maxSizesLen), true
		}
	}
	return "", false
}

// ExtractTags returns all #hashtags in order of appearance, duplicates
// retained. The first two tags conventionally carry category and brand.
func ExtractTags(text string) []string {
	if text == "" {
		return nil
	}
	matches := hashTag.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// FirstLine returns the first line that carries actual text, truncated
// to 128 characters, or the "Item" placeholder when there is none. Lines
// made solely of hashtags are skipped: they carry category and brand,
// not a title.
func FirstLine(text string) string {
	var fallback string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if fallback == "" {
			fallback = line
		}
		if strings.TrimSpace(hashTag.ReplaceAllString(line, "")) == "" {
			continue
		}
		return truncate(line, maxTitleLen)
	}
	if fallback != "" {
		return truncate(fallback, maxTitleLen)
	}
	return "Item"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
