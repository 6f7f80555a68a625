package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// moneyPattern matches a currency-like substring: optional currency marker,
// digit groups separated by space/NBSP/thin-space/comma/period, optional
// 2-decimal fraction. The first alternative requires at least one grouping
// separator so that plain runs of digits fall through to the second
// alternative and are captured whole.
const moneyPattern = `(?:(?:₹|Rs\.?|£|\$|€)\s*)?\d{1,3}(?:[ \x{00A0}\x{2009},.]\d{3})+(?:[.,]\d{2})?|(?:(?:₹|Rs\.?|£|\$|€)\s*)?\d+(?:[.,]\d{2})?`

var (
	moneyRE    = regexp.MustCompile(`(?i)` + moneyPattern)
	currencyRE = regexp.MustCompile(`(?i)[₹£$€]|Rs\.?`)

	wsRE         = regexp.MustCompile(`\s+`)
	trailingRE   = regexp.MustCompile(`[:.\-–—\s]+$`)
	nonNameRE    = regexp.MustCompile(`[^A-Za-z \-’']`)
	multiSpaceRE = regexp.MustCompile(` {2,}`)
	nonIdentRE   = regexp.MustCompile(`[^\d\-]`)
	multiDashRE  = regexp.MustCompile(`-{2,}`)
	nonDigitRE   = regexp.MustCompile(`\D`)
	sentenceRE   = regexp.MustCompile(`(?s)(.+?)(?:\.|\n|$)`)
	yearsRE      = regexp.MustCompile(`(?i)(\d+)\s*year`)
	commaCentsRE = regexp.MustCompile(`,\d{2}$`)

	timezoneRE    = regexp.MustCompile(`(?i)\b(?:BST|GMT|UTC|PDT|PST|EDT|EST|CET|CEST|MDT|MST|IST)\b`)
	clockRE       = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	numericDateRE = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	wordDateRE    = regexp.MustCompile(`\b\d{1,2}\s+[A-Za-z]{3,9}\s+\d{2,4}\b`)

	clockTimezoneRE = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b.*?\b(?:BST|GMT|UTC|PDT|PST|EDT|EST|CET|CEST|MDT|MST|IST)\b`)
)

// sentinelTokens are strings treated as semantically equivalent to "no
// value", compared case-insensitively after trimming.
var sentinelTokens = map[string]bool{
	"n/a":  true,
	"na":   true,
	"none": true,
	"null": true,
	"-":    true,
	"—":    true,
}

func isSentinel(s string) bool {
	return sentinelTokens[strings.ToLower(strings.TrimSpace(s))]
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

// normalizeOneLine collapses all whitespace runs to single spaces and trims.
func normalizeOneLine(s string) string {
	return collapseWhitespace(s)
}

// normalizeBorrower is normalizeOneLine plus stripping trailing dotted
// leaders, colons and dashes left behind by form layouts.
func normalizeBorrower(s string) string {
	return trailingRE.ReplaceAllString(collapseWhitespace(s), "")
}

// normalizeName keeps letters, spaces, apostrophes and hyphens, then
// title-cases. An entirely upper-case result is preserved as-is on the
// assumption it is an intentional all-caps legal name.
func normalizeName(s string) string {
	s = collapseWhitespace(s)
	s = nonNameRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(multiSpaceRE.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}
	if s == strings.ToUpper(s) {
		return s
	}
	return titleWords(s)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// normalizeIdentifier keeps digits and hyphens only (sort codes, account
// numbers) and collapses repeated hyphens.
func normalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = nonIdentRE.ReplaceAllString(s, "")
	return multiDashRE.ReplaceAllString(s, "-")
}

// normalizeDigits strips everything but digits.
func normalizeDigits(s string) string {
	return nonDigitRE.ReplaceAllString(s, "")
}

// normalizeCompact strips all whitespace, for IDs that may be split across
// cells or lines.
func normalizeCompact(s string) string {
	return wsRE.ReplaceAllString(s, "")
}

// normalizePurpose is a one-line narrative value without a trailing period.
func normalizePurpose(s string) string {
	return strings.TrimRight(collapseWhitespace(s), ".")
}

// normalizeRate trims trailing punctuation from percentage-like values.
func normalizeRate(s string) string {
	return strings.TrimRight(collapseWhitespace(s), ",.")
}

// normalizeNarrative keeps multi-line narrative text as extracted, trimmed.
func normalizeNarrative(s string) string {
	return strings.TrimSpace(s)
}

// firstSentence returns the text up to the first sentence terminator,
// for free-text fields where only the lead clause is wanted.
func firstSentence(s string) string {
	s = collapseWhitespace(s)
	if m := sentenceRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// normalizeDuration converts "N years" to months; anything else is assumed
// to already be months and is stripped to digits.
func normalizeDuration(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(s), "year") {
		return yearsToMonths(s)
	}
	return normalizeDigits(s)
}

func yearsToMonths(s string) string {
	m := yearsRE.FindStringSubmatch(s)
	if m == nil {
		return normalizeDigits(s)
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return strconv.Itoa(years * 12)
}

// moneyNumeric reduces a raw string to a plain decimal number string
// ("1234.50"), or "" when no currency-like substring is present. Comma vs.
// period as decimal separator is disambiguated by position: when both
// appear, the one occurring last is the decimal point; a lone comma is a
// decimal point only when followed by exactly two trailing digits.
func moneyNumeric(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	num := moneyRE.FindString(s)
	if num == "" {
		return ""
	}
	num = currencyRE.ReplaceAllString(num, "")
	num = strings.NewReplacer(" ", "", "\u00a0", "", "\u2009", "").Replace(num)

	hasComma := strings.Contains(num, ",")
	hasPeriod := strings.Contains(num, ".")
	switch {
	case hasComma && hasPeriod:
		if strings.LastIndex(num, ",") > strings.LastIndex(num, ".") {
			num = strings.ReplaceAll(num, ".", "")
			num = strings.ReplaceAll(num, ",", ".")
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case hasComma:
		if commaCentsRE.MatchString(num) {
			num = strings.ReplaceAll(num, ",", ".")
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case strings.Count(num, ".") > 1:
		parts := strings.Split(num, ".")
		num = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}
	return num
}

func moneyDecimal(s string) (decimal.Decimal, bool) {
	num := moneyNumeric(s)
	if num == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// normalizeMoney canonicalizes an amount to fixed-point with thousands
// separators and exactly two decimal places, e.g. "1,234.50". Idempotent.
func normalizeMoney(s string) string {
	d, ok := moneyDecimal(s)
	if !ok {
		return ""
	}
	return formatMoney(d)
}

func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// normalizeDate parses a free-form substring day-first and renders it as
// "DD Mon YYYY". When the whole string does not parse, an explicit
// DD/MM/YYYY-style or "DD Month YYYY"-style substring is tried instead.
// Returns "" on total failure.
func normalizeDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "|", " ")
	if t, err := dateparse.ParseAny(strings.TrimSpace(s), dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format("02 Jan 2006")
	}
	sub := numericDateRE.FindString(s)
	if sub == "" {
		sub = wordDateRE.FindString(s)
	}
	if sub == "" {
		return ""
	}
	if t, err := dateparse.ParseAny(sub, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format("02 Jan 2006")
	}
	return ""
}

// pickDateInWindow looks for the strongest date-shaped evidence inside a
// bounded window of text: a time followed by a timezone, then a bare time,
// then an explicit date pattern, then the window as a whole.
func pickDateInWindow(win string) string {
	if win == "" {
		return ""
	}
	if m := clockTimezoneRE.FindString(win); m != "" {
		return normalizeDate(m)
	}
	if loc := clockRE.FindStringIndex(win); loc != nil {
		end := loc[0] + 20
		if end > len(win) {
			end = len(win)
		}
		return normalizeDate(win[loc[0]:end])
	}
	if m := numericDateRE.FindString(win); m != "" {
		return normalizeDate(m)
	}
	if m := wordDateRE.FindString(win); m != "" {
		return normalizeDate(m)
	}
	return normalizeDate(win)
}
