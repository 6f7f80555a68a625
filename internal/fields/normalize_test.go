package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uk format with symbol", input: "£1,234.50", want: "1,234.50"},
		{name: "european format", input: "1.234,50", want: "1,234.50"},
		{name: "bare integer", input: "1234", want: "1,234.00"},
		{name: "empty", input: "", want: ""},
		{name: "dollar symbol", input: "$2,500", want: "2,500.00"},
		{name: "euro symbol", input: "€99.99", want: "99.99"},
		{name: "rupee prefix", input: "Rs. 1,000.00", want: "1,000.00"},
		{name: "already canonical", input: "1,234.50", want: "1,234.50"},
		{name: "embedded in sentence", input: "a fee of £450.00 is payable", want: "450.00"},
		{name: "lone comma as decimal", input: "1234,50", want: "1,234.50"},
		{name: "grouping comma without cents", input: "150,000", want: "150,000.00"},
		{name: "millions", input: "£2,500,000.00", want: "2,500,000.00"},
		{name: "no digits", input: "not a number", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMoney(tt.input))
		})
	}
}

func TestNormalizeMoneyIdempotent(t *testing.T) {
	inputs := []string{
		"£1,234.50", "1.234,50", "1234", "150,000", "€99.99", "£2,500,000.00", "",
	}
	for _, in := range inputs {
		once := normalizeMoney(in)
		assert.Equal(t, once, normalizeMoney(once), "input %q", in)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "numeric day first", input: "05/03/2024", want: "05 Mar 2024"},
		{name: "word month", input: "5 March 2024", want: "05 Mar 2024"},
		{name: "already canonical", input: "05 Mar 2024", want: "05 Mar 2024"},
		{name: "dashes", input: "05-03-2024", want: "05 Mar 2024"},
		{name: "embedded in junk", input: "signed at London on 05/03/2024 by the borrower", want: "05 Mar 2024"},
		{name: "garbage", input: "not a date at all", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDate(tt.input))
		})
	}
}

func TestIsSentinel(t *testing.T) {
	sentinels := []string{"N/A", "n/a", "NA", "None", "null", "-", "—", "  N/A  "}
	for _, s := range sentinels {
		assert.True(t, isSentinel(s), "expected %q to be a sentinel", s)
	}

	values := []string{"0", "no", "n/a extra", "Monthly", ""}
	for _, s := range values {
		assert.False(t, isSentinel(s), "expected %q not to be a sentinel", s)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "jon smith", want: "Jon Smith"},
		{input: "JON SMITH", want: "JON SMITH"},
		{input: "  jon   smith  ", want: "Jon Smith"},
		{input: "o'brien-jones", want: "O'brien-jones"},
		{input: "Jon Smith 42", want: "Jon Smith"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeName(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "12-34-56", normalizeIdentifier("12-34-56"))
	assert.Equal(t, "12-34-56", normalizeIdentifier(" 12 - 34 - 56 "))
	assert.Equal(t, "12345678", normalizeIdentifier("a/c 12345678"))
	assert.Equal(t, "12-34", normalizeIdentifier("12--34"))
	assert.Equal(t, "", normalizeIdentifier(""))
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "5 years", want: "60"},
		{input: "1 year", want: "12"},
		{input: "60", want: "60"},
		{input: "60 months", want: "60"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDuration(tt.input), "input %q", tt.input)
	}
}

func TestFirstSentence(t *testing.T) {
	assert.Equal(t, "Fixed rate", firstSentence("Fixed rate. Subject to review."))
	assert.Equal(t, "Variable", firstSentence("Variable\nsecond line"))
	assert.Equal(t, "No terminator", firstSentence("No terminator"))
	assert.Equal(t, "", firstSentence(""))
}

func TestNormalizePurpose(t *testing.T) {
	assert.Equal(t, "Purchase of premises", normalizePurpose("Purchase of premises."))
	assert.Equal(t, "Working capital", normalizePurpose("  Working   capital  "))
}

func TestNormalizeRate(t *testing.T) {
	assert.Equal(t, "2.5%", normalizeRate("2.5%,"))
	assert.Equal(t, "3.75", normalizeRate("3.75."))
}

func TestNormalizeBorrower(t *testing.T) {
	assert.Equal(t, "Acme Trading Ltd", normalizeBorrower("Acme Trading Ltd:"))
	assert.Equal(t, "Acme Trading Ltd", normalizeBorrower("Acme Trading Ltd ---"))
}

func TestPickDateInWindow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "explicit numeric date", input: "some text 05/03/2024 trailing", want: "05 Mar 2024"},
		{name: "word date", input: "on 5 March 2024 at the offices", want: "05 Mar 2024"},
		{name: "nothing", input: "no dates here", want: ""},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickDateInWindow(tt.input))
		})
	}
}
