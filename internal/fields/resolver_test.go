package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	registry, err := NewRegistry()
	require.NoError(t, err)
	return NewResolver(registry, opts...)
}

func TestResolveEmptyDocument(t *testing.T) {
	r := newTestResolver(t)

	record := r.Resolve(Document{})

	assert.Len(t, record, 28)
	for _, key := range DisplayOrder() {
		value, ok := record[key]
		assert.True(t, ok, "missing key %q", key)
		assert.Equal(t, "", value, "key %q", key)
	}
}

func TestResolveFacilityLetter(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		Text: "Limit/Amount: £150,000.00\n" +
			"Name of beneficiary: Acme Trading Ltd\n" +
			"Sort Code: 12-34-56\n" +
			"Account Number: 12345678\n" +
			"Print Name: Jon Smith\n" +
			"Date Signed: 05/03/2024\n",
	}

	record := r.Resolve(doc)

	assert.Equal(t, "150,000.00", record["loan_amount"])
	assert.Equal(t, "Acme Trading Ltd", record["beneficiary"])
	assert.Equal(t, "12-34-56", record["sort_code"])
	assert.Equal(t, "12345678", record["account_number"])
	assert.Equal(t, "Jon Smith", record["signatory_name"])
	assert.Equal(t, "05 Mar 2024", record["date_signed"])
}

func TestResolvePatternBeatsKV(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		Text:    "Sort Code: 12-34-56\n",
		KVHints: map[string]string{"Sort Code": "99-99-99"},
	}

	record := r.Resolve(doc)
	assert.Equal(t, "12-34-56", record["sort_code"])
}

func TestResolveKVFallback(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		KVHints: map[string]string{"Facility Amount": "£75,000"},
	}

	record := r.Resolve(doc)
	assert.Equal(t, "75,000.00", record["loan_amount"])
}

func TestResolveKVExactLabelBeatsNearMiss(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		KVHints: map[string]string{
			"Margin":        "2.5%",
			"Marginal Note": "see appendix",
		},
	}

	record := r.Resolve(doc)
	assert.Equal(t, "2.5%", record["margin"])
}

func TestResolveSentinelCollapse(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		Text:    "Name of beneficiary: N/A\n",
		KVHints: map[string]string{"Margin": "n/a"},
	}

	record := r.Resolve(doc)
	assert.Equal(t, "", record["beneficiary"])
	assert.Equal(t, "", record["margin"])
}

func TestResolveTermClause(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		Text: "The facility is repayable on the date falling 5 years from the date of this agreement.",
	}
	record := r.Resolve(doc)
	assert.Equal(t, "60", record["loan_term_months"])

	doc = Document{
		KVHints: map[string]string{"Term (months)": "60"},
	}
	record = r.Resolve(doc)
	assert.Equal(t, "60", record["loan_term_months"])
}

func TestResolveExtractorFallback(t *testing.T) {
	r := newTestResolver(t)

	// No pattern and no KV alias matches; the security fee sum comes from
	// the extractor scanning labeled lines in the body.
	doc := Document{
		Text: "Security Fee: £50.00\nSecurity Fee: £25.50\n",
	}

	record := r.Resolve(doc)
	assert.Equal(t, "75.50", record["security_fee_total"])
}

func TestResolveMinRatioOption(t *testing.T) {
	kv := map[string]string{"Limit/Amont": "£75,000"} // typo in the source table
	doc := Document{KVHints: kv}

	// Default threshold accepts the near-miss label.
	record := newTestResolver(t).Resolve(doc)
	assert.Equal(t, "75,000.00", record["loan_amount"])

	// A stricter threshold rejects it, and nothing else can resolve.
	record = newTestResolver(t, WithMinRatio(0.95)).Resolve(doc)
	assert.Equal(t, "", record["loan_amount"])
}

func TestResolveIndependentOfHintOrder(t *testing.T) {
	r := newTestResolver(t)

	doc := Document{
		KVHints: map[string]string{
			"Purpose":              "Working capital",
			"Repayment Frequency":  "Monthly",
			"CCA Marker":           "Unregulated",
			"Product Type":         "Term Loan",
			"Interest Rate Type":   "Variable",
			"Total Rate":           "6.25%",
			"Sanctioner Decision":  "Approved",
			"Organisation Name":    "Smith & Partners LLP",
			"Existing Security":    "First legal charge",
			"New securityated xyz": "ignored",
		},
	}

	first := r.Resolve(doc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve(doc))
	}

	assert.Equal(t, "Working capital", first["purpose"])
	assert.Equal(t, "Monthly", first["repayment_frequency"])
	assert.Equal(t, "Unregulated", first["cca_marker"])
	assert.Equal(t, "Term Loan", first["product_type"])
	assert.Equal(t, "Variable", first["interest_rate_type"])
	assert.Equal(t, "6.25%", first["total_rate"])
	assert.Equal(t, "Approved", first["sanctioner_decision"])
	assert.Equal(t, "Smith & Partners LLP", first["solicitor_org"])
	assert.Equal(t, "First legal charge", first["existing_security"])
}
