package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// extractorDispatch maps extractor identifiers, as referenced by field
// definitions, to their implementations. Static after startup; NewRegistry
// rejects any definition naming an identifier missing here.
func extractorDispatch() map[string]ExtractorFunc {
	return map[string]ExtractorFunc{
		"amount_from_kv":       extractAmountFromKV,
		"amount_from_text":     extractAmountFromText,
		"signatory_block":      extractSignatoryBlock,
		"date_scored":          extractDateScored,
		"date_near_label":      extractDateNearLabel,
		"date_before_timezone": extractDateBeforeTimezone,
		"date_before_label":    extractDateBeforeLabel,
		"purpose_lookup":       extractPurpose,
		"margin_lookup":        extractMargin,
		"interest_type_lookup": extractInterestType,
		"product_fee_lookup":   extractProductFee,
		"security_fee_sum":     extractSecurityFeeSum,
		"term_from_clause":     extractTermFromClause,
		"term_lookup":          extractTermMonths,
		"repay_freq_lookup":    extractRepaymentFrequency,
		"cca_marker_lookup":    extractCCAMarker,
		"product_type_lookup":  extractProductType,
		"total_rate_lookup":    extractTotalRate,
		"valuation_narrative":  extractValuationGeneral,
		"credit_decision":      extractSanctionerDecision,
		"solicitor_lookup":     extractSolicitorOrg,
	}
}

// kvGet returns the first non-empty value for any of the candidate labels,
// trying exact key matches first, then case-insensitive contains matches.
func kvGet(kv map[string]string, labels ...string) string {
	if len(kv) == 0 {
		return ""
	}
	for _, label := range labels {
		if v, ok := kv[label]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	keys := sortedKeys(kv)
	for _, label := range labels {
		needle := strings.ToLower(label)
		for _, k := range keys {
			if strings.Contains(strings.ToLower(k), needle) && strings.TrimSpace(kv[k]) != "" {
				return strings.TrimSpace(kv[k])
			}
		}
	}
	return ""
}

// kvMoneySum sums the money values of every KV entry whose label contains
// any of the given substrings (case-insensitive). Returns "" when no entry
// contributed a parseable amount.
func kvMoneySum(kv map[string]string, contains ...string) string {
	if len(kv) == 0 {
		return ""
	}
	total := decimal.Zero
	found := false
	for k, v := range kv {
		label := strings.ToLower(k)
		for _, sub := range contains {
			if strings.Contains(label, strings.ToLower(sub)) {
				if amt, ok := moneyDecimal(v); ok {
					total = total.Add(amt)
					found = true
				}
				break
			}
		}
	}
	if !found {
		return ""
	}
	return formatMoney(total)
}

var (
	limitAmountTextREs = []*regexp.Regexp{
		regexp.MustCompile(`(?im)Limit/Amount\s*[:\-]?\s*(` + moneyPattern + `)`),
		regexp.MustCompile(`(?im)Facility\s*Amount\s*[:\-]?\s*(` + moneyPattern + `)`),
		regexp.MustCompile(`(?im)\bAmount\b\s*[:\-]?\s*(` + moneyPattern + `)`),
	}

	printNameRE     = regexp.MustCompile(`(?i)Print\s*Name\s*:?\s*([A-Za-z’' \-]+)`)
	blockCapitalsRE = regexp.MustCompile(`(?i)Name\s*\(BLOCK\s*CAPITALS?\)\s*:?\s*([A-Za-z’' \-]+)`)

	dateAnchorREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date\s*Signed`),
		regexp.MustCompile(`(?i)Signed\s*on`),
		regexp.MustCompile(`(?i)Signed\s*by`),
		regexp.MustCompile(`(?i)Date\s*of\s*Signature`),
		regexp.MustCompile(`(?i)\bDate\b`),
	}
	dateLabelREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date\s*Signed\s*[:\-]?\s*(.{0,100})`),
		regexp.MustCompile(`(?i)Date\s*of\s*Signature\s*[:\-]?\s*(.{0,100})`),
		regexp.MustCompile(`(?i)Date\s*[:\-]?\s*(.{0,100})`),
	}
	beforeDateWordRE = regexp.MustCompile(`(?i)(.{0,60})\bDate\b`)

	facilityPurposeRE = regexp.MustCompile(`(?im)Facility\s*Purpose\s*[:\-]?\s*([^\n\r]+)`)
	marginTextRE      = regexp.MustCompile(`(?im)\bMargin\b\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?%?)`)
	interestTypeRE    = regexp.MustCompile(`(?im)Interest\s*Rate\s*(?:Basis|Type)\s*[:\-]?\s*([^\n\r]+)`)
	productFeeRE      = regexp.MustCompile(`(?im)\b(?:Product|Arrangement)\s*Fee\s*[:\-]?\s*(` + moneyPattern + `)`)
	securityFeeRE     = regexp.MustCompile(`(?im)Security\s*Fee\s*[:\-]?\s*(` + moneyPattern + `)`)
	dateFallingRE     = regexp.MustCompile(`(?im)\bdate\s*falling\s*(\d+)\s*year`)
	termMonthsTextRE  = regexp.MustCompile(`(?im)\bTerm\s*\(months\)\s*[:\-]?\s*(\d{2,3})`)
	loanTermTextRE    = regexp.MustCompile(`(?im)\bLoan\s*Term\s*[:\-]?\s*(\d{2,3})`)
	repayFreqTextRE   = regexp.MustCompile(`(?im)\bRepayment\s*Frequency\s*[:\-]?\s*([A-Za-z]+)`)
	ccaMarkerTextRE   = regexp.MustCompile(`(?im)\bCCA\s*Marker\s*[:\-]?\s*([A-Za-z]+)`)
	loanTypeTextRE    = regexp.MustCompile(`(?im)\bLoan\s*Type\s*[:\-]?\s*([^\n\r]+)`)
	totalRateTextRE   = regexp.MustCompile(`(?ims)\bTotal\s*Rate\b.*?([0-9]+(?:[.,][0-9]+)?%?)`)
	valuationRE       = regexp.MustCompile(`(?ims)Valuation\s*-\s*General\s*[:\-]?\s*(.+?)(?:\n\n|\r\r|$)`)
	creditDecisionRE  = regexp.MustCompile(`(?im)CREDIT\s*DECISION\s*([^\n\r]+)`)
	solicitorOrgRE    = regexp.MustCompile(`(?im)Solicitor\s*Details\s*Organisation\s*Name\s*([^\n\r]+)`)
)

// extractAmountFromKV resolves the facility amount from table hints under
// its common row labels.
func extractAmountFromKV(_ string, kv map[string]string) string {
	v := kvGet(kv, "Limit/Amount", "Limit / Amount", "Facility Amount", "Amount")
	return normalizeMoney(v)
}

// extractAmountFromText scans the body for labeled amount lines.
func extractAmountFromText(text string, _ map[string]string) string {
	for _, re := range limitAmountTextREs {
		if m := re.FindStringSubmatch(text); m != nil {
			return normalizeMoney(m[1])
		}
	}
	return ""
}

// extractSignatoryBlock pulls the signatory name out of a signature block,
// anchored on "Print Name" or a BLOCK CAPITALS name line.
func extractSignatoryBlock(text string, _ map[string]string) string {
	if m := printNameRE.FindStringSubmatch(text); m != nil {
		return normalizeName(m[1])
	}
	if m := blockCapitalsRE.FindStringSubmatch(text); m != nil {
		return normalizeName(m[1])
	}
	return ""
}

// extractDateScored searches anchor phrases in priority order and inspects
// a bounded window after (then before) each match for date evidence.
func extractDateScored(text string, _ map[string]string) string {
	for _, anchor := range dateAnchorREs {
		for _, loc := range anchor.FindAllStringIndex(text, -1) {
			start := loc[0]
			afterEnd := start + 180
			if afterEnd > len(text) {
				afterEnd = len(text)
			}
			beforeStart := start - 180
			if beforeStart < 0 {
				beforeStart = 0
			}
			if cand := pickDateInWindow(text[start:afterEnd]); cand != "" {
				return cand
			}
			if cand := pickDateInWindow(text[beforeStart:start]); cand != "" {
				return cand
			}
		}
	}
	return ""
}

// extractDateNearLabel looks for a date in the window following a "Date"
// label line, then in windows preceding the bare word "Date".
func extractDateNearLabel(text string, _ map[string]string) string {
	for _, re := range dateLabelREs {
		if m := re.FindStringSubmatch(text); m != nil {
			if cand := pickDateInWindow(m[1]); cand != "" {
				return cand
			}
		}
	}
	return extractDateBeforeLabel(text, nil)
}

// extractDateBeforeTimezone scans the windows preceding timezone tokens,
// catching "05 Mar 2024 10:12 GMT" style stamp lines.
func extractDateBeforeTimezone(text string, _ map[string]string) string {
	for _, loc := range timezoneRE.FindAllStringIndex(text, -1) {
		start := loc[0] - 80
		if start < 0 {
			start = 0
		}
		if cand := pickDateInWindow(text[start:loc[0]]); cand != "" {
			return cand
		}
	}
	return ""
}

// extractDateBeforeLabel scans windows preceding the literal word "Date",
// for layouts that place the value above or left of the label.
func extractDateBeforeLabel(text string, _ map[string]string) string {
	for _, m := range beforeDateWordRE.FindAllStringSubmatch(text, -1) {
		if cand := pickDateInWindow(m[1]); cand != "" {
			return cand
		}
	}
	return ""
}

func extractPurpose(text string, kv map[string]string) string {
	if v := kvGet(kv, "Purpose", "Facility Purpose"); v != "" {
		return normalizePurpose(v)
	}
	if m := facilityPurposeRE.FindStringSubmatch(text); m != nil {
		return normalizePurpose(m[1])
	}
	return ""
}

func extractMargin(text string, kv map[string]string) string {
	if v := kvGet(kv, "Margin"); v != "" {
		return normalizeRate(v)
	}
	if m := marginTextRE.FindStringSubmatch(text); m != nil {
		return normalizeRate(m[1])
	}
	return ""
}

func extractInterestType(text string, kv map[string]string) string {
	if v := kvGet(kv, "Interest Rate Basis", "Interest Rate Type"); v != "" {
		return firstSentence(v)
	}
	if m := interestTypeRE.FindStringSubmatch(text); m != nil {
		return firstSentence(m[1])
	}
	return ""
}

// extractProductFee treats Arrangement/Product/Processing Fee labels
// interchangeably.
func extractProductFee(text string, kv map[string]string) string {
	for _, label := range []string{"Product Fee", "Arrangement Fee", "Arrangement / Product Fee", "Processing Fee", "PF"} {
		if v := kvGet(kv, label); v != "" {
			return normalizeMoney(v)
		}
	}
	if m := productFeeRE.FindStringSubmatch(text); m != nil {
		return normalizeMoney(m[1])
	}
	return ""
}

// extractSecurityFeeSum totals every security-fee row in the hints; when
// the tables carried none, it totals fee-labeled amounts found in the body.
func extractSecurityFeeSum(text string, kv map[string]string) string {
	if total := kvMoneySum(kv, "Security Fee"); total != "" {
		return total
	}
	matches := securityFeeRE.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return ""
	}
	total := decimal.Zero
	found := false
	for _, m := range matches {
		if amt, ok := moneyDecimal(m[1]); ok {
			total = total.Add(amt)
			found = true
		}
	}
	if !found || total.IsZero() {
		return ""
	}
	return formatMoney(total)
}

// extractTermFromClause converts "the date falling N years from ..." into
// months.
func extractTermFromClause(text string, _ map[string]string) string {
	m := dateFallingRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return strconv.Itoa(years * 12)
}

func extractTermMonths(text string, kv map[string]string) string {
	if v := kvGet(kv, "Term (months)", "Loan Term", "Term"); v != "" {
		return normalizeDuration(v)
	}
	if m := termMonthsTextRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := loanTermTextRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func extractRepaymentFrequency(text string, kv map[string]string) string {
	if v := kvGet(kv, "Repayment Frequency", "Repayments Frequency"); v != "" {
		return normalizeOneLine(v)
	}
	if m := repayFreqTextRE.FindStringSubmatch(text); m != nil {
		return normalizeOneLine(m[1])
	}
	return ""
}

func extractCCAMarker(text string, kv map[string]string) string {
	if v := kvGet(kv, "CCA Marker", "CCA"); v != "" {
		return normalizeOneLine(v)
	}
	if m := ccaMarkerTextRE.FindStringSubmatch(text); m != nil {
		return normalizeOneLine(m[1])
	}
	return ""
}

func extractProductType(text string, kv map[string]string) string {
	if v := kvGet(kv, "Product Type", "Loan Type"); v != "" {
		return normalizeOneLine(v)
	}
	if m := loanTypeTextRE.FindStringSubmatch(text); m != nil {
		return normalizeOneLine(m[1])
	}
	return ""
}

func extractTotalRate(text string, kv map[string]string) string {
	if v := kvGet(kv, "Total Rate"); v != "" {
		return normalizeRate(v)
	}
	if m := totalRateTextRE.FindStringSubmatch(text); m != nil {
		return normalizeRate(m[1])
	}
	return ""
}

// extractValuationGeneral captures the multi-line narrative under the
// "Valuation - General" heading, up to the first blank line.
func extractValuationGeneral(text string, _ map[string]string) string {
	if m := valuationRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractSanctionerDecision(text string, kv map[string]string) string {
	if v := kvGet(kv, "CREDIT DECISION", "Sanctioner Decision"); v != "" {
		return normalizeOneLine(v)
	}
	if m := creditDecisionRE.FindStringSubmatch(text); m != nil {
		return normalizeOneLine(m[1])
	}
	return ""
}

func extractSolicitorOrg(text string, kv map[string]string) string {
	if v := kvGet(kv, "Organisation Name", "Solicitor", "Solicitor Details Organisation Name"); v != "" {
		return normalizeOneLine(v)
	}
	if m := solicitorOrgRE.FindStringSubmatch(text); m != nil {
		return normalizeOneLine(m[1])
	}
	return ""
}
