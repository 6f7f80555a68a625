package fields

// defaultDefinitions returns the loan-document field table. Order is
// resolution and display order. Patterns are written against the raw page
// text the PDF layer produces; aliases are written against table row labels.
func defaultDefinitions() []Definition {
	return []Definition{
		// Facility letter / payment instruction fields.
		{
			Key:   "loan_amount",
			Label: "Loan Amount",
			Aliases: []string{
				"The borrower wishes to send the amount stated in this field",
				"Facility Amount",
				"Proposed Exposure, stated in this field",
				"Limit/Amount",
				"Amount",
				"(THE BORROWER) -",
			},
			Patterns: []string{
				`^\s*The\s*borrower\s*wishes\s*to\s*send\s*the\s*amount\s*stated\s*in\s*this\s*field\s*[:\-]?\s*(` + moneyPattern + `)`,
				`^\s*stated\s*in\s*this\s*field\s*[:\-]?\s*(` + moneyPattern + `)`,
				`^\s*THE\s*BORROWER\s*.*?\s*[:\-]?\s*(` + moneyPattern + `)`,
				`^\s*:?\s*Facility\s*Amount\s*[:\-]?\s*(` + moneyPattern + `)`,
				`^\s*Limits?\s*/?\s*[\n\r]+\s*Amount\s*[:\-]?\s*(` + moneyPattern + `)`,
				`\bLimit/Amount\b.*?(` + moneyPattern + `)`,
			},
			Normalize:  normalizeMoney,
			Extractors: []string{"amount_from_kv", "amount_from_text"},
		},
		{
			Key:     "beneficiary",
			Label:   "Name of beneficiary",
			Aliases: []string{"Name of beneficiary"},
			Patterns: []string{
				`^\s*Name\s*of\s*beneficiary\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize: normalizeOneLine,
		},
		{
			Key:     "sort_code",
			Label:   "Sort Code",
			Aliases: []string{"Sort Code"},
			Patterns: []string{
				`^\s*Sort\s*Code\s*[:\-]?\s*([0-9 \-]+)`,
			},
			Normalize: normalizeIdentifier,
		},
		{
			Key:     "account_number",
			Label:   "Account Number",
			Aliases: []string{"Account Number"},
			Patterns: []string{
				`^\s*Account\s*Number\s*[:\-]?\s*([0-9 \-]+)`,
			},
			Normalize: normalizeIdentifier,
		},
		{
			Key:     "borrower_reference",
			Label:   "Borrower",
			Aliases: []string{"Payment Reference (if applicable)", "Borrower(s)", "Organisation Name"},
			Patterns: []string{
				`^\s*Payment\s*Reference\s*(?:\(if\s*applicable\))?\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Borrower\(s\)\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Organisation\s*Name\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize: normalizeBorrower,
		},
		{
			Key:     "signatory_name",
			Label:   "Signatory Name",
			Aliases: []string{"Print Name", "Name (BLOCK CAPITALS)", "Name (BLOCK CAPITAL)"},
			Patterns: []string{
				`^\s*Print\s*Name\s*[:\-]?\s*([A-Za-z’' \-]+)`,
				`^\s*Name\s*\(BLOCK\s*CAPITALS?\)\s*[:\-]?\s*([A-Za-z’' \-]+)`,
			},
			Normalize:  normalizeName,
			Extractors: []string{"signatory_block"},
		},
		{
			Key:     "date_signed",
			Label:   "Date Signed",
			Aliases: []string{"Date"},
			Patterns: []string{
				`\b\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}\b`,
				`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`,
			},
			Normalize:       normalizeDate,
			Extractors:      []string{"date_scored", "date_near_label", "date_before_timezone", "date_before_label"},
			PreferExtractor: true,
		},

		// Sanction letter fields.
		{
			Key:     "purpose",
			Label:   "Purpose",
			Aliases: []string{"Purpose"},
			Patterns: []string{
				`^\s*Facility\s*Purpose\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Purpose\s*1\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Purpose\s*2\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize:  normalizePurpose,
			Extractors: []string{"purpose_lookup"},
		},
		{
			Key:     "expiry_date",
			Label:   "Expiry Date",
			Aliases: []string{"Final Date for Drawing", "sanction expiry date", "Expiry Date"},
			Patterns: []string{
				`^\s*Final\s*Dates?\s*for\s*Drawings?\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*sanction\s*expiry\s*date\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Expiry\s*Dates?\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize: normalizeDate,
		},
		{
			Key:     "margin",
			Label:   "Margin",
			Aliases: []string{"Margin"},
			Patterns: []string{
				`(?:Not\s+)?MCOB\s+regulated\s+\w+.*?\bMargin\b\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?%?)`,
				`^\s*Margin\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?%?)`,
			},
			Normalize:  normalizeRate,
			Extractors: []string{"margin_lookup"},
		},
		{
			Key:     "interest_rate_basis",
			Label:   "Interest Rate Basis",
			Aliases: []string{"Interest Rate Basis", "Interest Rate Type"},
			Patterns: []string{
				`^\s*Interest\s*Rate\s*Basis\s*[:\-]?\s*([^\n\r]+)`,
				`^\s*Interest\s*Rate\s*Type\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize:  firstSentence,
			Extractors: []string{"interest_type_lookup"},
		},
		{
			Key:     "repayment_instalments",
			Label:   "Repayment Instalments",
			Aliases: []string{"Repayment Instalments"},
			Patterns: []string{
				`^\s*Repayments?\s*Instalments?\s*.*?(\d+)\s*instal`,
			},
			Normalize: normalizeDigits,
		},
		{
			// Unified field: also holds Product Fee.
			Key:     "arrangement_fee",
			Label:   "Arrangement / Product Fee",
			Aliases: []string{"Arrangement / Product Fee", "Arrangement Fee", "Product Fee", "Arrangement/Product Fee", "Processing Fee", "PF"},
			Patterns: []string{
				`^\s*Arrangement\s*Fee\s*[:\-]?\s*(` + moneyPattern + `)`,
				`^\s*Product\s*Fee\s*[:\-]?\s*(` + moneyPattern + `)`,
			},
			Normalize:  normalizeMoney,
			Extractors: []string{"product_fee_lookup"},
		},
		{
			Key:        "security_fee_total",
			Label:      "Security Fee (total)",
			Aliases:    []string{"Security Fee", "Security Fees"},
			Normalize:  normalizeMoney,
			Extractors: []string{"security_fee_sum"},
		},
		{
			Key:       "existing_security",
			Label:     "Existing Security",
			Aliases:   []string{"Existing Security"},
			Normalize: normalizeOneLine,
		},
		{
			Key:     "new_security_required",
			Label:   "New security required",
			Aliases: []string{"New security required"},
			Patterns: []string{
				`^\s*New\s*security\s*required\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize: normalizeOneLine,
		},
		{
			Key:     "loan_term_months",
			Label:   "Loan Term (months)",
			Aliases: []string{"The term of the loan is", "Term (months)", "Loan Term"},
			Patterns: []string{
				`\bthe\s*date\s*falling\s*(\d+\s*years?)\b`,
				`^\s*Term\s*[:\-]?\s*(\d+)\s*months?\b`,
				`^\s*Term\s*\(months\)\s*[:\-]?\s*(\d+)\b`,
				`^\s*Loan\s*Term\s*[:\-]?\s*(\d+)\b`,
			},
			Normalize:  normalizeDuration,
			Extractors: []string{"term_from_clause", "term_lookup"},
		},

		// Credit application fields.
		{
			Key:     "customer_id",
			Label:   "Customer ID",
			Aliases: []string{"Customer ID"},
			Patterns: []string{
				`^\s*Customer\s*ID\s*[:\-]?\s*([0-9]{8,})`,
				`Customer\s*ID\s*[:\-]?\s*([0-9]{8,})`,
			},
			Normalize: normalizeDigits,
		},
		{
			Key:     "credit_application_id",
			Label:   "Credit Application ID",
			Aliases: []string{"Credit Application ID"},
			Patterns: []string{
				`(?:Credit\s*)?Application\s*ID\s*[:\-]?\s*([A-Za-z0-9\-]{8,20})\b`,
				`^\s*Credit\s*Application\s*#?\s*[:\-]?\s*([0-9]{10,20})`,
				`^\s*Credit\s*Application\s*ID\s*[:\-]?\s*([0-9]{11,})`,
			},
			Normalize: normalizeCompact,
		},
		{
			Key:     "amortisation_term_months",
			Label:   "Amortisation Term (months)",
			Aliases: []string{"Amo Term (months)", "Amortisation Term", "Amortisation Profile"},
			Patterns: []string{
				`^\s*Amo\s*Term\s*\(months\)\s*[:\-]?\s*(\d{2,3})\b`,
				`^\s*Amortisation\s*Term\s*\(months\)\s*[:\-]?\s*(\d{2,3})\b`,
			},
			Normalize: normalizeDigits,
		},
		{
			Key:        "repayment_frequency",
			Label:      "Repayment Frequency",
			Aliases:    []string{"Repayment Frequency"},
			Normalize:  normalizeOneLine,
			Extractors: []string{"repay_freq_lookup"},
		},
		{
			Key:        "cca_marker",
			Label:      "CCA Marker",
			Aliases:    []string{"CCA Marker"},
			Normalize:  normalizeOneLine,
			Extractors: []string{"cca_marker_lookup"},
		},
		{
			Key:     "product_type",
			Label:   "Product Type",
			Aliases: []string{"Product Type", "Loan Type"},
			Patterns: []string{
				`^\s*Loan\s*Type\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize:  normalizeOneLine,
			Extractors: []string{"product_type_lookup"},
		},
		{
			Key:     "interest_rate_type",
			Label:   "Interest Rate Type",
			Aliases: []string{"Interest Rate Type"},
			Patterns: []string{
				`^\s*Interest\s*Rate\s*Type\s*[:\-]?\s*([^\n\r]+)`,
			},
			Normalize:  firstSentence,
			Extractors: []string{"interest_type_lookup"},
		},
		{
			Key:     "total_rate",
			Label:   "Total Rate",
			Aliases: []string{"Total Rate"},
			Patterns: []string{
				`\bTotal\s*Rate\b.*?([0-9]+(?:[.,][0-9]+)?%?)`,
			},
			Normalize:  normalizeRate,
			Extractors: []string{"total_rate_lookup"},
		},
		{
			Key:        "valuation_general",
			Label:      "Valuation - General",
			Aliases:    []string{"Valuation - General"},
			Normalize:  normalizeNarrative,
			Extractors: []string{"valuation_narrative"},
		},
		{
			Key:     "sanctioner_decision",
			Label:   "Sanctioner Decision",
			Aliases: []string{"Sanctioner Decision", "CREDIT DECISION"},
			Patterns: []string{
				`CREDIT\s+DECISION\s*([^\n\r]+)`,
			},
			Normalize:  normalizeOneLine,
			Extractors: []string{"credit_decision"},
		},
		{
			Key:     "solicitor_org",
			Label:   "Solicitor",
			Aliases: []string{"Organisation Name"},
			Patterns: []string{
				`Solicitor\s*Details\s*Organisation\s*Name\s*([^\n\r]+)`,
			},
			Normalize:  normalizeOneLine,
			Extractors: []string{"solicitor_lookup"},
		},
	}
}

// DisplayOrder lists the field keys in the fixed order used for tabular
// export, excluding the leading File column.
func DisplayOrder() []string {
	return []string{
		"loan_amount",
		"beneficiary",
		"sort_code",
		"account_number",
		"borrower_reference",
		"signatory_name",
		"date_signed",

		"purpose",
		"expiry_date",
		"margin",
		"interest_rate_basis",
		"repayment_instalments",
		"arrangement_fee",
		"security_fee_total",
		"existing_security",
		"new_security_required",
		"loan_term_months",

		"customer_id",
		"credit_application_id",
		"amortisation_term_months",
		"repayment_frequency",
		"cca_marker",
		"product_type",
		"interest_rate_type",
		"total_rate",
		"valuation_general",
		"sanctioner_decision",
		"solicitor_org",
	}
}

// ExportHeaders maps field keys to the spreadsheet column headers.
func ExportHeaders() map[string]string {
	return map[string]string{
		"loan_amount":        "Loan Amount",
		"beneficiary":        "Name of beneficiary",
		"sort_code":          "Sort Code",
		"account_number":     "Account Number",
		"borrower_reference": "Borrower",
		"signatory_name":     "Signatory Name",
		"date_signed":        "Date Signed",

		"purpose":               "Purpose",
		"expiry_date":           "Expiry Date",
		"margin":                "Margin",
		"interest_rate_basis":   "Interest Rate Basis",
		"repayment_instalments": "Repayment Instalments",
		"arrangement_fee":       "Arrangement / Product Fee",
		"security_fee_total":    "Security Fee (total)",
		"existing_security":     "Existing Security",
		"new_security_required": "New security required",
		"loan_term_months":      "Loan Term (months)",

		"customer_id":              "Customer ID",
		"credit_application_id":    "Credit Application ID",
		"amortisation_term_months": "Amortisation Term (months)",
		"repayment_frequency":      "Repayment Frequency",
		"cca_marker":               "CCA Marker",
		"product_type":             "Product Type",
		"interest_rate_type":       "Interest Rate Type",
		"total_rate":               "Total Rate",
		"valuation_general":        "Valuation - General",
		"sanctioner_decision":      "Sanctioner Decision",
		"solicitor_org":            "Solicitor",
	}
}
