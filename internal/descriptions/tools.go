package descriptions

// Tool descriptions with practical examples and use cases

const (
	LoanExtractFileDescription = `Extract structured loan fields from a single loan document PDF.

**When to use:** Need the canonical field values (amount, borrower, dates, rates, fees, IDs) from one loan agreement, facility letter or drawdown pack.

**Why it's useful:** Runs the full resolution cascade per field: targeted extractors, document-wide patterns, then fuzzy table label matching, and returns every field normalized (amounts as fixed-point with thousands separators, dates as "DD Mon YYYY").

**Examples:**
• Single agreement: "Extract fields from facility-letter-acme.pdf"
• Spot check: "What loan amount and expiry date does drawdown-0142.pdf carry?"

**Best practices:** Validate the file first with loan_validate_file; unresolved fields come back empty rather than guessed.`

	LoanExtractDirectoryDescription = `Extract structured loan fields from every PDF in a directory.

**When to use:** Processing a whole loan pack or a batch of agreements in one call.

**Why it's useful:** Discovers every valid PDF under the directory, runs the same per-field cascade on each, and reports one row per document. Per-file failures are reported inline and do not stop the batch.

**Examples:**
• Pack review: "Extract all fields from every PDF in /packs/2024-Q3"
• Migration: "Pull loan amounts and expiry dates across the archive directory"

**Best practices:** Keep packs under the configured directory; files that fail validation are skipped with a reason.`

	LoanValidateFileDescription = `Verify a PDF is readable before running extraction.

**When to use:** Before extracting from any PDF, especially ones produced by scanners or office suites.

**Why it's useful:** Checks existence, extension, size bounds and PDF structure (relaxed mode) so extraction failures surface early with a concrete reason.

**Best practices:** Run this first in automated workflows; a scanned-image-only PDF will validate but extract poorly.`

	LoanServerInfoDescription = `Get server information, the field catalogue, directory contents, and usage guidance.

**When to use:** Starting a session, or when unsure which fields the extractor produces.

**Why it's useful:** Lists every extractable field key with its display label, shows which PDFs are visible in the configured directory, and describes the available tools.`
)
