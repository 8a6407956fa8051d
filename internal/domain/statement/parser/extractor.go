// Package parser turns the plain text extracted from a statement PDF into
// raw table rows. The statement format is the fixed five-column BCA mutasi
// layout (TANGGAL, KETERANGAN, DETAIL TRANSAKSI, MUTASI, SALDO); lines are
// ambiguous whitespace-delimited text, so two independent strategies are
// tried: a strict per-line regex first, then a positional heuristic.
package parser

import (
	"regexp"
	"strings"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

var (
	// leadingDateToken matches the date column at line start: one or two
	// day/month fragments separated by whitespace ("01/08" or "01/08 02/08").
	leadingDateToken = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}(?:\s+\d{1,2}[/-]\d{1,2})?`)

	// transactionLine matches a full transaction row in one line:
	// date token, description, amount token, balance token. Amount and
	// balance are digit runs with separators and an optional DB/CR marker.
	transactionLine = regexp.MustCompile(
		`^(\d{1,2}[/-]\d{1,2}(?:\s+\d{1,2}[/-]\d{1,2})?)\s+(.+?)\s+([\d.,\-]+(?:\s?(?:DB|CR))?)\s+([\d.,\-]+(?:\s?(?:DB|CR))?)$`)

	// numericToken matches one amount-like token inside a line remainder.
	numericToken = regexp.MustCompile(`[\d.,\-]*\d[\d.,\-]*(?:\s?(?:DB|CR))?`)

	// columnGap is the run of spaces separating KETERANGAN from
	// DETAIL TRANSAKSI in the extracted text.
	columnGap = regexp.MustCompile(`\s{2,}`)

	// pureNumeric matches lines that carry nothing but digits and
	// separators (reference-number echo lines, page totals).
	pureNumeric = regexp.MustCompile(`^[\d.,\-\s]+$`)
)

// summaryMarkers flag end-of-table summary lines (opening/closing balance,
// totals). They are skipped unless the line still parses as a real row.
var summaryMarkers = []string{"SALDO AWAL", "SALDO AKHIR", "TOTAL"}

// Extract scans the full extracted text of one document and returns the raw
// table rows in reading order. The regex strategy is preferred whenever it
// yields at least one row; the positional strategy is a pure fallback, the
// two are never merged.
//
// It fails with statement.ErrEmptyExtraction when the text is empty or
// whitespace-only, and statement.ErrNoTableFound when no line carries the
// TANGGAL/KETERANGAN column headers.
func Extract(text string) ([]statement.RawRow, error) {
	if strings.TrimSpace(text) == "" {
		return nil, statement.ErrEmptyExtraction
	}

	lines := splitLines(text)
	if !hasTableHeader(lines) {
		return nil, statement.ErrNoTableFound
	}

	rows := extractRegex(lines)
	if len(rows) == 0 {
		rows = extractPositional(lines)
	}
	return rows, nil
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// isTableHeader reports whether a line is the transaction table header
// (carries both the date and description column labels). Repeated page
// headers match too and are skipped the same way.
func isTableHeader(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "TANGGAL") && strings.Contains(upper, "KETERANGAN")
}

func hasTableHeader(lines []string) bool {
	for _, line := range lines {
		if isTableHeader(line) {
			return true
		}
	}
	return false
}

// isSummaryLine reports whether the line carries an end-of-table marker.
func isSummaryLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, marker := range summaryMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// extractRegex implements the primary strategy: skip everything before the
// table header, then match each trimmed line against the full transaction
// pattern. Lines that begin with a date but do not match fall back to the
// positional per-line split; longer non-numeric lines become continuation
// rows carrying only detail text.
func extractRegex(lines []string) []statement.RawRow {
	var rows []statement.RawRow
	inTable := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isTableHeader(line) {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}

		// Summary lines sometimes carry numbers that would be misread as
		// transactions. Keep them only when they still parse as a dated,
		// valid row; never demote them to continuation fragments.
		if isSummaryLine(line) {
			if row, ok := parseTransactionLine(line); ok && IsValidRow(row) {
				rows = append(rows, row)
			}
			continue
		}

		if row, ok := parseTransactionLine(line); ok {
			rows = append(rows, row)
			continue
		}

		if leadingDateToken.MatchString(line) {
			row := splitPositional(line)
			if countNonEmpty(row) >= 3 {
				rows = append(rows, row)
			}
			continue
		}

		if len(line) > 10 && !pureNumeric.MatchString(line) {
			rows = append(rows, statement.NewRawRow("", "", line))
		}
	}

	return rows
}

// extractPositional implements the fallback strategy: after the header gate,
// every dated line is split heuristically and every other non-empty line is
// treated as a continuation fragment in the KETERANGAN column.
func extractPositional(lines []string) []statement.RawRow {
	var rows []statement.RawRow
	inTable := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isTableHeader(line) {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}

		if isSummaryLine(line) {
			if leadingDateToken.MatchString(line) {
				if row := splitPositional(line); IsValidRow(row) {
					rows = append(rows, row)
				}
			}
			continue
		}

		if !leadingDateToken.MatchString(line) {
			rows = append(rows, statement.NewRawRow("", line))
			continue
		}

		rows = append(rows, splitPositional(line))
	}

	return rows
}

// parseTransactionLine matches the strict single-line pattern and splits the
// description segment on column gaps into short and detail parts.
func parseTransactionLine(line string) (statement.RawRow, bool) {
	m := transactionLine.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	short, detail := splitDescription(m[2])
	return statement.NewRawRow(m[1], short, detail, m[3], m[4]), true
}

// splitPositional tokenizes a dated line heuristically: strip the leading
// date token, take the last two numeric tokens of the remainder as MUTASI
// and SALDO (a single token is the balance), and split what is left on
// column gaps into the two description cells.
//
// When a description itself ends in bare numbers (an account or reference
// number with no separating text) the token scan can misfire; the source
// format gives no way to tell those apart.
func splitPositional(line string) statement.RawRow {
	date := leadingDateToken.FindString(line)
	remainder := strings.TrimSpace(line[len(date):])

	locs := numericToken.FindAllStringIndex(remainder, -1)
	amount, balance := "", ""
	switch {
	case len(locs) >= 2:
		amountLoc := locs[len(locs)-2]
		balanceLoc := locs[len(locs)-1]
		amount = remainder[amountLoc[0]:amountLoc[1]]
		balance = remainder[balanceLoc[0]:balanceLoc[1]]
		remainder = remainder[:amountLoc[0]] + remainder[amountLoc[1]:balanceLoc[0]] + remainder[balanceLoc[1]:]
	case len(locs) == 1:
		balance = remainder[locs[0][0]:locs[0][1]]
		remainder = remainder[:locs[0][0]] + remainder[locs[0][1]:]
	}

	short, detail := splitDescription(strings.TrimSpace(remainder))
	return statement.NewRawRow(date, short, detail, strings.TrimSpace(amount), strings.TrimSpace(balance))
}

// splitDescription divides description text on runs of two or more spaces:
// the first segment is KETERANGAN, the remaining segments joined with single
// spaces form DETAIL TRANSAKSI.
func splitDescription(desc string) (short, detail string) {
	segments := columnGap.Split(strings.TrimSpace(desc), -1)
	if len(segments) == 0 {
		return "", ""
	}
	short = segments[0]
	if len(segments) > 1 {
		detail = strings.Join(segments[1:], " ")
	}
	return short, detail
}

func countNonEmpty(row statement.RawRow) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
