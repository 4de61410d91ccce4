package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	dateLineRe = regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)
	moneyRe    = regexp.MustCompile(`[\d,]+\.?\d{0,2}`)

	// Full-row table patterns, most specific first.
	// [^$] includes newlines, so descriptions may span lines. The table
	// scans thereby recover vertical blocks the block scan rejected (the
	// intervening lines end up inside the description).
	amountBalanceRe = regexp.MustCompile(
		`(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s+([^$]*?)\s+\$?([\d,]+\.?\d{0,2})\s+\$?([\d,]+\.?\d{0,2})`)
	debitCreditRe = regexp.MustCompile(
		`(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s+([^$]*?)\s+\(?\$?([\d,]+\.?\d{0,2})\)?\s+\(?\$?([\d,]+\.?\d{0,2})\)?\s+\$?([\d,]+\.?\d{0,2})`)
	amountOnlyRe = regexp.MustCompile(
		`(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s+([^$]*?)\s+\(?\$?([\d,]+\.?\d{0,2})\)?`)

	nonNumericRe = regexp.MustCompile(`[^\d.]`)
	// Debit/credit cells keep parentheses through cleaning so bracketed
	// (negative) figures can flip the transaction type.
	nonNumericParenRe = regexp.MustCompile(`[^\d.()]`)
)

// strategy attempts one extraction approach over the whole text. A nil or
// empty result means the approach did not recognize the document layout.
type strategy func(text string) []Transaction

// strategies run in order; the first non-empty result wins. The structured
// block scan handles the common vertical layout, the table scans recover
// progressively sparser single-line layouts.
var strategies = []strategy{
	scanBlocks,
	scanAmountBalanceRows,
	scanDebitCreditRows,
	scanAmountOnlyRows,
}

// Parse extracts transactions from raw statement text. Empty text or text
// with no recognizable transactions yields an empty slice, never an error;
// malformed candidate rows are skipped, not propagated. The result is
// de-duplicated on (date, description, amount).
func Parse(text string) []Transaction {
	for _, s := range strategies {
		if txs := s(text); len(txs) > 0 {
			return Dedupe(txs)
		}
	}
	return []Transaction{}
}

// scanBlocks walks the text line by line looking for five-line transaction
// blocks: date, description, type tag, amount, balance. A block is accepted
// only when the type tag is literally Credit or Debit and the amount line
// holds something numeric; a rejected candidate advances the cursor by a
// single line so overlapping starts are retried.
func scanBlocks(text string) []Transaction {
	lines := strings.Split(text, "\n")
	var txs []Transaction

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if dateLineRe.MatchString(line) && i+4 < len(lines) {
			date := line
			description := strings.TrimSpace(lines[i+1])
			txType := strings.TrimSpace(lines[i+2])
			amountRaw := strings.TrimSpace(lines[i+3])
			balanceRaw := strings.TrimSpace(lines[i+4])

			if (txType == TypeCredit || txType == TypeDebit) && moneyRe.MatchString(amountRaw) {
				amount, ok := parseMagnitude(nonNumericRe.ReplaceAllString(amountRaw, ""))
				if ok {
					// Bracketed amounts are debits regardless of the tag.
					if strings.Contains(amountRaw, "(") && strings.Contains(amountRaw, ")") {
						txType = TypeDebit
					}
					balance, _ := parseMagnitude(nonNumericRe.ReplaceAllString(balanceRaw, ""))

					if amount.IsPositive() {
						txs = append(txs, Transaction{
							Date:        date,
							Description: description,
							Amount:      amount,
							Balance:     balance,
							Type:        txType,
						})
					}
					i += 5
					continue
				}
			}
		}
		i++
	}

	return txs
}

// scanAmountBalanceRows matches single-line rows of date, description,
// amount, balance. Transaction type is inferred from description keywords.
func scanAmountBalanceRows(text string) []Transaction {
	var txs []Transaction
	for _, m := range amountBalanceRe.FindAllStringSubmatch(text, -1) {
		amount, ok := parseMagnitude(nonNumericRe.ReplaceAllString(m[3], ""))
		if !ok || !amount.IsPositive() {
			continue
		}
		balance, _ := parseMagnitude(nonNumericRe.ReplaceAllString(m[4], ""))
		description := strings.TrimSpace(m[2])

		txs = append(txs, Transaction{
			Date:        m[1],
			Description: description,
			Amount:      amount,
			Balance:     balance,
			Type:        inferCreditDebit(description),
		})
	}
	return txs
}

// scanDebitCreditRows matches rows with separate debit and credit columns
// followed by a balance. Whichever side is positive determines the type,
// credit checked first; bracketed cells force their side.
func scanDebitCreditRows(text string) []Transaction {
	var txs []Transaction
	for _, m := range debitCreditRe.FindAllStringSubmatch(text, -1) {
		debitRaw := nonNumericParenRe.ReplaceAllString(m[3], "")
		creditRaw := nonNumericParenRe.ReplaceAllString(m[4], "")
		balance, _ := parseMagnitude(nonNumericRe.ReplaceAllString(m[5], ""))

		var amount decimal.Decimal
		var txType string
		switch {
		case strings.Contains(debitRaw, "(") && strings.Contains(debitRaw, ")"):
			amount, _ = parseMagnitude(stripParens(debitRaw))
			txType = TypeDebit
		case strings.Contains(creditRaw, "(") && strings.Contains(creditRaw, ")"):
			amount, _ = parseMagnitude(stripParens(creditRaw))
			txType = TypeCredit
		default:
			credit, _ := parseMagnitude(creditRaw)
			debit, _ := parseMagnitude(debitRaw)
			switch {
			case credit.IsPositive():
				amount, txType = credit, TypeCredit
			case debit.IsPositive():
				amount, txType = debit, TypeDebit
			default:
				amount, txType = decimal.Zero, TypeDebit
			}
		}

		txs = append(txs, Transaction{
			Date:        m[1],
			Description: strings.TrimSpace(m[2]),
			Amount:      amount,
			Balance:     balance,
			Type:        txType,
		})
	}
	return txs
}

// scanAmountOnlyRows is the loosest fallback: date, description and a single
// amount, no balance. The type is a descriptive tag guessed from the
// description so downstream consumers keep some signal.
func scanAmountOnlyRows(text string) []Transaction {
	var txs []Transaction
	for _, m := range amountOnlyRe.FindAllStringSubmatch(text, -1) {
		amount, ok := parseMagnitude(nonNumericRe.ReplaceAllString(m[3], ""))
		if !ok || !amount.IsPositive() {
			continue
		}
		description := strings.TrimSpace(m[2])

		txs = append(txs, Transaction{
			Date:        m[1],
			Description: description,
			Amount:      amount,
			Balance:     decimal.Zero,
			Type:        inferDescriptiveType(description),
		})
	}
	return txs
}

// inferCreditDebit applies the short keyword heuristic used by the
// amount+balance table scan.
func inferCreditDebit(description string) string {
	desc := strings.ToLower(description)
	switch {
	case containsAny(desc, "deposit", "credited", "cr", "salary"):
		return TypeCredit
	case containsAny(desc, "withdrawal", "debited", "dr", "atm"):
		return TypeDebit
	case strings.Contains(desc, "cr"):
		return TypeCredit
	default:
		return TypeDebit
	}
}

// inferDescriptiveType maps description keywords to a descriptive type tag
// for the amount-only fallback. First matching group wins.
func inferDescriptiveType(description string) string {
	desc := strings.ToLower(description)
	switch {
	case containsAny(desc, "deposit", "credited", "cr", "salary"):
		return TypeCredit
	case strings.Contains(desc, "interest"):
		return "Interest"
	case containsAny(desc, "transfer", "trf", "wire"):
		return "Transfers"
	case containsAny(desc, "loan", "mortgage"):
		return "Loans"
	case containsAny(desc, "fee", "charge", "commission", "service"):
		return "Fees"
	case containsAny(desc, "withdrawal", "atm", "cash"):
		return "Cash"
	case containsAny(desc, "investment", "stock", "mutual fund", "shares"):
		return "Investments"
	case containsAny(desc, "refund", "returned", "credit"):
		return "Refunds"
	case containsAny(desc, "insurance", "premium"):
		return "Insurance"
	case containsAny(desc, "tax", "irs", "revenue"):
		return "Taxes"
	case containsAny(desc, "payment", "pay", "bill", "credit card", "grocery", "electricity", "store"):
		return "Payments"
	case containsAny(desc, "debit", "debited"):
		return "Withdrawals"
	default:
		return TypeDebit
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func stripParens(s string) string {
	return strings.NewReplacer("(", "", ")", "").Replace(s)
}

// parseMagnitude parses a cleaned numeric string. ok is false for empty or
// malformed input, mirroring the "skip, don't raise" contract of the scans.
func parseMagnitude(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
