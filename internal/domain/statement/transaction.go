// Package statement recovers structured transaction records from the loosely
// formatted text of bank statements. Input text comes from the extract
// adapters; output feeds the categorization and aggregation stages.
package statement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction types assigned by the parser. The fallback extraction path may
// additionally tag transactions with descriptive types such as "Interest" or
// "Transfers"; only Credit and Debit participate in aggregation.
const (
	TypeCredit = "Credit"
	TypeDebit  = "Debit"
)

// Transaction is one parsed statement line-item before categorization.
type Transaction struct {
	// Date keeps the source formatting verbatim (statements mix D/M/YYYY,
	// D-M-YY and friends; normalizing would lose the original rendering).
	Date        string
	Description string
	// Amount is a non-negative magnitude; direction lives in Type.
	Amount decimal.Decimal
	// Balance is zero when the source row carried none.
	Balance decimal.Decimal
	Type    string
}

// Key identifies a transaction for de-duplication. Two records with the same
// date, description and amount are considered one occurrence. Amounts key on
// their canonical rendering, so equal values spelled differently in the
// source count as the same amount.
func (t Transaction) Key() string {
	return fmt.Sprintf("%s|%s|%s", t.Date, t.Description, t.Amount.String())
}

// Dedupe collapses transactions by Key, keeping the first occurrence.
func Dedupe(txs []Transaction) []Transaction {
	seen := make(map[string]struct{}, len(txs))
	unique := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, tx)
	}
	return unique
}
