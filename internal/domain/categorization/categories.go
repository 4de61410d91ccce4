// Package categorization assigns parsed transactions to a fixed set of 19
// semantic categories using an ordered keyword rule cascade.
package categorization

// Categories is the fixed category set in presentation order. Report sheets
// are read by these exact names, so the list is a versioned contract: do not
// rename, reorder or extend it without versioning the report format.
var Categories = []string{
	"Deposits",
	"Withdrawals",
	"Loans",
	"Interest",
	"Fees",
	"Transfers",
	"Payments",
	"Cash",
	"Investments",
	"Refunds",
	"Insurance",
	"Taxes",
	"UPI Transfers",
	"ATM Deposits",
	"ATM Withdrawals",
	"Utility Bills",
	"EMI/Loan Repayments",
	"NEFT/RTGS",
	"Other",
}
