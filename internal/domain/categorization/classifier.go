package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/convector/statement-analyzer/internal/domain/statement"
)

// keywordSet records which rule keywords occur (as substrings) in one
// lower-cased description.
type keywordSet map[string]bool

func (k keywordSet) has(keyword string) bool { return k[keyword] }

func (k keywordSet) any(keywords ...string) bool {
	for _, kw := range keywords {
		if k[kw] {
			return true
		}
	}
	return false
}

// rule pairs a predicate over the description's keyword set with the category
// it assigns. Rules are evaluated top to bottom; the first match wins.
type rule struct {
	category string
	match    func(kw keywordSet) bool
}

// rules is the classification cascade. Order is load-bearing: overlapping
// keyword sets are resolved purely by position (e.g. a bare "credit" lands in
// Refunds before any later rule sees it, and "atm" is excluded up front so
// rule 7 owns every ATM transaction). This mirrors how the rule table grew
// over time and consumers depend on the resulting assignments, so new rules
// go at the bottom.
var rules = []rule{
	{"Deposits", func(kw keywordSet) bool {
		return kw.any("deposit", "salary", "income", "payroll") && !kw.has("atm")
	}},
	{"Interest", func(kw keywordSet) bool {
		return kw.has("interest")
	}},
	{"Transfers", func(kw keywordSet) bool {
		return kw.any("transfer", "trf", "wire") && !kw.has("neft") && !kw.has("rtgs") && !kw.has("upi")
	}},
	{"Loans", func(kw keywordSet) bool {
		return kw.any("loan", "mortgage") && !kw.has("emi") && !kw.has("repayment")
	}},
	{"Fees", func(kw keywordSet) bool {
		return kw.any("fee", "charge", "commission", "service")
	}},
	{"Withdrawals", func(kw keywordSet) bool {
		return kw.has("withdrawal") && !kw.has("atm")
	}},
	{"ATM Deposits", func(kw keywordSet) bool {
		return kw.has("atm") && (kw.has("deposit") || kw.has("cr"))
	}},
	{"ATM Withdrawals", func(kw keywordSet) bool {
		return kw.has("atm")
	}},
	{"Investments", func(kw keywordSet) bool {
		return kw.any("investment", "stock", "mutual fund", "shares")
	}},
	{"Refunds", func(kw keywordSet) bool {
		return kw.any("refund", "returned", "credit")
	}},
	{"Insurance", func(kw keywordSet) bool {
		return kw.any("insurance", "premium")
	}},
	{"Taxes", func(kw keywordSet) bool {
		return kw.any("tax", "irs", "revenue")
	}},
	{"Utility Bills", func(kw keywordSet) bool {
		return kw.any("payment", "pay", "bill") &&
			kw.any("electricity", "tv", "mobile", "recharge", "phone", "dth", "broadband", "water", "gas")
	}},
	{"EMI/Loan Repayments", func(kw keywordSet) bool {
		return kw.any("emi", "loan repayment", "loan emi")
	}},
	{"UPI Transfers", func(kw keywordSet) bool {
		return kw.has("upi")
	}},
	{"NEFT/RTGS", func(kw keywordSet) bool {
		return kw.any("neft", "rtgs")
	}},
	{"Cash", func(kw keywordSet) bool {
		return kw.has("cash")
	}},
	{"Withdrawals", func(kw keywordSet) bool {
		return kw.any("debit", "debited") && !kw.has("atm")
	}},
}

// ruleKeywords is every keyword any rule consults. The classifier detects all
// of them in a single Aho-Corasick pass per description instead of running
// dozens of substring scans.
var ruleKeywords = []string{
	"deposit", "salary", "income", "payroll", "atm",
	"interest",
	"transfer", "trf", "wire", "neft", "rtgs", "upi",
	"loan", "mortgage", "emi", "repayment",
	"fee", "charge", "commission", "service",
	"withdrawal", "cr",
	"investment", "stock", "mutual fund", "shares",
	"refund", "returned", "credit",
	"insurance", "premium",
	"tax", "irs", "revenue",
	"payment", "pay", "bill",
	"electricity", "tv", "mobile", "recharge", "phone", "dth", "broadband", "water", "gas",
	"loan repayment", "loan emi",
	"cash",
	"debit", "debited",
}

// Classifier assigns each transaction to exactly one category. It is
// stateless after construction and safe for concurrent use.
type Classifier struct {
	matcher *ahocorasick.Matcher
}

// NewClassifier builds the keyword matcher for the fixed rule table.
func NewClassifier() *Classifier {
	patterns := make([][]byte, len(ruleKeywords))
	for i, kw := range ruleKeywords {
		patterns[i] = []byte(kw)
	}
	return &Classifier{matcher: ahocorasick.NewMatcher(patterns)}
}

// Classify partitions transactions into the fixed category set. The result
// always holds all 19 categories; categories with no matches map to an empty
// slice. Every input transaction is assigned to exactly one category.
func (c *Classifier) Classify(txs []statement.Transaction) map[string][]statement.Transaction {
	categories := make(map[string][]statement.Transaction, len(Categories))
	for _, name := range Categories {
		categories[name] = []statement.Transaction{}
	}

	for _, tx := range txs {
		category := c.categorize(tx.Description)
		categories[category] = append(categories[category], tx)
	}

	return categories
}

// categorize runs one description through the rule cascade.
func (c *Classifier) categorize(description string) string {
	kw := c.keywords(strings.ToLower(description))
	for _, r := range rules {
		if r.match(kw) {
			return r.category
		}
	}
	return "Other"
}

// keywords returns the set of rule keywords present in the lower-cased
// description. Matching is plain substring containment, so short keywords
// like "cr" or "pay" hit inside longer words; the rule table is written with
// that in mind.
func (c *Classifier) keywords(desc string) keywordSet {
	kw := make(keywordSet)
	for _, idx := range c.matcher.Match([]byte(desc)) {
		if idx >= 0 && idx < len(ruleKeywords) {
			kw[ruleKeywords[idx]] = true
		}
	}
	return kw
}
