// Package recon reconciles real bank transactions against expected
// occurrences of recurring obligations using additive, confidence-scored
// matching.
//
// Amount and date act as hard gates: a transaction outside either tolerance
// is excluded outright, independent of other factors. Provider and account
// matches only add score. Candidates below the medium threshold are dropped
// and never surface.
//
// Example usage:
//
//	m := recon.NewMatcher(recon.DefaultConfig(), recon.NewResolver(dict))
//	result := m.AutoMatch(occurrences, transactions, existingLinks)
//	// result.AutoApply is safe to commit; result.ForReview needs a human.
package recon

import "github.com/shopspring/decimal"

// Config holds every scoring constant and threshold. The values were tuned
// empirically; they are policy, not derived from a model, so they stay
// configurable rather than hard-coded.
type Config struct {
	ExactAmountScore int             // diff == 0
	NearAmountScore  int             // 0 < diff <= AmountTolerance
	AmountTolerance  decimal.Decimal // absolute, currency-unit-independent

	ExactDateScore    int // same calendar day
	DateScoreBase     int // near-date score starts here...
	DateScorePerDay   int // ...and decays this much per day off...
	DateScoreFloor    int // ...but never below this
	DateToleranceDays int // hard gate in whole days

	ProviderScore int
	AccountScore  int

	HighThreshold   int // score >= this auto-applies
	MediumThreshold int // score >= this surfaces for review; below is dropped

	// Relaxed gates used only by Diagnose.
	DiagnosticAmountTolerance   decimal.Decimal
	DiagnosticDateToleranceDays int
}

// DefaultConfig returns the tuned production scoring policy.
func DefaultConfig() Config {
	return Config{
		ExactAmountScore: 40,
		NearAmountScore:  25,
		AmountTolerance:  decimal.NewFromInt(1),

		ExactDateScore:    30,
		DateScoreBase:     25,
		DateScorePerDay:   5,
		DateScoreFloor:    10,
		DateToleranceDays: 3,

		ProviderScore: 30,
		AccountScore:  10,

		HighThreshold:   80,
		MediumThreshold: 50,

		DiagnosticAmountTolerance:   decimal.NewFromInt(10),
		DiagnosticDateToleranceDays: 7,
	}
}
