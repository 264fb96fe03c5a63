package recon

import (
	"sort"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AutoMatchResult splits matches by required action: AutoApply is safe to
// commit without confirmation, ForReview needs a human decision.
type AutoMatchResult struct {
	AutoApply []domain.MatchResult `json:"autoApply"`
	ForReview []domain.MatchResult `json:"forReview"`
}

// AutoMatch routes the best candidate of every unpaid occurrence. It visits
// occurrences in the caller-supplied order (typically chronological) and
// grows a linked-transaction set as high-confidence matches claim their
// transactions, so a claimed transaction is never offered to a later
// occurrence. Medium-confidence matches are surfaced for review without
// consuming the transaction. One call therefore yields at most one
// transaction per occurrence and at most one occurrence per transaction.
//
// existingLinks seeds the linked set with reconciliations applied in earlier
// passes, keyed by transaction ID.
func (m *Matcher) AutoMatch(occurrences []domain.Occurrence, transactions []domain.Transaction, existingLinks map[string]string) AutoMatchResult {
	result := AutoMatchResult{
		AutoApply: []domain.MatchResult{},
		ForReview: []domain.MatchResult{},
	}

	linked := make(map[string]bool, len(existingLinks))
	for txnID := range existingLinks {
		linked[txnID] = true
	}
	claimed := make(map[string]bool, len(occurrences))

	for _, occ := range occurrences {
		if occ.Status == domain.OccurrencePaid {
			continue
		}

		candidates := m.FindCandidates(occ, transactions, linked)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		switch {
		case best.Confidence == domain.ConfidenceHigh && !claimed[occ.OccurrenceID]:
			result.AutoApply = append(result.AutoApply, best)
			claimed[occ.OccurrenceID] = true
			linked[best.TransactionID] = true
		case best.Confidence == domain.ConfidenceMedium && !claimed[occ.OccurrenceID]:
			result.ForReview = append(result.ForReview, best)
		}
		// Anything weaker leaves the occurrence unmatched for this pass.
	}

	return result
}

// DiagnosticCandidate is the raw factor breakdown of one near-miss,
// including transactions auto-match would have excluded outright.
type DiagnosticCandidate struct {
	TransactionID string          `json:"transactionID"`
	Score         int             `json:"score"`
	AmountDiff    decimal.Decimal `json:"amountDiff"`
	DateDiffDays  int             `json:"dateDiffDays"`
	ProviderKey   string          `json:"providerKey,omitempty"`
	AccountMatch  bool            `json:"accountMatch"`
	IsPending     bool            `json:"isPending"`
	AlreadyLinked bool            `json:"alreadyLinked"`
	Reasons       []string        `json:"reasons"`
}

// Diagnose explains why transactions did or did not match one occurrence.
// The amount and date gates are relaxed to the diagnostic tolerances and no
// confidence threshold is applied, so near-misses appear with their factor
// breakdown. Pending and already-linked transactions are included, annotated
// rather than hidden. Purely informational; never feeds AutoMatch.
func (m *Matcher) Diagnose(occ domain.Occurrence, transactions []domain.Transaction) []DiagnosticCandidate {
	candidates := []DiagnosticCandidate{}

	for _, txn := range transactions {
		amountDiff := txn.Amount.Sub(occ.ExpectedAmount).Abs()
		if amountDiff.GreaterThan(m.cfg.DiagnosticAmountTolerance) {
			continue
		}
		dateDiff := absDays(occ.DueDate, txn.Date)
		if dateDiff > m.cfg.DiagnosticDateToleranceDays {
			continue
		}

		c := DiagnosticCandidate{
			TransactionID: txn.TransactionID,
			AmountDiff:    amountDiff,
			DateDiffDays:  dateDiff,
			IsPending:     txn.IsPending,
			AlreadyLinked: txn.LinkedObligationID != "",
			Reasons:       []string{},
		}

		switch {
		case amountDiff.IsZero():
			c.Score += m.cfg.ExactAmountScore
			c.Reasons = append(c.Reasons, "exact amount match")
		case amountDiff.LessThanOrEqual(m.cfg.AmountTolerance):
			c.Score += m.cfg.NearAmountScore
			c.Reasons = append(c.Reasons, "amount within tolerance")
		default:
			c.Reasons = append(c.Reasons, "amount outside auto-match tolerance")
		}

		switch {
		case dateDiff == 0:
			c.Score += m.cfg.ExactDateScore
			c.Reasons = append(c.Reasons, "exact date match")
		case dateDiff <= m.cfg.DateToleranceDays:
			c.Score += m.nearDateScore(dateDiff)
			c.Reasons = append(c.Reasons, "date within tolerance")
		default:
			c.Reasons = append(c.Reasons, "date outside auto-match tolerance")
		}

		if key, ok := m.resolveProvider(occ, txn); ok {
			c.Score += m.cfg.ProviderScore
			c.ProviderKey = key
			c.Reasons = append(c.Reasons, "provider matched: "+key)
		}

		if ob := occ.Obligation; ob != nil && ob.LinkedAccountID != "" && ob.LinkedAccountID == txn.AccountID {
			c.Score += m.cfg.AccountScore
			c.AccountMatch = true
			c.Reasons = append(c.Reasons, "linked account match")
		}

		if txn.IsPending {
			c.Reasons = append(c.Reasons, "pending, excluded from auto-match")
		}
		if c.AlreadyLinked {
			c.Reasons = append(c.Reasons, "already linked to an obligation")
		}

		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
