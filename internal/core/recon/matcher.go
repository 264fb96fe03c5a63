package recon

import (
	"fmt"
	"sort"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
)

// Matcher scores transactions as candidate payments for occurrences.
type Matcher struct {
	cfg      Config
	resolver *Resolver
}

// NewMatcher creates a matcher with the given scoring policy and provider
// resolver. A nil resolver disables the provider factor.
func NewMatcher(cfg Config, resolver *Resolver) *Matcher {
	return &Matcher{cfg: cfg, resolver: resolver}
}

// FindCandidates scores every plausible transaction for one occurrence and
// returns the surviving candidates sorted descending by score. Transactions
// already linked (either via alreadyLinked or their own obligation link) and
// pending transactions are excluded before scoring. Candidates below the
// medium threshold are dropped, never returned.
func (m *Matcher) FindCandidates(occ domain.Occurrence, transactions []domain.Transaction, alreadyLinked map[string]bool) []domain.MatchResult {
	results := []domain.MatchResult{}

	for _, txn := range transactions {
		if alreadyLinked[txn.TransactionID] {
			continue
		}
		if txn.LinkedObligationID != "" {
			continue
		}
		if txn.IsPending {
			continue
		}

		score, reasons, ok := m.scoreTransaction(occ, txn)
		if !ok {
			continue
		}

		confidence, ok := m.confidenceFor(score)
		if !ok {
			continue
		}

		results = append(results, domain.MatchResult{
			Occurrence:    occ,
			TransactionID: txn.TransactionID,
			Score:         score,
			Confidence:    confidence,
			Reasons:       reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scoreTransaction computes the additive score of one transaction against
// one occurrence. Amount and date are hard gates: failing either returns
// ok=false and the transaction is excluded entirely.
func (m *Matcher) scoreTransaction(occ domain.Occurrence, txn domain.Transaction) (int, []string, bool) {
	score := 0
	reasons := []string{}

	amountDiff := txn.Amount.Sub(occ.ExpectedAmount).Abs()
	switch {
	case amountDiff.IsZero():
		score += m.cfg.ExactAmountScore
		reasons = append(reasons, "exact amount match")
	case amountDiff.LessThanOrEqual(m.cfg.AmountTolerance):
		score += m.cfg.NearAmountScore
		reasons = append(reasons, fmt.Sprintf("amount within tolerance (off by %s)", amountDiff.StringFixed(2)))
	default:
		return 0, nil, false
	}

	dateDiff := absDays(occ.DueDate, txn.Date)
	switch {
	case dateDiff == 0:
		score += m.cfg.ExactDateScore
		reasons = append(reasons, "exact date match")
	case dateDiff <= m.cfg.DateToleranceDays:
		score += m.nearDateScore(dateDiff)
		reasons = append(reasons, fmt.Sprintf("date within %d day(s)", dateDiff))
	default:
		return 0, nil, false
	}

	if key, ok := m.resolveProvider(occ, txn); ok {
		score += m.cfg.ProviderScore
		reasons = append(reasons, "provider matched: "+key)
	}

	if ob := occ.Obligation; ob != nil && ob.LinkedAccountID != "" && ob.LinkedAccountID == txn.AccountID {
		score += m.cfg.AccountScore
		reasons = append(reasons, "linked account match")
	}

	return score, reasons, true
}

// nearDateScore decays linearly with distance from the due date, floored so
// a just-in-tolerance match still contributes.
func (m *Matcher) nearDateScore(days int) int {
	s := m.cfg.DateScoreBase - m.cfg.DateScorePerDay*days
	if s < m.cfg.DateScoreFloor {
		return m.cfg.DateScoreFloor
	}
	return s
}

func (m *Matcher) resolveProvider(occ domain.Occurrence, txn domain.Transaction) (string, bool) {
	if m.resolver == nil || occ.Obligation == nil {
		return "", false
	}
	return m.resolver.ResolveProvider(occ.Obligation.ProviderHint, txn.MerchantText, txn.DescriptionText)
}

func (m *Matcher) confidenceFor(score int) (domain.Confidence, bool) {
	switch {
	case score >= m.cfg.HighThreshold:
		return domain.ConfidenceHigh, true
	case score >= m.cfg.MediumThreshold:
		return domain.ConfidenceMedium, true
	}
	return "", false
}

func absDays(a, b time.Time) int {
	d := schedule.DaysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}
