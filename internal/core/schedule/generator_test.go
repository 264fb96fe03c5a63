package schedule_test

import (
	"testing"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyObligation(dueDay int) domain.Obligation {
	return domain.Obligation{
		ObligationID:   "ob-1",
		Name:           "Electricity",
		ExpectedAmount: decimal.NewFromFloat(85.50),
		DueDay:         dueDay,
		Frequency:      domain.FrequencyMonthly,
		ActiveFrom:     date(2024, 1, 1),
		IsActive:       true,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ob := monthlyObligation(15)
	first := schedule.Generate(ob, date(2025, 1, 1), date(2025, 12, 31))
	second := schedule.Generate(ob, date(2025, 1, 1), date(2025, 12, 31))

	require.Len(t, first, 12)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].OccurrenceID, second[i].OccurrenceID)
		assert.True(t, first[i].DueDate.Equal(second[i].DueDate))
		assert.True(t, first[i].ExpectedAmount.Equal(second[i].ExpectedAmount))
		assert.Equal(t, first[i].Status, second[i].Status)
	}
}

func TestGenerate_MonthEndClamping(t *testing.T) {
	ob := monthlyObligation(31)
	occs := schedule.Generate(ob, date(2025, 1, 1), date(2025, 4, 30))

	require.Len(t, occs, 4)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 1, 31)))
	assert.True(t, occs[1].DueDate.Equal(date(2025, 2, 28))) // clamped, not rolled over
	assert.True(t, occs[2].DueDate.Equal(date(2025, 3, 31)))
	assert.True(t, occs[3].DueDate.Equal(date(2025, 4, 30))) // April has 30 days
}

func TestGenerate_LeapYearFebruary(t *testing.T) {
	ob := monthlyObligation(31)
	occs := schedule.Generate(ob, date(2024, 2, 1), date(2024, 2, 29))

	require.Len(t, occs, 1)
	assert.True(t, occs[0].DueDate.Equal(date(2024, 2, 29)))
}

func TestGenerate_ActiveFromBounds(t *testing.T) {
	ob := monthlyObligation(1)
	ob.ActiveFrom = date(2025, 6, 1)

	may := schedule.Generate(ob, date(2025, 5, 1), date(2025, 5, 31))
	assert.Empty(t, may)

	june := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))
	require.Len(t, june, 1)
	assert.True(t, june[0].DueDate.Equal(date(2025, 6, 1)))
}

func TestGenerate_ActiveUntilEndBound(t *testing.T) {
	until := date(2025, 3, 1)
	ob := monthlyObligation(1)
	ob.ActiveUntil = &until

	april := schedule.Generate(ob, date(2025, 4, 1), date(2025, 4, 30))
	assert.Empty(t, april)

	// A due date exactly on activeUntil is included.
	march := schedule.Generate(ob, date(2025, 3, 1), date(2025, 3, 31))
	require.Len(t, march, 1)
	assert.True(t, march[0].DueDate.Equal(until))
}

func TestGenerate_InactiveYieldsNothing(t *testing.T) {
	ob := monthlyObligation(15)
	ob.IsActive = false
	assert.Empty(t, schedule.Generate(ob, date(2020, 1, 1), date(2030, 12, 31)))
}

func TestGenerate_InvertedRangeYieldsNothing(t *testing.T) {
	ob := monthlyObligation(15)
	assert.Empty(t, schedule.Generate(ob, date(2025, 7, 1), date(2025, 6, 1)))
}

func TestGenerate_WeeklyCountOverJune(t *testing.T) {
	ob := domain.Obligation{
		ObligationID:   "ob-w",
		ExpectedAmount: decimal.NewFromInt(40),
		Frequency:      domain.FrequencyWeekly,
		ActiveFrom:     date(2025, 6, 1),
		IsActive:       true,
	}
	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))

	// 30 days at a 7-day cadence starting on day one: Jun 1, 8, 15, 22, 29.
	require.Len(t, occs, 5)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 6, 1)))
	assert.True(t, occs[4].DueDate.Equal(date(2025, 6, 29)))
}

func TestGenerate_WeeklyPhaseAnchoredAtActiveFrom(t *testing.T) {
	ob := domain.Obligation{
		ObligationID:   "ob-w",
		ExpectedAmount: decimal.NewFromInt(40),
		Frequency:      domain.FrequencyWeekly,
		ActiveFrom:     date(2025, 5, 28), // Wednesday
		IsActive:       true,
	}
	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))

	// First candidate inside June is Jun 4, then every Wednesday.
	require.Len(t, occs, 4)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 6, 4)))
	assert.True(t, occs[1].DueDate.Equal(date(2025, 6, 11)))
	assert.True(t, occs[3].DueDate.Equal(date(2025, 6, 25)))
}

func TestGenerate_Fortnightly(t *testing.T) {
	ob := domain.Obligation{
		ObligationID:   "ob-f",
		ExpectedAmount: decimal.NewFromInt(12),
		Frequency:      domain.FrequencyFortnightly,
		ActiveFrom:     date(2025, 6, 2),
		IsActive:       true,
	}
	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 7, 31))

	require.Len(t, occs, 5)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 6, 2)))
	assert.True(t, occs[1].DueDate.Equal(date(2025, 6, 16)))
	assert.True(t, occs[4].DueDate.Equal(date(2025, 7, 28)))
}

func TestGenerate_BiannualTwoPerYear(t *testing.T) {
	ob := domain.Obligation{
		ObligationID:   "ob-b",
		ExpectedAmount: decimal.NewFromInt(120),
		DueDay:         15,
		Frequency:      domain.FrequencyBiannual,
		ActiveFrom:     date(2025, 1, 15),
		IsActive:       true,
	}
	occs := schedule.Generate(ob, date(2025, 1, 1), date(2025, 12, 31))

	require.Len(t, occs, 2)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 1, 15)))
	assert.True(t, occs[1].DueDate.Equal(date(2025, 7, 15)))
}

func TestGenerate_QuarterlySkipsBeforeActiveFrom(t *testing.T) {
	ob := domain.Obligation{
		ObligationID:   "ob-q",
		ExpectedAmount: decimal.NewFromInt(75),
		DueDay:         10,
		Frequency:      domain.FrequencyQuarterly,
		ActiveFrom:     date(2025, 3, 1),
		IsActive:       true,
	}
	occs := schedule.Generate(ob, date(2025, 1, 1), date(2025, 12, 31))

	// Jan 10 steps before activeFrom are skipped, not terminal.
	require.Len(t, occs, 3)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 4, 10)))
	assert.True(t, occs[1].DueDate.Equal(date(2025, 7, 10)))
	assert.True(t, occs[2].DueDate.Equal(date(2025, 10, 10)))
}

func TestGenerate_RangeEndInclusive(t *testing.T) {
	ob := monthlyObligation(30)
	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))
	require.Len(t, occs, 1)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 6, 30)))
}

func TestGenerate_EmitsDueStatusAndCompositeIDs(t *testing.T) {
	ob := monthlyObligation(15)
	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))

	require.Len(t, occs, 1)
	assert.Equal(t, "ob-1-2025-06-15", occs[0].OccurrenceID)
	assert.Equal(t, domain.OccurrenceDue, occs[0].Status)
	assert.Equal(t, "ob-1", occs[0].ObligationID)
	require.NotNil(t, occs[0].Obligation)
	assert.Equal(t, ob.ObligationID, occs[0].Obligation.ObligationID)
}

func TestGenerate_DefaultActiveFrom(t *testing.T) {
	ob := monthlyObligation(1)
	ob.ActiveFrom = time.Time{} // absent, defaults to the fixed epoch

	occs := schedule.Generate(ob, date(2025, 6, 1), date(2025, 6, 30))
	require.Len(t, occs, 1)
	assert.True(t, occs[0].DueDate.Equal(date(2025, 6, 1)))
}

func TestGenerateForMonth_SortedAcrossObligations(t *testing.T) {
	obA := monthlyObligation(20)
	obA.ObligationID = "ob-a"
	obB := monthlyObligation(5)
	obB.ObligationID = "ob-b"
	obC := monthlyObligation(5)
	obC.ObligationID = "ob-c"

	occs := schedule.GenerateForMonth([]domain.Obligation{obA, obB, obC}, 2025, time.June)

	require.Len(t, occs, 3)
	assert.Equal(t, "ob-b", occs[0].ObligationID) // same day ties break on ID
	assert.Equal(t, "ob-c", occs[1].ObligationID)
	assert.Equal(t, "ob-a", occs[2].ObligationID)
}

func TestGenerateForRange_AscendingDueDates(t *testing.T) {
	ob := monthlyObligation(15)
	occs := schedule.GenerateForRange([]domain.Obligation{ob}, date(2025, 1, 1), date(2025, 6, 30))

	require.Len(t, occs, 6)
	for i := 1; i < len(occs); i++ {
		assert.True(t, occs[i-1].DueDate.Before(occs[i].DueDate))
	}
}
