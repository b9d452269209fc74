package agg

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/huangsam/shiftfit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(week int, day time.Weekday, hour int, guests float64) schema.Transaction {
	return schema.Transaction{Year: 2022, Week: week, Day: day, Hour: hour, Guests: guests}
}

func TestDistinctWeeks(t *testing.T) {
	txns := []schema.Transaction{
		tx(37, time.Monday, 12, 1),
		{Year: 2021, Week: 52, Day: time.Monday, Hour: 12, Guests: 1},
		tx(36, time.Monday, 12, 1),
		tx(37, time.Tuesday, 13, 1),
	}
	want := []schema.ISOWeek{{Year: 2021, Week: 52}, {Year: 2022, Week: 36}, {Year: 2022, Week: 37}}
	assert.Equal(t, want, DistinctWeeks(txns))
	assert.Empty(t, DistinctWeeks(nil))
}

func TestAggregateWeeksSingleWeekIsIdentity(t *testing.T) {
	txns := []schema.Transaction{
		tx(36, time.Monday, 12, 3),
		tx(36, time.Monday, 12, 2),
		tx(36, time.Monday, 14, 4),
		tx(36, time.Saturday, 19, 10),
	}
	weeks := DistinctWeeks(txns)
	got := AggregateWeeks(txns, weeks, AggregateOptions{})

	want := schema.NewRangeMatrix(schema.HourRange{First: 12, Last: 19})
	want.Set(time.Monday, 12, 5)
	want.Set(time.Monday, 14, 4)
	want.Set(time.Saturday, 19, 10)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateWeeks() mismatch (-want +got):\n%s", diff)
	}

	// averaging a week with an identical copy of itself changes nothing
	twice := append([]schema.Transaction{}, txns...)
	for _, tr := range txns {
		tr.Week = 37
		twice = append(twice, tr)
	}
	again := AggregateWeeks(twice, DistinctWeeks(twice), AggregateOptions{})
	if diff := cmp.Diff(want, again, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("duplicated week mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateWeeksAveragesPresentWeeksOnly(t *testing.T) {
	txns := []schema.Transaction{
		tx(36, time.Monday, 12, 4),
		tx(37, time.Monday, 12, 8),
		tx(38, time.Monday, 12, 6),
		// Tuesday only trades in week 36
		tx(36, time.Tuesday, 12, 9),
	}
	weeks := DistinctWeeks(txns)

	got := AggregateWeeks(txns, weeks, AggregateOptions{})
	assert.InDelta(t, 6.0, got.At(time.Monday, 12), 1e-9)
	assert.InDelta(t, 9.0, got.At(time.Tuesday, 12), 1e-9, "absent weeks do not deflate the mean")
	assert.Equal(t, 0.0, got.At(time.Wednesday, 12))

	filled := AggregateWeeks(txns, weeks, AggregateOptions{ZeroFillAbsent: true})
	assert.InDelta(t, 6.0, filled.At(time.Monday, 12), 1e-9)
	assert.InDelta(t, 3.0, filled.At(time.Tuesday, 12), 1e-9)
}

func TestAggregateWeeksRestrictsToRequestedWeeks(t *testing.T) {
	txns := []schema.Transaction{
		tx(36, time.Monday, 12, 4),
		tx(37, time.Monday, 20, 8),
	}
	got := AggregateWeeks(txns, []schema.ISOWeek{{Year: 2022, Week: 36}}, AggregateOptions{})
	assert.Equal(t, []int{12}, got.Hours)
	assert.Equal(t, 4.0, got.Total())
}

func TestAggregateWeeksContiguousColumns(t *testing.T) {
	txns := []schema.Transaction{
		tx(36, time.Monday, 9, 1),
		tx(36, time.Sunday, 25, 2),
	}
	got := AggregateWeeks(txns, DistinctWeeks(txns), AggregateOptions{})
	require.Len(t, got.Hours, 17)
	assert.Equal(t, 9, got.Hours[0])
	assert.Equal(t, 25, got.Hours[16])
	assert.Len(t, got.Values, 7)
}

func TestAggregateWeeksEmpty(t *testing.T) {
	got := AggregateWeeks(nil, nil, AggregateOptions{})
	assert.Equal(t, schema.DefaultServiceWindow.Hours(), got.Hours)
	assert.Equal(t, 0.0, got.Total())
	for _, row := range got.Values {
		assert.Len(t, row, len(got.Hours))
	}
}

func TestBuildProfile(t *testing.T) {
	rows := []schema.TransactionRow{
		txRow("09-05-2022", "735", "4", "100", "0"),  // Mon wk36 12h
		txRow("09-12-2022", "740", "8", "200", "0"),  // Mon wk37 12h
		txRow("09-12-2022", "1110", "2", "60", "0"),  // Mon wk37 18h
		txRow("09-17-2022", "60", "3", "90", "0"),    // Sat wk37 after midnight
		txRow("08-29-2022", "735", "50", "100", "0"), // August, filtered out
	}
	p := BuildProfile(rows, ProfileOptions{Clean: DefaultCleanOptions(testStore, time.September)})

	assert.Equal(t, testStore, p.Store)
	assert.Equal(t, time.September, p.Month)
	assert.Equal(t, []schema.ISOWeek{{Year: 2022, Week: 36}, {Year: 2022, Week: 37}}, p.Weeks)
	assert.Equal(t, 4, p.Stats.Kept)
	assert.Equal(t, 1, p.Stats.FilteredOut)
	assert.InDelta(t, 6.0, p.History.At(time.Monday, 12), 1e-9)
	assert.InDelta(t, 2.0, p.History.At(time.Monday, 18), 1e-9)
	assert.InDelta(t, 3.0, p.History.At(time.Saturday, 25), 1e-9)
	assert.Equal(t, schema.HourRange{First: 12, Last: 25}, p.History.Range())
}
