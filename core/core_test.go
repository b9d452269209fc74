package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/iocache"
	"github.com/huangsam/shiftfit/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testdata(name string) string {
	return filepath.Join("..", "testdata", name)
}

func testConfig() *contract.Config {
	return &contract.Config{
		TransactionsFile: testdata("transactions.csv"),
		ForecastFile:     testdata("forecast_high.csv"),
		ShiftsFile:       testdata("shifts_high.csv"),
		DeliveryFile:     testdata("delivery_sales.csv"),
		Store:            "Soho",
		Month:            time.September,
		Tier:             "high",
		SpendPerHead:     decimal.RequireFromString(contract.DefaultSpendPerHead),
		GuestCap:         contract.DefaultGuestCap,
		SpendPerCover:    contract.DefaultSpendPerCover,
		Thresholds:       schema.EfficiencyThresholds{Low: contract.DefaultThresholdLow, High: contract.DefaultThresholdHigh},
		Output:           schema.TextOut,
		Precision:        contract.DefaultPrecision,
	}
}

func tierScenarios() []contract.ScenarioConfig {
	var out []contract.ScenarioConfig
	for _, tier := range []string{"high", "med", "low"} {
		out = append(out, contract.ScenarioConfig{
			Name:     tier,
			Forecast: testdata("forecast_" + tier + ".csv"),
			Shifts:   testdata("shifts_" + tier + ".csv"),
			Tier:     tier,
		})
	}
	return out
}

func TestGetProfileResults(t *testing.T) {
	cfg := testConfig()
	cfg.ShowShapes = true

	res, err := GetProfileResults(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "Soho", res.Store)
	assert.Equal(t, time.September, res.Month)
	assert.NotEmpty(t, res.Weeks)
	assert.Positive(t, res.Stats.Kept)
	assert.Positive(t, res.History.Total())
	assert.False(t, res.Cached)
	require.Len(t, res.Shapes, 4)
	for i, s := range res.Shapes {
		assert.Equal(t, schema.Dayparts[i], s.Daypart)
	}
}

func TestGetProfileResults_NoMatches(t *testing.T) {
	cfg := testConfig()
	cfg.Store = "Nowhere"

	res, err := GetProfileResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Weeks)
	assert.Zero(t, res.History.Total())
	assert.Equal(t, res.Stats.Total, res.Stats.FilteredOut+res.Stats.Malformed+res.Stats.Voided+res.Stats.ZeroValue)
}

func TestGetProfileResults_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.TransactionsFile = ""
	_, err := GetProfileResults(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, errNoTransactions)

	cfg.TransactionsFile = testdata("missing.csv")
	_, err = GetProfileResults(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestGetDemandResults(t *testing.T) {
	cfg := testConfig()

	results, err := GetDemandResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "high", res.Scenario)
	assert.Equal(t, "Soho", res.Store)
	assert.Positive(t, res.WeeksUsed)
	assert.Zero(t, res.DeliveryCovers)
	assert.Len(t, res.Forecast, 7)
	assert.Equal(t, res.Raw.Hours, res.Demand.Hours)
	assert.Positive(t, res.Demand.Total())

	// Reallocation never creates covers.
	var forecastTotal float64
	for _, row := range res.Forecast {
		forecastTotal += row.Breakfast + row.Afternoon + row.Evening + row.Dinner
	}
	assert.LessOrEqual(t, res.Raw.Total(), forecastTotal+1e-6)
}

func TestGetDemandResults_WithDelivery(t *testing.T) {
	cfg := testConfig()
	cfg.WithDelivery = true

	results, err := GetDemandResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(100), results[0].DeliveryCovers)

	plain, err := GetDemandResults(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	assert.Greater(t, results[0].Raw.Total(), plain[0].Raw.Total())
}

func TestGetDemandResults_UnknownTier(t *testing.T) {
	cfg := testConfig()
	cfg.WithDelivery = true
	cfg.Scenarios = []contract.ScenarioConfig{{Name: "x", Forecast: testdata("forecast_low.csv"), Tier: "extreme"}}

	_, err := GetDemandResults(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "x"`)
}

func TestGetDemandResults_MissingForecast(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastFile = ""
	_, err := GetDemandResults(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, errNoForecast)

	cfg.Scenarios = []contract.ScenarioConfig{{Name: "low", Shifts: testdata("shifts_low.csv")}}
	_, err = GetDemandResults(context.Background(), cfg, nil)
	assert.EqualError(t, err, `scenario "low" has no forecast file`)
}

func TestGetCoverageResults(t *testing.T) {
	cfg := testConfig()
	cfg.Scenarios = tierScenarios()

	results, err := GetCoverageResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, name := range []string{"high", "med", "low"} {
		assert.Equal(t, name, results[i].Scenario)
		assert.Positive(t, results[i].Stats.Kept)
		assert.Positive(t, results[i].Staffing.Total())
	}
}

func TestGetCoverageResults_Roles(t *testing.T) {
	cfg := testConfig()
	all, err := GetCoverageResults(context.Background(), cfg, nil)
	require.NoError(t, err)

	cfg.Roles = []string{"Chef"}
	chefs, err := GetCoverageResults(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chef"}, chefs[0].Roles)
	assert.Positive(t, chefs[0].Stats.RoleFiltered)
	assert.Less(t, chefs[0].Staffing.Total(), all[0].Staffing.Total())
}

func TestGetCoverageResults_MissingShifts(t *testing.T) {
	cfg := testConfig()
	cfg.ShiftsFile = ""
	_, err := GetCoverageResults(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, errNoShifts)
}

func TestGetEfficiencyResults(t *testing.T) {
	cfg := testConfig()
	cfg.Scenarios = tierScenarios()

	results, err := GetEfficiencyResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, name := range []string{"high", "med", "low"} {
		res := results[i]
		assert.Equal(t, name, res.Scenario)
		assert.Equal(t, res.Demand.Hours, res.Staffing.Hours)
		assert.Equal(t, res.Demand.Hours, res.Ratio.Hours)

		var cells int
		for _, n := range res.Summary.Counts {
			cells += n
		}
		assert.Equal(t, 7*len(res.Demand.Hours), cells)
	}
	assert.Positive(t, results[0].Summary.PeakRatio)
}

func TestGetEfficiencyResults_RecordsHistory(t *testing.T) {
	cfg := testConfig()
	cfg.Scenarios = tierScenarios()

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.AnythingOfType("string"), "efficiency", mock.Anything, mock.Anything).Return(nil)
	history.On("RecordScenario", mock.Anything).Return(nil).Times(3)
	history.On("EndRun", mock.AnythingOfType("string"), mock.Anything, 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProfileStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	results, err := GetEfficiencyResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	require.Len(t, results, 3)

	history.AssertExpectations(t)
	mgr.AssertExpectations(t)

	// Every scenario row shares the run ID passed to BeginRun.
	runID := history.Calls[0].Arguments.String(0)
	_, err = uuid.Parse(runID)
	require.NoError(t, err)
	for _, call := range history.Calls {
		if call.Method == "RecordScenario" {
			rec := call.Arguments.Get(0).(schema.ScenarioRecord)
			assert.Equal(t, runID, rec.RunID)
		}
	}
}

func TestGetEfficiencyResults_TrackingFailureIsNotFatal(t *testing.T) {
	cfg := testConfig()

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, "efficiency", mock.Anything, mock.Anything).Return(errors.New("db down"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProfileStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	results, err := GetEfficiencyResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	history.AssertNotCalled(t, "RecordScenario", mock.Anything)
	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEfficiencyResults_FailedRunIsNotRecorded(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastFile = testdata("missing_forecast.csv")

	history := &iocache.MockHistoryStore{}

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProfileStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history).Maybe()

	_, err := GetEfficiencyResults(context.Background(), cfg, mgr)
	require.Error(t, err)
	history.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "RecordScenario", mock.Anything)
	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunScenarios(t *testing.T) {
	scenarios := []contract.ScenarioConfig{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	got, err := runScenarios(context.Background(), scenarios, func(_ context.Context, sc contract.ScenarioConfig) (string, error) {
		return sc.Name + "!", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a!", "b!", "c!"}, got)

	boom := errors.New("boom")
	_, err = runScenarios(context.Background(), scenarios, func(_ context.Context, sc contract.ScenarioConfig) (string, error) {
		if sc.Name == "b" {
			return "", boom
		}
		return sc.Name, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `scenario "b"`)
}

func TestWithRunID(t *testing.T) {
	ctx := withRunID(context.Background())
	id := getRunID(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, getRunID(withRunID(ctx)))
	assert.Empty(t, getRunID(context.Background()))

	fields := runFields(ctx)
	require.Len(t, fields, 1)
	assert.Equal(t, "run_id", fields[0].Key)
	assert.Equal(t, id, fields[0].String)
}
