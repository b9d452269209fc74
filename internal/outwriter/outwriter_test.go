package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:       output,
		Precision:    1,
		Width:        80,
		CacheBackend: schema.SQLiteBackend,
		Thresholds:   schema.EfficiencyThresholds{Low: 2, High: 6},
	}
}

func demandMatrix() schema.Matrix {
	m := schema.NewRangeMatrix(schema.HourRange{First: 11, Last: 13})
	m.Set(time.Monday, 11, 4)
	m.Set(time.Monday, 12, 10)
	m.Set(time.Saturday, 13, 6)
	return m
}

func efficiencyResult() schema.EfficiencyResult {
	demand := demandMatrix()
	staffing := schema.NewRangeMatrix(schema.HourRange{First: 11, Last: 13})
	staffing.Set(time.Monday, 11, 2)
	staffing.Set(time.Monday, 12, 1)

	ratio := schema.NewRangeMatrix(schema.HourRange{First: 11, Last: 13})
	ratio.Set(time.Monday, 11, 2)
	ratio.Set(time.Monday, 12, 10)

	res := schema.EfficiencyResult{
		Scenario: "high",
		Demand:   demand,
		Staffing: staffing,
		Ratio:    ratio,
		Summary: schema.EfficiencySummary{
			Counts: map[schema.EfficiencyLabel]int{
				schema.BalancedLabel: 1, schema.UnderstaffedLabel: 1, schema.UnstaffedLabel: 1, schema.IdleLabel: 18,
			},
			PeakRatio: 10, PeakDay: "Monday", PeakHour: "12:00", MeanRatio: 6,
		},
	}
	for i := range res.Labels {
		res.Labels[i] = []schema.EfficiencyLabel{schema.IdleLabel, schema.IdleLabel, schema.IdleLabel}
	}
	res.Labels[0] = []schema.EfficiencyLabel{schema.BalancedLabel, schema.UnderstaffedLabel, schema.IdleLabel}
	res.Labels[5][2] = schema.UnstaffedLabel
	return res
}

func TestChunkColumns(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 0}}, chunkColumns(0, 5))
	assert.Equal(t, [][2]int{{0, 5}, {5, 10}, {10, 12}}, chunkColumns(12, 5))
	assert.Equal(t, [][2]int{{0, 3}}, chunkColumns(3, 10))
}

func TestGetHoursPerChunk(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	assert.Equal(t, 6, getHoursPerChunk(cfg))

	cfg.Width = 10
	assert.Equal(t, 1, getHoursPerChunk(cfg), "at least one hour column")

	cfg.Width = 300
	assert.Equal(t, 30, getHoursPerChunk(cfg))
}

func TestWriteMatrixTableChunks(t *testing.T) {
	m := schema.NewRangeMatrix(schema.DefaultServiceWindow)
	m.Set(time.Friday, 19, 42)

	var buf bytes.Buffer
	require.NoError(t, writeMatrixTable(&buf, valueTable("Demand", m, createFormatter(0), true), 6))

	out := buf.String()
	assert.Contains(t, out, "Demand (07:00-12:00)")
	assert.Contains(t, out, "Demand (13:00-18:00)")
	assert.Contains(t, out, "Demand (19:00-00:00)")
	assert.Contains(t, out, "Friday")
	assert.Contains(t, out, "42")
}

func TestWriteMatrixCSVRows(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, matrixCSVHeader, func(w *csv.Writer) error {
		return writeMatrixCSVRows(w, schema.DemandMatrix, "high", demandMatrix(), createFormatter(1), nil)
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+7*3)
	assert.Equal(t, matrixCSVHeader, records[0])
	assert.Equal(t, []string{"high", "demand", "Monday", "12:00", "10.0", ""}, records[2])
}

func TestFormatRatioCell(t *testing.T) {
	f := createFormatter(1)
	assert.Equal(t, "4.5 B", formatRatioCell(4.5, schema.BalancedLabel, f, false))
	assert.Equal(t, "12.0 U", formatRatioCell(12, schema.UnderstaffedLabel, f, false))
	assert.Equal(t, "- X", formatRatioCell(0, schema.UnstaffedLabel, f, false))
	assert.Equal(t, "- .", formatRatioCell(0, schema.IdleLabel, f, false))
	assert.Contains(t, formatRatioCell(1, schema.OverstaffedLabel, f, true), "O")
}

func TestWriteJSONDemand(t *testing.T) {
	results := []schema.DemandResult{{
		Scenario:       "med",
		Store:          "Soho",
		Month:          time.September,
		WeeksUsed:      3,
		DeliveryCovers: 60,
		Forecast:       []schema.ForecastRow{{Day: "Monday", Breakfast: 10}},
		Demand:         demandMatrix(),
	}}

	var buf bytes.Buffer
	require.NoError(t, writeJSONDemand(&buf, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "med", decoded[0]["scenario"])
	assert.Equal(t, 20.0, decoded[0]["total"])
	assert.Equal(t, 60.0, decoded[0]["delivery_covers"])

	demand := decoded[0]["demand"].(map[string]any)
	assert.Equal(t, []any{"11:00", "12:00", "13:00"}, demand["hours"])
	rows := demand["rows"].([]any)
	assert.Equal(t, "Monday", rows[0].(map[string]any)["day"])
	assert.Equal(t, 14.0, rows[0].(map[string]any)["total"])
}

func TestWriteDemandTables(t *testing.T) {
	results := []schema.DemandResult{{
		Scenario:       "high",
		Store:          "Soho",
		Month:          time.September,
		WeeksUsed:      3,
		DeliveryCovers: 100,
		Forecast:       []schema.ForecastRow{{Day: "Monday", Breakfast: 40, Afternoon: 120, Evening: 45, Dinner: 160}},
		Demand:         demandMatrix(),
	}}

	var buf bytes.Buffer
	require.NoError(t, writeDemandTables(&buf, results, testConfig(schema.TextOut), time.Second))
	out := buf.String()
	assert.Contains(t, out, "Daypart forecast [high]")
	assert.Contains(t, out, "365")
	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "Hourly demand [high] for Soho, September")
	assert.Contains(t, out, "11:00")
	assert.NotContains(t, out, "11 : 00")
	assert.Contains(t, out, "Total covers: 20 from 3 weeks of history (includes 100 delivery covers)")
}

func TestWriteCoverageTables(t *testing.T) {
	staffing := schema.NewRangeMatrix(schema.HourRange{First: 22, Last: 26})
	staffing.Set(time.Friday, 22, 1)
	staffing.Set(time.Friday, 25, 1)

	results := []schema.CoverageResult{{
		Scenario: "low",
		Roles:    []string{"Server", "Host"},
		Staffing: staffing,
		Stats:    schema.CoverageStats{Total: 3, Kept: 1, Overnight: 1, Malformed: 1, ZeroLength: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeCoverageTables(&buf, results, testConfig(schema.TextOut), time.Second))
	out := buf.String()
	assert.Contains(t, out, "Staffing coverage [low] roles: Server, Host")
	for _, label := range []string{"22:00", "23:00", "00:00", "01:00", "02:00"} {
		assert.Contains(t, out, label)
	}
	assert.NotContains(t, out, "22 : 00", "hour labels are printed verbatim")
	assert.Contains(t, out, "Day")
	assert.Contains(t, out, "Shifts: 3 total, 1 kept (overnight 1, zero-length 1, malformed 1, other roles 0). Staff hours: 2")
}

func TestWriteCSVEfficiency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVEfficiency(&buf, []schema.EfficiencyResult{efficiencyResult()}, createFormatter(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+3*7*3)

	var efficiencyRows [][]string
	for _, rec := range records[1:] {
		if rec[1] == "efficiency" {
			efficiencyRows = append(efficiencyRows, rec)
		}
	}
	require.Len(t, efficiencyRows, 21)
	assert.Equal(t, []string{"high", "efficiency", "Monday", "12:00", "10.0", "Understaffed"}, efficiencyRows[1])
	assert.Equal(t, "Unstaffed", efficiencyRows[5*3+2][5])
}

func TestWriteJSONEfficiency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONEfficiency(&buf, []schema.EfficiencyResult{efficiencyResult()}))

	var decoded []struct {
		Scenario string              `json:"scenario"`
		Labels   map[string][]string `json:"labels"`
		Summary  struct {
			PeakRatio float64 `json:"peak_ratio"`
			PeakHour  string  `json:"peak_hour"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, []string{"Balanced", "Understaffed", "Idle"}, decoded[0].Labels["Monday"])
	assert.Equal(t, 10.0, decoded[0].Summary.PeakRatio)
	assert.Equal(t, "12:00", decoded[0].Summary.PeakHour)
}

func TestWriteEfficiencyTables(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(schema.TextOut)
	require.NoError(t, writeEfficiencyTables(&buf, []schema.EfficiencyResult{efficiencyResult()}, cfg, createFormatter(1), time.Second))
	out := buf.String()
	assert.Contains(t, out, "Covers per staff member [high]")
	assert.Contains(t, out, "10.0 U")
	assert.Contains(t, out, "2.0 B")
	assert.Contains(t, out, "Hours: Understaffed 1 Unstaffed 1 Balanced 1 Overstaffed 0 Idle 18")
	assert.Contains(t, out, "Peak 10.0 covers per staff on Monday at 12:00, mean 6.0")
	assert.Contains(t, out, "balanced band 2.0 to 6.0")
}

func TestWriteEfficiencySummaryNoPeak(t *testing.T) {
	var buf bytes.Buffer
	res := schema.EfficiencyResult{Summary: schema.EfficiencySummary{Counts: map[schema.EfficiencyLabel]int{}}}
	require.NoError(t, writeEfficiencySummary(&buf, res, createFormatter(1), false))
	assert.Contains(t, buf.String(), "No staffed hours with demand")
}

func TestWriteProfileTable(t *testing.T) {
	history := demandMatrix()
	shape := schema.Shape{Daypart: schema.Afternoon, Hours: []int{12, 13}}
	shape.Proportions[0] = []float64{1, 0}
	for i := 1; i < 7; i++ {
		shape.Proportions[i] = []float64{0, 0}
	}

	result := schema.ProfileResult{
		Profile: schema.Profile{
			Store:   "Soho",
			Month:   time.September,
			Weeks:   []schema.ISOWeek{{Year: 2022, Week: 36}, {Year: 2022, Week: 37}},
			History: history,
			Stats:   schema.CleanStats{Total: 10, Kept: 7, Voided: 1, ZeroValue: 1, Malformed: 1, Normalized: 1},
		},
		Shapes: []schema.Shape{shape},
	}

	var buf bytes.Buffer
	require.NoError(t, writeProfileTable(&buf, result, testConfig(schema.TextOut), createFormatter(1), time.Second))
	out := buf.String()
	assert.Contains(t, out, "Typical week for Soho, September")
	assert.Contains(t, out, "Shape: afternoon")
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "Rows: 10 total, 7 kept (voided 1, zero 1, malformed 1, filtered 0, de-spiked 1)")
	assert.Contains(t, out, "Profile built from 2 weeks")
}

func TestDescribeStore(t *testing.T) {
	assert.Equal(t, "all stores", describeStore("", 0))
	assert.Equal(t, "Soho", describeStore("Soho", 0))
	assert.Equal(t, "Soho, March", describeStore("Soho", time.March))
}

func TestPrintCoverageResultsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage.csv")
	cfg := testConfig(schema.CSVOut)
	cfg.OutputFile = path

	results := []schema.CoverageResult{{Scenario: "med", Staffing: demandMatrix()}}
	require.NoError(t, NewOutWriter().WriteCoverage(results, cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "scenario,kind,day,hour,value,label\n"))
	assert.Contains(t, string(data), "med,staffing,Monday,12:00,10,")
}

func TestPrintParquetRequiresFile(t *testing.T) {
	cfg := testConfig(schema.ParquetOut)
	err := NewOutWriter().WriteDemand([]schema.DemandResult{{Demand: demandMatrix()}}, cfg, time.Second)
	assert.ErrorIs(t, err, errParquetNeedsFile)
}

func TestPrintEfficiencyParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eff.parquet")
	cfg := testConfig(schema.ParquetOut)
	cfg.OutputFile = path

	require.NoError(t, NewOutWriter().WriteEfficiency([]schema.EfficiencyResult{efficiencyResult()}, cfg, time.Second))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
