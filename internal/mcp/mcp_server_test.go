package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	mcp_internal "github.com/huangsam/shiftfit/internal/mcp"
	"github.com/huangsam/shiftfit/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func baseConfig() *contract.Config {
	return &contract.Config{
		TransactionsFile: testdata("transactions.csv"),
		Store:            "Soho",
		Month:            time.September,
		GuestCap:         contract.DefaultGuestCap,
		SpendPerCover:    contract.DefaultSpendPerCover,
		SpendPerHead:     decimal.RequireFromString(contract.DefaultSpendPerHead),
		Thresholds:       schema.EfficiencyThresholds{Low: contract.DefaultThresholdLow, High: contract.DefaultThresholdHigh},
	}
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_ToolsRegistered(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	for _, name := range []string{"get_daypart_shapes", "get_demand_forecast", "get_staffing_coverage", "get_efficiency"} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("get_staffing_coverage missing shifts", func(t *testing.T) {
		res := callTool(t, "get_staffing_coverage", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "--shifts is required")
	})

	t.Run("get_demand_forecast invalid month", func(t *testing.T) {
		res := callTool(t, "get_demand_forecast", map[string]any{
			"forecast": testdata("forecast_high.csv"),
			"month":    "Smarch",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid month")
	})

	t.Run("get_demand_forecast delivery without file", func(t *testing.T) {
		res := callTool(t, "get_demand_forecast", map[string]any{
			"forecast":      testdata("forecast_high.csv"),
			"with_delivery": true,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "--delivery is required")
	})

	t.Run("get_efficiency inverted thresholds", func(t *testing.T) {
		res := callTool(t, "get_efficiency", map[string]any{
			"forecast":       testdata("forecast_high.csv"),
			"shifts":         testdata("shifts_high.csv"),
			"threshold_low":  8.0,
			"threshold_high": 4.0,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "thresholds must satisfy")
	})
}

func TestMCPServerHandlers_StaffingCoverage(t *testing.T) {
	res := callTool(t, "get_staffing_coverage", map[string]any{
		"shifts": testdata("shifts_med.csv"),
		"roles":  "Server",
	})
	require.False(t, res.IsError, resultText(t, res))

	var views []struct {
		Scenario string               `json:"scenario"`
		Stats    schema.CoverageStats `json:"stats"`
		Staffing schema.MatrixView    `json:"staffing"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	require.Len(t, views, 1)
	assert.Positive(t, views[0].Stats.Kept)
	assert.Positive(t, views[0].Stats.RoleFiltered)
	assert.Equal(t, schema.StaffingMatrix, views[0].Staffing.Kind)
	assert.Len(t, views[0].Staffing.Rows, 7)
}

func TestMCPServerHandlers_DemandForecast(t *testing.T) {
	res := callTool(t, "get_demand_forecast", map[string]any{
		"forecast":      testdata("forecast_high.csv"),
		"with_delivery": true,
		"delivery":      testdata("delivery_sales.csv"),
		"tier":          "high",
	})
	require.False(t, res.IsError, resultText(t, res))

	var views []struct {
		DeliveryCovers int64             `json:"delivery_covers"`
		Demand         schema.MatrixView `json:"demand"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, int64(100), views[0].DeliveryCovers)
	assert.NotEmpty(t, views[0].Demand.Hours)
}

func TestMCPServerHandlers_DaypartShapes(t *testing.T) {
	res := callTool(t, "get_daypart_shapes", map[string]any{"month": "9"})
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		Store  string `json:"store"`
		Weeks  int    `json:"weeks"`
		Shapes []struct {
			Daypart string `json:"daypart"`
		} `json:"shapes"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "Soho", out.Store)
	assert.Positive(t, out.Weeks)
	require.Len(t, out.Shapes, 4)
	assert.Equal(t, schema.Breakfast.String(), out.Shapes[0].Daypart)
}

func TestMCPServerHandlers_Efficiency(t *testing.T) {
	res := callTool(t, "get_efficiency", map[string]any{
		"forecast": testdata("forecast_low.csv"),
		"shifts":   testdata("shifts_low.csv"),
	})
	require.False(t, res.IsError, resultText(t, res))

	var views []struct {
		Scenario string              `json:"scenario"`
		Labels   map[string][]string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, contract.DefaultScenarioName, views[0].Scenario)
	assert.Len(t, views[0].Labels, 7)
}
