package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/shiftfit/core"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// shapeView is one daypart shape in a render-friendly form.
type shapeView struct {
	Daypart string            `json:"daypart"`
	View    schema.MatrixView `json:"proportions"`
}

type demandView struct {
	Scenario       string               `json:"scenario"`
	WeeksUsed      int                  `json:"weeks_used"`
	DeliveryCovers int64                `json:"delivery_covers"`
	Forecast       []schema.ForecastRow `json:"forecast"`
	Demand         schema.MatrixView    `json:"demand"`
}

type coverageView struct {
	Scenario string               `json:"scenario"`
	Stats    schema.CoverageStats `json:"stats"`
	Staffing schema.MatrixView    `json:"staffing"`
}

type efficiencyView struct {
	Scenario string                   `json:"scenario"`
	Ratio    schema.MatrixView        `json:"ratio"`
	Labels   map[string][]string      `json:"labels"`
	Summary  schema.EfficiencySummary `json:"summary"`
}

// applyCommon copies the arguments shared by every tool onto cfg.
// A single-scenario request never reuses the scenarios of the config file.
func applyCommon(cfg *contract.Config, request mcp.CallToolRequest) error {
	cfg.Scenarios = nil
	if v := request.GetString("transactions", ""); v != "" {
		cfg.TransactionsFile = v
	}
	if v := request.GetString("forecast", ""); v != "" {
		cfg.ForecastFile = v
	}
	if v := request.GetString("shifts", ""); v != "" {
		cfg.ShiftsFile = v
	}
	if v := request.GetString("delivery", ""); v != "" {
		cfg.DeliveryFile = v
	}
	if v := request.GetString("store", ""); v != "" {
		cfg.Store = v
	}
	if v := request.GetString("month", ""); v != "" {
		month, err := contract.ParseMonth(v)
		if err != nil {
			return fmt.Errorf("invalid month: %w", err)
		}
		cfg.Month = month
	}
	if v := request.GetString("roles", ""); v != "" {
		cfg.Roles = contract.SplitList(v)
	}
	if v := request.GetString("tier", ""); v != "" {
		cfg.Tier = v
	}
	cfg.WithDelivery = request.GetBool("with_delivery", cfg.WithDelivery)
	if cfg.WithDelivery && cfg.DeliveryFile == "" {
		return fmt.Errorf("--delivery is required when --with-delivery is set")
	}
	return nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDaypartShapes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommon(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.ShowShapes = true

	result, err := core.GetProfileResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile failed: %v", err)), nil
	}

	shapes := make([]shapeView, 0, len(result.Shapes))
	for _, s := range result.Shapes {
		shapes = append(shapes, shapeView{Daypart: s.Daypart.String(), View: s.Matrix().View("shape", "")})
	}
	return toolJSON(map[string]any{
		"store":   result.Store,
		"month":   result.Month.String(),
		"weeks":   len(result.Weeks),
		"stats":   result.Stats,
		"history": result.History.View(schema.HistoryMatrix, ""),
		"shapes":  shapes,
		"cached":  result.Cached,
	})
}

func (h *toolHandler) handleGetDemandForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommon(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, err := core.GetDemandResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("demand forecast failed: %v", err)), nil
	}

	views := make([]demandView, 0, len(results))
	for _, r := range results {
		views = append(views, demandView{
			Scenario:       r.Scenario,
			WeeksUsed:      r.WeeksUsed,
			DeliveryCovers: r.DeliveryCovers,
			Forecast:       r.Forecast,
			Demand:         r.Demand.View(schema.DemandMatrix, r.Scenario),
		})
	}
	return toolJSON(views)
}

func (h *toolHandler) handleGetStaffingCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommon(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, err := core.GetCoverageResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("staffing coverage failed: %v", err)), nil
	}

	views := make([]coverageView, 0, len(results))
	for _, r := range results {
		views = append(views, coverageView{
			Scenario: r.Scenario,
			Stats:    r.Stats,
			Staffing: r.Staffing.View(schema.StaffingMatrix, r.Scenario),
		})
	}
	return toolJSON(views)
}

func (h *toolHandler) handleGetEfficiency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommon(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.Thresholds.Low = request.GetFloat("threshold_low", cfg.Thresholds.Low)
	cfg.Thresholds.High = request.GetFloat("threshold_high", cfg.Thresholds.High)
	if cfg.Thresholds.Low < 0 || cfg.Thresholds.High < cfg.Thresholds.Low {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: thresholds must satisfy 0 <= low <= high (received low=%.2f high=%.2f)",
			cfg.Thresholds.Low, cfg.Thresholds.High)), nil
	}

	results, err := core.GetEfficiencyResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("efficiency failed: %v", err)), nil
	}

	views := make([]efficiencyView, 0, len(results))
	for _, r := range results {
		labels := make(map[string][]string, len(schema.DayOrder))
		for i, day := range schema.DayOrder {
			row := make([]string, len(r.Labels[i]))
			for j, l := range r.Labels[i] {
				row[j] = string(l)
			}
			labels[day.String()] = row
		}
		views = append(views, efficiencyView{
			Scenario: r.Scenario,
			Ratio:    r.Ratio.View(schema.EfficiencyMatrix, r.Scenario),
			Labels:   labels,
			Summary:  r.Summary,
		})
	}
	return toolJSON(views)
}
