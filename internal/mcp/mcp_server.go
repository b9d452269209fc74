// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Shared tool parameter descriptions.
const (
	transactionsDesc = "Path to the point-of-sale transactions CSV."
	storeDesc        = "Store name to keep (all stores when empty)."
	monthDesc        = "Month to keep, by name or number (all months when empty)."
	forecastDesc     = "Path to the daypart forecast CSV."
	shiftsDesc       = "Path to the shift rota CSV."
	rolesDesc        = "Comma-separated roles to count (all roles when empty)."
	tierDesc         = "Delivery tier column to blend (high, med, low)."
)

// NewMCPServer initializes and configures the shiftfit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Shiftfit Demand Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_daypart_shapes ---
	s.AddTool(mcp.NewTool("get_daypart_shapes",
		mcp.WithDescription("Learn the typical week of a store from its transactions and return the hourly shape of each daypart."),
		mcp.WithString("transactions", mcp.Description(transactionsDesc)),
		mcp.WithString("store", mcp.Description(storeDesc)),
		mcp.WithString("month", mcp.Description(monthDesc)),
	), h.handleGetDaypartShapes)

	// --- 2. Tool: get_demand_forecast ---
	s.AddTool(mcp.NewTool("get_demand_forecast",
		mcp.WithDescription("Spread a daypart covers forecast over the hours of the typical week."),
		mcp.WithString("transactions", mcp.Description(transactionsDesc)),
		mcp.WithString("forecast", mcp.Description(forecastDesc)),
		mcp.WithString("store", mcp.Description(storeDesc)),
		mcp.WithString("month", mcp.Description(monthDesc)),
		mcp.WithBoolean("with_delivery", mcp.Description("Blend projected delivery covers into the forecast.")),
		mcp.WithString("delivery", mcp.Description("Path to the delivery sales CSV.")),
		mcp.WithString("tier", mcp.Description(tierDesc)),
	), h.handleGetDemandForecast)

	// --- 3. Tool: get_staffing_coverage ---
	s.AddTool(mcp.NewTool("get_staffing_coverage",
		mcp.WithDescription("Count the shifts active in every hour of the week."),
		mcp.WithString("shifts", mcp.Description(shiftsDesc)),
		mcp.WithString("roles", mcp.Description(rolesDesc)),
	), h.handleGetStaffingCoverage)

	// --- 4. Tool: get_efficiency ---
	s.AddTool(mcp.NewTool("get_efficiency",
		mcp.WithDescription("Compare hourly demand against staffing as covers per staff member and label each hour."),
		mcp.WithString("transactions", mcp.Description(transactionsDesc)),
		mcp.WithString("forecast", mcp.Description(forecastDesc)),
		mcp.WithString("shifts", mcp.Description(shiftsDesc)),
		mcp.WithString("store", mcp.Description(storeDesc)),
		mcp.WithString("month", mcp.Description(monthDesc)),
		mcp.WithString("roles", mcp.Description(rolesDesc)),
		mcp.WithBoolean("with_delivery", mcp.Description("Blend projected delivery covers into the forecast.")),
		mcp.WithString("delivery", mcp.Description("Path to the delivery sales CSV.")),
		mcp.WithString("tier", mcp.Description(tierDesc)),
		mcp.WithNumber("threshold_low", mcp.Description("Covers per staff below which an hour is overstaffed.")),
		mcp.WithNumber("threshold_high", mcp.Description("Covers per staff above which an hour is understaffed.")),
	), h.handleGetEfficiency)

	return s
}

// StartMCPServer starts the shiftfit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
