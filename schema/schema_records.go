package schema

import "time"

// TransactionRow is one raw point-of-sale row as read from the transaction table.
// Fields are kept as text so malformed values can be dropped during cleaning.
type TransactionRow struct {
	Store       string
	Date        string
	OpenTime    string // minutes after midnight
	GuestCount  string
	ItemSales   string
	VoidTotal   string
	DaypartName string // informational only
}

// Transaction is a cleaned check annotated with its calendar and service-hour keys.
type Transaction struct {
	Store       string       `json:"store"`
	Date        time.Time    `json:"date"`
	Month       time.Month   `json:"month"`
	Year        int          `json:"iso_year"`
	Week        int          `json:"iso_week"`
	Day         time.Weekday `json:"day"`
	Hour        int          `json:"hour"`
	CheckTime   string       `json:"check_time"`
	Guests      float64      `json:"guests"`
	Sales       float64      `json:"sales"`
	DaypartName string       `json:"daypart_name,omitempty"`
}

// ISOWeek identifies a calendar week.
type ISOWeek struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// Shift is one planned staffing shift as read from the rota table.
type Shift struct {
	Day   string `json:"day"`
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
	Role  string `json:"role,omitempty"`
}

// CleanStats counts what happened to each raw transaction row.
type CleanStats struct {
	Total       int `json:"total"`
	Voided      int `json:"voided"`
	ZeroValue   int `json:"zero_value"`
	Malformed   int `json:"malformed"`
	FilteredOut int `json:"filtered_out"`
	Normalized  int `json:"normalized"`
	Kept        int `json:"kept"`
}

// CoverageStats counts what happened to each shift row.
type CoverageStats struct {
	Total        int `json:"total"`
	RoleFiltered int `json:"role_filtered"`
	ZeroLength   int `json:"zero_length"`
	Malformed    int `json:"malformed"`
	Overnight    int `json:"overnight"`
	Kept         int `json:"kept"`
}
