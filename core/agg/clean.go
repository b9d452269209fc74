// Package agg turns raw point-of-sale rows into a typical-week demand matrix.
package agg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/shiftfit/schema"
)

// Default cleaning parameters.
const (
	DefaultGuestCap      = 25.0 // guest counts at or above this are data-entry artifacts
	DefaultSpendPerCover = 30.0 // replacement divisor for de-spiked guest counts
)

// dateLayouts are tried in order when parsing the transaction date.
var dateLayouts = []string{"1-2-2006", "1/2/2006", "2006-01-02"}

var errMalformed = errors.New("malformed transaction row")

// CleanOptions selects and normalizes transaction rows.
type CleanOptions struct {
	Store         string     // empty keeps every store
	Month         time.Month // zero keeps every month
	GuestCap      float64
	SpendPerCover float64
}

// DefaultCleanOptions returns options with the default de-spiking parameters.
func DefaultCleanOptions(store string, month time.Month) CleanOptions {
	return CleanOptions{
		Store:         store,
		Month:         month,
		GuestCap:      DefaultGuestCap,
		SpendPerCover: DefaultSpendPerCover,
	}
}

// CleanTransactions drops voided, empty and malformed checks, keeps the
// requested store and month, and annotates each check with its ISO week,
// weekday and service hour. Matching no rows is not an error.
func CleanTransactions(rows []schema.TransactionRow, opts CleanOptions) ([]schema.Transaction, schema.CleanStats) {
	stats := schema.CleanStats{Total: len(rows)}
	var out []schema.Transaction

	for _, row := range rows {
		guests, sales, void, err := parseAmounts(row)
		if err != nil {
			stats.Malformed++
			continue
		}
		if void == sales {
			stats.Voided++
			continue
		}
		if guests == 0 || sales == 0 {
			stats.ZeroValue++
			continue
		}
		if guests < 0 || sales < 0 {
			stats.Malformed++
			continue
		}

		date, err := parseDate(row.Date)
		if err != nil {
			stats.Malformed++
			continue
		}
		hour, checkTime, err := parseOpenTime(row.OpenTime)
		if err != nil {
			stats.Malformed++
			continue
		}

		store := strings.TrimSpace(row.Store)
		if (opts.Store != "" && store != opts.Store) || (opts.Month != 0 && date.Month() != opts.Month) {
			stats.FilteredOut++
			continue
		}

		if normalized, ok := NormalizeGuests(guests, sales, opts); ok {
			guests = normalized
			stats.Normalized++
		}

		year, week := date.ISOWeek()
		out = append(out, schema.Transaction{
			Store:       store,
			Date:        date,
			Month:       date.Month(),
			Year:        year,
			Week:        week,
			Day:         date.Weekday(),
			Hour:        hour,
			CheckTime:   checkTime,
			Guests:      guests,
			Sales:       sales,
			DaypartName: strings.TrimSpace(row.DaypartName),
		})
	}

	stats.Kept = len(out)
	return out, stats
}

// NormalizeGuests replaces an implausibly large guest count with sales divided
// by the spend per cover. It reports whether the count was replaced.
func NormalizeGuests(guests, sales float64, opts CleanOptions) (float64, bool) {
	if opts.GuestCap <= 0 || opts.SpendPerCover <= 0 || guests < opts.GuestCap {
		return guests, false
	}
	return sales / opts.SpendPerCover, true
}

func parseAmounts(row schema.TransactionRow) (guests, sales, void float64, err error) {
	if guests, err = parseNumber(row.GuestCount); err != nil {
		return
	}
	if sales, err = parseNumber(row.ItemSales); err != nil {
		return
	}
	if strings.TrimSpace(row.VoidTotal) == "" {
		return guests, sales, 0, nil
	}
	void, err = parseNumber(row.VoidTotal)
	return
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errMalformed, s)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a month-day-year date", errMalformed, s)
}

// parseOpenTime converts minutes after midnight into a service hour and an
// "H:MM" check time.
func parseOpenTime(s string) (int, string, error) {
	minutes, err := parseNumber(s)
	if err != nil {
		return 0, "", err
	}
	if minutes < 0 || minutes >= 24*60 {
		return 0, "", fmt.Errorf("%w: open time %v out of range", errMalformed, minutes)
	}
	total := int(minutes)
	hour := total / 60
	return schema.ServiceHour(hour), fmt.Sprintf("%d:%02d", hour, total%60), nil
}
