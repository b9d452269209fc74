package agg

import "github.com/huangsam/shiftfit/schema"

// ProfileOptions combines cleaning and aggregation options.
type ProfileOptions struct {
	Clean     CleanOptions
	Aggregate AggregateOptions
}

// BuildProfile cleans the raw rows and averages every week they cover into
// a typical-week matrix.
func BuildProfile(rows []schema.TransactionRow, opts ProfileOptions) schema.Profile {
	txns, stats := CleanTransactions(rows, opts.Clean)
	weeks := DistinctWeeks(txns)
	return schema.Profile{
		Store:   opts.Clean.Store,
		Month:   opts.Clean.Month,
		Weeks:   weeks,
		History: AggregateWeeks(txns, weeks, opts.Aggregate),
		Stats:   stats,
	}
}
