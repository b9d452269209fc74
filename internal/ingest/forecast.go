package ingest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/shiftfit/schema"
)

// ColDay names the weekday column of the forecast and shift tables.
const ColDay = "day"

// LoadForecast reads the daypart forecast table at path.
func LoadForecast(path string) (schema.Forecast, error) {
	var f schema.Forecast
	err := openTable(path, func(r io.Reader) error {
		var err error
		f, err = ReadForecast(r)
		return err
	})
	return f, err
}

// ReadForecast reads one row of daypart covers per weekday. Every daypart
// column must be present. A repeated day overwrites the earlier row.
func ReadForecast(r io.Reader) (schema.Forecast, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	dayIdx, err := t.require(ColDay)
	if err != nil {
		return nil, err
	}
	var bandIdx [4]int
	for _, d := range schema.Dayparts {
		if bandIdx[d], err = t.require(d.String()); err != nil {
			return nil, err
		}
	}

	forecast := make(schema.Forecast, len(t.rows))
	for i, rec := range t.rows {
		day, err := schema.ParseWeekday(cell(rec, dayIdx))
		if err != nil {
			return nil, fmt.Errorf("forecast row %d: %w", i+2, err)
		}
		var totals schema.DaypartTotals
		for _, d := range schema.Dayparts {
			raw := cell(rec, bandIdx[d])
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("forecast row %d: invalid %s covers %q", i+2, d, raw)
			}
			totals[d] = v
		}
		forecast[day] = totals
	}
	return forecast, nil
}
