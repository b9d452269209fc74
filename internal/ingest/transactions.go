package ingest

import (
	"io"

	"github.com/huangsam/shiftfit/schema"
)

// Transaction table columns.
const (
	ColStore       = "Store_Name"
	ColDate        = "Date"
	ColOpenTime    = "Open_Time"
	ColGuestCount  = "Guest_Count"
	ColItemSales   = "Item_Sales"
	ColVoidTotal   = "Void_Total"
	ColDaypartName = "Day_Part_Name"
)

// LoadTransactions reads the point-of-sale table at path.
func LoadTransactions(path string) ([]schema.TransactionRow, error) {
	var rows []schema.TransactionRow
	err := openTable(path, func(r io.Reader) error {
		var err error
		rows, err = ReadTransactions(r)
		return err
	})
	return rows, err
}

// ReadTransactions reads point-of-sale rows as raw text. Values are not
// validated here; malformed rows are dropped later by the cleaner.
// Void_Total and Day_Part_Name are optional.
func ReadTransactions(r io.Reader) ([]schema.TransactionRow, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	var idx [5]int
	for i, name := range []string{ColStore, ColDate, ColOpenTime, ColGuestCount, ColItemSales} {
		if idx[i], err = t.require(name); err != nil {
			return nil, err
		}
	}
	voidIdx, ok := t.lookup(ColVoidTotal)
	if !ok {
		voidIdx = -1
	}
	daypartIdx, ok := t.lookup(ColDaypartName)
	if !ok {
		daypartIdx = -1
	}

	rows := make([]schema.TransactionRow, 0, len(t.rows))
	for _, rec := range t.rows {
		rows = append(rows, schema.TransactionRow{
			Store:       cell(rec, idx[0]),
			Date:        cell(rec, idx[1]),
			OpenTime:    cell(rec, idx[2]),
			GuestCount:  cell(rec, idx[3]),
			ItemSales:   cell(rec, idx[4]),
			VoidTotal:   cell(rec, voidIdx),
			DaypartName: cell(rec, daypartIdx),
		})
	}
	return rows, nil
}
