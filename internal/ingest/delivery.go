package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryColumn returns the delivery sales column of a scenario tier,
// so "high" reads "high_delivery".
func DeliveryColumn(tier string) string {
	tier = strings.ToLower(strings.TrimSpace(tier))
	if strings.HasSuffix(tier, "_delivery") {
		return tier
	}
	return tier + "_delivery"
}

// DeliverySales maps a tier column to its projected weekly delivery revenue.
type DeliverySales map[string]decimal.Decimal

// For returns the sales of a tier.
func (s DeliverySales) For(tier string) (decimal.Decimal, error) {
	col := DeliveryColumn(tier)
	v, ok := s[col]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	return v, nil
}

// LoadDelivery reads the delivery sales table at path.
func LoadDelivery(path string) (DeliverySales, error) {
	var s DeliverySales
	err := openTable(path, func(r io.Reader) error {
		var err error
		s, err = ReadDelivery(r)
		return err
	})
	return s, err
}

// ReadDelivery reads the first data row, one decimal per tier column.
// Currency symbols and thousands separators are stripped.
func ReadDelivery(r io.Reader) (DeliverySales, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, errors.New("delivery table has no data row")
	}
	row := t.rows[0]

	sales := make(DeliverySales, len(t.columns))
	for name, idx := range t.columns {
		raw := strings.NewReplacer(",", "", "$", "", "£", "").Replace(cell(row, idx))
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("delivery column %s: %w", name, err)
		}
		sales[name] = v
	}
	return sales, nil
}
