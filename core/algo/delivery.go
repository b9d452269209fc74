package algo

import (
	"github.com/huangsam/shiftfit/schema"
	"github.com/shopspring/decimal"
)

// DefaultSpendPerHead converts delivery revenue into cover equivalents.
var DefaultSpendPerHead = decimal.RequireFromString("38.99")

// DeliveryCovers converts delivery sales into a whole number of covers.
// A non-positive spend per head yields zero covers.
func DeliveryCovers(sales, spendPerHead decimal.Decimal) int64 {
	if !spendPerHead.IsPositive() || sales.IsNegative() {
		return 0
	}
	return sales.Div(spendPerHead).Truncate(0).IntPart()
}

// BlendDelivery folds delivery covers into the forecast. Each day receives a
// share of the delivery covers proportional to its weekly volume, and each
// daypart keeps its share of the grown day. Allocations and dayparts are
// truncated to whole covers. Days with no volume are left untouched.
func BlendDelivery(forecast schema.Forecast, deliveryCovers int64) schema.Forecast {
	out := forecast.Clone()
	grand := decimal.NewFromFloat(forecast.Total())
	if grand.IsZero() || deliveryCovers <= 0 {
		return out
	}
	delivery := decimal.NewFromInt(deliveryCovers)

	for day, totals := range forecast {
		dayTotal := decimal.NewFromFloat(totals.Sum())
		if dayTotal.IsZero() {
			continue
		}
		alloc := dayTotal.Mul(delivery).Div(grand).Truncate(0)
		grown := dayTotal.Add(alloc)

		var blended schema.DaypartTotals
		for _, d := range schema.Dayparts {
			band := decimal.NewFromFloat(totals[d])
			blended[d] = band.Mul(grown).Div(dayTotal).Truncate(0).InexactFloat64()
		}
		out[day] = blended
	}
	return out
}
