package algo

import (
	"slices"

	"github.com/huangsam/shiftfit/schema"
)

// ProjectRow spreads a covers total over hours following the proportions.
func ProjectRow(proportions []float64, total float64) []float64 {
	out := make([]float64, len(proportions))
	for i, p := range proportions {
		out[i] = p * total
	}
	return out
}

// Reallocate spreads each day's daypart totals over the hours of that
// daypart's shape and stitches the four dayparts back into one matrix.
// Days without a forecast get zero covers. Cells are not rounded.
func Reallocate(shapes [4]schema.Shape, forecast schema.Forecast) schema.Matrix {
	var hours []int
	for _, s := range shapes {
		hours = append(hours, s.Hours...)
	}
	slices.Sort(hours)
	hours = slices.Compact(hours)

	out := schema.NewMatrix(hours)
	for _, s := range shapes {
		for _, day := range schema.DayOrder {
			totals := forecast[day] // zero value when the day has no forecast
			projected := ProjectRow(s.Row(day), totals[s.Daypart])
			for i, h := range s.Hours {
				out.Set(day, h, projected[i])
			}
		}
	}
	return out
}

// ForecastDemand runs shape extraction and reallocation over a typical week.
// It returns the unrounded matrix and the matrix rounded to whole covers.
func ForecastDemand(history schema.Matrix, forecast schema.Forecast) (raw, rounded schema.Matrix) {
	raw = Reallocate(ExtractShapes(history), forecast)
	return raw, raw.Round()
}
