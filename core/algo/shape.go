// Package algo holds the pure transforms of the demand engine: daypart
// shapes, forecast reallocation, delivery blending, shift coverage and
// efficiency ratios.
package algo

import (
	"github.com/huangsam/shiftfit/schema"
)

// ExtractShapes splits the typical-week matrix into the four dayparts and
// normalizes each day's hours within every daypart independently.
func ExtractShapes(history schema.Matrix) [4]schema.Shape {
	var shapes [4]schema.Shape
	for _, d := range schema.Dayparts {
		shapes[d] = ExtractShape(history, d)
	}
	return shapes
}

// ExtractShape normalizes the hours of one daypart for every day.
// A day with no covers in the daypart gets all-zero proportions.
func ExtractShape(history schema.Matrix, d schema.Daypart) schema.Shape {
	shape := schema.Shape{Daypart: d, Hours: d.HoursIn(history.Hours)}
	for _, day := range schema.DayOrder {
		values := make([]float64, len(shape.Hours))
		for i, h := range shape.Hours {
			values[i] = history.At(day, h)
		}
		shape.Proportions[schema.DayIndex(day)] = Normalize(values)
	}
	return shape
}

// Normalize divides every value by the row total. A zero total yields zeros.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total
	}
	return out
}
