package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixCells(t *testing.T) {
	m := NewRangeMatrix(HourRange{First: 9, Last: 12})
	m.Set(time.Monday, 9, 2)
	m.Add(time.Monday, 9, 1)
	m.Add(time.Sunday, 12, 4)
	m.Add(time.Sunday, 30, 100) // outside the columns

	assert.Equal(t, 3.0, m.At(time.Monday, 9))
	assert.Equal(t, 4.0, m.At(time.Sunday, 12))
	assert.Equal(t, 0.0, m.At(time.Sunday, 30))
	assert.Equal(t, 3.0, m.RowTotal(time.Monday))
	assert.Equal(t, 7.0, m.Total())
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, m.Labels())
	assert.Equal(t, HourRange{First: 9, Last: 12}, m.Range())
}

func TestMatrixWiden(t *testing.T) {
	m := NewRangeMatrix(HourRange{First: 10, Last: 11})
	m.Set(time.Tuesday, 10, 5)
	m.Set(time.Tuesday, 11, 6)

	wide := m.Widen(HourRange{First: 8, Last: 13})
	require.Equal(t, []int{8, 9, 10, 11, 12, 13}, wide.Hours)
	assert.Equal(t, []float64{0, 0, 5, 6, 0, 0}, wide.Row(time.Tuesday))
	assert.Equal(t, m.Total(), wide.Total())

	narrow := m.Widen(HourRange{First: 11, Last: 11})
	assert.Equal(t, []float64{6}, narrow.Row(time.Tuesday))
}

func TestMatrixRoundHalfToEven(t *testing.T) {
	m := NewMatrix([]int{9, 10, 11, 12})
	m.Values[0] = []float64{0.5, 1.5, 2.4, 2.6}
	rounded := m.Round()
	assert.Equal(t, []float64{0, 2, 2, 3}, rounded.Values[0])
	assert.Equal(t, 0.5, m.Values[0][0], "round must not mutate the receiver")
}

func TestMatrixClone(t *testing.T) {
	m := NewMatrix([]int{9})
	m.Values[0][0] = 1
	c := m.Clone()
	c.Values[0][0] = 2
	c.Hours[0] = 10
	assert.Equal(t, 1.0, m.Values[0][0])
	assert.Equal(t, 9, m.Hours[0])
}

func TestMatrixEmptyRange(t *testing.T) {
	var m Matrix
	assert.True(t, m.Range().Empty())
	assert.Equal(t, 0.0, m.Total())
}

func TestMatrixView(t *testing.T) {
	m := NewMatrix([]int{23, 24})
	m.Set(time.Friday, 24, 3)
	view := m.View(DemandMatrix, "high")
	assert.Equal(t, []string{"23:00", "00:00"}, view.Hours)
	require.Len(t, view.Rows, 7)
	assert.Equal(t, "Friday", view.Rows[4].Day)
	assert.Equal(t, 3.0, view.Rows[4].Total)
	assert.Equal(t, "high", view.Scenario)
}
