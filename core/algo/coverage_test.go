package algo

import (
	"testing"
	"time"

	"github.com/huangsam/shiftfit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shift(day, start, end, role string) schema.Shift {
	return schema.Shift{Day: day, Start: start, End: end, Role: role}
}

func TestBuildCoverageSingleShift(t *testing.T) {
	m, stats := BuildCoverage([]schema.Shift{shift("Monday", "09:00", "13:00", "")}, nil)

	assert.Equal(t, []int{9, 10, 11, 12, 13}, m.Hours)
	assert.Equal(t, []float64{1, 1, 1, 1, 0}, m.Row(time.Monday))
	for _, day := range schema.DayOrder[1:] {
		assert.Equal(t, 0.0, m.RowTotal(day), day.String())
	}
	assert.Equal(t, schema.CoverageStats{Total: 1, Kept: 1}, stats)
}

func TestBuildCoverageOverlap(t *testing.T) {
	m, _ := BuildCoverage([]schema.Shift{
		shift("Monday", "09:00", "13:00", ""),
		shift("Monday", "11:00", "15:00", ""),
	}, nil)

	assert.Equal(t, schema.HourRange{First: 9, Last: 15}, m.Range())
	assert.Equal(t, []float64{1, 1, 2, 2, 1, 1, 0}, m.Row(time.Monday))
}

func TestBuildCoverageOvernight(t *testing.T) {
	m, stats := BuildCoverage([]schema.Shift{
		shift("Friday", "18:00", "22:00", ""),
		shift("Friday", "22:00", "02:00", ""),
	}, nil)

	assert.Equal(t, schema.HourRange{First: 18, Last: 26}, m.Range())
	for _, h := range []int{22, 23, 24, 25} {
		assert.Equal(t, 1.0, m.At(time.Friday, h), "hour %d", h)
	}
	assert.Equal(t, 0.0, m.At(time.Friday, 26))
	_, hasMidnight := m.Col(0)
	assert.False(t, hasMidnight)
	assert.Equal(t, 1, stats.Overnight)
}

func TestBuildCoverageDropsBadRows(t *testing.T) {
	m, stats := BuildCoverage([]schema.Shift{
		shift("Monday", "09:00", "13:00", "Server"),
		shift("Tuesday", "09:15", "09:45", "Server"), // same hour
		shift("Funday", "09:00", "13:00", "Server"),
		shift("Wednesday", "nine", "13:00", "Server"),
		shift("Thursday", "09:00", "13:00", "Chef"),
	}, []string{"Server"})

	assert.Equal(t, schema.CoverageStats{
		Total:        5,
		RoleFiltered: 1,
		ZeroLength:   1,
		Malformed:    2,
		Kept:         1,
	}, stats)
	assert.Equal(t, 4.0, m.Total())
}

func TestBuildCoverageRoleFilter(t *testing.T) {
	shifts := []schema.Shift{
		shift("Sat", "10:00", "12:00", "Server"),
		shift("Sat", "10:00", "12:00", " Chef "),
		shift("Sat", "11:00", "12:00", "Host"),
	}

	all, _ := BuildCoverage(shifts, nil)
	assert.Equal(t, []float64{2, 3, 0}, all.Row(time.Saturday))

	kitchen, stats := BuildCoverage(shifts, []string{"Chef"})
	assert.Equal(t, []float64{1, 1, 0}, kitchen.Row(time.Saturday))
	assert.Equal(t, 2, stats.RoleFiltered)
}

func TestBuildCoverageEmpty(t *testing.T) {
	m, stats := BuildCoverage(nil, nil)
	require.Equal(t, schema.DefaultServiceWindow.Hours(), m.Hours)
	assert.Equal(t, 0.0, m.Total())
	assert.Equal(t, 0, stats.Kept)
}

func TestRoles(t *testing.T) {
	shifts := []schema.Shift{
		shift("Mon", "9:00", "10:00", "Server"),
		shift("Mon", "9:00", "10:00", ""),
		shift("Mon", "9:00", "10:00", "Chef"),
		shift("Mon", "9:00", "10:00", " Server"),
	}
	assert.Equal(t, []string{"Server", "Chef"}, Roles(shifts))
	assert.Nil(t, Roles(nil))
}
