package ingest

import (
	"io"

	"github.com/huangsam/shiftfit/schema"
)

// Shift table columns. The short forms are accepted as aliases.
var (
	shiftDayColumns   = []string{"Day"}
	shiftStartColumns = []string{"Start Time (Hour)", "Start Time", "Start"}
	shiftEndColumns   = []string{"End Time (Hour)", "End Time", "End"}
	shiftRoleColumns  = []string{"Role"}
)

// LoadShifts reads the rota table at path.
func LoadShifts(path string, requireRole bool) ([]schema.Shift, error) {
	var shifts []schema.Shift
	err := openTable(path, func(r io.Reader) error {
		var err error
		shifts, err = ReadShifts(r, requireRole)
		return err
	})
	return shifts, err
}

// ReadShifts reads shift rows as raw text. The Role column is optional unless
// requireRole is set, which callers do when they filter by role.
func ReadShifts(r io.Reader, requireRole bool) ([]schema.Shift, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	dayIdx, err := t.require(shiftDayColumns...)
	if err != nil {
		return nil, err
	}
	startIdx, err := t.require(shiftStartColumns...)
	if err != nil {
		return nil, err
	}
	endIdx, err := t.require(shiftEndColumns...)
	if err != nil {
		return nil, err
	}
	roleIdx := -1
	if requireRole {
		if roleIdx, err = t.require(shiftRoleColumns...); err != nil {
			return nil, err
		}
	} else if idx, ok := t.lookup(shiftRoleColumns...); ok {
		roleIdx = idx
	}

	shifts := make([]schema.Shift, 0, len(t.rows))
	for _, rec := range t.rows {
		shifts = append(shifts, schema.Shift{
			Day:   cell(rec, dayIdx),
			Start: cell(rec, startIdx),
			End:   cell(rec, endIdx),
			Role:  cell(rec, roleIdx),
		})
	}
	return shifts, nil
}
