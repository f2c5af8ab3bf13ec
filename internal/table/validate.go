package table

import (
	"fmt"
	"strings"
)

// MissingColumnError names the required columns a table lacks.
type MissingColumnError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %q: missing required column(s): %s", e.Table, strings.Join(e.Columns, ", "))
}

// Require checks that the header carries every column in cols.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, col := range cols {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		name := ""
		if t != nil {
			name = t.Name
		}
		return &MissingColumnError{Table: name, Columns: missing}
	}
	return nil
}

// RequireIfRows is Require for reference tables: an empty table is
// acceptable and yields an empty reference, so columns are only checked
// when there are rows to read.
func (t *Table) RequireIfRows(cols ...string) error {
	if t.Len() == 0 {
		return nil
	}
	return t.Require(cols...)
}
