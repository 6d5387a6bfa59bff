// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chunk

import (
	"strings"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/pingcap/errors"
)

// Chunk stores multiple rows of data in columns. A chunk without columns
// still carries a row count, see SetNumVirtualRows.
type Chunk struct {
	columns        []*Column
	numVirtualRows int
}

// NewChunkWithCapacity creates a new chunk with field types and capacity.
func NewChunkWithCapacity(fields []*types.FieldType, capacity int) *Chunk {
	chk := &Chunk{columns: make([]*Column, 0, len(fields))}
	for _, f := range fields {
		chk.columns = append(chk.columns, NewColumn(f, capacity))
	}
	return chk
}

// NewChunkFromColumns wraps columns of equal length into a chunk.
func NewChunkFromColumns(cols ...*Column) (*Chunk, error) {
	for i := 1; i < len(cols); i++ {
		if cols[i].Len() != cols[0].Len() {
			return nil, errors.Errorf("column %d has %d rows, column 0 has %d", i, cols[i].Len(), cols[0].Len())
		}
	}
	chk := &Chunk{columns: cols}
	if len(cols) > 0 {
		chk.numVirtualRows = cols[0].Len()
	}
	return chk, nil
}

// SetNumVirtualRows sets the virtual row number for a Chunk.
// It should only be used when there exists no column in the Chunk.
func (c *Chunk) SetNumVirtualRows(numVirtualRows int) {
	c.numVirtualRows = numVirtualRows
}

// NumCols returns the number of columns in the chunk.
func (c *Chunk) NumCols() int {
	return len(c.columns)
}

// NumRows returns the number of rows in the chunk.
func (c *Chunk) NumRows() int {
	if len(c.columns) == 0 {
		return c.numVirtualRows
	}
	return c.columns[0].Len()
}

// Column returns the specific column.
func (c *Chunk) Column(colIdx int) *Column {
	return c.columns[colIdx]
}

// Columns returns all the columns of the chunk.
func (c *Chunk) Columns() []*Column {
	return c.columns
}

// FieldTypes returns the field types of all columns.
func (c *Chunk) FieldTypes() []*types.FieldType {
	fts := make([]*types.FieldType, 0, len(c.columns))
	for _, col := range c.columns {
		fts = append(fts, col.RetType())
	}
	return fts
}

// AppendDatums appends one row given as datums, one per column.
func (c *Chunk) AppendDatums(row ...types.Datum) error {
	if len(row) != len(c.columns) {
		return errors.Errorf("row has %d values, chunk has %d columns", len(row), len(c.columns))
	}
	for i := range row {
		if err := c.columns[i].AppendDatum(&row[i]); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// GetRow gets the Row in the chunk with the row index.
func (c *Chunk) GetRow(idx int) Row {
	return Row{c: c, idx: idx}
}

// ToString returns all the values in a chunk, one row per line.
func (c *Chunk) ToString() string {
	var buf strings.Builder
	for rowIdx := 0; rowIdx < c.NumRows(); rowIdx++ {
		row := c.GetRow(rowIdx)
		for colIdx := range c.columns {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			d := row.GetDatum(colIdx)
			buf.WriteString(d.String())
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
