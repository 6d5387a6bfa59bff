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
	"github.com/likzn/risingwave/pkg/types"
)

// Row represents a row of data, can be used to access values.
type Row struct {
	c   *Chunk
	idx int
}

// MutRowFromDatums creates a single-row chunk from datums and returns the row.
func MutRowFromDatums(fields []*types.FieldType, datums []types.Datum) (Row, error) {
	chk := NewChunkWithCapacity(fields, 1)
	if err := chk.AppendDatums(datums...); err != nil {
		return Row{}, err
	}
	return chk.GetRow(0), nil
}

// Chunk returns the Chunk which the row belongs to.
func (r Row) Chunk() *Chunk {
	return r.c
}

// Idx returns the row index of Chunk.
func (r Row) Idx() int {
	return r.idx
}

// Len returns the number of values in the row.
func (r Row) Len() int {
	return r.c.NumCols()
}

// IsEmpty returns true if the Row is empty.
func (r Row) IsEmpty() bool {
	return r == Row{}
}

// IsNull returns if the datum in the chunk.Row is null.
func (r Row) IsNull(colIdx int) bool {
	return r.c.columns[colIdx].IsNull(r.idx)
}

// GetDatum returns the datum of the column.
func (r Row) GetDatum(colIdx int) types.Datum {
	return r.c.columns[colIdx].GetDatum(r.idx)
}

// GetDatumRow converts chunk.Row to a slice of datums.
func (r Row) GetDatumRow() []types.Datum {
	datumRow := make([]types.Datum, 0, r.c.NumCols())
	for colIdx := range r.c.columns {
		datumRow = append(datumRow, r.GetDatum(colIdx))
	}
	return datumRow
}
