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
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/apd/v3"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/pingcap/errors"
)

// Column stores one column of a Chunk. Values are kept in a typed slice
// chosen by the evaluation type of the column, NULL rows carry a zero value
// in that slice and a set bit in the null bitmap.
type Column struct {
	tp     *types.FieldType
	length int
	nulls  *bitset.BitSet

	i64s []int64
	f64s []float64
	strs []string
	decs []*apd.Decimal
}

// NewColumn creates a new column with the specific type and capacity.
func NewColumn(ft *types.FieldType, capacity int) *Column {
	col := &Column{
		tp:    ft,
		nulls: bitset.New(uint(capacity)),
	}
	switch ft.EvalType() {
	case types.ETInt:
		col.i64s = make([]int64, 0, capacity)
	case types.ETReal:
		col.f64s = make([]float64, 0, capacity)
	case types.ETDecimal:
		col.decs = make([]*apd.Decimal, 0, capacity)
	case types.ETString:
		col.strs = make([]string, 0, capacity)
	}
	return col
}

// NewColumnWithDatums builds a column from datums. It is mostly used by tests
// and by constant folding.
func NewColumnWithDatums(ft *types.FieldType, datums ...types.Datum) (*Column, error) {
	col := NewColumn(ft, len(datums))
	for i := range datums {
		if err := col.AppendDatum(&datums[i]); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// RetType returns the field type of the column.
func (c *Column) RetType() *types.FieldType {
	return c.tp
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return c.length
}

// IsNull returns if this row is null.
func (c *Column) IsNull(rowIdx int) bool {
	return c.nulls.Test(uint(rowIdx))
}

// AppendNull appends a null value into this Column.
func (c *Column) AppendNull() {
	c.nulls.Set(uint(c.length))
	switch c.tp.EvalType() {
	case types.ETInt:
		c.i64s = append(c.i64s, 0)
	case types.ETReal:
		c.f64s = append(c.f64s, 0)
	case types.ETDecimal:
		c.decs = append(c.decs, nil)
	case types.ETString:
		c.strs = append(c.strs, "")
	}
	c.length++
}

// AppendInt64 appends an int64 value into this Column.
func (c *Column) AppendInt64(i int64) {
	c.i64s = append(c.i64s, i)
	c.length++
}

// AppendFloat64 appends a float64 value into this Column.
func (c *Column) AppendFloat64(f float64) {
	c.f64s = append(c.f64s, f)
	c.length++
}

// AppendString appends a string value into this Column.
func (c *Column) AppendString(s string) {
	c.strs = append(c.strs, s)
	c.length++
}

// AppendDecimal appends a decimal value into this Column.
func (c *Column) AppendDecimal(d *apd.Decimal) {
	c.decs = append(c.decs, d)
	c.length++
}

// AppendDatum appends a datum, the datum kind has to match the column type.
func (c *Column) AppendDatum(d *types.Datum) error {
	if d.IsNull() {
		c.AppendNull()
		return nil
	}
	if et := c.tp.EvalType(); d.EvalType() != et {
		return errors.Errorf("cannot append %s datum to %s column", d.EvalType(), et)
	}
	switch d.Kind() {
	case types.KindInt64:
		c.AppendInt64(d.GetInt64())
	case types.KindFloat64:
		c.AppendFloat64(d.GetFloat64())
	case types.KindString:
		c.AppendString(d.GetString())
	case types.KindDecimal:
		c.AppendDecimal(d.GetDecimal())
	}
	return nil
}

// GetInt64 returns the int64 in the specific row.
func (c *Column) GetInt64(rowID int) int64 {
	return c.i64s[rowID]
}

// GetFloat64 returns the float64 in the specific row.
func (c *Column) GetFloat64(rowID int) float64 {
	return c.f64s[rowID]
}

// GetString returns the string in the specific row.
func (c *Column) GetString(rowID int) string {
	return c.strs[rowID]
}

// GetDecimal returns the decimal in the specific row.
func (c *Column) GetDecimal(rowID int) *apd.Decimal {
	return c.decs[rowID]
}

// Int64s returns an int64 slice stored in this Column.
func (c *Column) Int64s() []int64 {
	return c.i64s
}

// Float64s returns a float64 slice stored in this Column.
func (c *Column) Float64s() []float64 {
	return c.f64s
}

// GetDatum returns the value of the row as a Datum.
func (c *Column) GetDatum(rowID int) types.Datum {
	if c.IsNull(rowID) {
		return types.Datum{}
	}
	switch c.tp.EvalType() {
	case types.ETInt:
		return types.NewIntDatum(c.i64s[rowID])
	case types.ETReal:
		return types.NewFloat64Datum(c.f64s[rowID])
	case types.ETDecimal:
		return types.NewDecimalDatum(c.decs[rowID])
	case types.ETString:
		return types.NewStringDatum(c.strs[rowID])
	}
	return types.Datum{}
}
