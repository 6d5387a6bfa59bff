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

package expression

import (
	"fmt"
	"strconv"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
)

// Column represents a column, it reads the input row at Index.
type Column struct {
	RetType *types.FieldType
	// Index is the offset of the column in the input schema.
	Index int
}

// NewColumn builds a Column reading offset idx of the input.
func NewColumn(idx int, retType *types.FieldType) *Column {
	return &Column{Index: idx, RetType: retType}
}

// String implements Stringer interface.
func (col *Column) String() string {
	return "$" + strconv.Itoa(col.Index)
}

// GetType implements Expression interface.
func (col *Column) GetType() *types.FieldType {
	return col.RetType
}

// Equal implements Expression interface.
func (col *Column) Equal(expr Expression) bool {
	if newCol, ok := expr.(*Column); ok {
		return newCol.Index == col.Index && newCol.RetType.EvalType() == col.RetType.EvalType()
	}
	return false
}

// IsCorrelated implements Expression interface.
func (*Column) IsCorrelated() bool {
	return false
}

// Traverse implements the TraverseDown interface.
func (col *Column) Traverse(action TraverseAction) (Expression, error) {
	return action.Transform(col)
}

// Eval implements Expression interface.
func (col *Column) Eval(row chunk.Row) (types.Datum, error) {
	if col.Index < 0 || col.Index >= row.Len() {
		return types.Datum{}, exprerrors.ErrColumnIndexOutOfRange.GenWithStackByArgs(col.Index, row.Len())
	}
	return row.GetDatum(col.Index), nil
}

// VecEval implements Expression interface. The input column is returned
// as is, callers must not modify it.
func (col *Column) VecEval(input *chunk.Chunk) (*chunk.Column, error) {
	if col.Index < 0 || col.Index >= input.NumCols() {
		return nil, exprerrors.ErrColumnIndexOutOfRange.GenWithStackByArgs(col.Index, input.NumCols())
	}
	c := input.Column(col.Index)
	if !evalTypeCompatible(c.RetType().EvalType(), col.RetType.EvalType()) {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(col.String(),
			fmt.Sprintf("input column is %s, expression is %s", c.RetType().EvalType(), col.RetType.EvalType()))
	}
	return c, nil
}

// CorrelatedColumn stands for a column in a correlated sub query. It reads
// column Index of the row currently produced by the outer side of the
// enclosing Apply. It has no value of its own: BindCorrelatedColumns turns
// it into a constant for one outer row, evaluating it unbound fails.
type CorrelatedColumn struct {
	Column
}

// NewCorrelatedColumn builds a correlated column reading the outer offset idx.
func NewCorrelatedColumn(idx int, retType *types.FieldType) *CorrelatedColumn {
	return &CorrelatedColumn{Column: Column{Index: idx, RetType: retType}}
}

// String implements Stringer interface.
func (col *CorrelatedColumn) String() string {
	return "cor$" + strconv.Itoa(col.Index)
}

// Equal implements Expression interface.
func (col *CorrelatedColumn) Equal(expr Expression) bool {
	if cc, ok := expr.(*CorrelatedColumn); ok {
		return col.Column.Equal(&cc.Column)
	}
	return false
}

// IsCorrelated implements Expression interface.
func (*CorrelatedColumn) IsCorrelated() bool {
	return true
}

// Traverse implements the TraverseDown interface.
func (col *CorrelatedColumn) Traverse(action TraverseAction) (Expression, error) {
	return action.Transform(col)
}

// Eval implements Expression interface.
func (col *CorrelatedColumn) Eval(chunk.Row) (types.Datum, error) {
	return types.Datum{}, exprerrors.ErrUnboundCorrelatedValue.GenWithStackByArgs(col.String())
}

// VecEval implements Expression interface.
func (col *CorrelatedColumn) VecEval(*chunk.Chunk) (*chunk.Column, error) {
	return nil, exprerrors.ErrUnboundCorrelatedValue.GenWithStackByArgs(col.String())
}

// bind returns the constant col reads from outer.
func (col *CorrelatedColumn) bind(outer chunk.Row) (Expression, error) {
	if col.Index < 0 || col.Index >= outer.Len() {
		return nil, exprerrors.ErrColumnIndexOutOfRange.GenWithStackByArgs(col.Index, outer.Len())
	}
	d := outer.GetDatum(col.Index)
	if !d.IsNull() && d.EvalType() != col.RetType.EvalType() {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(col.String(),
			fmt.Sprintf("outer value is %s, declared %s", d.EvalType(), col.RetType.EvalType()))
	}
	return &Constant{Value: d, RetType: col.RetType}, nil
}

// Decorrelate turns the correlated column into a plain column over the
// outer schema.
func (col *CorrelatedColumn) Decorrelate() *Column {
	return &Column{Index: col.Index, RetType: col.RetType}
}
