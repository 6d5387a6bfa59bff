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

	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
)

// ExtractColumns extracts all plain columns from an expression.
func ExtractColumns(expr Expression) []*Column {
	var cols []*Column
	walk(expr, func(e Expression) {
		if col, ok := e.(*Column); ok {
			cols = append(cols, col)
		}
	})
	return cols
}

// ExtractCorColumns extracts correlated column from given expression.
func ExtractCorColumns(expr Expression) []*CorrelatedColumn {
	var cols []*CorrelatedColumn
	walk(expr, func(e Expression) {
		if col, ok := e.(*CorrelatedColumn); ok {
			cols = append(cols, col)
		}
	})
	return cols
}

func walk(expr Expression, f func(Expression)) {
	f(expr)
	if sf, ok := expr.(*ScalarFunction); ok {
		for _, arg := range sf.GetArgs() {
			walk(arg, f)
		}
	}
}

// ExprInRange reports whether every plain column of expr addresses one of
// the first n input columns.
func ExprInRange(expr Expression, n int) bool {
	for _, col := range ExtractColumns(expr) {
		if col.Index < 0 || col.Index >= n {
			return false
		}
	}
	return true
}

// CheckColumnsInRange returns ErrColumnIndexOutOfRange for the first column
// of exprs that does not address one of the first n input columns.
func CheckColumnsInRange(exprs []Expression, n int) error {
	for _, expr := range exprs {
		for _, col := range ExtractColumns(expr) {
			if col.Index < 0 || col.Index >= n {
				return exprerrors.ErrColumnIndexOutOfRange.GenWithStackByArgs(col.Index, n)
			}
		}
	}
	return nil
}

// DecorrelateExpr replaces every correlated column by the plain column it
// reads from the outer side.
func DecorrelateExpr(expr Expression) (Expression, error) {
	return expr.Traverse(traverseFunc(func(e Expression) (Expression, error) {
		if cc, ok := e.(*CorrelatedColumn); ok {
			return cc.Decorrelate(), nil
		}
		return e, nil
	}))
}

// ColumnSubstitute substitutes every column i of expr with newExprs[i].
// Columns beyond newExprs or with a nil image are kept as is. An image
// whose type does not fit the function reading it fails with
// ErrTypeMismatch.
func ColumnSubstitute(expr Expression, newExprs []Expression) (Expression, error) {
	return expr.Traverse(traverseFunc(func(e Expression) (Expression, error) {
		if col, ok := e.(*Column); ok && col.Index >= 0 && col.Index < len(newExprs) && newExprs[col.Index] != nil {
			return newExprs[col.Index], nil
		}
		return e, nil
	}))
}

// BindCorrelatedColumns returns a copy of expr where every correlated
// column is replaced by the value it reads from outer. expr is left
// unbound, so one expression may be bound to several outer rows at once.
func BindCorrelatedColumns(expr Expression, outer chunk.Row) (Expression, error) {
	return expr.Traverse(traverseFunc(func(e Expression) (Expression, error) {
		if cc, ok := e.(*CorrelatedColumn); ok {
			return cc.bind(outer)
		}
		return e, nil
	}))
}

// nullRejectFuncs yield NULL whenever one of their arguments is NULL.
var nullRejectFuncs = map[string]struct{}{
	EQ: {}, NE: {}, LT: {}, LE: {}, GT: {}, GE: {},
	Plus: {}, Minus: {}, Mul: {},
	UnaryNot: {},
}

// EvaluateExprWithNull sets the first schemaLen input columns of expr to
// NULL and folds what can be folded. The result is a *Constant whenever the
// value no longer depends on the input.
func EvaluateExprWithNull(schemaLen int, expr Expression) (Expression, error) {
	switch x := expr.(type) {
	case *CorrelatedColumn:
		return x, nil
	case *Column:
		if x.Index < schemaLen {
			return NewNullWithFieldType(x.RetType), nil
		}
		return x, nil
	case *ScalarFunction:
		args := x.GetArgs()
		newArgs := make([]Expression, 0, len(args))
		allConst, hasNull := true, false
		for _, arg := range args {
			newArg, err := EvaluateExprWithNull(schemaLen, arg)
			if err != nil {
				return nil, err
			}
			if c, ok := newArg.(*Constant); ok {
				hasNull = hasNull || c.Value.IsNull()
			} else {
				allConst = false
			}
			newArgs = append(newArgs, newArg)
		}
		if _, ok := nullRejectFuncs[x.FuncName]; ok && hasNull {
			return NewNullWithFieldType(x.RetType), nil
		}
		folded, err := NewFunction(x.FuncName, x.RetType, newArgs...)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !allConst {
			return folded, nil
		}
		d, err := folded.Eval(chunk.Row{})
		if err != nil {
			return nil, err
		}
		return &Constant{Value: d, RetType: x.RetType}, nil
	}
	return expr, nil
}

// IsNullConstant reports whether expr is a constant whose value is NULL.
func IsNullConstant(expr Expression) bool {
	c, ok := expr.(*Constant)
	return ok && c.Value.IsNull()
}

// VectorizedExecute evaluates exprs over the input chunk, the i-th column
// of the output is the result of exprs[i].
func VectorizedExecute(exprs []Expression, input *chunk.Chunk) (*chunk.Chunk, error) {
	cols := make([]*chunk.Column, 0, len(exprs))
	for _, expr := range exprs {
		col, err := expr.VecEval(input)
		if err != nil {
			return nil, err
		}
		if col.Len() != input.NumRows() {
			return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(expr.String(),
				fmt.Sprintf("produced %d rows, input has %d", col.Len(), input.NumRows()))
		}
		cols = append(cols, col)
	}
	output, err := chunk.NewChunkFromColumns(cols...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	output.SetNumVirtualRows(input.NumRows())
	return output, nil
}
