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
	"strings"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
)

// ScalarFunction is the function that returns a value.
type ScalarFunction struct {
	FuncName string
	// RetType is the type that ScalarFunction returns.
	RetType  *types.FieldType
	Function builtinFunc
}

// NewFunction creates a new scalar function. The argument count and the
// argument types are checked against the function signature.
func NewFunction(funcName string, retType *types.FieldType, args ...Expression) (Expression, error) {
	fc, ok := funcs[funcName]
	if !ok {
		return nil, exprerrors.ErrNotSupportedYet.GenWithStackByArgs(funcName)
	}
	f, err := fc.getFunction(retType, args)
	if err != nil {
		return nil, err
	}
	return &ScalarFunction{
		FuncName: funcName,
		RetType:  retType,
		Function: f,
	}, nil
}

// NewFunctionInternal is used to create function in the rewrite rules, the
// arguments are known to be valid.
func NewFunctionInternal(funcName string, retType *types.FieldType, args ...Expression) Expression {
	expr, err := NewFunction(funcName, retType, args...)
	if err != nil {
		panic(err)
	}
	return expr
}

// NewNullIf builds NULLIF(left, right) returning retType.
func NewNullIf(retType *types.FieldType, left, right Expression) (Expression, error) {
	return NewFunction(NullIF, retType, left, right)
}

// GetArgs gets arguments of function.
func (sf *ScalarFunction) GetArgs() []Expression {
	return sf.Function.getArgs()
}

// String implements fmt.Stringer interface.
func (sf *ScalarFunction) String() string {
	var buffer strings.Builder
	fmt.Fprintf(&buffer, "%s(", sf.FuncName)
	for i, arg := range sf.GetArgs() {
		buffer.WriteString(arg.String())
		if i+1 != len(sf.GetArgs()) {
			buffer.WriteString(", ")
		}
	}
	buffer.WriteString(")")
	return buffer.String()
}

// GetType implements Expression interface.
func (sf *ScalarFunction) GetType() *types.FieldType {
	return sf.RetType
}

// Equal implements Expression interface.
func (sf *ScalarFunction) Equal(e Expression) bool {
	fun, ok := e.(*ScalarFunction)
	if !ok {
		return false
	}
	if sf.FuncName != fun.FuncName || sf.RetType.EvalType() != fun.RetType.EvalType() {
		return false
	}
	args, otherArgs := sf.GetArgs(), fun.GetArgs()
	if len(args) != len(otherArgs) {
		return false
	}
	for i := range args {
		if !args[i].Equal(otherArgs[i]) {
			return false
		}
	}
	return true
}

// IsCorrelated implements Expression interface.
func (sf *ScalarFunction) IsCorrelated() bool {
	for _, arg := range sf.GetArgs() {
		if arg.IsCorrelated() {
			return true
		}
	}
	return false
}

// Traverse implements the TraverseDown interface.
func (sf *ScalarFunction) Traverse(action TraverseAction) (Expression, error) {
	args := sf.GetArgs()
	newArgs := make([]Expression, len(args))
	changed := false
	for i, arg := range args {
		newArg, err := arg.Traverse(action)
		if err != nil {
			return nil, err
		}
		newArgs[i] = newArg
		if newArg != arg {
			changed = true
		}
	}
	if !changed {
		return action.Transform(sf)
	}
	rebuilt, err := NewFunction(sf.FuncName, sf.RetType, newArgs...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return action.Transform(rebuilt)
}

// Eval implements Expression interface.
func (sf *ScalarFunction) Eval(row chunk.Row) (types.Datum, error) {
	args := sf.GetArgs()
	values := make([]types.Datum, len(args))
	for i, arg := range args {
		d, err := arg.Eval(row)
		if err != nil {
			return types.Datum{}, err
		}
		values[i] = d
	}
	return sf.Function.evalDatums(values)
}

// VecEval implements Expression interface.
func (sf *ScalarFunction) VecEval(input *chunk.Chunk) (*chunk.Column, error) {
	numRows := input.NumRows()
	args := sf.GetArgs()
	cols := make([]*chunk.Column, len(args))
	for i, arg := range args {
		col, err := arg.VecEval(input)
		if err != nil {
			return nil, err
		}
		if col.Len() != numRows {
			return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(sf.FuncName,
				fmt.Sprintf("argument %d produced %d rows, input has %d", i, col.Len(), numRows))
		}
		cols[i] = col
	}
	result := chunk.NewColumn(sf.RetType, numRows)
	if err := sf.Function.vecEval(cols, numRows, result); err != nil {
		return nil, errors.Trace(err)
	}
	return result, nil
}
