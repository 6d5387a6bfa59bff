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

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
	"github.com/pingcap/tipb/go-tipb"
)

// Function names.
const (
	NullIF   = "nullif"
	Ifnull   = "ifnull"
	Coalesce = "coalesce"
	IsNull   = "isnull"
	If       = "if"

	EQ     = "eq"
	NE     = "ne"
	LT     = "lt"
	LE     = "le"
	GT     = "gt"
	GE     = "ge"
	NullEQ = "nulleq"

	Plus  = "plus"
	Minus = "minus"
	Mul   = "mul"

	LogicAnd = "and"
	LogicOr  = "or"
	UnaryNot = "not"
)

// functionClass is the interface for a function which may contains multiple functions.
type functionClass interface {
	// getFunction gets a function signature by the types and the counts of given arguments.
	getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error)
}

// builtinFunc stands for a particular function signature.
type builtinFunc interface {
	// evalDatums computes one output value from the argument values of a row.
	evalDatums(args []types.Datum) (types.Datum, error)
	// vecEval evaluates the function over already evaluated argument columns.
	vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error
	getArgs() []Expression
	getRetTp() *types.FieldType
	// pbCode returns the descriptor signature this function is encoded with.
	pbCode() (tipb.ScalarFuncSig, error)
}

var funcs = map[string]functionClass{
	NullIF:   &nullIfFunctionClass{baseFunctionClass{NullIF, 2, 2}},
	Ifnull:   &ifNullFunctionClass{baseFunctionClass{Ifnull, 2, 2}},
	Coalesce: &coalesceFunctionClass{baseFunctionClass{Coalesce, 1, -1}},
	IsNull:   &isNullFunctionClass{baseFunctionClass{IsNull, 1, 1}},
	If:       &ifFunctionClass{baseFunctionClass{If, 3, 3}},

	EQ:     &compareFunctionClass{baseFunctionClass{EQ, 2, 2}},
	NE:     &compareFunctionClass{baseFunctionClass{NE, 2, 2}},
	LT:     &compareFunctionClass{baseFunctionClass{LT, 2, 2}},
	LE:     &compareFunctionClass{baseFunctionClass{LE, 2, 2}},
	GT:     &compareFunctionClass{baseFunctionClass{GT, 2, 2}},
	GE:     &compareFunctionClass{baseFunctionClass{GE, 2, 2}},
	NullEQ: &compareFunctionClass{baseFunctionClass{NullEQ, 2, 2}},

	Plus:  &arithmeticFunctionClass{baseFunctionClass{Plus, 2, 2}},
	Minus: &arithmeticFunctionClass{baseFunctionClass{Minus, 2, 2}},
	Mul:   &arithmeticFunctionClass{baseFunctionClass{Mul, 2, 2}},

	LogicAnd: &logicFunctionClass{baseFunctionClass{LogicAnd, 2, 2}},
	LogicOr:  &logicFunctionClass{baseFunctionClass{LogicOr, 2, 2}},
	UnaryNot: &logicFunctionClass{baseFunctionClass{UnaryNot, 1, 1}},
}

type baseFunctionClass struct {
	funcName string
	minArgs  int
	maxArgs  int
}

func (b *baseFunctionClass) verifyArgs(args []Expression) error {
	l := len(args)
	if l < b.minArgs || (b.maxArgs != -1 && l > b.maxArgs) {
		return exprerrors.ErrArity.GenWithStackByArgs(b.funcName, b.minArgs, l)
	}
	return nil
}

// verifyRetType checks the declared return type against the eval type the
// function produces, a NULL typed result accepts any declared type.
func (b *baseFunctionClass) verifyRetType(retType *types.FieldType, want types.EvalType) error {
	if retType == nil {
		return exprerrors.ErrTypeMismatch.GenWithStackByArgs(b.funcName, "missing return type")
	}
	if want != types.ETNull && retType.EvalType() != want {
		return exprerrors.ErrTypeMismatch.GenWithStackByArgs(b.funcName,
			fmt.Sprintf("return type %s does not match %s", retType.EvalType(), want))
	}
	return nil
}

// commonEvalType returns the eval type shared by all args, NULL typed args
// are compatible with anything.
func (b *baseFunctionClass) commonEvalType(args []Expression) (types.EvalType, error) {
	et := types.ETNull
	for i, arg := range args {
		argEt := arg.GetType().EvalType()
		if argEt == types.ETNull {
			continue
		}
		if et != types.ETNull && et != argEt {
			return et, exprerrors.ErrTypeMismatch.GenWithStackByArgs(b.funcName,
				fmt.Sprintf("argument %d is %s, expect %s", i, argEt, et))
		}
		et = argEt
	}
	return et, nil
}

type baseBuiltinFunc struct {
	name string
	args []Expression
	tp   *types.FieldType
}

func newBaseBuiltinFunc(name string, retType *types.FieldType, args []Expression) baseBuiltinFunc {
	return baseBuiltinFunc{name: name, args: args, tp: retType}
}

func (b *baseBuiltinFunc) getArgs() []Expression {
	return b.args
}

func (b *baseBuiltinFunc) getRetTp() *types.FieldType {
	return b.tp
}

// pbCode picks the signature by the return type, which is what the
// control functions and arithmetic are typed on.
func (b *baseBuiltinFunc) pbCode() (tipb.ScalarFuncSig, error) {
	return sigByEvalType(b.name, b.tp.EvalType())
}

// argsEvalType returns the eval type of the first non NULL typed argument.
func (b *baseBuiltinFunc) argsEvalType() types.EvalType {
	for _, arg := range b.args {
		if et := arg.GetType().EvalType(); et != types.ETNull {
			return et
		}
	}
	return types.ETNull
}

// vecEvalByRow is the generic column-wise loop: every row goes through
// evalDatums, so it always agrees with the row based evaluation.
func vecEvalByRow(f builtinFunc, args []*chunk.Column, numRows int, result *chunk.Column) error {
	row := make([]types.Datum, len(args))
	for i := 0; i < numRows; i++ {
		for j, col := range args {
			row[j] = col.GetDatum(i)
		}
		d, err := f.evalDatums(row)
		if err != nil {
			return err
		}
		if err := result.AppendDatum(&d); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func evalTypeCompatible(a, b types.EvalType) bool {
	return a == b || a == types.ETNull || b == types.ETNull
}

func broadcastDatum(d types.Datum, ft *types.FieldType, numRows int, name string) (*chunk.Column, error) {
	if !d.IsNull() && d.EvalType() != ft.EvalType() {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(name,
			fmt.Sprintf("value is %s, declared %s", d.EvalType(), ft.EvalType()))
	}
	col := chunk.NewColumn(ft, numRows)
	for i := 0; i < numRows; i++ {
		if err := col.AppendDatum(&d); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return col, nil
}

func datumToBool(d *types.Datum) (bool, error) {
	switch d.Kind() {
	case types.KindInt64:
		return d.GetInt64() != 0, nil
	case types.KindFloat64:
		return d.GetFloat64() != 0, nil
	case types.KindDecimal:
		return !d.GetDecimal().IsZero(), nil
	}
	return false, exprerrors.ErrIncorrectArgType.GenWithStackByArgs(fmt.Sprintf("boolean evaluation of %s", d.EvalType()))
}

func boolDatum(b bool) types.Datum {
	if b {
		return types.NewIntDatum(1)
	}
	return types.NewIntDatum(0)
}
