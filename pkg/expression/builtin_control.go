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
	"github.com/pingcap/tipb/go-tipb"
)

var (
	_ functionClass = &nullIfFunctionClass{}
	_ functionClass = &ifNullFunctionClass{}
	_ functionClass = &coalesceFunctionClass{}
	_ functionClass = &ifFunctionClass{}
)

var (
	_ builtinFunc = &builtinNullIfSig{}
	_ builtinFunc = &builtinIfNullSig{}
	_ builtinFunc = &builtinCoalesceSig{}
	_ builtinFunc = &builtinIfSig{}
)

type nullIfFunctionClass struct {
	baseFunctionClass
}

func (c *nullIfFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	if _, err := c.commonEvalType(args); err != nil {
		return nil, err
	}
	// The result is always taken from the left operand.
	if err := c.verifyRetType(retType, args[0].GetType().EvalType()); err != nil {
		return nil, err
	}
	return &builtinNullIfSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinNullIfSig returns NULL when both operands are identical, NULL and
// NULL included, and the left operand otherwise.
type builtinNullIfSig struct {
	baseBuiltinFunc
}

// pbCode returns the IF signature, NULLIF(a, b) is encoded as
// IF(a <=> b, NULL, a).
func (b *builtinNullIfSig) pbCode() (tipb.ScalarFuncSig, error) {
	return sigByEvalType(If, b.tp.EvalType())
}

func (*builtinNullIfSig) evalDatums(args []types.Datum) (types.Datum, error) {
	if args[0].Equal(&args[1]) {
		return types.Datum{}, nil
	}
	return args[0], nil
}

func (b *builtinNullIfSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	left, right := args[0], args[1]
	// A NULL typed operand on either side makes the typed accessors unusable.
	if left.RetType().EvalType() == types.ETNull || right.RetType().EvalType() == types.ETNull {
		return vecEvalByRow(b, args, numRows, result)
	}
	switch b.tp.EvalType() {
	case types.ETInt:
		for i := 0; i < numRows; i++ {
			switch {
			case left.IsNull(i):
				result.AppendNull()
			case !right.IsNull(i) && left.GetInt64(i) == right.GetInt64(i):
				result.AppendNull()
			default:
				result.AppendInt64(left.GetInt64(i))
			}
		}
	case types.ETReal:
		for i := 0; i < numRows; i++ {
			switch {
			case left.IsNull(i):
				result.AppendNull()
			case !right.IsNull(i) && left.GetFloat64(i) == right.GetFloat64(i):
				result.AppendNull()
			default:
				result.AppendFloat64(left.GetFloat64(i))
			}
		}
	case types.ETString:
		for i := 0; i < numRows; i++ {
			switch {
			case left.IsNull(i):
				result.AppendNull()
			case !right.IsNull(i) && left.GetString(i) == right.GetString(i):
				result.AppendNull()
			default:
				result.AppendString(left.GetString(i))
			}
		}
	case types.ETDecimal:
		for i := 0; i < numRows; i++ {
			switch {
			case left.IsNull(i):
				result.AppendNull()
			case !right.IsNull(i) && left.GetDecimal(i).Cmp(right.GetDecimal(i)) == 0:
				result.AppendNull()
			default:
				result.AppendDecimal(left.GetDecimal(i))
			}
		}
	default:
		return vecEvalByRow(b, args, numRows, result)
	}
	return nil
}

type ifNullFunctionClass struct {
	baseFunctionClass
}

func (c *ifNullFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	et, err := c.commonEvalType(args)
	if err != nil {
		return nil, err
	}
	if err := c.verifyRetType(retType, et); err != nil {
		return nil, err
	}
	return &builtinIfNullSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

type builtinIfNullSig struct {
	baseBuiltinFunc
}

func (*builtinIfNullSig) evalDatums(args []types.Datum) (types.Datum, error) {
	if !args[0].IsNull() {
		return args[0], nil
	}
	return args[1], nil
}

func (b *builtinIfNullSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	return vecEvalByRow(b, args, numRows, result)
}

type coalesceFunctionClass struct {
	baseFunctionClass
}

func (c *coalesceFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	et, err := c.commonEvalType(args)
	if err != nil {
		return nil, err
	}
	if err := c.verifyRetType(retType, et); err != nil {
		return nil, err
	}
	return &builtinCoalesceSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinCoalesceSig returns the first non-NULL argument.
type builtinCoalesceSig struct {
	baseBuiltinFunc
}

func (*builtinCoalesceSig) evalDatums(args []types.Datum) (types.Datum, error) {
	for _, arg := range args {
		if !arg.IsNull() {
			return arg, nil
		}
	}
	return types.Datum{}, nil
}

func (b *builtinCoalesceSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	return vecEvalByRow(b, args, numRows, result)
}

type ifFunctionClass struct {
	baseFunctionClass
}

func (c *ifFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	if et := args[0].GetType().EvalType(); et != types.ETNull && !et.IsNumber() {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(c.funcName,
			fmt.Sprintf("condition is %s, expect a numeric type", et))
	}
	et, err := c.commonEvalType(args[1:])
	if err != nil {
		return nil, err
	}
	if err := c.verifyRetType(retType, et); err != nil {
		return nil, err
	}
	return &builtinIfSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinIfSig returns the second argument when the condition is true and
// the third one when it is false or NULL.
type builtinIfSig struct {
	baseBuiltinFunc
}

func (*builtinIfSig) evalDatums(args []types.Datum) (types.Datum, error) {
	if args[0].IsNull() {
		return args[2], nil
	}
	cond, err := datumToBool(&args[0])
	if err != nil {
		return types.Datum{}, err
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func (b *builtinIfSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	return vecEvalByRow(b, args, numRows, result)
}
