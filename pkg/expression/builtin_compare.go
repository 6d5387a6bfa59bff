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
	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/pingcap/errors"
	"github.com/pingcap/tipb/go-tipb"
)

var (
	_ functionClass = &compareFunctionClass{}
	_ functionClass = &isNullFunctionClass{}
)

var (
	_ builtinFunc = &builtinCompareSig{}
	_ builtinFunc = &builtinIsNullSig{}
)

type compareFunctionClass struct {
	baseFunctionClass
}

func (c *compareFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	if _, err := c.commonEvalType(args); err != nil {
		return nil, err
	}
	if err := c.verifyRetType(retType, types.ETInt); err != nil {
		return nil, err
	}
	return &builtinCompareSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinCompareSig compares two values. Every operator but NullEQ yields
// NULL if either side is NULL.
type builtinCompareSig struct {
	baseBuiltinFunc
}

// pbCode is typed on the compared values.
func (b *builtinCompareSig) pbCode() (tipb.ScalarFuncSig, error) {
	return sigByEvalType(b.name, b.argsEvalType())
}

func (b *builtinCompareSig) evalDatums(args []types.Datum) (types.Datum, error) {
	lhs, rhs := &args[0], &args[1]
	if b.name == NullEQ {
		switch {
		case lhs.IsNull() && rhs.IsNull():
			return boolDatum(true), nil
		case lhs.IsNull() || rhs.IsNull():
			return boolDatum(false), nil
		}
	} else if lhs.IsNull() || rhs.IsNull() {
		return types.Datum{}, nil
	}
	res, err := lhs.Compare(rhs)
	if err != nil {
		return types.Datum{}, errors.Trace(err)
	}
	return boolDatum(compareResult(b.name, res)), nil
}

func compareResult(op string, res int) bool {
	switch op {
	case LT:
		return res < 0
	case LE:
		return res <= 0
	case GT:
		return res > 0
	case GE:
		return res >= 0
	case NE:
		return res != 0
	}
	// EQ and NullEQ
	return res == 0
}

func (b *builtinCompareSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	left, right := args[0], args[1]
	if left.RetType().EvalType() != types.ETInt || right.RetType().EvalType() != types.ETInt {
		return vecEvalByRow(b, args, numRows, result)
	}
	li, ri := left.Int64s(), right.Int64s()
	for i := 0; i < numRows; i++ {
		lNull, rNull := left.IsNull(i), right.IsNull(i)
		if lNull || rNull {
			if b.name != NullEQ {
				result.AppendNull()
			} else if lNull && rNull {
				result.AppendInt64(1)
			} else {
				result.AppendInt64(0)
			}
			continue
		}
		var res int
		switch {
		case li[i] < ri[i]:
			res = -1
		case li[i] > ri[i]:
			res = 1
		}
		if compareResult(b.name, res) {
			result.AppendInt64(1)
		} else {
			result.AppendInt64(0)
		}
	}
	return nil
}

type isNullFunctionClass struct {
	baseFunctionClass
}

func (c *isNullFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	if err := c.verifyRetType(retType, types.ETInt); err != nil {
		return nil, err
	}
	return &builtinIsNullSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

type builtinIsNullSig struct {
	baseBuiltinFunc
}

func (b *builtinIsNullSig) pbCode() (tipb.ScalarFuncSig, error) {
	return sigByEvalType(b.name, b.argsEvalType())
}

func (*builtinIsNullSig) evalDatums(args []types.Datum) (types.Datum, error) {
	return boolDatum(args[0].IsNull()), nil
}

func (*builtinIsNullSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	for i := 0; i < numRows; i++ {
		if args[0].IsNull(i) {
			result.AppendInt64(1)
		} else {
			result.AppendInt64(0)
		}
	}
	return nil
}
