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
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
)

var (
	_ functionClass = &arithmeticFunctionClass{}
	_ builtinFunc   = &builtinArithmeticSig{}
)

// decimalCtx never rounds, so addition, subtraction and multiplication are exact.
var decimalCtx = apd.BaseContext.WithPrecision(0)

var arithmeticOpStr = map[string]string{
	Plus:  "+",
	Minus: "-",
	Mul:   "*",
}

type arithmeticFunctionClass struct {
	baseFunctionClass
}

func (c *arithmeticFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	et, err := c.commonEvalType(args)
	if err != nil {
		return nil, err
	}
	if et != types.ETNull && !et.IsNumber() {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(c.funcName, fmt.Sprintf("%s is not a numeric type", et))
	}
	if err := c.verifyRetType(retType, et); err != nil {
		return nil, err
	}
	if !retType.EvalType().IsNumber() && retType.EvalType() != types.ETNull {
		return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(c.funcName, fmt.Sprintf("%s is not a numeric type", retType.EvalType()))
	}
	return &builtinArithmeticSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinArithmeticSig implements +, - and *. NULL in, NULL out.
type builtinArithmeticSig struct {
	baseBuiltinFunc
}

func (b *builtinArithmeticSig) evalDatums(args []types.Datum) (types.Datum, error) {
	lhs, rhs := &args[0], &args[1]
	if lhs.IsNull() || rhs.IsNull() {
		return types.Datum{}, nil
	}
	switch lhs.Kind() {
	case types.KindInt64:
		v, err := b.evalInt(lhs.GetInt64(), rhs.GetInt64())
		if err != nil {
			return types.Datum{}, err
		}
		return types.NewIntDatum(v), nil
	case types.KindFloat64:
		v, err := b.evalReal(lhs.GetFloat64(), rhs.GetFloat64())
		if err != nil {
			return types.Datum{}, err
		}
		return types.NewFloat64Datum(v), nil
	case types.KindDecimal:
		v, err := b.evalDecimal(lhs.GetDecimal(), rhs.GetDecimal())
		if err != nil {
			return types.Datum{}, err
		}
		return types.NewDecimalDatum(v), nil
	}
	return types.Datum{}, exprerrors.ErrIncorrectArgType.GenWithStackByArgs(arithmeticOpStr[b.name])
}

func (b *builtinArithmeticSig) evalInt(a, c int64) (int64, error) {
	switch b.name {
	case Plus:
		if (a > 0 && c > math.MaxInt64-a) || (a < 0 && c < math.MinInt64-a) {
			return 0, b.overflow("BIGINT", a, c)
		}
		return a + c, nil
	case Minus:
		if (a >= 0 && c < 0 && a > math.MaxInt64+c) || (a < 0 && c > 0 && a < math.MinInt64+c) {
			return 0, b.overflow("BIGINT", a, c)
		}
		return a - c, nil
	default:
		res := a * c
		if a != 0 && (res/a != c || (a == -1 && c == math.MinInt64) || (c == -1 && a == math.MinInt64)) {
			return 0, b.overflow("BIGINT", a, c)
		}
		return res, nil
	}
}

func (b *builtinArithmeticSig) evalReal(a, c float64) (float64, error) {
	var res float64
	switch b.name {
	case Plus:
		res = a + c
	case Minus:
		res = a - c
	default:
		res = a * c
	}
	if math.IsInf(res, 0) {
		return 0, b.overflow("DOUBLE", a, c)
	}
	return res, nil
}

func (b *builtinArithmeticSig) evalDecimal(a, c *apd.Decimal) (*apd.Decimal, error) {
	res := new(apd.Decimal)
	var err error
	switch b.name {
	case Plus:
		_, err = decimalCtx.Add(res, a, c)
	case Minus:
		_, err = decimalCtx.Sub(res, a, c)
	default:
		_, err = decimalCtx.Mul(res, a, c)
	}
	if err != nil {
		return nil, b.overflow("DECIMAL", a, c)
	}
	return res, nil
}

func (b *builtinArithmeticSig) overflow(tp string, a, c any) error {
	return exprerrors.ErrOverflow.GenWithStackByArgs(tp, fmt.Sprintf("(%v %s %v)", a, arithmeticOpStr[b.name], c))
}

func (b *builtinArithmeticSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	left, right := args[0], args[1]
	if left.RetType().EvalType() != types.ETInt || right.RetType().EvalType() != types.ETInt ||
		b.tp.EvalType() != types.ETInt {
		return vecEvalByRow(b, args, numRows, result)
	}
	li, ri := left.Int64s(), right.Int64s()
	for i := 0; i < numRows; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			result.AppendNull()
			continue
		}
		v, err := b.evalInt(li[i], ri[i])
		if err != nil {
			return errors.Trace(err)
		}
		result.AppendInt64(v)
	}
	return nil
}
