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
	_ functionClass = &logicFunctionClass{}
	_ builtinFunc   = &builtinLogicSig{}
)

type logicFunctionClass struct {
	baseFunctionClass
}

func (c *logicFunctionClass) getFunction(retType *types.FieldType, args []Expression) (builtinFunc, error) {
	if err := c.verifyArgs(args); err != nil {
		return nil, err
	}
	for i, arg := range args {
		if et := arg.GetType().EvalType(); et != types.ETNull && !et.IsNumber() {
			return nil, exprerrors.ErrTypeMismatch.GenWithStackByArgs(c.funcName,
				fmt.Sprintf("argument %d is %s, expect a numeric type", i, et))
		}
	}
	if err := c.verifyRetType(retType, types.ETInt); err != nil {
		return nil, err
	}
	return &builtinLogicSig{newBaseBuiltinFunc(c.funcName, retType, args)}, nil
}

// builtinLogicSig implements AND, OR and NOT with Kleene logic: FALSE AND
// NULL is FALSE, TRUE OR NULL is TRUE, any other NULL operand gives NULL.
type builtinLogicSig struct {
	baseBuiltinFunc
}

// pbCode returns the untyped AND and OR signatures, NOT is typed on its operand.
func (b *builtinLogicSig) pbCode() (tipb.ScalarFuncSig, error) {
	if b.name == UnaryNot {
		return sigByEvalType(b.name, b.argsEvalType())
	}
	return sigByEvalType(b.name, types.ETInt)
}

func (b *builtinLogicSig) evalDatums(args []types.Datum) (types.Datum, error) {
	if b.name == UnaryNot {
		if args[0].IsNull() {
			return types.Datum{}, nil
		}
		v, err := datumToBool(&args[0])
		if err != nil {
			return types.Datum{}, err
		}
		return boolDatum(!v), nil
	}

	// dominant is the value deciding the result on its own.
	dominant := b.name == LogicOr
	hasNull := false
	for i := range args {
		if args[i].IsNull() {
			hasNull = true
			continue
		}
		v, err := datumToBool(&args[i])
		if err != nil {
			return types.Datum{}, err
		}
		if v == dominant {
			return boolDatum(dominant), nil
		}
	}
	if hasNull {
		return types.Datum{}, nil
	}
	return boolDatum(!dominant), nil
}

func (b *builtinLogicSig) vecEval(args []*chunk.Column, numRows int, result *chunk.Column) error {
	return vecEvalByRow(b, args, numRows, result)
}
