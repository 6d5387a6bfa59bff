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

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/codec"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
	"github.com/pingcap/tipb/go-tipb"
)

// funcSigs lists, per function, the descriptor signature for each operand
// eval type. NULLIF has no signature of its own and travels as IF.
var funcSigs = map[string]map[types.EvalType]tipb.ScalarFuncSig{
	// compare op
	LT: {
		types.ETInt: tipb.ScalarFuncSig_LTInt, types.ETReal: tipb.ScalarFuncSig_LTReal,
		types.ETDecimal: tipb.ScalarFuncSig_LTDecimal, types.ETString: tipb.ScalarFuncSig_LTString,
	},
	LE: {
		types.ETInt: tipb.ScalarFuncSig_LEInt, types.ETReal: tipb.ScalarFuncSig_LEReal,
		types.ETDecimal: tipb.ScalarFuncSig_LEDecimal, types.ETString: tipb.ScalarFuncSig_LEString,
	},
	GT: {
		types.ETInt: tipb.ScalarFuncSig_GTInt, types.ETReal: tipb.ScalarFuncSig_GTReal,
		types.ETDecimal: tipb.ScalarFuncSig_GTDecimal, types.ETString: tipb.ScalarFuncSig_GTString,
	},
	GE: {
		types.ETInt: tipb.ScalarFuncSig_GEInt, types.ETReal: tipb.ScalarFuncSig_GEReal,
		types.ETDecimal: tipb.ScalarFuncSig_GEDecimal, types.ETString: tipb.ScalarFuncSig_GEString,
	},
	EQ: {
		types.ETInt: tipb.ScalarFuncSig_EQInt, types.ETReal: tipb.ScalarFuncSig_EQReal,
		types.ETDecimal: tipb.ScalarFuncSig_EQDecimal, types.ETString: tipb.ScalarFuncSig_EQString,
	},
	NE: {
		types.ETInt: tipb.ScalarFuncSig_NEInt, types.ETReal: tipb.ScalarFuncSig_NEReal,
		types.ETDecimal: tipb.ScalarFuncSig_NEDecimal, types.ETString: tipb.ScalarFuncSig_NEString,
	},
	NullEQ: {
		types.ETInt: tipb.ScalarFuncSig_NullEQInt, types.ETReal: tipb.ScalarFuncSig_NullEQReal,
		types.ETDecimal: tipb.ScalarFuncSig_NullEQDecimal, types.ETString: tipb.ScalarFuncSig_NullEQString,
	},

	// logical op
	LogicAnd: {types.ETInt: tipb.ScalarFuncSig_LogicalAnd},
	LogicOr:  {types.ETInt: tipb.ScalarFuncSig_LogicalOr},
	UnaryNot: {
		types.ETInt: tipb.ScalarFuncSig_UnaryNotInt, types.ETReal: tipb.ScalarFuncSig_UnaryNotReal,
		types.ETDecimal: tipb.ScalarFuncSig_UnaryNotDecimal,
	},

	// arithmetic operator
	Plus: {
		types.ETInt: tipb.ScalarFuncSig_PlusInt, types.ETReal: tipb.ScalarFuncSig_PlusReal,
		types.ETDecimal: tipb.ScalarFuncSig_PlusDecimal,
	},
	Minus: {
		types.ETInt: tipb.ScalarFuncSig_MinusInt, types.ETReal: tipb.ScalarFuncSig_MinusReal,
		types.ETDecimal: tipb.ScalarFuncSig_MinusDecimal,
	},
	Mul: {
		types.ETInt: tipb.ScalarFuncSig_MultiplyInt, types.ETReal: tipb.ScalarFuncSig_MultiplyReal,
		types.ETDecimal: tipb.ScalarFuncSig_MultiplyDecimal,
	},

	// control operator
	If: {
		types.ETInt: tipb.ScalarFuncSig_IfInt, types.ETReal: tipb.ScalarFuncSig_IfReal,
		types.ETDecimal: tipb.ScalarFuncSig_IfDecimal, types.ETString: tipb.ScalarFuncSig_IfString,
	},
	Ifnull: {
		types.ETInt: tipb.ScalarFuncSig_IfNullInt, types.ETReal: tipb.ScalarFuncSig_IfNullReal,
		types.ETDecimal: tipb.ScalarFuncSig_IfNullDecimal, types.ETString: tipb.ScalarFuncSig_IfNullString,
	},

	// other operator
	IsNull: {
		types.ETInt: tipb.ScalarFuncSig_IntIsNull, types.ETReal: tipb.ScalarFuncSig_RealIsNull,
		types.ETDecimal: tipb.ScalarFuncSig_DecimalIsNull, types.ETString: tipb.ScalarFuncSig_StringIsNull,
	},
	Coalesce: {
		types.ETInt: tipb.ScalarFuncSig_CoalesceInt, types.ETReal: tipb.ScalarFuncSig_CoalesceReal,
		types.ETDecimal: tipb.ScalarFuncSig_CoalesceDecimal, types.ETString: tipb.ScalarFuncSig_CoalesceString,
	},
}

// distFuncs maps a descriptor signature to the function it builds.
var distFuncs = func() map[tipb.ScalarFuncSig]string {
	m := make(map[tipb.ScalarFuncSig]string)
	for name, sigs := range funcSigs {
		for _, sig := range sigs {
			m[sig] = name
		}
	}
	return m
}()

// sigByEvalType returns the signature of funcName over et. NULL typed
// operands are encoded with the int signature.
func sigByEvalType(funcName string, et types.EvalType) (tipb.ScalarFuncSig, error) {
	if et == types.ETNull {
		et = types.ETInt
	}
	sig, ok := funcSigs[funcName][et]
	if !ok {
		return 0, exprerrors.ErrNotSupportedYet.GenWithStackByArgs(fmt.Sprintf("encoding %s over %s", funcName, et))
	}
	return sig, nil
}

// PbTypeToFieldType converts tipb.FieldType to FieldType
func PbTypeToFieldType(tp *tipb.FieldType) *types.FieldType {
	return types.NewFieldTypeWithLen(byte(tp.Tp), int(tp.Flen), int(tp.Decimal))
}

// PBToExprs converts pb structures to expressions.
func PBToExprs(pbExprs []*tipb.Expr, fieldTps []*types.FieldType) ([]Expression, error) {
	exprs := make([]Expression, 0, len(pbExprs))
	for _, expr := range pbExprs {
		e, err := PBToExpr(expr, fieldTps)
		if err != nil {
			return nil, errors.Trace(err)
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// PBToExpr converts pb structure to expression. tps are the types of the
// input columns a ColumnRef may address.
func PBToExpr(expr *tipb.Expr, tps []*types.FieldType) (Expression, error) {
	if expr == nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs("nil expression")
	}
	switch expr.Tp {
	case tipb.ExprType_ColumnRef:
		_, offset, err := codec.DecodeInt(expr.Val)
		if err != nil {
			return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs("invalid column offset")
		}
		if offset < 0 || offset >= int64(len(tps)) {
			return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(
				errors.Errorf("column offset %d out of range, input has %d columns", offset, len(tps)).Error())
		}
		return &Column{Index: int(offset), RetType: tps[offset]}, nil
	case tipb.ExprType_Null:
		ft := types.NewFieldType(types.TypeNull)
		if expr.FieldType != nil {
			ft = PbTypeToFieldType(expr.FieldType)
		}
		return NewNullWithFieldType(ft), nil
	case tipb.ExprType_Int64:
		return convertInt(expr.Val, expr.FieldType)
	case tipb.ExprType_Uint64:
		return convertUint(expr.Val, expr.FieldType)
	case tipb.ExprType_String:
		return convertString(expr.Val, expr.FieldType, types.TypeVarString)
	case tipb.ExprType_Bytes:
		return convertString(expr.Val, expr.FieldType, types.TypeString)
	case tipb.ExprType_Float32:
		return convertFloat(expr.Val, true)
	case tipb.ExprType_Float64:
		return convertFloat(expr.Val, false)
	case tipb.ExprType_MysqlDecimal:
		return convertDecimal(expr.Val, expr.FieldType)
	}
	if expr.Tp != tipb.ExprType_ScalarFunc {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs("unknown expression type " + expr.Tp.String())
	}
	funcName, ok := distFuncs[expr.Sig]
	if !ok {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs("unknown signature " + expr.Sig.String())
	}
	if expr.FieldType == nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs("function " + funcName + " has no return type")
	}
	args := make([]Expression, 0, len(expr.Children))
	for _, child := range expr.Children {
		arg, err := PBToExpr(child, tps)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	retType := PbTypeToFieldType(expr.FieldType)
	if funcName == If {
		if operands, ok := nullIfOperands(args); ok {
			return NewFunction(NullIF, retType, operands...)
		}
	}
	return NewFunction(funcName, retType, args...)
}

// nullIfOperands recognizes IF(a <=> b, NULL, a) and returns a and b.
func nullIfOperands(args []Expression) ([]Expression, bool) {
	if len(args) != 3 || !IsNullConstant(args[1]) {
		return nil, false
	}
	cond, ok := args[0].(*ScalarFunction)
	if !ok || cond.FuncName != NullEQ {
		return nil, false
	}
	operands := cond.GetArgs()
	if !operands[0].Equal(args[2]) {
		return nil, false
	}
	return operands, true
}

func fieldTypeOr(tp *tipb.FieldType, def byte) *types.FieldType {
	if tp == nil {
		return types.NewFieldType(def)
	}
	return PbTypeToFieldType(tp)
}

// newPBConstant rejects a declared type that cannot hold the value.
func newPBConstant(d types.Datum, ft *types.FieldType) (*Constant, error) {
	if d.EvalType() != ft.EvalType() {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(
			errors.Errorf("%s literal %s declared as %s", d.EvalType(), d, ft).Error())
	}
	return &Constant{Value: d, RetType: ft}, nil
}

func convertInt(val []byte, tp *tipb.FieldType) (*Constant, error) {
	_, i, err := codec.DecodeInt(val)
	if err != nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(errors.Errorf("invalid int % x", val).Error())
	}
	return newPBConstant(types.NewIntDatum(i), fieldTypeOr(tp, types.TypeLonglong))
}

func convertUint(val []byte, tp *tipb.FieldType) (*Constant, error) {
	_, u, err := codec.DecodeUint(val)
	if err != nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(errors.Errorf("invalid uint % x", val).Error())
	}
	if u > math.MaxInt64 {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(errors.Errorf("uint %d overflows BIGINT", u).Error())
	}
	return newPBConstant(types.NewIntDatum(int64(u)), fieldTypeOr(tp, types.TypeLonglong))
}

func convertString(val []byte, tp *tipb.FieldType, def byte) (*Constant, error) {
	return newPBConstant(types.NewStringDatum(string(val)), fieldTypeOr(tp, def))
}

func convertFloat(val []byte, f32 bool) (*Constant, error) {
	_, f, err := codec.DecodeFloat(val)
	if err != nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(errors.Errorf("invalid float % x", val).Error())
	}
	if f32 {
		return &Constant{Value: types.NewFloat64Datum(float64(float32(f))), RetType: types.NewFieldType(types.TypeFloat)}, nil
	}
	return &Constant{Value: types.NewFloat64Datum(f), RetType: types.NewFieldType(types.TypeDouble)}, nil
}

// convertDecimal reads a decimal from its text form.
func convertDecimal(val []byte, tp *tipb.FieldType) (*Constant, error) {
	dec, err := types.ParseDecimal(string(val))
	if err != nil {
		return nil, exprerrors.ErrMalformedDescriptor.GenWithStackByArgs(errors.Errorf("invalid decimal %q", val).Error())
	}
	return newPBConstant(types.NewDecimalDatum(dec), fieldTypeOr(tp, types.TypeNewDecimal))
}
