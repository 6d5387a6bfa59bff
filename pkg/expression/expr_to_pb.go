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
	"github.com/likzn/risingwave/pkg/util/codec"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/errors"
	"github.com/pingcap/tipb/go-tipb"
)

// ExpressionsToPBList converts expressions to tipb.Expr list.
func ExpressionsToPBList(exprs []Expression) ([]*tipb.Expr, error) {
	pbExprs := make([]*tipb.Expr, 0, len(exprs))
	for _, expr := range exprs {
		v, err := ExprToPB(expr)
		if err != nil {
			return nil, errors.Trace(err)
		}
		pbExprs = append(pbExprs, v)
	}
	return pbExprs, nil
}

// ExprToPB converts Expression to its descriptor. Correlated columns have
// no descriptor form and are rejected.
func ExprToPB(expr Expression) (*tipb.Expr, error) {
	switch x := expr.(type) {
	case *Constant:
		return constantToPBExpr(x)
	case *CorrelatedColumn:
		return nil, exprerrors.ErrNotSupportedYet.GenWithStackByArgs("encoding correlated column " + x.String())
	case *Column:
		return columnToPBExpr(x), nil
	case *ScalarFunction:
		return scalarFuncToPBExpr(x)
	}
	return nil, exprerrors.ErrNotSupportedYet.GenWithStackByArgs(expr.String())
}

func constantToPBExpr(con *Constant) (*tipb.Expr, error) {
	var (
		tp  tipb.ExprType
		val []byte
		ft  = con.GetType()
		d   = con.Value
	)
	switch d.Kind() {
	case types.KindNull:
		tp = tipb.ExprType_Null
	case types.KindInt64:
		tp = tipb.ExprType_Int64
		val = codec.EncodeInt(nil, d.GetInt64())
	case types.KindString:
		tp = tipb.ExprType_String
		if ft.GetType() == types.TypeString {
			tp = tipb.ExprType_Bytes
		}
		val = []byte(d.GetString())
	case types.KindFloat64:
		tp = tipb.ExprType_Float64
		if ft.GetType() == types.TypeFloat {
			tp = tipb.ExprType_Float32
		}
		val = codec.EncodeFloat(nil, d.GetFloat64())
	case types.KindDecimal:
		tp = tipb.ExprType_MysqlDecimal
		val = []byte(d.GetDecimal().String())
	default:
		return nil, exprerrors.ErrNotSupportedYet.GenWithStackByArgs("encoding constant " + con.String())
	}
	return &tipb.Expr{Tp: tp, Val: val, FieldType: ToPBFieldType(ft)}, nil
}

// ToPBFieldType converts *types.FieldType to *tipb.FieldType.
func ToPBFieldType(ft *types.FieldType) *tipb.FieldType {
	return &tipb.FieldType{
		Tp:      int32(ft.GetType()),
		Flen:    int32(ft.GetFlen()),
		Decimal: int32(ft.GetDecimal()),
	}
}

func columnToPBExpr(column *Column) *tipb.Expr {
	return &tipb.Expr{
		Tp:        tipb.ExprType_ColumnRef,
		Val:       codec.EncodeInt(nil, int64(column.Index)),
		FieldType: ToPBFieldType(column.RetType),
	}
}

func scalarFuncToPBExpr(expr *ScalarFunction) (*tipb.Expr, error) {
	sig, err := expr.Function.pbCode()
	if err != nil {
		return nil, err
	}
	args := expr.GetArgs()
	if expr.FuncName == NullIF {
		cond, err := NewFunction(NullEQ, types.NewFieldType(types.TypeLonglong), args[0], args[1])
		if err != nil {
			return nil, errors.Trace(err)
		}
		args = []Expression{cond, NewNull(), args[0]}
	}
	children, err := ExpressionsToPBList(args)
	if err != nil {
		return nil, err
	}
	return &tipb.Expr{
		Tp:        tipb.ExprType_ScalarFunc,
		Sig:       sig,
		Children:  children,
		FieldType: ToPBFieldType(expr.RetType),
	}, nil
}
