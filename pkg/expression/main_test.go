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
	"testing"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/codec"
	"github.com/pingcap/tipb/go-tipb"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	intTp  = types.NewFieldType(types.TypeLonglong)
	realTp = types.NewFieldType(types.TypeDouble)
	strTp  = types.NewFieldType(types.TypeVarchar)
	decTp  = types.NewFieldType(types.TypeNewDecimal)
)

func pbColumnRef(idx int64, ft *types.FieldType) *tipb.Expr {
	return &tipb.Expr{Tp: tipb.ExprType_ColumnRef, Val: codec.EncodeInt(nil, idx), FieldType: ToPBFieldType(ft)}
}

func pbInt64(v int64) *tipb.Expr {
	return &tipb.Expr{Tp: tipb.ExprType_Int64, Val: codec.EncodeInt(nil, v), FieldType: ToPBFieldType(intTp)}
}

func pbNull() *tipb.Expr {
	return &tipb.Expr{Tp: tipb.ExprType_Null}
}

func pbFunc(sig tipb.ScalarFuncSig, ft *types.FieldType, children ...*tipb.Expr) *tipb.Expr {
	return &tipb.Expr{Tp: tipb.ExprType_ScalarFunc, Sig: sig, FieldType: ToPBFieldType(ft), Children: children}
}

// pbNullIf encodes NULLIF(left, right) over int operands as IF(left <=> right, NULL, left).
func pbNullIf(ft *types.FieldType, left, right *tipb.Expr) *tipb.Expr {
	cond := pbFunc(tipb.ScalarFuncSig_NullEQInt, intTp, left, right)
	return pbFunc(tipb.ScalarFuncSig_IfInt, ft, cond, pbNull(), left)
}

// newChunk builds a chunk whose column i holds cols[i], nil stands for NULL.
func newChunk(t *testing.T, fts []*types.FieldType, cols ...[]any) *chunk.Chunk {
	columns := make([]*chunk.Column, 0, len(cols))
	for i, values := range cols {
		col, err := chunk.NewColumnWithDatums(fts[i], types.MakeDatums(values...)...)
		require.NoError(t, err)
		columns = append(columns, col)
	}
	chk, err := chunk.NewChunkFromColumns(columns...)
	require.NoError(t, err)
	return chk
}

func columnDatums(col *chunk.Column) []types.Datum {
	ds := make([]types.Datum, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		ds = append(ds, col.GetDatum(i))
	}
	return ds
}

// requireVecMatchesRow checks that the vectorized result is the row by row result.
func requireVecMatchesRow(t *testing.T, expr Expression, input *chunk.Chunk) []types.Datum {
	col, err := expr.VecEval(input)
	require.NoError(t, err)
	require.Equal(t, input.NumRows(), col.Len())
	require.True(t, expr.GetType().Equal(col.RetType()))
	vec := columnDatums(col)
	for i := 0; i < input.NumRows(); i++ {
		d, err := expr.Eval(input.GetRow(i))
		require.NoError(t, err)
		require.True(t, d.Equal(&vec[i]), "row %d of %s: vectorized %s, row %s", i, expr, vec[i], d)
	}
	return vec
}

func requireDatums(t *testing.T, expected []any, got []types.Datum) {
	want := types.MakeDatums(expected...)
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Equal(&got[i]), "row %d: want %s, got %s", i, want[i], got[i])
	}
}
