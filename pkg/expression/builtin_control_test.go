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
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/pingcap/tipb/go-tipb"
	"github.com/stretchr/testify/require"
)

func TestNullIfFromDescriptor(t *testing.T) {
	desc := pbNullIf(intTp, pbColumnRef(0, intTp), pbColumnRef(1, intTp))
	expr, err := PBToExpr(desc, []*types.FieldType{intTp, intTp})
	require.NoError(t, err)
	require.Equal(t, "nullif($0, $1)", expr.String())

	input := newChunk(t, []*types.FieldType{intTp, intTp},
		[]any{2, 2, 4, 3},
		[]any{1, 3, 4, 3},
	)
	got := requireVecMatchesRow(t, expr, input)
	requireDatums(t, []any{2, 2, nil, nil}, got)
}

func TestNullIfNulls(t *testing.T) {
	expr, err := NewNullIf(intTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.NoError(t, err)
	input := newChunk(t, []*types.FieldType{intTp, intTp},
		[]any{nil, nil, 1, 5},
		[]any{nil, 1, nil, 5},
	)
	got := requireVecMatchesRow(t, expr, input)
	// NULL vs NULL is NULL, NULL vs 1 keeps the NULL left, 1 vs NULL keeps 1.
	requireDatums(t, []any{nil, nil, 1, nil}, got)

	// NULL typed operands take the row by row path.
	expr, err = NewNullIf(intTp, NewColumn(0, intTp), NewNull())
	require.NoError(t, err)
	got = requireVecMatchesRow(t, expr, input)
	requireDatums(t, []any{nil, nil, 1, 5}, got)

	expr, err = NewNullIf(intTp, NewNull(), NewNull())
	require.NoError(t, err)
	got = requireVecMatchesRow(t, expr, input)
	requireDatums(t, []any{nil, nil, nil, nil}, got)
}

func TestNullIfTypes(t *testing.T) {
	d1, err := types.ParseDecimal("1.10")
	require.NoError(t, err)
	d2, err := types.ParseDecimal("1.1")
	require.NoError(t, err)
	d3, err := types.ParseDecimal("2")
	require.NoError(t, err)

	tests := []struct {
		ft          *types.FieldType
		left, right []any
		expect      []any
	}{
		{realTp, []any{1.5, 2.5, nil}, []any{1.5, 0.5, 3.0}, []any{nil, 2.5, nil}},
		{strTp, []any{"a", "b", ""}, []any{"a", "c", nil}, []any{nil, "b", ""}},
		{decTp, []any{d1, d3}, []any{d2, d1}, []any{nil, d3}},
	}
	for _, tt := range tests {
		expr, err := NewNullIf(tt.ft, NewColumn(0, tt.ft), NewColumn(1, tt.ft))
		require.NoError(t, err)
		input := newChunk(t, []*types.FieldType{tt.ft, tt.ft}, tt.left, tt.right)
		got := requireVecMatchesRow(t, expr, input)
		requireDatums(t, tt.expect, got)
	}
}

func TestNullIfArity(t *testing.T) {
	tps := []*types.FieldType{intTp, intTp, intTp}
	for _, n := range []int{0, 1, 3} {
		args := make([]Expression, 0, n)
		children := make([]*tipb.Expr, 0, n)
		for i := 0; i < n; i++ {
			args = append(args, NewColumn(i, intTp))
			children = append(children, pbColumnRef(int64(i), intTp))
		}
		_, err := NewFunction(NullIF, intTp, args...)
		require.True(t, exprerrors.ErrArity.Equal(err), "arity %d: %v", n, err)
		_, err = PBToExpr(pbFunc(tipb.ScalarFuncSig_NullEQInt, intTp, children...), tps)
		require.True(t, exprerrors.ErrArity.Equal(err), "arity %d: %v", n, err)
	}
	_, err := PBToExpr(pbFunc(tipb.ScalarFuncSig_IfInt, intTp, pbColumnRef(0, intTp), pbColumnRef(1, intTp)), tps)
	require.True(t, exprerrors.ErrArity.Equal(err))
	_, err = PBToExpr(pbNullIf(intTp, pbColumnRef(0, intTp), pbColumnRef(2, intTp)), tps)
	require.NoError(t, err)
}

func TestIf(t *testing.T) {
	expr, err := NewFunction(If, strTp, NewColumn(0, intTp), NewStrConst("yes"), NewColumn(1, strTp))
	require.NoError(t, err)
	input := newChunk(t, []*types.FieldType{intTp, strTp}, []any{1, 0, nil}, []any{"a", "b", "c"})
	requireDatums(t, []any{"yes", "b", "c"}, requireVecMatchesRow(t, expr, input))

	_, err = NewFunction(If, strTp, NewColumn(1, strTp), NewStrConst("yes"), NewColumn(1, strTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
	_, err = NewFunction(If, strTp, NewColumn(0, intTp), NewInt64Const(1), NewColumn(1, strTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
}

func TestNullIfTypeCheck(t *testing.T) {
	_, err := NewNullIf(intTp, NewColumn(0, intTp), NewColumn(1, strTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))

	_, err = NewNullIf(strTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))

	_, err = NewNullIf(nil, NewColumn(0, intTp), NewColumn(1, intTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))

	// a vectorized input that disagrees with the declared type is caught
	expr, err := NewNullIf(intTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.NoError(t, err)
	input := newChunk(t, []*types.FieldType{strTp, intTp}, []any{"x"}, []any{1})
	_, err = expr.VecEval(input)
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
}

func TestIfNullCoalesce(t *testing.T) {
	input := newChunk(t, []*types.FieldType{intTp, intTp, intTp},
		[]any{nil, 1, nil, nil},
		[]any{7, 8, nil, nil},
		[]any{9, 9, 9, nil},
	)
	ifNull, err := NewFunction(Ifnull, intTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{7, 1, nil, nil}, requireVecMatchesRow(t, ifNull, input))

	coalesce, err := NewFunction(Coalesce, intTp, NewColumn(0, intTp), NewColumn(1, intTp), NewColumn(2, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{7, 1, 9, nil}, requireVecMatchesRow(t, coalesce, input))

	single, err := NewFunction(Coalesce, intTp, NewColumn(0, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{nil, 1, nil, nil}, requireVecMatchesRow(t, single, input))

	_, err = NewFunction(Coalesce, intTp)
	require.True(t, exprerrors.ErrArity.Equal(err))
	_, err = NewFunction(Ifnull, intTp, NewColumn(0, intTp), NewStrConst("x"))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
}
