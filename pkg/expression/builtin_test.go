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
	"math"
	"testing"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	intInput := newChunk(t, []*types.FieldType{intTp, intTp},
		[]any{1, 2, 3, nil, nil},
		[]any{2, 2, 2, 2, nil},
	)
	strInput := newChunk(t, []*types.FieldType{strTp, strTp},
		[]any{"a", "b", "c", nil, nil},
		[]any{"b", "b", "b", "b", nil},
	)
	tests := []struct {
		funcName string
		expect   []any
	}{
		{LT, []any{1, 0, 0, nil, nil}},
		{LE, []any{1, 1, 0, nil, nil}},
		{GT, []any{0, 0, 1, nil, nil}},
		{GE, []any{0, 1, 1, nil, nil}},
		{EQ, []any{0, 1, 0, nil, nil}},
		{NE, []any{1, 0, 1, nil, nil}},
		{NullEQ, []any{0, 1, 0, 0, 1}},
	}
	for _, tt := range tests {
		for _, input := range []*chunk.Chunk{intInput, strInput} {
			ft := input.Column(0).RetType()
			expr, err := NewFunction(tt.funcName, intTp, NewColumn(0, ft), NewColumn(1, ft))
			require.NoError(t, err)
			requireDatums(t, tt.expect, requireVecMatchesRow(t, expr, input))
		}
	}

	_, err := NewFunction(EQ, intTp, NewColumn(0, intTp), NewColumn(1, strTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
	_, err = NewFunction(EQ, strTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
	_, err = NewFunction(EQ, intTp, NewColumn(0, intTp))
	require.True(t, exprerrors.ErrArity.Equal(err))
}

func TestIsNull(t *testing.T) {
	input := newChunk(t, []*types.FieldType{strTp}, []any{"a", nil})
	expr, err := NewFunction(IsNull, intTp, NewColumn(0, strTp))
	require.NoError(t, err)
	requireDatums(t, []any{0, 1}, requireVecMatchesRow(t, expr, input))
}

func TestArithmetic(t *testing.T) {
	input := newChunk(t, []*types.FieldType{intTp, intTp},
		[]any{1, -4, nil, 6},
		[]any{2, 3, 5, nil},
	)
	tests := []struct {
		funcName string
		expect   []any
	}{
		{Plus, []any{3, -1, nil, nil}},
		{Minus, []any{-1, -7, nil, nil}},
		{Mul, []any{2, -12, nil, nil}},
	}
	for _, tt := range tests {
		expr, err := NewFunction(tt.funcName, intTp, NewColumn(0, intTp), NewColumn(1, intTp))
		require.NoError(t, err)
		requireDatums(t, tt.expect, requireVecMatchesRow(t, expr, input))
	}

	realInput := newChunk(t, []*types.FieldType{realTp, realTp}, []any{1.5, nil}, []any{2.0, 1.0})
	expr, err := NewFunction(Mul, realTp, NewColumn(0, realTp), NewColumn(1, realTp))
	require.NoError(t, err)
	requireDatums(t, []any{3.0, nil}, requireVecMatchesRow(t, expr, realInput))

	a, err := types.ParseDecimal("1.25")
	require.NoError(t, err)
	b, err := types.ParseDecimal("0.75")
	require.NoError(t, err)
	sum, err := types.ParseDecimal("2.00")
	require.NoError(t, err)
	decInput := newChunk(t, []*types.FieldType{decTp, decTp}, []any{a}, []any{b})
	expr, err = NewFunction(Plus, decTp, NewColumn(0, decTp), NewColumn(1, decTp))
	require.NoError(t, err)
	requireDatums(t, []any{sum}, requireVecMatchesRow(t, expr, decInput))

	_, err = NewFunction(Plus, strTp, NewColumn(0, strTp), NewColumn(1, strTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
	_, err = NewFunction(Plus, realTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
}

func TestArithmeticOverflow(t *testing.T) {
	tests := []struct {
		funcName string
		a, b     int64
	}{
		{Plus, math.MaxInt64, 1},
		{Plus, math.MinInt64, -1},
		{Minus, math.MinInt64, 1},
		{Minus, 0, math.MinInt64},
		{Mul, math.MaxInt64, 2},
		{Mul, -1, math.MinInt64},
		{Mul, math.MinInt64, -1},
	}
	for _, tt := range tests {
		input := newChunk(t, []*types.FieldType{intTp, intTp}, []any{tt.a}, []any{tt.b})
		expr, err := NewFunction(tt.funcName, intTp, NewColumn(0, intTp), NewColumn(1, intTp))
		require.NoError(t, err)
		_, err = expr.VecEval(input)
		require.True(t, exprerrors.ErrOverflow.Equal(err), "%s(%d, %d): %v", tt.funcName, tt.a, tt.b, err)
		_, err = expr.Eval(input.GetRow(0))
		require.True(t, exprerrors.ErrOverflow.Equal(err))
	}

	input := newChunk(t, []*types.FieldType{realTp, realTp}, []any{math.MaxFloat64}, []any{math.MaxFloat64})
	expr, err := NewFunction(Plus, realTp, NewColumn(0, realTp), NewColumn(1, realTp))
	require.NoError(t, err)
	_, err = expr.VecEval(input)
	require.True(t, exprerrors.ErrOverflow.Equal(err))
}

func TestLogic(t *testing.T) {
	// every combination of TRUE, FALSE and NULL
	input := newChunk(t, []*types.FieldType{intTp, intTp},
		[]any{1, 1, 1, 0, 0, 0, nil, nil, nil},
		[]any{1, 0, nil, 1, 0, nil, 1, 0, nil},
	)
	and, err := NewFunction(LogicAnd, intTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{1, 0, nil, 0, 0, 0, nil, 0, nil}, requireVecMatchesRow(t, and, input))

	or, err := NewFunction(LogicOr, intTp, NewColumn(0, intTp), NewColumn(1, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{1, 1, 1, 1, 0, nil, 1, nil, nil}, requireVecMatchesRow(t, or, input))

	not, err := NewFunction(UnaryNot, intTp, NewColumn(0, intTp))
	require.NoError(t, err)
	requireDatums(t, []any{0, 0, 0, 1, 1, 1, nil, nil, nil}, requireVecMatchesRow(t, not, input))

	_, err = NewFunction(LogicAnd, intTp, NewColumn(0, strTp), NewColumn(1, intTp))
	require.True(t, exprerrors.ErrTypeMismatch.Equal(err))
	_, err = NewFunction("unknown", intTp)
	require.True(t, exprerrors.ErrNotSupportedYet.Equal(err))
}
