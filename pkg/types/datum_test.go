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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatumEqual(t *testing.T) {
	d1, err := ParseDecimal("1.50")
	require.NoError(t, err)
	d2, err := ParseDecimal("1.5")
	require.NoError(t, err)

	tests := []struct {
		a, b  Datum
		equal bool
	}{
		{Datum{}, Datum{}, true},
		{Datum{}, NewIntDatum(0), false},
		{NewIntDatum(0), Datum{}, false},
		{NewIntDatum(3), NewIntDatum(3), true},
		{NewIntDatum(3), NewIntDatum(4), false},
		{NewIntDatum(3), NewFloat64Datum(3), false},
		{NewFloat64Datum(1.25), NewFloat64Datum(1.25), true},
		{NewStringDatum("a"), NewStringDatum("a"), true},
		{NewStringDatum("a"), NewStringDatum("b"), false},
		{NewDecimalDatum(d1), NewDecimalDatum(d2), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.equal, tt.a.Equal(&tt.b), "%v = %v", tt.a, tt.b)
	}
}

func TestDatumCompare(t *testing.T) {
	a, b := NewIntDatum(1), NewIntDatum(2)
	res, err := a.Compare(&b)
	require.NoError(t, err)
	require.Equal(t, -1, res)

	null := Datum{}
	res, err = null.Compare(&a)
	require.NoError(t, err)
	require.Equal(t, -1, res)

	s := NewStringDatum("x")
	_, err = a.Compare(&s)
	require.Error(t, err)
}

func TestDatumString(t *testing.T) {
	require.Equal(t, "NULL", Datum{}.String())
	require.Equal(t, "42", NewIntDatum(42).String())
	require.Equal(t, `"ab"`, NewStringDatum("ab").String())
	require.Equal(t, "0.5", NewFloat64Datum(0.5).String())
	ds := MakeDatums(1, nil, "x")
	require.Len(t, ds, 3)
	require.True(t, ds[1].IsNull())
	require.Equal(t, ETString, ds[2].EvalType())
}

func TestFieldType(t *testing.T) {
	ft := NewFieldType(TypeLonglong)
	require.Equal(t, ETInt, ft.EvalType())
	require.Equal(t, "bigint", ft.String())
	require.True(t, ft.Equal(ft.Clone()))
	require.False(t, ft.Equal(NewFieldType(TypeLong)))
	require.Equal(t, "decimal(10,2)", NewFieldTypeWithLen(TypeNewDecimal, 10, 2).String())
	require.Equal(t, ETDecimal, NewFieldType(TypeNewDecimal).EvalType())
	require.Equal(t, ETReal, NewFieldType(TypeFloat).EvalType())
	require.Equal(t, ETString, NewFieldType(TypeVarchar).EvalType())
	require.Equal(t, ETNull, NewFieldType(TypeNull).EvalType())
	require.True(t, TypeForEvalType(ETInt).Equal(ft))
	require.False(t, NewFieldType(TypeUnspecified).IsSupported())
}
