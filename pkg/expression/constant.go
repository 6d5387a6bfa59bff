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
	"github.com/cockroachdb/apd/v3"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
)

// NewOne stands for a number 1.
func NewOne() *Constant {
	return NewInt64Const(1)
}

// NewZero stands for a number 0.
func NewZero() *Constant {
	return NewInt64Const(0)
}

// NewInt64Const stands for constant of a given number.
func NewInt64Const(num int64) *Constant {
	return &Constant{
		Value:   types.NewIntDatum(num),
		RetType: types.NewFieldType(types.TypeLonglong),
	}
}

// NewFloat64Const stands for a constant double.
func NewFloat64Const(f float64) *Constant {
	return &Constant{
		Value:   types.NewFloat64Datum(f),
		RetType: types.NewFieldType(types.TypeDouble),
	}
}

// NewStrConst initializes a new string constant.
func NewStrConst(str string) *Constant {
	return &Constant{
		Value:   types.NewStringDatum(str),
		RetType: types.NewFieldType(types.TypeVarString),
	}
}

// NewDecimalConst initializes a new decimal constant.
func NewDecimalConst(d *apd.Decimal) *Constant {
	return &Constant{
		Value:   types.NewDecimalDatum(d),
		RetType: types.NewFieldType(types.TypeNewDecimal),
	}
}

// NewNull stands for null constant.
func NewNull() *Constant {
	return &Constant{
		Value:   types.Datum{},
		RetType: types.NewFieldType(types.TypeNull),
	}
}

// NewNullWithFieldType stands for null constant with specified fieldType.
func NewNullWithFieldType(fieldType *types.FieldType) *Constant {
	return &Constant{
		Value:   types.Datum{},
		RetType: fieldType,
	}
}

// Constant stands for a constant value.
type Constant struct {
	Value   types.Datum
	RetType *types.FieldType
}

// String implements fmt.Stringer interface.
func (c *Constant) String() string {
	return c.Value.String()
}

// GetType implements Expression interface.
func (c *Constant) GetType() *types.FieldType {
	return c.RetType
}

// Eval implements Expression interface.
func (c *Constant) Eval(chunk.Row) (types.Datum, error) {
	return c.Value, nil
}

// VecEval implements Expression interface.
func (c *Constant) VecEval(input *chunk.Chunk) (*chunk.Column, error) {
	return broadcastDatum(c.Value, c.RetType, input.NumRows(), c.String())
}

// Equal implements Expression interface.
func (c *Constant) Equal(b Expression) bool {
	y, ok := b.(*Constant)
	if !ok {
		return false
	}
	return c.Value.Equal(&y.Value)
}

// IsCorrelated implements Expression interface.
func (*Constant) IsCorrelated() bool {
	return false
}

// Traverse implements the TraverseDown interface.
func (c *Constant) Traverse(action TraverseAction) (Expression, error) {
	return action.Transform(c)
}
