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
	"fmt"
)

// MySQL type codes, the same values travel in tipb.FieldType.Tp.
const (
	TypeUnspecified byte = 0
	TypeTiny        byte = 1
	TypeShort       byte = 2
	TypeLong        byte = 3
	TypeFloat       byte = 4
	TypeDouble      byte = 5
	TypeNull        byte = 6
	TypeLonglong    byte = 8
	TypeVarchar     byte = 15
	TypeNewDecimal  byte = 0xf6
	TypeVarString   byte = 0xfd
	TypeString      byte = 0xfe
)

// UnspecifiedLength is unspecified length.
const UnspecifiedLength = -1

var type2Str = map[byte]string{
	TypeUnspecified: "unspecified",
	TypeTiny:        "tinyint",
	TypeShort:       "smallint",
	TypeLong:        "int",
	TypeFloat:       "float",
	TypeDouble:      "double",
	TypeNull:        "null",
	TypeLonglong:    "bigint",
	TypeVarchar:     "varchar",
	TypeNewDecimal:  "decimal",
	TypeVarString:   "var_string",
	TypeString:      "char",
}

// FieldType records field type information. A FieldType is never modified
// after it is shared by an expression or a schema.
type FieldType struct {
	tp      byte
	flen    int
	decimal int
}

// NewFieldType returns a FieldType with the type code tp and unspecified length.
func NewFieldType(tp byte) *FieldType {
	return &FieldType{
		tp:      tp,
		flen:    UnspecifiedLength,
		decimal: UnspecifiedLength,
	}
}

// NewFieldTypeWithLen returns a FieldType carrying length and decimal.
func NewFieldTypeWithLen(tp byte, flen, decimal int) *FieldType {
	return &FieldType{tp: tp, flen: flen, decimal: decimal}
}

// GetType returns the type code of the FieldType.
func (ft *FieldType) GetType() byte {
	return ft.tp
}

// GetFlen returns the length of the field.
func (ft *FieldType) GetFlen() int {
	return ft.flen
}

// GetDecimal returns the decimal (fraction digits) of the field.
func (ft *FieldType) GetDecimal() int {
	return ft.decimal
}

// IsSupported reports whether values of this type can be held by a Datum.
func (ft *FieldType) IsSupported() bool {
	_, ok := type2Str[ft.tp]
	return ok && ft.tp != TypeUnspecified
}

// EvalType gets the type in evaluation.
func (ft *FieldType) EvalType() EvalType {
	switch ft.tp {
	case TypeTiny, TypeShort, TypeLong, TypeLonglong:
		return ETInt
	case TypeFloat, TypeDouble:
		return ETReal
	case TypeNewDecimal:
		return ETDecimal
	case TypeNull:
		return ETNull
	}
	return ETString
}

// Clone returns a copy of itself.
func (ft *FieldType) Clone() *FieldType {
	ret := *ft
	return &ret
}

// Equal checks whether two FieldType objects are equal.
func (ft *FieldType) Equal(other *FieldType) bool {
	if ft == nil || other == nil {
		return ft == other
	}
	return ft.tp == other.tp && ft.flen == other.flen && ft.decimal == other.decimal
}

// String implements fmt.Stringer interface.
func (ft *FieldType) String() string {
	name, ok := type2Str[ft.tp]
	if !ok {
		name = fmt.Sprintf("type(%d)", ft.tp)
	}
	switch {
	case ft.flen != UnspecifiedLength && ft.decimal != UnspecifiedLength:
		return fmt.Sprintf("%s(%d,%d)", name, ft.flen, ft.decimal)
	case ft.flen != UnspecifiedLength:
		return fmt.Sprintf("%s(%d)", name, ft.flen)
	}
	return name
}

// TypeForEvalType picks a default FieldType for an EvalType.
func TypeForEvalType(et EvalType) *FieldType {
	switch et {
	case ETInt:
		return NewFieldType(TypeLonglong)
	case ETReal:
		return NewFieldType(TypeDouble)
	case ETDecimal:
		return NewFieldType(TypeNewDecimal)
	case ETNull:
		return NewFieldType(TypeNull)
	}
	return NewFieldType(TypeVarString)
}
