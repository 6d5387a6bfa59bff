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
	"cmp"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pingcap/errors"
)

// Kind constants.
const (
	KindNull    byte = 0
	KindInt64   byte = 1
	KindFloat64 byte = 2
	KindString  byte = 3
	KindDecimal byte = 4
)

// Datum is a data box holds different kind of data.
// The zero value is NULL.
type Datum struct {
	k byte
	i int64
	f float64
	s string
	d *apd.Decimal
}

// NewIntDatum creates a new Datum from an int64 value.
func NewIntDatum(i int64) Datum {
	return Datum{k: KindInt64, i: i}
}

// NewFloat64Datum creates a new Datum from a float64 value.
func NewFloat64Datum(f float64) Datum {
	return Datum{k: KindFloat64, f: f}
}

// NewStringDatum creates a new Datum from a string.
func NewStringDatum(s string) Datum {
	return Datum{k: KindString, s: s}
}

// NewDecimalDatum creates a new Datum from a decimal. A nil decimal yields NULL.
func NewDecimalDatum(d *apd.Decimal) Datum {
	if d == nil {
		return Datum{}
	}
	return Datum{k: KindDecimal, d: d}
}

// NewDatum creates a new Datum from an interface{}.
func NewDatum(in any) Datum {
	switch x := in.(type) {
	case nil:
		return Datum{}
	case int:
		return NewIntDatum(int64(x))
	case int64:
		return NewIntDatum(x)
	case float64:
		return NewFloat64Datum(x)
	case string:
		return NewStringDatum(x)
	case *apd.Decimal:
		return NewDecimalDatum(x)
	case Datum:
		return x
	}
	panic("unsupported datum value")
}

// ParseDecimal parses a decimal literal.
func ParseDecimal(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return d, nil
}

// Kind gets the kind of the datum.
func (d *Datum) Kind() byte {
	return d.k
}

// IsNull checks if datum is null.
func (d *Datum) IsNull() bool {
	return d.k == KindNull
}

// GetInt64 gets int64 value.
func (d *Datum) GetInt64() int64 {
	return d.i
}

// GetFloat64 gets float64 value.
func (d *Datum) GetFloat64() float64 {
	return d.f
}

// GetString gets string value.
func (d *Datum) GetString() string {
	return d.s
}

// GetDecimal gets the decimal value.
func (d *Datum) GetDecimal() *apd.Decimal {
	return d.d
}

// SetNull sets datum to nil.
func (d *Datum) SetNull() {
	*d = Datum{}
}

// EvalType returns the evaluation type matching the datum kind.
func (d *Datum) EvalType() EvalType {
	switch d.k {
	case KindInt64:
		return ETInt
	case KindFloat64:
		return ETReal
	case KindDecimal:
		return ETDecimal
	case KindString:
		return ETString
	}
	return ETNull
}

// Equal is the identity check on datums: two NULLs are equal, NULL is
// never equal to a non-NULL value, values of different kinds are not equal.
func (d *Datum) Equal(other *Datum) bool {
	if d.k != other.k {
		return false
	}
	switch d.k {
	case KindNull:
		return true
	case KindInt64:
		return d.i == other.i
	case KindFloat64:
		return d.f == other.f
	case KindString:
		return d.s == other.s
	case KindDecimal:
		return d.d.Cmp(other.d) == 0
	}
	return false
}

// Compare compares two non-NULL datums of the same kind. NULL sorts first.
func (d *Datum) Compare(other *Datum) (int, error) {
	if d.k == KindNull || other.k == KindNull {
		return cmp.Compare(boolToInt(!d.IsNull()), boolToInt(!other.IsNull())), nil
	}
	if d.k != other.k {
		return 0, errors.Errorf("cannot compare %s with %s", d.EvalType(), other.EvalType())
	}
	switch d.k {
	case KindInt64:
		return cmp.Compare(d.i, other.i), nil
	case KindFloat64:
		return cmp.Compare(d.f, other.f), nil
	case KindString:
		return cmp.Compare(d.s, other.s), nil
	case KindDecimal:
		return d.d.Cmp(other.d), nil
	}
	return 0, errors.Errorf("unknown datum kind %d", d.k)
}

// String returns a human-readable description of Datum.
func (d Datum) String() string {
	switch d.k {
	case KindNull:
		return "NULL"
	case KindInt64:
		return strconv.FormatInt(d.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(d.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(d.s)
	case KindDecimal:
		return d.d.String()
	}
	return "?"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MakeDatums creates datum slice from interfaces.
func MakeDatums(args ...any) []Datum {
	datums := make([]Datum, 0, len(args))
	for _, v := range args {
		datums = append(datums, NewDatum(v))
	}
	return datums
}
