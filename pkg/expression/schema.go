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
	"strings"

	"github.com/likzn/risingwave/pkg/types"
)

// Field is a named, typed slot of a Schema.
type Field struct {
	Name    string
	RetType *types.FieldType
}

// NewField builds a Field.
func NewField(name string, retType *types.FieldType) *Field {
	return &Field{Name: name, RetType: retType}
}

// String implements fmt.Stringer interface.
func (f *Field) String() string {
	return f.Name + ":" + f.RetType.String()
}

// Schema stands for the row schema and unique key information get from input.
// A Column with Index i reads Fields[i].
type Schema struct {
	Fields []*Field
}

// NewSchema returns a schema made by its parameter.
func NewSchema(fields ...*Field) *Schema {
	return &Schema{Fields: fields}
}

// String implements fmt.Stringer interface.
func (s *Schema) String() string {
	strs := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		strs = append(strs, f.String())
	}
	return "[" + strings.Join(strs, ",") + "]"
}

// Clone copies the total schema.
func (s *Schema) Clone() *Schema {
	fields := make([]*Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, &Field{Name: f.Name, RetType: f.RetType})
	}
	return NewSchema(fields...)
}

// Len returns the number of columns in schema.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// FieldTypes returns the types of all fields.
func (s *Schema) FieldTypes() []*types.FieldType {
	fts := make([]*types.FieldType, 0, len(s.Fields))
	for _, f := range s.Fields {
		fts = append(fts, f.RetType)
	}
	return fts
}

// Names returns the names of all fields.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Column returns a Column reading position idx of the schema.
func (s *Schema) Column(idx int) *Column {
	return &Column{Index: idx, RetType: s.Fields[idx].RetType}
}

// Columns returns identity references to every field.
func (s *Schema) Columns() []Expression {
	cols := make([]Expression, 0, len(s.Fields))
	for i := range s.Fields {
		cols = append(cols, s.Column(i))
	}
	return cols
}

// ColumnIndex finds the index of the field with the given name, -1 if absent.
func (s *Schema) ColumnIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Equal checks whether two schemas have the same names and types.
func (s *Schema) Equal(other *Schema) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, f := range s.Fields {
		o := other.Fields[i]
		if f.Name != o.Name || f.RetType.EvalType() != o.RetType.EvalType() {
			return false
		}
	}
	return true
}

// MergeSchema will merge two schema into one schema. The left fields come first.
func MergeSchema(lSchema, rSchema *Schema) *Schema {
	if lSchema == nil && rSchema == nil {
		return nil
	}
	if lSchema == nil {
		return rSchema.Clone()
	}
	if rSchema == nil {
		return lSchema.Clone()
	}
	tmpL := lSchema.Clone()
	tmpR := rSchema.Clone()
	tmpL.Fields = append(tmpL.Fields, tmpR.Fields...)
	return tmpL
}
