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

package chunk

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/pingcap/errors"
)

// metaTypeKey keeps the original type code on the arrow field so that an
// exported chunk is imported back with the same field types.
const metaTypeKey = "mysql.tp"

func arrowTypeFor(ft *types.FieldType) arrow.DataType {
	switch ft.EvalType() {
	case types.ETInt:
		return arrow.PrimitiveTypes.Int64
	case types.ETReal:
		return arrow.PrimitiveTypes.Float64
	case types.ETNull:
		return arrow.Null
	}
	// Decimals travel as their text form.
	return arrow.BinaryTypes.String
}

// ArrowSchema builds the arrow schema matching fields.
// names may be shorter than the column count, missing names become "col_<i>".
func ArrowSchema(fields []*types.FieldType, names []string) *arrow.Schema {
	afs := make([]arrow.Field, 0, len(fields))
	for i, ft := range fields {
		name := "col_" + strconv.Itoa(i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		afs = append(afs, arrow.Field{
			Name:     name,
			Type:     arrowTypeFor(ft),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{metaTypeKey}, []string{strconv.Itoa(int(ft.GetType()))}),
		})
	}
	return arrow.NewSchema(afs, nil)
}

// ToArrowRecord exports the chunk as an arrow record. The caller owns the
// returned record and has to Release it.
func ToArrowRecord(mem memory.Allocator, chk *Chunk, names []string) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := ArrowSchema(chk.FieldTypes(), names)
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for colIdx, col := range chk.Columns() {
		fb := builder.Field(colIdx)
		for rowIdx := 0; rowIdx < col.Len(); rowIdx++ {
			if col.IsNull(rowIdx) {
				fb.AppendNull()
				continue
			}
			switch b := fb.(type) {
			case *array.Int64Builder:
				b.Append(col.GetInt64(rowIdx))
			case *array.Float64Builder:
				b.Append(col.GetFloat64(rowIdx))
			case *array.StringBuilder:
				if col.RetType().EvalType() == types.ETDecimal {
					b.Append(col.GetDecimal(rowIdx).String())
				} else {
					b.Append(col.GetString(rowIdx))
				}
			default:
				return nil, errors.Errorf("unsupported arrow builder %T for column %d", fb, colIdx)
			}
		}
	}
	return builder.NewRecord(), nil
}

func fieldTypeFromArrow(f arrow.Field) (*types.FieldType, error) {
	if idx := f.Metadata.FindKey(metaTypeKey); idx >= 0 {
		tp, err := strconv.Atoi(f.Metadata.Values()[idx])
		if err != nil {
			return nil, errors.Annotatef(err, "bad %s metadata on field %s", metaTypeKey, f.Name)
		}
		return types.NewFieldType(byte(tp)), nil
	}
	switch f.Type.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return types.NewFieldType(types.TypeLonglong), nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return types.NewFieldType(types.TypeDouble), nil
	case arrow.STRING:
		return types.NewFieldType(types.TypeVarString), nil
	case arrow.NULL:
		return types.NewFieldType(types.TypeNull), nil
	}
	return nil, errors.Errorf("unsupported arrow type %s for field %s", f.Type, f.Name)
}

// FromArrowRecord copies an arrow record into a new chunk.
func FromArrowRecord(rec arrow.Record) (*Chunk, error) {
	schema := rec.Schema()
	numRows := int(rec.NumRows())
	cols := make([]*Column, 0, int(rec.NumCols()))
	for colIdx := 0; colIdx < int(rec.NumCols()); colIdx++ {
		ft, err := fieldTypeFromArrow(schema.Field(colIdx))
		if err != nil {
			return nil, err
		}
		col := NewColumn(ft, numRows)
		arr := rec.Column(colIdx)
		for rowIdx := 0; rowIdx < numRows; rowIdx++ {
			if arr.IsNull(rowIdx) {
				col.AppendNull()
				continue
			}
			if err := appendArrowValue(col, arr, rowIdx); err != nil {
				return nil, errors.Annotatef(err, "column %d", colIdx)
			}
		}
		cols = append(cols, col)
	}
	chk, err := NewChunkFromColumns(cols...)
	if err != nil {
		return nil, err
	}
	chk.SetNumVirtualRows(numRows)
	return chk, nil
}

func appendArrowValue(col *Column, arr arrow.Array, rowIdx int) error {
	switch a := arr.(type) {
	case *array.Int64:
		col.AppendInt64(a.Value(rowIdx))
	case *array.Int32:
		col.AppendInt64(int64(a.Value(rowIdx)))
	case *array.Int16:
		col.AppendInt64(int64(a.Value(rowIdx)))
	case *array.Int8:
		col.AppendInt64(int64(a.Value(rowIdx)))
	case *array.Float64:
		col.AppendFloat64(a.Value(rowIdx))
	case *array.Float32:
		col.AppendFloat64(float64(a.Value(rowIdx)))
	case *array.String:
		if col.RetType().EvalType() != types.ETDecimal {
			col.AppendString(a.Value(rowIdx))
			return nil
		}
		dec, err := types.ParseDecimal(a.Value(rowIdx))
		if err != nil {
			return err
		}
		col.AppendDecimal(dec)
	default:
		return errors.Errorf("unsupported arrow array %T", arr)
	}
	return nil
}
