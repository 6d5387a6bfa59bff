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

package util

import (
	"fmt"
	"strings"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/util/dbterror/plannererrors"
)

// ColIndexMapping is a partial function from the column positions of a
// source schema to the positions of a target schema. A negative target means
// the source column has no image.
type ColIndexMapping struct {
	target     []int
	targetSize int
}

// NewColIndexMapping builds a mapping from an explicit target list, -1
// marks a dropped column.
func NewColIndexMapping(target []int, targetSize int) (*ColIndexMapping, error) {
	for src, dst := range target {
		if dst < -1 || dst >= targetSize {
			return nil, plannererrors.ErrInvalidPlan.GenWithStackByArgs(
				fmt.Sprintf("column %d maps to %d, target has %d columns", src, dst, targetSize))
		}
	}
	return &ColIndexMapping{target: append([]int(nil), target...), targetSize: targetSize}, nil
}

// WithShiftOffset builds the mapping i -> i+offset for a source of
// sourceSize columns.
func WithShiftOffset(sourceSize, offset int) *ColIndexMapping {
	target := make([]int, sourceSize)
	for i := range target {
		target[i] = i + offset
	}
	return &ColIndexMapping{target: target, targetSize: sourceSize + offset}
}

// IdentityMapping builds the mapping i -> i over n columns.
func IdentityMapping(n int) *ColIndexMapping {
	return WithShiftOffset(n, 0)
}

// SourceSize returns the number of source columns.
func (m *ColIndexMapping) SourceSize() int {
	return len(m.target)
}

// TargetSize returns the number of target columns.
func (m *ColIndexMapping) TargetSize() int {
	return m.targetSize
}

// TryMap returns the image of index and whether it has one.
func (m *ColIndexMapping) TryMap(index int) (int, bool) {
	if index < 0 || index >= len(m.target) || m.target[index] < 0 {
		return -1, false
	}
	return m.target[index], true
}

// Map returns the image of index, ErrColumnIndexNotMapped if there is none.
func (m *ColIndexMapping) Map(index int) (int, error) {
	if dst, ok := m.TryMap(index); ok {
		return dst, nil
	}
	return -1, plannererrors.ErrColumnIndexNotMapped.GenWithStackByArgs(index, m.String())
}

// RewriteExpr rewrites every plain column of expr through the mapping.
// Constants and correlated columns are left as they are. Any column without
// an image fails the whole rewrite.
func (m *ColIndexMapping) RewriteExpr(expr expression.Expression) (expression.Expression, error) {
	for _, col := range expression.ExtractColumns(expr) {
		if _, err := m.Map(col.Index); err != nil {
			return nil, err
		}
	}
	return expression.ColumnSubstitute(expr, m.columnImages(expr))
}

// columnImages returns, indexed by source position, the rewritten column
// for every source column referenced by expr.
func (m *ColIndexMapping) columnImages(expr expression.Expression) []expression.Expression {
	images := make([]expression.Expression, len(m.target))
	for _, col := range expression.ExtractColumns(expr) {
		if images[col.Index] == nil {
			images[col.Index] = expression.NewColumn(m.target[col.Index], col.RetType)
		}
	}
	return images
}

// RewriteExprs rewrites a list of expressions, see RewriteExpr.
func (m *ColIndexMapping) RewriteExprs(exprs []expression.Expression) ([]expression.Expression, error) {
	result := make([]expression.Expression, 0, len(exprs))
	for _, expr := range exprs {
		newExpr, err := m.RewriteExpr(expr)
		if err != nil {
			return nil, err
		}
		result = append(result, newExpr)
	}
	return result, nil
}

// Composite returns the mapping applying m first and then other.
func (m *ColIndexMapping) Composite(other *ColIndexMapping) (*ColIndexMapping, error) {
	if m.targetSize != other.SourceSize() {
		return nil, plannererrors.ErrInvalidPlan.GenWithStackByArgs(
			fmt.Sprintf("cannot compose %s with %s", m, other))
	}
	target := make([]int, len(m.target))
	for src, mid := range m.target {
		target[src] = -1
		if mid < 0 {
			continue
		}
		if dst, ok := other.TryMap(mid); ok {
			target[src] = dst
		}
	}
	return &ColIndexMapping{target: target, targetSize: other.targetSize}, nil
}

// Inverse returns the inverse mapping. Only a total bijection has one.
func (m *ColIndexMapping) Inverse() (*ColIndexMapping, error) {
	if m.targetSize != len(m.target) {
		return nil, plannererrors.ErrInvalidPlan.GenWithStackByArgs(m.String() + " is not a bijection")
	}
	inverse := make([]int, m.targetSize)
	for i := range inverse {
		inverse[i] = -1
	}
	for src, dst := range m.target {
		if dst < 0 || inverse[dst] >= 0 {
			return nil, plannererrors.ErrInvalidPlan.GenWithStackByArgs(m.String() + " is not a bijection")
		}
		inverse[dst] = src
	}
	return &ColIndexMapping{target: inverse, targetSize: len(m.target)}, nil
}

// IsIdentity reports whether the mapping is i -> i on every column.
func (m *ColIndexMapping) IsIdentity() bool {
	if m.targetSize != len(m.target) {
		return false
	}
	for src, dst := range m.target {
		if src != dst {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer interface.
func (m *ColIndexMapping) String() string {
	pairs := make([]string, 0, len(m.target))
	for src, dst := range m.target {
		if dst >= 0 {
			pairs = append(pairs, fmt.Sprintf("%d->%d", src, dst))
		}
	}
	return fmt.Sprintf("ColIndexMapping(source_size:%d, target_size:%d, mapping:%s)",
		len(m.target), m.targetSize, strings.Join(pairs, ","))
}
