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

package logicalop

import (
	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/util/plancodec"
)

// LogicalApply gets one row from outer executor and gets one row from inner executor according to outer row.
type LogicalApply struct {
	LogicalJoin

	// CorCols are the correlated columns of the right subtree, they read the
	// current row of the left input.
	CorCols []*expression.CorrelatedColumn
}

// NewLogicalApply builds an Apply. Every correlated column of right must
// address a column of left.
func NewLogicalApply(left, right base.LogicalPlan, joinType base.JoinType, conds []expression.Expression) (*LogicalApply, error) {
	join, err := newLogicalJoin(plancodec.TypeApply, left, right, joinType, conds)
	if err != nil {
		return nil, err
	}
	corCols := ExtractCorrelatedCols4LogicalPlan(right)
	if err := checkCorColsInRange(corCols, left.Schema().Len()); err != nil {
		return nil, err
	}
	return &LogicalApply{LogicalJoin: join, CorCols: corCols}, nil
}

// WithChildren implements base.LogicalPlan interface.
func (la *LogicalApply) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(la.TP(), children, 2); err != nil {
		return nil, err
	}
	return NewLogicalApply(children[0], children[1], la.JoinType, la.Conditions)
}

// WithRight rebuilds the Apply over a new right input and conditions.
func (la *LogicalApply) WithRight(right base.LogicalPlan, conds []expression.Expression) (*LogicalApply, error) {
	return NewLogicalApply(la.Children()[0], right, la.JoinType, conds)
}

// IsCorrelated reports whether the right subtree reads the left row.
func (la *LogicalApply) IsCorrelated() bool {
	return len(la.CorCols) > 0
}
