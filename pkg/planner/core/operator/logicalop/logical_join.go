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
	"fmt"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/util/plancodec"
)

// LogicalJoin is the logical join plan.
type LogicalJoin struct {
	BaseLogicalPlan

	JoinType base.JoinType
	// Conditions address the concatenation of the left and the right input,
	// for semi joins too.
	Conditions []expression.Expression
}

// NewLogicalJoin builds a join of left and right.
func NewLogicalJoin(left, right base.LogicalPlan, joinType base.JoinType, conds []expression.Expression) (*LogicalJoin, error) {
	join, err := newLogicalJoin(plancodec.TypeJoin, left, right, joinType, conds)
	if err != nil {
		return nil, err
	}
	return &join, nil
}

func newLogicalJoin(tp string, left, right base.LogicalPlan, joinType base.JoinType, conds []expression.Expression) (LogicalJoin, error) {
	if err := checkChildrenNum(tp, []base.LogicalPlan{left, right}, 2); err != nil {
		return LogicalJoin{}, err
	}
	if !joinType.IsValid() {
		return LogicalJoin{}, errInvalidPlan("%s has unknown join type %d", tp, int(joinType))
	}
	if err := checkExprsInRange(tp, conds, left.Schema().Len()+right.Schema().Len()); err != nil {
		return LogicalJoin{}, err
	}
	return LogicalJoin{
		BaseLogicalPlan: newBaseLogicalPlan(tp, joinSchema(left, right, joinType), left, right),
		JoinType:        joinType,
		Conditions:      conds,
	}, nil
}

// joinSchema is the output schema of a join, semi joins only output the
// left side.
func joinSchema(left, right base.LogicalPlan, joinType base.JoinType) *expression.Schema {
	if joinType.IsSemiJoin() {
		return left.Schema()
	}
	return expression.MergeSchema(left.Schema(), right.Schema())
}

// WithChildren implements base.LogicalPlan interface.
func (p *LogicalJoin) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(p.TP(), children, 2); err != nil {
		return nil, err
	}
	return NewLogicalJoin(children[0], children[1], p.JoinType, p.Conditions)
}

// Expressions implements base.LogicalPlan interface.
func (p *LogicalJoin) Expressions() []expression.Expression {
	return p.Conditions
}

// ExplainInfo implements base.LogicalPlan interface.
func (p *LogicalJoin) ExplainInfo() string {
	if len(p.Conditions) == 0 {
		return p.JoinType.String()
	}
	return fmt.Sprintf("%s, conditions:%s", p.JoinType, explainExprs(p.Conditions))
}
