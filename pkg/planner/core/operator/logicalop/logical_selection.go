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

// LogicalSelection represents a where or having predicate.
type LogicalSelection struct {
	BaseLogicalPlan

	// Originally the WHERE or ON condition is parsed into a single expression,
	// but after we converted to CNF(Conjunctive normal form), it can be
	// split into a list of AND conditions.
	Conditions []expression.Expression
}

// NewLogicalSelection builds a filter of child by the conjunction of conds.
func NewLogicalSelection(child base.LogicalPlan, conds []expression.Expression) (*LogicalSelection, error) {
	if err := checkChildrenNum(plancodec.TypeSel, []base.LogicalPlan{child}, 1); err != nil {
		return nil, err
	}
	if err := checkExprsInRange(plancodec.TypeSel, conds, child.Schema().Len()); err != nil {
		return nil, err
	}
	return &LogicalSelection{
		BaseLogicalPlan: newBaseLogicalPlan(plancodec.TypeSel, child.Schema(), child),
		Conditions:      conds,
	}, nil
}

// WithChildren implements base.LogicalPlan interface.
func (p *LogicalSelection) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(p.TP(), children, 1); err != nil {
		return nil, err
	}
	return NewLogicalSelection(children[0], p.Conditions)
}

// Expressions implements base.LogicalPlan interface.
func (p *LogicalSelection) Expressions() []expression.Expression {
	return p.Conditions
}

// ExplainInfo implements base.LogicalPlan interface.
func (p *LogicalSelection) ExplainInfo() string {
	return explainExprs(p.Conditions)
}
