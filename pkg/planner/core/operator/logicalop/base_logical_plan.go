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
	"strconv"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"go.uber.org/atomic"
)

var planIDs = atomic.NewInt64(0)

// allocPlanID returns a fresh plan id. Ids only label nodes in explain and
// trace output, they never take part in plan equality.
func allocPlanID() int {
	return int(planIDs.Inc())
}

// BaseLogicalPlan is the common structure that used in logical plan.
type BaseLogicalPlan struct {
	id       int
	tp       string
	schema   *expression.Schema
	children []base.LogicalPlan
}

func newBaseLogicalPlan(tp string, schema *expression.Schema, children ...base.LogicalPlan) BaseLogicalPlan {
	return BaseLogicalPlan{
		id:       allocPlanID(),
		tp:       tp,
		schema:   schema,
		children: children,
	}
}

// ID implements base.LogicalPlan interface.
func (p *BaseLogicalPlan) ID() int {
	return p.id
}

// TP implements base.LogicalPlan interface.
func (p *BaseLogicalPlan) TP() string {
	return p.tp
}

// ExplainID returns the id used in explain output, e.g. Apply_3.
func (p *BaseLogicalPlan) ExplainID() string {
	return p.tp + "_" + strconv.Itoa(p.id)
}

// Schema implements base.LogicalPlan interface.
func (p *BaseLogicalPlan) Schema() *expression.Schema {
	return p.schema
}

// Children implements base.LogicalPlan interface.
func (p *BaseLogicalPlan) Children() []base.LogicalPlan {
	return p.children
}

// String implements fmt.Stringer interface.
func (p *BaseLogicalPlan) String() string {
	return p.tp
}

// Expressions implements base.LogicalPlan interface.
func (*BaseLogicalPlan) Expressions() []expression.Expression {
	return nil
}

// ExplainInfo implements base.LogicalPlan interface.
func (*BaseLogicalPlan) ExplainInfo() string {
	return ""
}

func checkChildrenNum(tp string, children []base.LogicalPlan, want int) error {
	if len(children) != want {
		return errInvalidPlan("%s expects %d children, got %d", tp, want, len(children))
	}
	for _, child := range children {
		if child == nil {
			return errInvalidPlan("%s has a nil child", tp)
		}
	}
	return nil
}
