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

package rule

import (
	"context"
	"fmt"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/pingcap/errors"
)

// ApplySelectionRule moves the conditions of a Selection on the right side
// of an Apply into the Apply's join conditions.
type ApplySelectionRule struct{}

// Name implements base.Rule.<Name> interface.
func (*ApplySelectionRule) Name() string {
	return "apply_selection"
}

// Apply implements base.Rule.<Apply> interface.
func (*ApplySelectionRule) Apply(_ context.Context, p base.LogicalPlan, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	apply, ok := p.(*logicalop.LogicalApply)
	if !ok {
		return nil, false, nil
	}
	sel, ok := apply.Children()[1].(*logicalop.LogicalSelection)
	if !ok {
		return nil, false, nil
	}
	// Filtering the inner side before a right or full outer join drops rows
	// that the join must still output.
	switch apply.JoinType {
	case base.InnerJoin, base.LeftOuterJoin, base.SemiJoin, base.AntiSemiJoin:
	default:
		return nil, false, nil
	}
	left, newRight := apply.Children()[0], sel.Children()[0]
	lifted, err := liftRightExprs(sel.Conditions, left, newRight)
	if err != nil {
		return nil, false, err
	}
	conds := make([]expression.Expression, 0, len(apply.Conditions)+len(lifted))
	conds = append(conds, apply.Conditions...)
	conds = append(conds, lifted...)
	newApply, err := apply.WithRight(newRight, conds)
	if err != nil {
		return nil, false, errors.Trace(err)
	}
	appendRemoveSelectionTraceStep(newApply, sel, opt)
	return newApply, true, nil
}

func appendRemoveSelectionTraceStep(p base.LogicalPlan, s *logicalop.LogicalSelection, opt *util.LogicalOptimizeOp) {
	action := func() string {
		return fmt.Sprintf("%v_%v removed from plan tree", s.TP(), s.ID())
	}
	reason := func() string {
		return fmt.Sprintf("%v_%v's conditions have been pushed into %v_%v", s.TP(), s.ID(), p.TP(), p.ID())
	}
	opt.AppendStepToCurrent(s.ID(), s.TP(), reason, action)
}
