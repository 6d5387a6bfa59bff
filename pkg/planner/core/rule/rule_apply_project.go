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
	"github.com/likzn/risingwave/pkg/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// ApplyProjectRule removes a Projection from the right side of an Apply.
// For a left outer Apply the projection is pulled above the Apply, for a
// semi Apply it is dropped since only the existence of a match matters.
type ApplyProjectRule struct{}

// Name implements base.Rule.<Name> interface.
func (*ApplyProjectRule) Name() string {
	return "apply_project"
}

// Apply implements base.Rule.<Apply> interface.
func (r *ApplyProjectRule) Apply(ctx context.Context, p base.LogicalPlan, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	apply, ok := p.(*logicalop.LogicalApply)
	if !ok {
		return nil, false, nil
	}
	proj, ok := apply.Children()[1].(*logicalop.LogicalProjection)
	if !ok {
		return nil, false, nil
	}
	switch apply.JoinType {
	case base.LeftOuterJoin:
		return r.pullUpProjection(ctx, apply, proj, opt)
	case base.SemiJoin:
		return r.removeProjection(ctx, apply, proj, opt)
	}
	return nil, false, nil
}

func (r *ApplyProjectRule) pullUpProjection(ctx context.Context, apply *logicalop.LogicalApply, proj *logicalop.LogicalProjection, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	left, newRight := apply.Children()[0], proj.Children()[0]
	// The padding row of an outer join is all NULL, the lifted expressions
	// must yield NULL on it as well.
	for _, expr := range proj.Exprs {
		folded, err := expression.EvaluateExprWithNull(newRight.Schema().Len(), expr)
		if err != nil {
			return nil, false, errors.Trace(err)
		}
		if !expression.IsNullConstant(folded) {
			logutil.Logger(ctx).Debug("projection is not null rejecting, keep it under apply",
				zap.String(logutil.LogFieldRule, r.Name()), zap.Stringer("expr", expr))
			return nil, false, nil
		}
	}
	lifted, err := liftRightExprs(proj.Exprs, left, newRight)
	if err != nil {
		return nil, false, err
	}
	leftLen := left.Schema().Len()
	exprs := make([]expression.Expression, 0, leftLen+len(lifted))
	exprs = append(exprs, left.Schema().Columns()...)
	exprs = append(exprs, lifted...)
	aliases := make([]string, leftLen, leftLen+len(lifted))
	aliases = append(aliases, proj.Schema().Names()...)

	conds, err := substituteRightColumns(apply.Conditions, left, lifted)
	if err != nil {
		return nil, false, err
	}
	newApply, err := apply.WithRight(newRight, conds)
	if err != nil {
		return nil, false, errors.Trace(err)
	}
	newProj, err := logicalop.NewLogicalProjection(newApply, exprs, aliases)
	if err != nil {
		return nil, false, errors.Trace(err)
	}
	appendMoveProjTraceStep(apply, newApply, proj, opt)
	logutil.Logger(ctx).Debug("projection pulled up above left outer apply",
		zap.String(logutil.LogFieldRule, r.Name()), zap.Int("apply", apply.ID()))
	return newProj, true, nil
}

func (r *ApplyProjectRule) removeProjection(ctx context.Context, apply *logicalop.LogicalApply, proj *logicalop.LogicalProjection, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	left, newRight := apply.Children()[0], proj.Children()[0]
	lifted, err := liftRightExprs(proj.Exprs, left, newRight)
	if err != nil {
		return nil, false, err
	}
	conds, err := substituteRightColumns(apply.Conditions, left, lifted)
	if err != nil {
		return nil, false, err
	}
	newApply, err := apply.WithRight(newRight, conds)
	if err != nil {
		return nil, false, errors.Trace(err)
	}
	appendRemoveProjTraceStep(apply, proj, opt)
	logutil.Logger(ctx).Debug("projection removed from semi apply",
		zap.String(logutil.LogFieldRule, r.Name()), zap.Int("apply", apply.ID()))
	return newApply, true, nil
}

func appendRemoveProjTraceStep(p *logicalop.LogicalApply, proj *logicalop.LogicalProjection, opt *util.LogicalOptimizeOp) {
	action := func() string {
		return fmt.Sprintf("%v_%v removed from plan tree", proj.TP(), proj.ID())
	}
	reason := func() string {
		return fmt.Sprintf("%v_%v's columns all substituted into %v_%v", proj.TP(), proj.ID(), p.TP(), p.ID())
	}
	opt.AppendStepToCurrent(proj.ID(), proj.TP(), reason, action)
}

func appendMoveProjTraceStep(p *logicalop.LogicalApply, np base.LogicalPlan, proj *logicalop.LogicalProjection, opt *util.LogicalOptimizeOp) {
	action := func() string {
		return fmt.Sprintf("%v_%v is moved as %v_%v's parent", proj.TP(), proj.ID(), np.TP(), np.ID())
	}
	reason := func() string {
		return fmt.Sprintf("%v_%v's join type is %v, not semi join", p.TP(), p.ID(), p.JoinType.String())
	}
	opt.AppendStepToCurrent(proj.ID(), proj.TP(), reason, action)
}
