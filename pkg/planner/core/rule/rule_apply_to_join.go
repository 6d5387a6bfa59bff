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

	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/pingcap/errors"
)

// ApplyToJoinRule turns an Apply whose right side reads nothing from the
// left row into a plain Join.
type ApplyToJoinRule struct{}

// Name implements base.Rule.<Name> interface.
func (*ApplyToJoinRule) Name() string {
	return "apply_to_join"
}

// Apply implements base.Rule.<Apply> interface.
func (*ApplyToJoinRule) Apply(_ context.Context, p base.LogicalPlan, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	apply, ok := p.(*logicalop.LogicalApply)
	if !ok || apply.IsCorrelated() {
		return nil, false, nil
	}
	children := apply.Children()
	join, err := logicalop.NewLogicalJoin(children[0], children[1], apply.JoinType, apply.Conditions)
	if err != nil {
		return nil, false, errors.Trace(err)
	}
	appendApplySimplifiedTraceStep(apply, join, opt)
	return join, true, nil
}

func appendApplySimplifiedTraceStep(p *logicalop.LogicalApply, j *logicalop.LogicalJoin, opt *util.LogicalOptimizeOp) {
	action := func() string {
		return fmt.Sprintf("%v_%v simplified into %v_%v", p.TP(), p.ID(), j.TP(), j.ID())
	}
	reason := func() string {
		return fmt.Sprintf("%v_%v hasn't any corelated column, thus the inner plan is non-correlated", p.TP(), p.ID())
	}
	opt.AppendStepToCurrent(p.ID(), p.TP(), reason, action)
}
