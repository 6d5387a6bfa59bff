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
	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/pingcap/errors"
)

// liftRightExprs rewrites expressions over the right input of an Apply so
// that they address the Apply output instead: plain columns are shifted
// past the left columns and correlated columns become plain left columns.
func liftRightExprs(exprs []expression.Expression, left, right base.LogicalPlan) ([]expression.Expression, error) {
	shift := util.WithShiftOffset(right.Schema().Len(), left.Schema().Len())
	shifted, err := shift.RewriteExprs(exprs)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for i, expr := range shifted {
		if shifted[i], err = expression.DecorrelateExpr(expr); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return shifted, nil
}

// substituteRightColumns rewrites join conditions over left++right so that
// the right columns are replaced by rightExprs, which already address the
// new Apply output.
func substituteRightColumns(conds []expression.Expression, left base.LogicalPlan, rightExprs []expression.Expression) ([]expression.Expression, error) {
	if len(conds) == 0 {
		return nil, nil
	}
	images := append(left.Schema().Columns(), rightExprs...)
	newConds := make([]expression.Expression, 0, len(conds))
	for _, cond := range conds {
		newCond, err := expression.ColumnSubstitute(cond, images)
		if err != nil {
			return nil, errors.Trace(err)
		}
		newConds = append(newConds, newCond)
	}
	return newConds, nil
}
