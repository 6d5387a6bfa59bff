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
	"github.com/likzn/risingwave/pkg/util/dbterror/exprerrors"
	"github.com/likzn/risingwave/pkg/util/dbterror/plannererrors"
	"github.com/pingcap/errors"
)

var (
	_ base.LogicalPlan = &DataSource{}
	_ base.LogicalPlan = &LogicalProjection{}
	_ base.LogicalPlan = &LogicalSelection{}
	_ base.LogicalPlan = &LogicalJoin{}
	_ base.LogicalPlan = &LogicalApply{}
	_ base.LogicalPlan = &LogicalLimit{}
)

func errInvalidPlan(format string, args ...any) error {
	return plannererrors.ErrInvalidPlan.GenWithStackByArgs(fmt.Sprintf(format, args...))
}

// checkExprsInRange checks every plain column of exprs against an input of
// n columns.
func checkExprsInRange(tp string, exprs []expression.Expression, n int) error {
	if err := expression.CheckColumnsInRange(exprs, n); err != nil {
		return errors.Annotatef(err, "invalid expression in %s", tp)
	}
	return nil
}

// ExtractCorrelatedCols4LogicalPlan returns the correlated columns of p that
// are not bound inside p. The right subtree of an Apply is bound by that
// Apply, so only the Apply's own expressions and its left input are walked.
func ExtractCorrelatedCols4LogicalPlan(p base.LogicalPlan) []*expression.CorrelatedColumn {
	var corCols []*expression.CorrelatedColumn
	for _, expr := range p.Expressions() {
		corCols = append(corCols, expression.ExtractCorColumns(expr)...)
	}
	children := p.Children()
	if _, ok := p.(*LogicalApply); ok {
		children = children[:1]
	}
	for _, child := range children {
		corCols = append(corCols, ExtractCorrelatedCols4LogicalPlan(child)...)
	}
	return corCols
}

func checkCorColsInRange(corCols []*expression.CorrelatedColumn, n int) error {
	for _, cc := range corCols {
		if cc.Index < 0 || cc.Index >= n {
			return errors.Annotate(exprerrors.ErrColumnIndexOutOfRange.GenWithStackByArgs(cc.Index, n),
				"correlated column of Apply")
		}
	}
	return nil
}

func explainExprs(exprs []expression.Expression) string {
	return fmt.Sprintf("%v", exprs)
}
