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
	"testing"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/stretchr/testify/require"
)

var intTp = types.NewFieldType(types.TypeLonglong)

func col(i int) *expression.Column {
	return expression.NewColumn(i, intTp)
}

func corCol(i int) *expression.CorrelatedColumn {
	return expression.NewCorrelatedColumn(i, intTp)
}

func eq(a, b expression.Expression) expression.Expression {
	return expression.NewFunctionInternal(expression.EQ, intTp, a, b)
}

func plus(a, b expression.Expression) expression.Expression {
	return expression.NewFunctionInternal(expression.Plus, intTp, a, b)
}

func mockDataSource(name string, cols ...string) *logicalop.DataSource {
	fields := make([]*expression.Field, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, expression.NewField(c, intTp))
	}
	return logicalop.NewDataSource(name, expression.NewSchema(fields...))
}

func mockProjection(t *testing.T, child base.LogicalPlan, exprs []expression.Expression, aliases []string) *logicalop.LogicalProjection {
	proj, err := logicalop.NewLogicalProjection(child, exprs, aliases)
	require.NoError(t, err)
	return proj
}

func mockApply(t *testing.T, left, right base.LogicalPlan, tp base.JoinType, conds ...expression.Expression) *logicalop.LogicalApply {
	apply, err := logicalop.NewLogicalApply(left, right, tp, conds)
	require.NoError(t, err)
	return apply
}

func TestApplyProjectLeftOuter(t *testing.T) {
	left := mockDataSource("l", "a", "b")
	right := mockDataSource("r", "c", "d")
	proj := mockProjection(t, right, []expression.Expression{col(1), plus(col(0), corCol(0))}, []string{"", "s"})
	apply := mockApply(t, left, proj, base.LeftOuterJoin, eq(col(0), col(2)))
	require.Equal(t, []string{"a", "b", "d", "s"}, apply.Schema().Names())

	tracer := &util.LogicalOptimizeTracer{}
	opt := util.DefaultLogicalOptimizeOption().WithEnableOptimizeTracer(tracer)
	np, ok, err := (&ApplyProjectRule{}).Apply(context.Background(), apply, opt)
	require.NoError(t, err)
	require.True(t, ok)

	newProj, isProj := np.(*logicalop.LogicalProjection)
	require.True(t, isProj)
	require.True(t, newProj.Schema().Equal(apply.Schema()))
	require.Len(t, newProj.Exprs, left.Schema().Len()+len(proj.Exprs))
	require.Equal(t, "$0, $1, $3->d, plus($2, $0)->s", newProj.ExplainInfo())

	newApply, isApply := newProj.Children()[0].(*logicalop.LogicalApply)
	require.True(t, isApply)
	require.Same(t, left, newApply.Children()[0])
	require.Same(t, right, newApply.Children()[1])
	require.Equal(t, base.LeftOuterJoin, newApply.JoinType)
	require.Equal(t, "left outer join, conditions:[eq($0, $3)]", newApply.ExplainInfo())
	require.False(t, newApply.IsCorrelated())
	require.Len(t, tracer.Steps, 1)

	// The input plan is left untouched.
	require.Same(t, proj, apply.Children()[1])
	require.Equal(t, "eq($0, $2)", apply.Conditions[0].String())
	require.Equal(t, "plus($0, cor$0)", proj.Exprs[1].String())
}

func TestApplyProjectLeftOuterGuard(t *testing.T) {
	left := mockDataSource("l", "a")
	right := mockDataSource("r", "c")
	for _, exprs := range [][]expression.Expression{
		{col(0), expression.NewOne()},
		{corCol(0)},
		{expression.NewFunctionInternal(expression.IsNull, intTp, col(0))},
	} {
		proj := mockProjection(t, right, exprs, nil)
		apply := mockApply(t, left, proj, base.LeftOuterJoin)
		np, ok, err := (&ApplyProjectRule{}).Apply(context.Background(), apply, util.DefaultLogicalOptimizeOption())
		require.NoError(t, err)
		require.False(t, ok, proj.ExplainInfo())
		require.Nil(t, np)
	}
}

func TestApplyProjectLeftSemi(t *testing.T) {
	left := mockDataSource("l", "a", "b")
	right := mockDataSource("r", "c", "d")
	proj := mockProjection(t, right, []expression.Expression{plus(col(1), corCol(1)), expression.NewOne()}, nil)
	apply := mockApply(t, left, proj, base.SemiJoin, eq(col(0), col(2)))

	np, ok, err := (&ApplyProjectRule{}).Apply(context.Background(), apply, util.DefaultLogicalOptimizeOption())
	require.NoError(t, err)
	require.True(t, ok)
	newApply, isApply := np.(*logicalop.LogicalApply)
	require.True(t, isApply)
	require.True(t, newApply.Schema().Equal(left.Schema()))
	require.True(t, newApply.Schema().Equal(apply.Schema()))
	require.Same(t, right, newApply.Children()[1])
	require.Equal(t, base.SemiJoin, newApply.JoinType)
	require.Equal(t, "eq($0, plus($3, $1))", newApply.Conditions[0].String())
}

func TestApplyProjectOtherJoinTypes(t *testing.T) {
	left := mockDataSource("l", "a")
	right := mockDataSource("r", "c")
	proj := mockProjection(t, right, []expression.Expression{col(0)}, nil)
	for _, tp := range []base.JoinType{base.InnerJoin, base.RightOuterJoin, base.FullOuterJoin, base.AntiSemiJoin} {
		apply := mockApply(t, left, proj, tp)
		np, ok, err := (&ApplyProjectRule{}).Apply(context.Background(), apply, util.DefaultLogicalOptimizeOption())
		require.NoError(t, err, tp.String())
		require.False(t, ok, tp.String())
		require.Nil(t, np, tp.String())
	}

	// Shapes that do not match.
	rule := &ApplyProjectRule{}
	_, ok, err := rule.Apply(context.Background(), proj, nil)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = rule.Apply(context.Background(), mockApply(t, left, right, base.LeftOuterJoin), nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestApplySelection(t *testing.T) {
	left := mockDataSource("l", "a", "b")
	right := mockDataSource("r", "c")
	sel, err := logicalop.NewLogicalSelection(right, []expression.Expression{eq(col(0), corCol(1))})
	require.NoError(t, err)

	for _, tp := range []base.JoinType{base.InnerJoin, base.LeftOuterJoin, base.SemiJoin, base.AntiSemiJoin} {
		apply := mockApply(t, left, sel, tp, eq(col(0), col(2)))
		np, ok, err := (&ApplySelectionRule{}).Apply(context.Background(), apply, util.DefaultLogicalOptimizeOption())
		require.NoError(t, err)
		require.True(t, ok, tp.String())
		newApply := np.(*logicalop.LogicalApply)
		require.Same(t, right, newApply.Children()[1])
		require.Len(t, newApply.Conditions, 2)
		require.Equal(t, "eq($2, $1)", newApply.Conditions[1].String())
		require.False(t, newApply.IsCorrelated())
		require.True(t, newApply.Schema().Equal(apply.Schema()))
	}
	for _, tp := range []base.JoinType{base.RightOuterJoin, base.FullOuterJoin} {
		_, ok, err := (&ApplySelectionRule{}).Apply(context.Background(), mockApply(t, left, sel, tp), nil)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestApplyToJoin(t *testing.T) {
	left := mockDataSource("l", "a")
	right := mockDataSource("r", "c")
	apply := mockApply(t, left, right, base.LeftOuterJoin, eq(col(0), col(1)))

	tracer := &util.LogicalOptimizeTracer{}
	np, ok, err := (&ApplyToJoinRule{}).Apply(context.Background(), apply, util.DefaultLogicalOptimizeOption().WithEnableOptimizeTracer(tracer))
	require.NoError(t, err)
	require.True(t, ok)
	join, isJoin := np.(*logicalop.LogicalJoin)
	require.True(t, isJoin)
	require.Equal(t, "Join", join.TP())
	require.Equal(t, base.LeftOuterJoin, join.JoinType)
	require.Equal(t, apply.Conditions, join.Conditions)
	require.Len(t, tracer.Steps, 1)

	sel, err := logicalop.NewLogicalSelection(right, []expression.Expression{eq(col(0), corCol(0))})
	require.NoError(t, err)
	_, ok, err = (&ApplyToJoinRule{}).Apply(context.Background(), mockApply(t, left, sel, base.InnerJoin), nil)
	require.NoError(t, err)
	require.False(t, ok)
}
