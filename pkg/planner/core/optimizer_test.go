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

package core

import (
	"context"
	"testing"

	"github.com/likzn/risingwave/pkg/config"
	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/metrics"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/dbterror/plannererrors"
	"github.com/likzn/risingwave/pkg/util/logutil"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var intTp = types.NewFieldType(types.TypeLonglong)

func mockDataSource(name string, cols ...string) *logicalop.DataSource {
	fields := make([]*expression.Field, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, expression.NewField(c, intTp))
	}
	return logicalop.NewDataSource(name, expression.NewSchema(fields...))
}

// buildCorrelatedPlan builds
//
//	Apply(l(a, b), Projection($1) <- Selection(c = cor$0) <- r(c, d))
func buildCorrelatedPlan(t *testing.T, tp base.JoinType) (*logicalop.LogicalApply, *logicalop.DataSource) {
	left := mockDataSource("l", "a", "b")
	right := mockDataSource("r", "c", "d")
	cond := expression.NewFunctionInternal(expression.EQ, intTp, expression.NewColumn(0, intTp), expression.NewCorrelatedColumn(0, intTp))
	sel, err := logicalop.NewLogicalSelection(right, []expression.Expression{cond})
	require.NoError(t, err)
	proj, err := logicalop.NewLogicalProjection(sel, []expression.Expression{expression.NewColumn(1, intTp)}, nil)
	require.NoError(t, err)
	apply, err := logicalop.NewLogicalApply(left, proj, tp, nil)
	require.NoError(t, err)
	return apply, left
}

// A projected literal is not NULL on the padding row of an outer join, so
// the projection stays under the Apply and nothing below it can move.
func TestDecorrelateLeftOuterConstantProjection(t *testing.T) {
	left := mockDataSource("l", "a", "b")
	right := mockDataSource("r", "c", "d")
	cond := expression.NewFunctionInternal(expression.EQ, intTp, expression.NewColumn(0, intTp), expression.NewCorrelatedColumn(0, intTp))
	sel, err := logicalop.NewLogicalSelection(right, []expression.Expression{cond})
	require.NoError(t, err)
	proj, err := logicalop.NewLogicalProjection(sel, []expression.Expression{expression.NewColumn(0, intTp), expression.NewOne()}, nil)
	require.NoError(t, err)
	apply, err := logicalop.NewLogicalApply(left, proj, base.LeftOuterJoin, nil)
	require.NoError(t, err)

	p, err := DecorrelateRuleSet().Optimize(context.Background(), apply, nil)
	require.NoError(t, err)
	require.Same(t, apply, p)
	require.Equal(t, 1, CountApply(p))
	require.Equal(t, "Apply{DataScan(l)->DataScan(r)->Sel([eq($0, cor$0)])->Projection}", ToString(p))
	require.True(t, p.Schema().Equal(apply.Schema()))
}

func TestDecorrelateLeftOuter(t *testing.T) {
	apply, _ := buildCorrelatedPlan(t, base.LeftOuterJoin)
	require.Equal(t, "Apply{DataScan(l)->DataScan(r)->Sel([eq($0, cor$0)])->Projection}", ToString(apply))

	tracer := &util.LogicalOptimizeTracer{}
	opt := util.DefaultLogicalOptimizeOption().WithEnableOptimizeTracer(tracer)
	p, err := DecorrelateRuleSet().Optimize(context.Background(), apply, opt)
	require.NoError(t, err)
	require.Equal(t, 0, CountApply(p))
	require.Equal(t, "Join{DataScan(l)->DataScan(r)}->Projection", ToString(p))
	require.True(t, p.Schema().Equal(apply.Schema()))
	require.Equal(t, []string{"a", "b", "d"}, p.Schema().Names())

	join := p.Children()[0].(*logicalop.LogicalJoin)
	require.Equal(t, base.LeftOuterJoin, join.JoinType)
	require.Equal(t, "eq($2, $0)", join.Conditions[0].String())

	rules := make([]string, 0, len(tracer.Steps))
	for _, step := range tracer.Steps {
		rules = append(rules, step.Rule)
	}
	require.Equal(t, []string{"apply_project", "apply_selection", "apply_to_join"}, rules)
	require.Equal(t, ToString(p), tracer.FinalPlan)
}

func TestDecorrelateLeftSemi(t *testing.T) {
	apply, left := buildCorrelatedPlan(t, base.SemiJoin)
	p, err := DecorrelateRuleSet().Optimize(context.Background(), apply, nil)
	require.NoError(t, err)
	require.Equal(t, 0, CountApply(p))
	require.Equal(t, "SemiJoin{DataScan(l)->DataScan(r)}", ToString(p))
	require.True(t, p.Schema().Equal(left.Schema()))
}

func TestFixpointIdempotence(t *testing.T) {
	apply, _ := buildCorrelatedPlan(t, base.LeftOuterJoin)
	rs := DecorrelateRuleSet()
	p, err := rs.Optimize(context.Background(), apply, nil)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.RuleApplyCounter.WithLabelValues("apply_to_join"))
	again, err := rs.Optimize(context.Background(), p, nil)
	require.NoError(t, err)
	require.Same(t, p, again)
	require.Equal(t, ToString(p), ToString(again))
	require.Equal(t, before, testutil.ToFloat64(metrics.RuleApplyCounter.WithLabelValues("apply_to_join")))
}

func TestDecorrelateNested(t *testing.T) {
	inner, _ := buildCorrelatedPlan(t, base.LeftOuterJoin)
	outerLeft := mockDataSource("o", "x")
	cond := expression.NewFunctionInternal(expression.EQ, intTp, expression.NewColumn(0, intTp), expression.NewCorrelatedColumn(0, intTp))
	sel, err := logicalop.NewLogicalSelection(inner, []expression.Expression{cond})
	require.NoError(t, err)
	outer, err := logicalop.NewLogicalApply(outerLeft, sel, base.InnerJoin, nil)
	require.NoError(t, err)
	require.Equal(t, 2, CountApply(outer))

	p, err := DecorrelateRuleSet().Optimize(context.Background(), outer, nil)
	require.NoError(t, err)
	require.Equal(t, 0, CountApply(p))
	require.True(t, p.Schema().Equal(outer.Schema()))
}

type rebuildRule struct{}

func (rebuildRule) Name() string { return "rebuild" }

// Apply rebuilds every DataSource, so the plan never reaches a fixpoint.
func (rebuildRule) Apply(_ context.Context, p base.LogicalPlan, _ *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	ds, ok := p.(*logicalop.DataSource)
	if !ok {
		return nil, false, nil
	}
	np, err := ds.WithChildren()
	return np, err == nil, err
}

type failingRule struct{}

func (failingRule) Name() string { return "failing" }

func (failingRule) Apply(context.Context, base.LogicalPlan, *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	return nil, false, errors.New("boom")
}

func TestIterationLimit(t *testing.T) {
	obsCore, logs := observer.New(zapcore.WarnLevel)
	ctx := logutil.WithLogger(context.Background(), zap.New(obsCore))

	rs := NewRuleSet(rebuildRule{})
	rs.SetMaxIterations(3)
	before := testutil.ToFloat64(metrics.IterationLimitCounter)
	ds := mockDataSource("t", "a")
	p, err := rs.Optimize(ctx, ds, nil)
	require.NoError(t, err)
	require.NotSame(t, ds, p)
	require.Equal(t, "DataScan(t)", ToString(p))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.IterationLimitCounter))
	require.Equal(t, 1, logs.FilterMessage("logical rewrite stopped before reaching a fixpoint").Len())
}

func TestRuleError(t *testing.T) {
	before := testutil.ToFloat64(metrics.RuleErrorCounter.WithLabelValues("failing"))
	_, err := NewRuleSet(failingRule{}).Optimize(context.Background(), mockDataSource("t", "a"), nil)
	require.True(t, plannererrors.ErrRuleApplication.Equal(err))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.RuleErrorCounter.WithLabelValues("failing")))
}

func TestDisabledRules(t *testing.T) {
	restore := config.RestoreFunc()
	defer restore()
	config.UpdateGlobal(func(conf *config.Config) {
		conf.Optimizer.DisabledRules = []string{"apply_to_join", "unknown"}
	})

	rs := DecorrelateRuleSet()
	require.Equal(t, []string{"apply_selection", "apply_project"}, rs.EnabledRules())
	apply, _ := buildCorrelatedPlan(t, base.LeftOuterJoin)
	p, err := rs.Optimize(context.Background(), apply, nil)
	require.NoError(t, err)
	require.Equal(t, 1, CountApply(p))
	require.Equal(t, "Apply{DataScan(l)->DataScan(r)}->Projection", ToString(p))

	rs.DisableRule("apply_project")
	p, err = rs.Optimize(context.Background(), apply, nil)
	require.NoError(t, err)
	require.Same(t, apply, p)
}

func TestConfiguredTrace(t *testing.T) {
	restore := config.RestoreFunc()
	defer restore()
	config.UpdateGlobal(func(conf *config.Config) {
		conf.Optimizer.EnableTrace = true
	})
	obsCore, logs := observer.New(zapcore.DebugLevel)
	ctx := logutil.WithLogger(context.Background(), zap.New(obsCore))

	apply, _ := buildCorrelatedPlan(t, base.SemiJoin)
	_, err := DecorrelateRuleSet().Optimize(ctx, apply, nil)
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("logical rewrite trace").Len())
	require.Equal(t, 3, logs.FilterMessage("logical rewrite applied").Len())
}

func TestOptimizeLogContext(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	tracer := mocktracer.New()
	span := tracer.StartSpan("optimize")
	ctx := opentracing.ContextWithSpan(context.Background(), span)
	ctx = logutil.WithLogger(ctx, zap.New(obsCore))

	apply, _ := buildCorrelatedPlan(t, base.SemiJoin)
	_, err := DecorrelateRuleSet().Optimize(ctx, apply, nil)
	require.NoError(t, err)
	span.Finish()

	applied := logs.FilterMessage("logical rewrite applied").All()
	require.Len(t, applied, 3)
	for _, entry := range applied {
		require.Equal(t, "planner", entry.ContextMap()[logutil.LogFieldCategory])
	}
	finished := tracer.FinishedSpans()
	require.Len(t, finished, 1)
	require.Equal(t, uint(3), finished[0].Tag("rules"))
	rounds, ok := finished[0].Tag("rounds").(int)
	require.True(t, ok)
	require.Greater(t, rounds, 1)
	require.Len(t, finished[0].Logs(), 3)
}
