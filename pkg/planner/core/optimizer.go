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
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/likzn/risingwave/pkg/config"
	"github.com/likzn/risingwave/pkg/metrics"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
	"github.com/likzn/risingwave/pkg/planner/core/rule"
	"github.com/likzn/risingwave/pkg/planner/util"
	"github.com/likzn/risingwave/pkg/util/dbterror/plannererrors"
	"github.com/likzn/risingwave/pkg/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// RuleSet applies an ordered list of rules to every node of a plan, bottom
// up, and repeats full passes until one pass changes nothing.
type RuleSet struct {
	rules []base.Rule
	// enabled has bit i set when rules[i] takes part in rewriting.
	enabled       *bitset.BitSet
	maxIterations int
}

// NewRuleSet creates a RuleSet from the rules, the iteration limit and the
// disabled rules are read from the global config.
func NewRuleSet(rules ...base.Rule) *RuleSet {
	conf := config.GetGlobalConfig().Optimizer
	s := &RuleSet{
		rules:         rules,
		enabled:       bitset.New(uint(len(rules))),
		maxIterations: conf.MaxIterations,
	}
	for i := range rules {
		s.enabled.Set(uint(i))
	}
	for _, name := range conf.DisabledRules {
		s.DisableRule(name)
	}
	return s
}

// DecorrelateRuleSet returns the rules that eliminate Apply operators.
func DecorrelateRuleSet() *RuleSet {
	return NewRuleSet(
		&rule.ApplySelectionRule{},
		&rule.ApplyProjectRule{},
		&rule.ApplyToJoinRule{},
	)
}

// DisableRule excludes the rule with the given name, unknown names are ignored.
func (s *RuleSet) DisableRule(name string) {
	for i, r := range s.rules {
		if r.Name() == name {
			s.enabled.Clear(uint(i))
		}
	}
}

// SetMaxIterations overrides the configured pass limit.
func (s *RuleSet) SetMaxIterations(n int) {
	s.maxIterations = n
}

// EnabledRules returns the names of the rules that take part in rewriting.
func (s *RuleSet) EnabledRules() []string {
	names := make([]string, 0, s.enabled.Count())
	for i, ok := s.enabled.NextSet(0); ok; i, ok = s.enabled.NextSet(i + 1) {
		names = append(names, s.rules[i].Name())
	}
	return names
}

// Optimize rewrites p until a fixpoint is reached or the pass limit is hit,
// in which case a warning is logged and the current plan is returned. A nil
// opt traces the rewrite when the config enables it.
func (s *RuleSet) Optimize(ctx context.Context, p base.LogicalPlan, opt *util.LogicalOptimizeOp) (base.LogicalPlan, error) {
	ctx = logutil.WithCategory(ctx, "planner")
	logutil.SetTag(ctx, "rules", s.enabled.Count())
	if opt == nil {
		opt = util.DefaultLogicalOptimizeOption()
		if config.GetGlobalConfig().Optimizer.EnableTrace {
			opt = opt.WithEnableOptimizeTracer(&util.LogicalOptimizeTracer{})
		}
	}
	start := time.Now()
	defer func() {
		metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	}()

	round := 0
	for {
		if round >= s.maxIterations {
			metrics.IterationLimitCounter.Inc()
			logutil.Logger(ctx).Warn("logical rewrite stopped before reaching a fixpoint",
				zap.Int("max-iterations", s.maxIterations),
				zap.String("plan", ToString(p)))
			break
		}
		round++
		np, changed, err := s.rewrite(ctx, p, round, opt)
		if err != nil {
			return nil, err
		}
		p = np
		if !changed {
			break
		}
	}
	metrics.OptimizeIterationsHistogram.Observe(float64(round))
	logutil.SetTag(ctx, "rounds", round)
	opt.RecordFinalLogicalPlan(func() string { return ToString(p) })
	if tracer := opt.Tracer(); tracer != nil && len(tracer.Steps) > 0 {
		logutil.Logger(ctx).Debug("logical rewrite trace", zap.Int("rounds", round), zap.Stringer("steps", tracer))
	}
	return p, nil
}

// rewrite makes one post-order pass over p. Every enabled rule is tried on
// a node in order, each one on the result of the previous.
func (s *RuleSet) rewrite(ctx context.Context, p base.LogicalPlan, round int, opt *util.LogicalOptimizeOp) (base.LogicalPlan, bool, error) {
	changed := false
	children := p.Children()
	newChildren := make([]base.LogicalPlan, len(children))
	for i, child := range children {
		newChild, childChanged, err := s.rewrite(ctx, child, round, opt)
		if err != nil {
			return nil, false, err
		}
		newChildren[i] = newChild
		changed = changed || childChanged
	}
	if changed {
		np, err := p.WithChildren(newChildren...)
		if err != nil {
			return nil, false, errors.Trace(err)
		}
		p = np
	}
	for i, r := range s.rules {
		if !s.enabled.Test(uint(i)) {
			continue
		}
		opt.AppendBeforeRuleOptimize(round, r.Name())
		np, ok, err := r.Apply(ctx, p, opt)
		if err != nil {
			metrics.RuleErrorCounter.WithLabelValues(r.Name()).Inc()
			return nil, false, plannererrors.ErrRuleApplication.GenWithStackByArgs(r.Name(), err.Error())
		}
		if !ok {
			continue
		}
		if np == nil {
			metrics.RuleErrorCounter.WithLabelValues(r.Name()).Inc()
			return nil, false, plannererrors.ErrRuleApplication.GenWithStackByArgs(r.Name(), "matched without a replacement")
		}
		metrics.RuleApplyCounter.WithLabelValues(r.Name()).Inc()
		logutil.Logger(ctx).Debug("logical rewrite applied",
			zap.String(logutil.LogFieldRule, r.Name()),
			zap.Int("round", round),
			zap.String("from", explainID(p)),
			zap.String("to", explainID(np)))
		logutil.Eventf(ctx, "rule %s rewrote %s", r.Name(), explainID(p))
		p, changed = np, true
	}
	return p, changed, nil
}

func explainID(p base.LogicalPlan) string {
	if e, ok := p.(interface{ ExplainID() string }); ok {
		return e.ExplainID()
	}
	return p.TP()
}

// CountApply returns the number of Apply operators left in p.
func CountApply(p base.LogicalPlan) int {
	n := 0
	if _, ok := p.(*logicalop.LogicalApply); ok {
		n++
	}
	for _, child := range p.Children() {
		n += CountApply(child)
	}
	return n
}
