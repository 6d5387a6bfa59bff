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

package util

import (
	"fmt"
	"strings"
)

// LogicalRuleStep is one successful rewrite recorded by the tracer.
type LogicalRuleStep struct {
	Round  int
	Rule   string
	ID     int
	TP     string
	Reason string
	Action string
}

// String implements fmt.Stringer interface.
func (s *LogicalRuleStep) String() string {
	return fmt.Sprintf("[round %d] %s on %s_%d: %s, %s", s.Round, s.Rule, s.TP, s.ID, s.Reason, s.Action)
}

// LogicalOptimizeTracer collects the steps made during logical rewriting.
type LogicalOptimizeTracer struct {
	Steps      []*LogicalRuleStep
	FinalPlan  string
	round      int
	activeRule string
}

// LogicalOptimizeOp is logical optimizing option for tracing.
type LogicalOptimizeOp struct {
	// tracer is going to track optimize steps during rule optimizing
	tracer *LogicalOptimizeTracer
}

// TracerIsNil returns whether inside tracer is nil
func (op *LogicalOptimizeOp) TracerIsNil() bool {
	return op == nil || op.tracer == nil
}

// DefaultLogicalOptimizeOption returns the default LogicalOptimizeOp.
func DefaultLogicalOptimizeOption() *LogicalOptimizeOp {
	return &LogicalOptimizeOp{}
}

// WithEnableOptimizeTracer attach the customized tracer to current LogicalOptimizeOp.
func (op *LogicalOptimizeOp) WithEnableOptimizeTracer(tracer *LogicalOptimizeTracer) *LogicalOptimizeOp {
	op.tracer = tracer
	return op
}

// Tracer returns the attached tracer, nil if tracing is disabled.
func (op *LogicalOptimizeOp) Tracer() *LogicalOptimizeTracer {
	if op == nil {
		return nil
	}
	return op.tracer
}

// AppendBeforeRuleOptimize marks the start of a rule application in the given round.
func (op *LogicalOptimizeOp) AppendBeforeRuleOptimize(round int, name string) {
	if op.TracerIsNil() {
		return
	}
	op.tracer.round = round
	op.tracer.activeRule = name
}

// AppendStepToCurrent appends a step of current action.
func (op *LogicalOptimizeOp) AppendStepToCurrent(id int, tp string, reason, action func() string) {
	if op.TracerIsNil() {
		return
	}
	op.tracer.Steps = append(op.tracer.Steps, &LogicalRuleStep{
		Round:  op.tracer.round,
		Rule:   op.tracer.activeRule,
		ID:     id,
		TP:     tp,
		Reason: reason(),
		Action: action(),
	})
}

// RecordFinalLogicalPlan records the final logical plan.
func (op *LogicalOptimizeOp) RecordFinalLogicalPlan(build func() string) {
	if op.TracerIsNil() {
		return
	}
	op.tracer.FinalPlan = build()
}

// String renders every recorded step, one per line.
func (t *LogicalOptimizeTracer) String() string {
	lines := make([]string, 0, len(t.Steps))
	for _, s := range t.Steps {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}
