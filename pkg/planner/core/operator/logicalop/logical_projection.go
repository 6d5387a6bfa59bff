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
	"bytes"
	"fmt"

	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/util/plancodec"
)

// LogicalProjection represents a select fields plan.
type LogicalProjection struct {
	BaseLogicalPlan

	Exprs []expression.Expression
	// Aliases has one entry per expression, "" means no alias.
	Aliases []string
}

// NewLogicalProjection builds a projection of exprs over child. A nil
// aliases list means no expression is aliased.
func NewLogicalProjection(child base.LogicalPlan, exprs []expression.Expression, aliases []string) (*LogicalProjection, error) {
	if err := checkChildrenNum(plancodec.TypeProj, []base.LogicalPlan{child}, 1); err != nil {
		return nil, err
	}
	if aliases == nil {
		aliases = make([]string, len(exprs))
	}
	if len(aliases) != len(exprs) {
		return nil, errInvalidPlan("projection has %d expressions but %d aliases", len(exprs), len(aliases))
	}
	inputSchema := child.Schema()
	if err := checkExprsInRange(plancodec.TypeProj, exprs, inputSchema.Len()); err != nil {
		return nil, err
	}
	fields := make([]*expression.Field, 0, len(exprs))
	for i, expr := range exprs {
		fields = append(fields, expression.NewField(outputName(inputSchema, expr, aliases[i]), expr.GetType()))
	}
	return &LogicalProjection{
		BaseLogicalPlan: newBaseLogicalPlan(plancodec.TypeProj, expression.NewSchema(fields...), child),
		Exprs:           exprs,
		Aliases:         aliases,
	}, nil
}

// outputName resolves the name of a projected column. An unaliased column
// reference keeps the input name, any other expression is named by its
// string form.
func outputName(input *expression.Schema, expr expression.Expression, alias string) string {
	if alias != "" {
		return alias
	}
	if col, ok := expr.(*expression.Column); ok {
		return input.Fields[col.Index].Name
	}
	return expr.String()
}

// WithChildren implements base.LogicalPlan interface.
func (p *LogicalProjection) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(p.TP(), children, 1); err != nil {
		return nil, err
	}
	return NewLogicalProjection(children[0], p.Exprs, p.Aliases)
}

// Expressions implements base.LogicalPlan interface.
func (p *LogicalProjection) Expressions() []expression.Expression {
	return p.Exprs
}

// ExplainInfo implements base.LogicalPlan interface.
func (p *LogicalProjection) ExplainInfo() string {
	buffer := bytes.NewBufferString("")
	for i, expr := range p.Exprs {
		if i > 0 {
			buffer.WriteString(", ")
		}
		buffer.WriteString(expr.String())
		if p.Aliases[i] != "" {
			fmt.Fprintf(buffer, "->%s", p.Aliases[i])
		}
	}
	return buffer.String()
}
