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

	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/util/plancodec"
)

// LogicalLimit represents offset and limit plan.
type LogicalLimit struct {
	BaseLogicalPlan

	Offset uint64
	Count  uint64
}

// NewLogicalLimit builds a limit over child.
func NewLogicalLimit(child base.LogicalPlan, offset, count uint64) (*LogicalLimit, error) {
	if err := checkChildrenNum(plancodec.TypeLimit, []base.LogicalPlan{child}, 1); err != nil {
		return nil, err
	}
	return &LogicalLimit{
		BaseLogicalPlan: newBaseLogicalPlan(plancodec.TypeLimit, child.Schema(), child),
		Offset:          offset,
		Count:           count,
	}, nil
}

// WithChildren implements base.LogicalPlan interface.
func (p *LogicalLimit) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(p.TP(), children, 1); err != nil {
		return nil, err
	}
	return NewLogicalLimit(children[0], p.Offset, p.Count)
}

// ExplainInfo implements base.LogicalPlan interface.
func (p *LogicalLimit) ExplainInfo() string {
	return fmt.Sprintf("offset:%v, count:%v", p.Offset, p.Count)
}
