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
	"fmt"
	"strings"

	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/planner/core/operator/logicalop"
)

// ToString explains a Plan, returns description string.
func ToString(p base.LogicalPlan) string {
	strs, _ := toString(p, []string{}, []int{})
	return strings.Join(strs, "->")
}

func toString(in base.LogicalPlan, strs []string, idxs []int) ([]string, []int) {
	if len(in.Children()) > 1 {
		idxs = append(idxs, len(strs))
	}
	for _, c := range in.Children() {
		strs, idxs = toString(c, strs, idxs)
	}

	var str string
	switch x := in.(type) {
	case *logicalop.DataSource:
		str = fmt.Sprintf("DataScan(%s)", x.TableName)
	case *logicalop.LogicalSelection:
		str = fmt.Sprintf("Sel(%s)", x.Conditions)
	case *logicalop.LogicalProjection:
		str = "Projection"
	case *logicalop.LogicalLimit:
		str = "Limit"
	case *logicalop.LogicalApply:
		last := len(idxs) - 1
		idx := idxs[last]
		children := strs[idx:]
		strs = strs[:idx]
		idxs = idxs[:last]
		str = "Apply{" + strings.Join(children, "->") + "}"
	case *logicalop.LogicalJoin:
		last := len(idxs) - 1
		idx := idxs[last]
		children := strs[idx:]
		strs = strs[:idx]
		idxs = idxs[:last]
		id := "Join"
		switch x.JoinType {
		case base.SemiJoin:
			id = "SemiJoin"
		case base.AntiSemiJoin:
			id = "AntiSemiJoin"
		}
		str = id + "{" + strings.Join(children, "->") + "}"
	default:
		str = in.TP()
	}
	strs = append(strs, str)
	return strs, idxs
}
