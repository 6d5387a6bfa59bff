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

package base

import (
	"context"

	"github.com/likzn/risingwave/pkg/planner/util"
)

// Rule rewrites the root of a logical plan. A rule only looks at the root
// and its direct children, descending into the tree is the driver's job.
type Rule interface {
	// Apply returns the replacement of p and true when the rule matches,
	// or (nil, false, nil) when it does not. p is never modified.
	Apply(ctx context.Context, p LogicalPlan, opt *util.LogicalOptimizeOp) (LogicalPlan, bool, error)
	// Name returns the name of the rule, it is also the key in the
	// disabled-rules configuration.
	Name() string
}
