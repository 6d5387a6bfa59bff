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
	"fmt"

	"github.com/likzn/risingwave/pkg/expression"
)

// LogicalPlan is a tree of logical operators. A LogicalPlan is immutable:
// every rewrite builds new nodes and leaves the old ones untouched, so a plan
// may be shared between several trees.
type LogicalPlan interface {
	fmt.Stringer

	// ID is the unique id of the node, used by explain and trace output.
	ID() int

	// TP is the operator type name, see plancodec.
	TP() string

	// Schema is the output schema of the node.
	Schema() *expression.Schema

	// Children returns the input plans.
	Children() []LogicalPlan

	// WithChildren builds a copy of the node over new children. The node's
	// own expressions are revalidated against the new input schemas.
	WithChildren(children ...LogicalPlan) (LogicalPlan, error)

	// Expressions returns every expression owned by the node itself.
	Expressions() []expression.Expression

	// ExplainInfo returns operator information to be explained.
	ExplainInfo() string
}
