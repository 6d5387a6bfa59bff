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

package expression

import (
	"fmt"

	"github.com/likzn/risingwave/pkg/types"
	"github.com/likzn/risingwave/pkg/util/chunk"
)

// Expression represents all scalar expression in SQL. An Expression is
// immutable once built and may be shared by several plans and evaluated by
// several goroutines at the same time.
type Expression interface {
	fmt.Stringer

	// Eval evaluates an expression through a row.
	Eval(row chunk.Row) (types.Datum, error)

	// VecEval evaluates this expression in a vectorized manner. The result
	// has exactly input.NumRows() rows and the type returned by GetType.
	VecEval(input *chunk.Chunk) (*chunk.Column, error)

	// GetType gets the type that the expression returns.
	GetType() *types.FieldType

	// Equal checks whether two expressions are structurally equal.
	Equal(e Expression) bool

	// IsCorrelated checks if this expression has correlated key.
	IsCorrelated() bool

	// Traverse calls action on each sub expression bottom up, the result of
	// action replaces the visited node. A function whose rewritten
	// arguments no longer fit its signature fails the traversal.
	Traverse(action TraverseAction) (Expression, error)
}

// TraverseAction define the interface for action when traversing down an expression.
type TraverseAction interface {
	Transform(Expression) (Expression, error)
}

type traverseFunc func(Expression) (Expression, error)

func (f traverseFunc) Transform(e Expression) (Expression, error) {
	return f(e)
}
