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

package plancodec

// Operator type names, used in plan IDs, explain output and trace steps.
const (
	// TypeDataSource is the type of DataSource.
	TypeDataSource = "DataSource"
	// TypeProj is the type of Projection.
	TypeProj = "Projection"
	// TypeSel is the type of Selection.
	TypeSel = "Selection"
	// TypeJoin is the type of Join.
	TypeJoin = "Join"
	// TypeApply is the type of Apply.
	TypeApply = "Apply"
	// TypeLimit is the type of Limit.
	TypeLimit = "Limit"
)
