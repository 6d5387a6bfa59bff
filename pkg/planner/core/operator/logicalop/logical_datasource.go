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
	"github.com/likzn/risingwave/pkg/expression"
	"github.com/likzn/risingwave/pkg/planner/core/base"
	"github.com/likzn/risingwave/pkg/util/plancodec"
)

// DataSource represents a tableScan without condition push down.
type DataSource struct {
	BaseLogicalPlan

	TableName string
}

// NewDataSource builds a DataSource reading table name with the given schema.
func NewDataSource(name string, schema *expression.Schema) *DataSource {
	return &DataSource{
		BaseLogicalPlan: newBaseLogicalPlan(plancodec.TypeDataSource, schema),
		TableName:       name,
	}
}

// WithChildren implements base.LogicalPlan interface.
func (ds *DataSource) WithChildren(children ...base.LogicalPlan) (base.LogicalPlan, error) {
	if err := checkChildrenNum(ds.TP(), children, 0); err != nil {
		return nil, err
	}
	return NewDataSource(ds.TableName, ds.Schema()), nil
}

// ExplainInfo implements base.LogicalPlan interface.
func (ds *DataSource) ExplainInfo() string {
	return "table:" + ds.TableName
}
