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

package exprerrors

import (
	"github.com/likzn/risingwave/pkg/errno"
	"github.com/likzn/risingwave/pkg/util/dbterror"
)

// Error instances.
var (
	ErrMalformedDescriptor    = dbterror.ClassExpression.NewStd(errno.ErrMalformedExprPB)
	ErrArity                  = dbterror.ClassExpression.NewStd(errno.ErrWrongParamCount)
	ErrTypeMismatch           = dbterror.ClassExpression.NewStd(errno.ErrTypeMismatch)
	ErrIncorrectArgType       = dbterror.ClassExpression.NewStd(errno.ErrIncorrectArgType)
	ErrOverflow               = dbterror.ClassTypes.NewStd(errno.ErrDataOutOfRange)
	ErrColumnIndexOutOfRange  = dbterror.ClassExpression.NewStd(errno.ErrColIdxOutOfRange)
	ErrUnboundCorrelatedValue = dbterror.ClassExpression.NewStd(errno.ErrUnboundCorrelated)
	ErrNotSupportedYet        = dbterror.ClassExpression.NewStd(errno.ErrNotSupportedYet)
)
