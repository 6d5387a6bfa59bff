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

package errno

// MySQL compatible error codes.
const (
	ErrUnknown           = 1105
	ErrWrongParamCount   = 1582
	ErrDataOutOfRange    = 1690
	ErrIncorrectArgType  = 1210
	ErrInternal          = 8141
	ErrNotSupportedYet   = 8230
	ErrInvalidPlan       = 8250
	ErrRuleApplication   = 8251
	ErrColIdxNotMapped   = 8252
	ErrMalformedExprPB   = 8260
	ErrTypeMismatch      = 8261
	ErrColIdxOutOfRange  = 8262
	ErrUnboundCorrelated = 8263
)
