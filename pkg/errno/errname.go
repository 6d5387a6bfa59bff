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

// ErrMessage is a error message with the format specifier.
type ErrMessage struct {
	Format string
	// RedactArgPos marks the args which may carry user data.
	RedactArgPos []int
}

// Message creates a error message with the format specifier.
func Message(message string, redactArgs []int) *ErrMessage {
	return &ErrMessage{Format: message, RedactArgPos: redactArgs}
}

// MySQLErrName maps error code to MySQL error messages.
var MySQLErrName = map[uint16]*ErrMessage{
	ErrUnknown:           Message("Unknown error", nil),
	ErrWrongParamCount:   Message("Incorrect parameter count in the call to native function '%-.192s', expect %d but got %d", nil),
	ErrDataOutOfRange:    Message("%s value is out of range in '%s'", nil),
	ErrIncorrectArgType:  Message("Incorrect arguments to %s", nil),
	ErrInternal:          Message("Internal : %s", nil),
	ErrNotSupportedYet:   Message("This version of the optimizer doesn't yet support '%s'", nil),
	ErrInvalidPlan:       Message("Invalid logical plan: %s", nil),
	ErrRuleApplication:   Message("Rule '%s' failed to rewrite the plan: %s", nil),
	ErrColIdxNotMapped:   Message("Column index %d has no target in mapping %s", nil),
	ErrMalformedExprPB:   Message("Malformed expression descriptor: %s", nil),
	ErrTypeMismatch:      Message("Type mismatch in '%s': %s", nil),
	ErrColIdxOutOfRange:  Message("Column index %d is out of range, input has %d columns", nil),
	ErrUnboundCorrelated: Message("Correlated column %s is not bound to an outer row", nil),
}
