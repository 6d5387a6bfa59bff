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

package dbterror

import (
	"fmt"
	"strconv"

	"github.com/likzn/risingwave/pkg/errno"
	"github.com/pingcap/errors"
)

// ErrClass represents a class of errors.
type ErrClass int

// ErrCode represents a specific error type in a error class.
// Same error code can be used in different error classes.
type ErrCode int

// Error classes.
const (
	ClassExpression ErrClass = iota + 1
	ClassOptimizer
	ClassTypes
)

var errClassToDesc = map[ErrClass]string{
	ClassExpression: "expression",
	ClassOptimizer:  "planner",
	ClassTypes:      "types",
}

// String implements fmt.Stringer interface.
func (ec ErrClass) String() string {
	if s, exists := errClassToDesc[ec]; exists {
		return s
	}
	return strconv.Itoa(int(ec))
}

// NewStdErr defines an *errors.Error with the class, code and message.
// The RFC code text is "<class>:<code>", for example "planner:8251".
func (ec ErrClass) NewStdErr(code ErrCode, message *errno.ErrMessage) *errors.Error {
	rfcCode := fmt.Sprintf("%s:%d", ec, code)
	return errors.Normalize(
		message.Format,
		errors.RedactArgs(message.RedactArgPos),
		errors.MySQLErrorCode(int(code)),
		errors.RFCCodeText(rfcCode),
	)
}

// NewStd calls New using the standard message for the error code.
func (ec ErrClass) NewStd(code ErrCode) *errors.Error {
	msg, ok := errno.MySQLErrName[uint16(code)]
	if !ok {
		msg = errno.MySQLErrName[errno.ErrUnknown]
	}
	return ec.NewStdErr(code, msg)
}

// EqualClass returns true if err is an *errors.Error of this class.
func (ec ErrClass) EqualClass(err error) bool {
	e, ok := errors.Cause(err).(*errors.Error)
	if !ok {
		return false
	}
	prefix := ec.String() + ":"
	text := string(e.RFCCode())
	return len(text) > len(prefix) && text[:len(prefix)] == prefix
}
