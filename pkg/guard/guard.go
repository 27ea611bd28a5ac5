/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package guard provides the argument checks performed by every public glue function before any other work is done.
//
// Failed checks are reported as *err.Instance errors of class ArgumentErrClass, whose cause is an *ArgumentError
// naming the offending argument.
package guard

import (
	"fmt"
	"github.com/oysterpack/fxlog/pkg/err"
	"reflect"
	"strings"
)

// Argument errors
var (
	ArgumentErrClass = err.NewDesc("01F8Z6W4D8X6V1G5J9T3Q2K7MB", "ArgumentErr", "argument is missing or invalid", err.ClientErr)

	NilArgumentErr   = err.New(ArgumentErrClass, "01F8Z6Y0T2E7R5B3N4M8C1V6XA")
	EmptyArgumentErr = err.New(ArgumentErrClass, "01F8Z6YJ5H3W9K2D7Q1P8S4F0C")
)

// ArgumentError names the argument that failed a check
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Name, e.Reason)
}

// NotNil checks that value is not nil. Typed nils, e.g., a nil *T stored in an interface, are treated as nil.
func NotNil(value interface{}, name string) error {
	if isNil(value) {
		return NilArgumentErr.CausedBy(&ArgumentError{Name: name, Reason: "must not be nil"})
	}
	return nil
}

// NotEmpty checks that value is not empty or blank
func NotEmpty(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return EmptyArgumentErr.CausedBy(&ArgumentError{Name: name, Reason: "must not be empty"})
	}
	return nil
}

// First returns the first non-nil error.
//
// Checks are evaluated eagerly by the caller, but only the first failure is reported, which mirrors the order in which
// the arguments are declared.
func First(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// IsArgumentErr returns true if the error chain contains an argument error
func IsArgumentErr(e error) bool {
	_, ok := err.As(e, ArgumentErrClass)
	return ok
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
