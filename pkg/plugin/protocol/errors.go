// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package protocol

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed plugin exchange. A kind is itself an error
// so it can be used as an errors.Is target.
type ErrorKind string

const (
	MalformedMessage     ErrorKind = "MalformedMessage"
	PluginProcessFailure ErrorKind = "PluginProcessFailure"
	InputUnreadable      ErrorKind = "InputUnreadable"
)

func (k ErrorKind) Error() string {
	return string(k)
}

var (
	ErrMalformedMessage     error = MalformedMessage
	ErrPluginProcessFailure error = PluginProcessFailure
	ErrInputUnreadable      error = InputUnreadable
)

// Error is a failure of one protocol step.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf reports the kind of the first protocol failure in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind, true
	}
	return "", false
}

func malformed(op string, err error) error {
	return &Error{Kind: MalformedMessage, Op: op, Err: err}
}
