// Copyright (C) 2019-2023 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

// Package serr provides structured errors for the compilation pipeline.
// Every failure carries a Kind identifying which contract was violated and a
// set of key/value attributes precise enough for a source-level diagnostic.
package serr

import (
	"errors"
	"strings"

	"golang.org/x/exp/slog"
)

// Kind classifies a compilation failure.
type Kind int

const (
	// KindNone marks an error with no particular classification.
	KindNone Kind = iota

	// KindType marks a declared-type mismatch between an operator and its
	// operands, or between a call site and a subroutine signature.
	KindType

	// KindInput marks a violated user-supplied constraint: version out of
	// range, group index too large, slot exhaustion, illegal recursion.
	KindInput

	// KindInternal marks a violated invariant of the IR itself. It signals a
	// builder bug rather than bad user input.
	KindInternal

	// KindCompile marks the top-level wrapper surfaced to the caller.
	KindCompile
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type error"
	case KindInput:
		return "input error"
	case KindInternal:
		return "internal error"
	case KindCompile:
		return "compile error"
	}
	return "error"
}

// Error is a structured error: a message, an attribute map, and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Msg     string
	Attrs   map[string]any
	Wrapped error
}

// New creates a new structured error object using the supplied message and
// attribute pairs.
func New(msg string, pairs ...any) *Error {
	return newKind(KindNone, msg, pairs...)
}

// TypeError creates a KindType error.
func TypeError(msg string, pairs ...any) *Error {
	return newKind(KindType, msg, pairs...)
}

// InputError creates a KindInput error.
func InputError(msg string, pairs ...any) *Error {
	return newKind(KindInput, msg, pairs...)
}

// InternalError creates a KindInternal error.
func InternalError(msg string, pairs ...any) *Error {
	return newKind(KindInternal, msg, pairs...)
}

func newKind(kind Kind, msg string, pairs ...any) *Error {
	attrs := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs[pairs[i].(string)] = pairs[i+1]
	}
	return &Error{Kind: kind, Msg: msg, Attrs: attrs}
}

// Error returns the error message. It is the supplied message prefixed by the
// kind, or the serialized attributes if the supplied message was blank.
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		var buf strings.Builder
		args := make([]any, 0, 2*len(e.Attrs))
		for key, val := range e.Attrs {
			args = append(args, key)
			args = append(args, val)
		}
		l := slog.New(slog.NewTextHandler(&buf, nil))
		l.Info("", args...)
		msg = strings.TrimSpace(buf.String())
	}
	if e.Kind == KindNone {
		return msg
	}
	return e.Kind.String() + ": " + msg
}

// Extend adds additional attributes to an existing error. If the supplied
// error is nil, a new structured error is created with the given attributes
// and no message. If the error is not a structured error, it is wrapped in
// one using its existing message and the new attributes.
func Extend(err error, pairs ...any) error {
	if err == nil {
		return New("", pairs...)
	}
	var serr *Error
	if ok := errors.As(err, &serr); ok {
		for i := 0; i+1 < len(pairs); i += 2 {
			serr.Attrs[pairs[i].(string)] = pairs[i+1]
		}
		return err
	}
	return wrap(err, pairs...)
}

// wrap is not exported because it always creates a new structured error.
// Extend is more appropriate from outside the package.
func wrap(err error, pairs ...any) error {
	serr := New(err.Error(), pairs...)
	serr.Wrapped = err
	return serr
}

// Compile wraps err as the KindCompile error surfaced to the caller. The
// original error remains reachable through Unwrap, so kind checks against the
// underlying failure still succeed.
func Compile(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindCompile, Msg: err.Error(), Attrs: map[string]any{}, Wrapped: err}
}

// IsKind reports whether any error in err's chain is a structured error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var serr *Error
		if !errors.As(err, &serr) {
			return false
		}
		if serr.Kind == kind {
			return true
		}
		err = serr.Wrapped
	}
	return false
}

// Attr returns the named attribute from the first structured error in err's
// chain that carries it.
func Attr(err error, key string) (any, bool) {
	for err != nil {
		var serr *Error
		if !errors.As(err, &serr) {
			return nil, false
		}
		if val, ok := serr.Attrs[key]; ok {
			return val, true
		}
		err = serr.Wrapped
	}
	return nil, false
}

// Unwrap returns the inner error, if it exists.
func (e *Error) Unwrap() error {
	return e.Wrapped
}
