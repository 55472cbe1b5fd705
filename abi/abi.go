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

// Package abi supplies ABI value encoding and method-selector derivation to
// the compiler. Byte layout is delegated to the avm-abi reference codec; the
// compiler treats results as opaque byte sequences.
package abi

import (
	"crypto/sha512"
	"fmt"
	"strings"

	avmabi "github.com/algorand/avm-abi/abi"
)

// Type is an ABI type, re-exported from the reference codec.
type Type = avmabi.Type

// TypeOf parses an ABI type string such as "uint64" or "(uint64,byte[])".
func TypeOf(str string) (Type, error) {
	return avmabi.TypeOf(str)
}

// Encode serializes value under the named ABI type.
func Encode(typeStr string, value interface{}) ([]byte, error) {
	t, err := avmabi.TypeOf(typeStr)
	if err != nil {
		return nil, fmt.Errorf("bad ABI type %s: %w", typeStr, err)
	}
	return t.Encode(value)
}

// Decode deserializes encoded under the named ABI type.
func Decode(typeStr string, encoded []byte) (interface{}, error) {
	t, err := avmabi.TypeOf(typeStr)
	if err != nil {
		return nil, fmt.Errorf("bad ABI type %s: %w", typeStr, err)
	}
	return t.Decode(encoded)
}

// MethodSelector derives the 4-byte dispatch selector for a canonical method
// signature of the form "name(type,...)return". The selector is the first
// four bytes of SHA-512/256 over the signature text.
func MethodSelector(signature string) ([]byte, error) {
	if _, _, _, err := ParseMethodSignature(signature); err != nil {
		return nil, err
	}
	hash := sha512.Sum512_256([]byte(signature))
	return hash[:4], nil
}

// ParseMethodSignature splits and validates a canonical method signature,
// returning the method name, argument type strings, and return type string.
// The return type may be "void".
func ParseMethodSignature(signature string) (name string, args []string, ret string, err error) {
	open := strings.Index(signature, "(")
	if open <= 0 {
		return "", nil, "", fmt.Errorf("method signature %q lacks a name or open paren", signature)
	}
	close := strings.LastIndex(signature, ")")
	if close < open {
		return "", nil, "", fmt.Errorf("method signature %q lacks a close paren", signature)
	}
	name = signature[:open]
	ret = signature[close+1:]
	if ret == "" {
		return "", nil, "", fmt.Errorf("method signature %q lacks a return type", signature)
	}
	if ret != "void" {
		if _, err = avmabi.TypeOf(ret); err != nil {
			return "", nil, "", fmt.Errorf("method signature %q has bad return type: %w", signature, err)
		}
	}
	args, err = splitTypes(signature[open+1 : close])
	if err != nil {
		return "", nil, "", fmt.Errorf("method signature %q has bad arguments: %w", signature, err)
	}
	for _, arg := range args {
		if _, err = avmabi.TypeOf(arg); err != nil {
			return "", nil, "", fmt.Errorf("method signature %q has bad argument type %q: %w", signature, arg, err)
		}
	}
	return name, args, ret, nil
}

// splitTypes splits a comma-separated argument list, respecting tuple
// nesting, so "(uint64,(byte,bool))" stays one element.
func splitTypes(argStr string) ([]string, error) {
	if argStr == "" {
		return nil, nil
	}
	var (
		args  []string
		depth int
		start int
	)
	for i, c := range argStr {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parens in %q", argStr)
			}
		case ',':
			if depth == 0 {
				args = append(args, argStr[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parens in %q", argStr)
	}
	args = append(args, argStr[start:])
	for _, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("empty argument type in %q", argStr)
		}
	}
	return args, nil
}
