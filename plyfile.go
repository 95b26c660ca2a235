/*
Copyright 2016 Alex Baden

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plyfile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Format is the encoding of the data section of a PLY file. The header is
// always text regardless of the format.
type Format int

const (
	ASCII              Format = iota /* ascii PLY file */
	BinaryLittleEndian               /* binary PLY file, little endian */
	BinaryBigEndian                  /* binary PLY file, big endian */
)

var formatNames = [...]string{
	ASCII:              "ascii",
	BinaryLittleEndian: "binary_little_endian",
	BinaryBigEndian:    "binary_big_endian",
}

// String returns the token used for the format on the header's format line.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format named by a header format token.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if name == s {
			return Format(f), nil
		}
	}
	return 0, errors.Errorf("unknown format %q", s)
}

// Type is one of the eight scalar kinds a property value can be stored as.
// The zero Type is invalid.
type Type int

const (
	Int8 Type = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

// DefaultCountType is the type used to encode list lengths when neither the
// Property nor the Encoder options name one.
const DefaultCountType = Uint8

var typeInfo = [...]struct {
	name  string /* classic header token, used when writing */
	sized string /* sized header token */
	size  int    /* bytes in a binary body */
}{
	Int8:    {"char", "int8", 1},
	Uint8:   {"uchar", "uint8", 1},
	Int16:   {"short", "int16", 2},
	Uint16:  {"ushort", "uint16", 2},
	Int32:   {"int", "int32", 4},
	Uint32:  {"uint", "uint32", 4},
	Float32: {"float", "float32", 4},
	Float64: {"double", "float64", 8},
}

// Valid reports whether t is one of the eight recognized kinds.
func (t Type) Valid() bool {
	return t >= Int8 && t <= Float64
}

// Size returns the number of bytes a value of type t occupies in a binary body.
func (t Type) Size() int {
	if !t.Valid() {
		panic(unsupportedType(t))
	}
	return typeInfo[t].size
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeInfo[t].name
}

func (t Type) isFloat() bool { return t == Float32 || t == Float64 }

func (t Type) isSigned() bool { return t == Int8 || t == Int16 || t == Int32 }

// ParseType returns the Type named by a header type token. Both the classic
// tokens (char, uchar, ..., double) and the sized ones (int8, ..., float64)
// are accepted.
func ParseType(s string) (Type, error) {
	for t := Int8; t <= Float64; t++ {
		if typeInfo[t].name == s || typeInfo[t].sized == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown property type %q", s)
}

// Property describes one field of an element.
type Property struct {
	Name      string /* property name */
	Type      Type   /* scalar type, or type of each list entry */
	IsList    bool   /* true = list, false = scalar */
	CountType Type   /* type of the list length; zero means the writer's default */
}

// Element describes a named group of instances sharing one property layout.
type Element struct {
	Name       string     /* element name */
	Size       int        /* number of instances in the file */
	Properties []Property /* properties in file order */
}

// ElementsDefinition is the ordered list of elements of a file. The order is
// both the header declaration order and the data section order.
type ElementsDefinition []Element

// Find returns the element with the given name.
func (d ElementsDefinition) Find(name string) (Element, bool) {
	for _, e := range d {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// Header is everything a PLY header declares.
type Header struct {
	Format   Format
	Version  string
	Comments []string
	ObjInfo  []string
	Elements ElementsDefinition
}

// validName reports whether s can be written as a single header token.
func validName(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

// validate checks that the comment and obj_info lines fit on one header line
// each, then validates the elements.
func (h *Header) validate() error {
	for _, c := range h.Comments {
		if strings.ContainsAny(c, "\r\n") {
			return errors.Errorf("comment %q spans several lines", c)
		}
	}
	for _, o := range h.ObjInfo {
		if strings.ContainsAny(o, "\r\n") {
			return errors.Errorf("obj_info %q spans several lines", o)
		}
	}
	return h.Elements.validate()
}

// validate checks the invariants the header writer and body encoders rely on.
func (d ElementsDefinition) validate() error {
	seen := make(map[string]bool, len(d))
	for _, e := range d {
		if !validName(e.Name) {
			return errors.Errorf("invalid element name %q", e.Name)
		}
		if seen[e.Name] {
			return errors.Errorf("duplicate element %q", e.Name)
		}
		seen[e.Name] = true
		if e.Size < 0 {
			return errors.Errorf("element %q has negative size %d", e.Name, e.Size)
		}
		if len(e.Properties) == 0 {
			return errors.Errorf("element %q has no properties", e.Name)
		}
		for _, p := range e.Properties {
			if !validName(p.Name) {
				return errors.Errorf("element %q: invalid property name %q", e.Name, p.Name)
			}
			if !p.Type.Valid() {
				return errors.Wrapf(unsupportedType(p.Type), "property %s.%s", e.Name, p.Name)
			}
			if p.IsList && p.CountType != 0 && (!p.CountType.Valid() || p.CountType.isFloat()) {
				return errors.Wrapf(unsupportedType(p.CountType), "list count of %s.%s", e.Name, p.Name)
			}
		}
	}
	return nil
}
