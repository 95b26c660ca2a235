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

import "math"

// Value holds a single number of a fixed Type. Setters cast the argument
// into the stored width and getters cast the stored number out, the same way
// a Go conversion between the two numeric types would. Nothing checks for
// overflow.
//
// The number is kept as the raw bits of its stored width: signed kinds
// sign-extended, unsigned kinds zero-extended, floats as IEEE bits.
type Value struct {
	t    Type
	bits uint64
}

// NewValue returns a zero Value of type t. It panics if t is not valid.
func NewValue(t Type) Value {
	if !t.Valid() {
		panic(unsupportedType(t))
	}
	return Value{t: t}
}

// Type returns the stored type.
func (v *Value) Type() Type { return v.t }

// SetUint stores x cast to the value's type.
func (v *Value) SetUint(x uint32) { v.setUint64(uint64(x)) }

// SetInt stores x cast to the value's type.
func (v *Value) SetInt(x int32) { v.setInt64(int64(x)) }

// SetFloat32 stores x cast to the value's type.
func (v *Value) SetFloat32(x float32) { v.setFloat64(float64(x)) }

// SetFloat64 stores x cast to the value's type.
func (v *Value) SetFloat64(x float64) { v.setFloat64(x) }

// Uint returns the value converted to uint32.
func (v *Value) Uint() uint32 {
	switch {
	case v.t.isFloat():
		return uint32(v.asFloat64())
	case v.t.isSigned():
		return uint32(int64(v.bits))
	}
	return uint32(v.bits)
}

// Int returns the value converted to int32.
func (v *Value) Int() int32 {
	switch {
	case v.t.isFloat():
		return int32(v.asFloat64())
	case v.t.isSigned():
		return int32(int64(v.bits))
	}
	return int32(v.bits)
}

// Float32 returns the value converted to float32.
func (v *Value) Float32() float32 {
	if v.t == Float32 {
		return math.Float32frombits(uint32(v.bits))
	}
	return float32(v.asFloat64())
}

// Float64 returns the value converted to float64.
func (v *Value) Float64() float64 { return v.asFloat64() }

func (v *Value) asFloat64() float64 {
	switch v.t {
	case Float32:
		return float64(math.Float32frombits(uint32(v.bits)))
	case Float64:
		return math.Float64frombits(v.bits)
	case Int8, Int16, Int32:
		return float64(int64(v.bits))
	case Uint8, Uint16, Uint32:
		return float64(v.bits)
	}
	panic(unsupportedType(v.t))
}

func (v *Value) setUint64(x uint64) {
	switch v.t {
	case Int8:
		v.bits = uint64(int8(x))
	case Uint8:
		v.bits = uint64(uint8(x))
	case Int16:
		v.bits = uint64(int16(x))
	case Uint16:
		v.bits = uint64(uint16(x))
	case Int32:
		v.bits = uint64(int32(x))
	case Uint32:
		v.bits = uint64(uint32(x))
	case Float32:
		v.bits = uint64(math.Float32bits(float32(x)))
	case Float64:
		v.bits = math.Float64bits(float64(x))
	default:
		panic(unsupportedType(v.t))
	}
}

func (v *Value) setInt64(x int64) {
	switch v.t {
	case Float32:
		v.bits = uint64(math.Float32bits(float32(x)))
	case Float64:
		v.bits = math.Float64bits(float64(x))
	default:
		v.setUint64(uint64(x))
	}
}

func (v *Value) setFloat64(x float64) {
	switch v.t {
	case Int8:
		v.bits = uint64(int8(x))
	case Uint8:
		v.bits = uint64(uint8(x))
	case Int16:
		v.bits = uint64(int16(x))
	case Uint16:
		v.bits = uint64(uint16(x))
	case Int32:
		v.bits = uint64(int32(x))
	case Uint32:
		v.bits = uint64(uint32(x))
	case Float32:
		v.bits = uint64(math.Float32bits(float32(x)))
	case Float64:
		v.bits = math.Float64bits(x)
	default:
		panic(unsupportedType(v.t))
	}
}

// setRaw stores width-sized raw bits read from a binary body.
func (v *Value) setRaw(raw uint64) {
	switch v.t {
	case Int8:
		v.bits = uint64(int8(raw))
	case Int16:
		v.bits = uint64(int16(raw))
	case Int32:
		v.bits = uint64(int32(raw))
	default:
		v.bits = raw
	}
}

// convert returns v cast to type t. Floats are converted through float64 and
// integers through their 64-bit form so no precision is lost on the way.
func (v Value) convert(t Type) Value {
	if v.t == t {
		return v
	}
	out := NewValue(t)
	switch {
	case v.t.isFloat():
		out.setFloat64(v.asFloat64())
	case v.t.isSigned():
		out.setInt64(int64(v.bits))
	default:
		out.setUint64(v.bits)
	}
	return out
}

// count interprets v as a list length.
func (v *Value) count() (int, bool) {
	switch {
	case v.t.isFloat():
		return 0, false
	case v.t.isSigned():
		n := int64(v.bits)
		return int(n), n >= 0
	}
	return int(v.bits), true
}

// List holds a variable number of Values sharing one Type.
type List struct {
	t      Type
	values []Value
}

// Define re-types the list to t and resizes it to n zero values. Previous
// contents are discarded.
func (l *List) Define(t Type, n int) {
	if !t.Valid() {
		panic(unsupportedType(t))
	}
	l.t = t
	if cap(l.values) >= n {
		l.values = l.values[:n]
	} else {
		l.values = make([]Value, n)
	}
	for i := range l.values {
		l.values[i] = Value{t: t}
	}
}

// Resize is Define keeping the current type.
func (l *List) Resize(n int) { l.Define(l.t, n) }

// Len returns the number of values in the list.
func (l *List) Len() int { return len(l.values) }

// Type returns the type of every value in the list.
func (l *List) Type() Type { return l.t }

// At returns the i'th value. The pointer is only valid until the next Define.
func (l *List) At(i int) *Value { return &l.values[i] }
