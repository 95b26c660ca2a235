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

import "fmt"

type cell struct {
	isList bool
	scalar Value
	list   List
}

// ElementBuffer holds the property values of one element instance, one cell
// per property in schema order. Decoders and encoders reuse a single buffer
// for every instance of an element, so a callback must copy out whatever it
// needs before it returns and must not keep the buffer.
type ElementBuffer struct {
	cells []cell
}

// NewElementBuffer builds a buffer shaped like e: a scalar cell for each
// scalar property and an empty list for each list property.
func NewElementBuffer(e Element) (*ElementBuffer, error) {
	b := &ElementBuffer{}
	if err := b.reset(e); err != nil {
		return nil, err
	}
	return b, nil
}

// reset reshapes the buffer for e, reusing the cell storage.
func (b *ElementBuffer) reset(e Element) error {
	for _, p := range e.Properties {
		if !p.Type.Valid() {
			return unsupportedType(p.Type)
		}
	}
	if cap(b.cells) >= len(e.Properties) {
		b.cells = b.cells[:len(e.Properties)]
	} else {
		b.cells = make([]cell, len(e.Properties))
	}
	for i, p := range e.Properties {
		c := &b.cells[i]
		c.isList = p.IsList
		if p.IsList {
			c.scalar = Value{}
			c.list.Define(p.Type, 0)
		} else {
			c.scalar = NewValue(p.Type)
			c.list.t = 0
			c.list.values = c.list.values[:0]
		}
	}
	return nil
}

// Len returns the number of cells, which is the element's property count.
func (b *ElementBuffer) Len() int { return len(b.cells) }

// IsList reports whether cell i holds a list.
func (b *ElementBuffer) IsList(i int) bool { return b.cells[i].isList }

// Value returns the scalar held by cell i. It panics if cell i is a list.
func (b *ElementBuffer) Value(i int) *Value {
	c := &b.cells[i]
	if c.isList {
		panic(fmt.Sprintf("plyfile: property %d is a list", i))
	}
	return &c.scalar
}

// List returns the list held by cell i. It panics if cell i is a scalar.
func (b *ElementBuffer) List(i int) *List {
	c := &b.cells[i]
	if !c.isList {
		panic(fmt.Sprintf("plyfile: property %d is not a list", i))
	}
	return &c.list
}
