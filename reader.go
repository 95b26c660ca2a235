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
	"bufio"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ElementReadCallback receives each decoded instance of an element. The
// buffer is reused for the next instance as soon as the callback returns.
// Returning an error aborts the read.
type ElementReadCallback func(buf *ElementBuffer) error

// Decoder reads a PLY stream. The header is parsed by NewDecoder, the data
// section by a single call to Decode.
type Decoder struct {
	r         *bufio.Reader
	header    *Header
	callbacks map[string]ElementReadCallback
	opts      options
	done      bool
}

// NewDecoder parses the header of the PLY stream in r.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		r:         bufio.NewReader(r),
		callbacks: map[string]ElementReadCallback{},
		opts:      buildOptions(opts),
	}
	h, err := parseHeader(d.r)
	if err != nil {
		return nil, err
	}
	d.header = h
	d.opts.logger.Debug("parsed ply header",
		zap.Stringer("format", h.Format),
		zap.String("version", h.Version),
		zap.Int("elements", len(h.Elements)))
	return d, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() *Header { return d.header }

// Definitions returns the elements declared by the header.
func (d *Decoder) Definitions() ElementsDefinition { return d.header.Elements }

// SetElementReadCallback registers cb for every instance of the named
// element. Elements without a callback are decoded and dropped.
func (d *Decoder) SetElementReadCallback(element string, cb ElementReadCallback) {
	d.callbacks[element] = cb
}

// Decode reads the data section, element by element in header order,
// calling the registered callbacks. It can only be called once.
func (d *Decoder) Decode() error {
	if d.done {
		return errors.New("ply: data section already decoded")
	}
	d.done = true
	src := newValueReader(d.r, d.header.Format)
	buf := &ElementBuffer{}
	for i := range d.header.Elements {
		e := &d.header.Elements[i]
		if err := buf.reset(*e); err != nil {
			return errors.Wrapf(err, "element %q", e.Name)
		}
		cb := d.callbacks[e.Name]
		d.opts.logger.Debug("reading element",
			zap.String("element", e.Name),
			zap.Int("size", e.Size),
			zap.Bool("callback", cb != nil))
		for n := 0; n < e.Size; n++ {
			if err := decodeInstance(src, e, buf); err != nil {
				return errors.Wrapf(err, "element %q instance %d", e.Name, n)
			}
			if cb == nil {
				continue
			}
			if err := cb(buf); err != nil {
				return errors.Wrapf(err, "element %q instance %d", e.Name, n)
			}
		}
	}
	return nil
}

// File reads a PLY file by name. Open parses the header and closes the file
// again; Read reopens it for the data section.
type File struct {
	filename  string
	header    *Header
	callbacks map[string]ElementReadCallback
	opts      []Option
}

// Open parses the header of the named file. Names ending in .gz are read
// through a gzip decompressor.
func Open(filename string, opts ...Option) (*File, error) {
	f := &File{
		filename:  filename,
		callbacks: map[string]ElementReadCallback{},
		opts:      opts,
	}
	err := f.withDecoder(func(d *Decoder) error {
		f.header = d.Header()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Header returns the parsed header.
func (f *File) Header() *Header { return f.header }

// Definitions returns the elements declared by the header.
func (f *File) Definitions() ElementsDefinition { return f.header.Elements }

// SetElementReadCallback registers cb for every instance of the named
// element.
func (f *File) SetElementReadCallback(element string, cb ElementReadCallback) {
	f.callbacks[element] = cb
}

// Read streams every element of the file through the registered callbacks.
func (f *File) Read() error {
	return f.withDecoder(func(d *Decoder) error {
		for name, cb := range f.callbacks {
			d.SetElementReadCallback(name, cb)
		}
		return d.Decode()
	})
}

func (f *File) withDecoder(fn func(*Decoder) error) error {
	return withReader(f.filename, func(r io.Reader) error {
		d, err := NewDecoder(r, f.opts...)
		if err != nil {
			return err
		}
		return fn(d)
	})
}
