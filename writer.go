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

// ElementWriteCallback fills buf with instance index of an element. List
// cells start out empty; size them with List.Define or List.Resize. Returning
// an error aborts the write.
type ElementWriteCallback func(buf *ElementBuffer, index int) error

// Encoder writes a PLY stream: the header, then every instance of every
// element in schema order, each produced by that element's callback.
type Encoder struct {
	w         io.Writer
	header    Header
	callbacks map[string]ElementWriteCallback
	opts      options
}

// NewEncoder returns an Encoder writing to w in the given format.
func NewEncoder(w io.Writer, format Format, opts ...Option) *Encoder {
	return &Encoder{
		w:         w,
		header:    Header{Format: format, Version: version},
		callbacks: map[string]ElementWriteCallback{},
		opts:      buildOptions(opts),
	}
}

// SetElementsDefinition sets the schema to write.
func (e *Encoder) SetElementsDefinition(d ElementsDefinition) {
	e.header.Elements = d
}

// SetElementWriteCallback registers the callback producing the instances of
// the named element.
func (e *Encoder) SetElementWriteCallback(element string, cb ElementWriteCallback) {
	e.callbacks[element] = cb
}

// AddComment adds a comment line to the header. Comments containing line
// breaks are rejected by Encode.
func (e *Encoder) AddComment(comment string) {
	e.header.Comments = append(e.header.Comments, comment)
}

// AddObjInfo adds an obj_info line to the header.
func (e *Encoder) AddObjInfo(info string) {
	e.header.ObjInfo = append(e.header.ObjInfo, info)
}

// checkSchema reports problems with the format, count type or schema.
func (e *Encoder) checkSchema() error {
	if e.header.Format < ASCII || e.header.Format > BinaryBigEndian {
		return errors.Errorf("ply: unknown format %v", e.header.Format)
	}
	if ct := e.opts.countType; !ct.Valid() || ct.isFloat() {
		return errors.Wrap(unsupportedType(ct), "list count type")
	}
	if len(e.header.Elements) == 0 {
		return errors.New("ply: no elements defined")
	}
	return e.header.validate()
}

// check reports configuration problems before anything is written.
func (e *Encoder) check() error {
	if err := e.checkSchema(); err != nil {
		return err
	}
	for _, el := range e.header.Elements {
		if e.callbacks[el.Name] == nil {
			return errors.Wrapf(ErrMissingCallback, "element %q", el.Name)
		}
	}
	return nil
}

// Encode writes the header and the data section.
func (e *Encoder) Encode() error {
	if err := e.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(e.w)
	if err := writeHeader(bw, &e.header, e.opts.countType); err != nil {
		return err
	}
	dst := newValueWriter(bw, e.header.Format)
	buf := &ElementBuffer{}
	for i := range e.header.Elements {
		el := &e.header.Elements[i]
		if err := buf.reset(*el); err != nil {
			return errors.Wrapf(err, "element %q", el.Name)
		}
		cb := e.callbacks[el.Name]
		e.opts.logger.Debug("writing element",
			zap.String("element", el.Name),
			zap.Int("size", el.Size))
		for n := 0; n < el.Size; n++ {
			if err := cb(buf, n); err != nil {
				return errors.Wrapf(err, "element %q instance %d", el.Name, n)
			}
			if err := encodeInstance(dst, el, buf, e.opts.countType); err != nil {
				return errors.Wrapf(err, "element %q instance %d", el.Name, n)
			}
		}
	}
	return bw.Flush()
}

// FileOut writes a PLY file by name.
type FileOut struct {
	filename string
	enc      *Encoder
}

// Create returns a FileOut that will write the named file in the given
// format. Nothing touches the file system until Write. Names ending in .gz
// are gzip compressed.
func Create(filename string, format Format, opts ...Option) *FileOut {
	return &FileOut{filename: filename, enc: NewEncoder(nil, format, opts...)}
}

// SetElementsDefinition sets the schema to write.
func (f *FileOut) SetElementsDefinition(d ElementsDefinition) { f.enc.SetElementsDefinition(d) }

// SetElementWriteCallback registers the callback producing the instances of
// the named element.
func (f *FileOut) SetElementWriteCallback(element string, cb ElementWriteCallback) {
	f.enc.SetElementWriteCallback(element, cb)
}

// AddComment adds a comment line to the header.
func (f *FileOut) AddComment(comment string) { f.enc.AddComment(comment) }

// AddObjInfo adds an obj_info line to the header.
func (f *FileOut) AddObjInfo(info string) { f.enc.AddObjInfo(info) }

// Write creates the file and encodes everything into it. Configuration
// errors are reported before the file is created.
func (f *FileOut) Write() error {
	if err := f.enc.check(); err != nil {
		return err
	}
	return withWriter(f.filename, func(w io.Writer) error {
		f.enc.w = w
		return f.enc.Encode()
	})
}
