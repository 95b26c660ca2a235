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
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// valueReader decodes single values from the data section.
type valueReader interface {
	// read fills v with the next value, decoded as v's type.
	read(v *Value) error
}

// valueWriter encodes single values into the data section.
type valueWriter interface {
	write(v Value) error
	// endInstance is called once every value of an instance is written.
	endInstance() error
}

func newValueReader(r *bufio.Reader, f Format) valueReader {
	switch f {
	case BinaryLittleEndian:
		return &binaryReader{r: r, order: binary.LittleEndian}
	case BinaryBigEndian:
		return &binaryReader{r: r, order: binary.BigEndian}
	}
	return &asciiReader{r: r}
}

func newValueWriter(w *bufio.Writer, f Format) valueWriter {
	switch f {
	case BinaryLittleEndian:
		return &binaryWriter{w: w, order: binary.LittleEndian}
	case BinaryBigEndian:
		return &binaryWriter{w: w, order: binary.BigEndian}
	}
	return &asciiWriter{w: w}
}

// decodeInstance reads one instance of e into b. b must already be shaped
// for e.
func decodeInstance(src valueReader, e *Element, b *ElementBuffer) error {
	for i, p := range e.Properties {
		if !p.IsList {
			if err := src.read(b.Value(i)); err != nil {
				return errors.Wrapf(err, "property %q", p.Name)
			}
			continue
		}
		count := NewValue(p.CountType)
		if err := src.read(&count); err != nil {
			return errors.Wrapf(err, "length of list %q", p.Name)
		}
		n, ok := count.count()
		if !ok {
			return errors.Wrapf(ErrValueDecode, "list %q has length %v", p.Name, count.Float64())
		}
		// The length comes from the file; grow only as entries arrive.
		l := b.List(i)
		l.Define(p.Type, 0)
		for j := 0; j < n; j++ {
			v := Value{t: p.Type}
			if err := src.read(&v); err != nil {
				return errors.Wrapf(err, "entry %d of list %q", j, p.Name)
			}
			l.values = append(l.values, v)
		}
	}
	return nil
}

// encodeInstance writes the instance held in b as e describes it. Values
// whose type differs from the declared one are converted first.
func encodeInstance(dst valueWriter, e *Element, b *ElementBuffer, countType Type) error {
	for i, p := range e.Properties {
		if !p.IsList {
			if err := dst.write(b.Value(i).convert(p.Type)); err != nil {
				return err
			}
			continue
		}
		l := b.List(i)
		ct := p.CountType
		if ct == 0 {
			ct = countType
		}
		if uint64(l.Len()) > maxCount(ct) {
			return errors.Wrapf(ErrListOverflow, "list %q has %d entries, count type %s", p.Name, l.Len(), ct)
		}
		count := NewValue(ct)
		count.setUint64(uint64(l.Len()))
		if err := dst.write(count); err != nil {
			return err
		}
		for _, v := range l.values {
			if err := dst.write(v.convert(p.Type)); err != nil {
				return err
			}
		}
	}
	return dst.endInstance()
}

func maxCount(t Type) uint64 {
	switch t {
	case Int8:
		return math.MaxInt8
	case Uint8:
		return math.MaxUint8
	case Int16:
		return math.MaxInt16
	case Uint16:
		return math.MaxUint16
	case Int32:
		return math.MaxInt32
	case Uint32:
		return math.MaxUint32
	}
	return 0
}

type binaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	tmp   [8]byte
}

func (r *binaryReader) read(v *Value) error {
	b := r.tmp[:v.t.Size()]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return truncated(err)
	}
	switch len(b) {
	case 1:
		v.setRaw(uint64(b[0]))
	case 2:
		v.setRaw(uint64(r.order.Uint16(b)))
	case 4:
		v.setRaw(uint64(r.order.Uint32(b)))
	case 8:
		v.setRaw(r.order.Uint64(b))
	}
	return nil
}

type binaryWriter struct {
	w     *bufio.Writer
	order binary.ByteOrder
	tmp   [8]byte
}

func (w *binaryWriter) write(v Value) error {
	b := w.tmp[:v.t.Size()]
	switch len(b) {
	case 1:
		b[0] = byte(v.bits)
	case 2:
		w.order.PutUint16(b, uint16(v.bits))
	case 4:
		w.order.PutUint32(b, uint32(v.bits))
	case 8:
		w.order.PutUint64(b, v.bits)
	}
	_, err := w.w.Write(b)
	return err
}

func (w *binaryWriter) endInstance() error { return nil }

// asciiReader splits the data section into whitespace separated tokens.
// Line breaks carry no meaning.
type asciiReader struct {
	r   *bufio.Reader
	tok []byte
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (r *asciiReader) token() (string, error) {
	r.tok = r.tok[:0]
	for {
		c, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(r.tok) > 0 {
				break
			}
			return "", truncated(err)
		}
		if isSpace(c) {
			if len(r.tok) > 0 {
				break
			}
			continue
		}
		r.tok = append(r.tok, c)
	}
	return string(r.tok), nil
}

func (r *asciiReader) read(v *Value) error {
	tok, err := r.token()
	if err != nil {
		return err
	}
	bits := v.t.Size() * 8
	switch v.t {
	case Int8, Int16, Int32:
		n, err := strconv.ParseInt(tok, 10, bits)
		if err != nil {
			return errors.Wrapf(ErrValueDecode, "%q is not a %s", tok, v.t)
		}
		v.setInt64(n)
	case Uint8, Uint16, Uint32:
		n, err := strconv.ParseUint(tok, 10, bits)
		if err != nil {
			return errors.Wrapf(ErrValueDecode, "%q is not a %s", tok, v.t)
		}
		v.setUint64(n)
	default:
		f, err := strconv.ParseFloat(tok, bits)
		if err != nil {
			return errors.Wrapf(ErrValueDecode, "%q is not a %s", tok, v.t)
		}
		v.setFloat64(f)
	}
	return nil
}

type asciiWriter struct {
	w       *bufio.Writer
	buf     []byte
	started bool
}

func (w *asciiWriter) write(v Value) error {
	b := w.buf[:0]
	if w.started {
		b = append(b, ' ')
	}
	w.started = true
	switch v.t {
	case Int8, Int16, Int32:
		b = strconv.AppendInt(b, int64(v.bits), 10)
	case Uint8, Uint16, Uint32:
		b = strconv.AppendUint(b, v.bits, 10)
	case Float32:
		b = strconv.AppendFloat(b, float64(v.Float32()), 'g', -1, 32)
	default:
		b = strconv.AppendFloat(b, v.Float64(), 'g', -1, 64)
	}
	w.buf = b
	_, err := w.w.Write(b)
	return err
}

func (w *asciiWriter) endInstance() error {
	w.started = false
	return w.w.WriteByte('\n')
}
