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

// Transcode copies the PLY stream in src to dst, re-encoding the data section
// in format. Each instance is decoded into a buffer and immediately written
// out again, so memory use does not grow with the file. Comments, obj_info
// lines and list count types are kept.
func Transcode(dst io.Writer, format Format, src io.Reader, opts ...Option) error {
	d, err := NewDecoder(src, opts...)
	if err != nil {
		return err
	}
	h := *d.Header()
	h.Format = format
	enc := NewEncoder(dst, format, opts...)
	enc.header = h
	if err := enc.checkSchema(); err != nil {
		return err
	}

	bw := bufio.NewWriter(dst)
	if err := writeHeader(bw, &h, enc.opts.countType); err != nil {
		return err
	}
	in := newValueReader(d.r, d.header.Format)
	out := newValueWriter(bw, format)
	buf := &ElementBuffer{}
	for i := range h.Elements {
		el := &h.Elements[i]
		if err := buf.reset(*el); err != nil {
			return errors.Wrapf(err, "element %q", el.Name)
		}
		enc.opts.logger.Debug("transcoding element",
			zap.String("element", el.Name),
			zap.Int("size", el.Size),
			zap.Stringer("from", d.header.Format),
			zap.Stringer("to", format))
		for n := 0; n < el.Size; n++ {
			if err := decodeInstance(in, el, buf); err != nil {
				return errors.Wrapf(err, "element %q instance %d", el.Name, n)
			}
			if err := encodeInstance(out, el, buf, enc.opts.countType); err != nil {
				return errors.Wrapf(err, "element %q instance %d", el.Name, n)
			}
		}
	}
	d.done = true
	return bw.Flush()
}
