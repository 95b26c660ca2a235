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

/*
Package plyfile reads and writes PLY files, the polygon file format introduced by Greg Turk in 1994. The package is pure Go and streams the data section: element instances are decoded into, or encoded from, a single reused buffer, so memory use depends on the shape of one instance and not on the size of the file.

Installation

Run
  go get github.com/cobaltgray/go-plyfile

The plyctl command line tool lives in cmd/plyctl:
  go install github.com/cobaltgray/go-plyfile/cmd/plyctl@latest

Basics

A PLY file starts with a text header describing an ordered list of elements (vertices, faces, ...). Each element has an instance count and an ordered list of properties. A property is either a scalar of one of eight numeric types (char, uchar, short, ushort, int, uint, float, double) or a list of such scalars preceded by a length. The data section that follows the header is in one of three encodings: ascii, binary_little_endian or binary_big_endian.

The header is described by Header and ElementsDefinition. Property values travel through an ElementBuffer, one cell per property. A scalar cell is a Value, a list cell is a List of Values. A Value knows its stored Type and converts to and from uint32, int32, float32 and float64 the way a Go conversion would.

Reading PLY Files

Open parses the header; Definitions tells you what the file contains. Register a callback per element you are interested in and call Read:

  f, err := plyfile.Open("cube.ply")
  if err != nil {
    return err
  }
  f.SetElementReadCallback("vertex", func(buf *plyfile.ElementBuffer) error {
    verts = append(verts, [3]float32{buf.Value(0).Float32(), buf.Value(1).Float32(), buf.Value(2).Float32()})
    return nil
  })
  err = f.Read()

Elements without a callback are still decoded, their values are dropped. The buffer passed to a callback is reused for the next instance, so copy what you need and do not keep the pointer. NewDecoder does the same for any io.Reader.

Writing PLY Files

Create a FileOut with the target format, hand it the schema and one callback per element, then call Write. The callback is called once per instance index and fills the buffer:

  out := plyfile.Create("cube.ply", plyfile.BinaryLittleEndian)
  out.SetElementsDefinition(defs)
  out.SetElementWriteCallback("vertex", func(buf *plyfile.ElementBuffer, i int) error {
    buf.Value(0).SetFloat32(verts[i][0])
    ...
    return nil
  })
  out.SetElementWriteCallback("face", func(buf *plyfile.ElementBuffer, i int) error {
    l := buf.List(0)
    l.Resize(len(faces[i]))
    for j, idx := range faces[i] {
      l.At(j).SetInt(idx)
    }
    return nil
  })
  err := out.Write()

Every element of the schema needs a write callback. NewEncoder writes to any io.Writer.

A note about list count types

The header declares the type of each list's length ("property list uchar int vertex_indices"). When reading, it is kept in Property.CountType. When writing, a Property with a zero CountType is written with the Encoder's default, uchar unless WithListCountType says otherwise. A list longer than its count type can hold fails with ErrListOverflow.

Compressed files

File names ending in .gz are gunzipped by Open and gzipped by Create.

Errors

Failures wrap ErrHeaderParse, ErrUnsupportedType, ErrTruncatedData, ErrValueDecode, ErrMissingCallback or ErrListOverflow; use errors.Is. An error returned by a callback aborts the read or write and is returned wrapped with the element name and instance index.
*/
package plyfile
