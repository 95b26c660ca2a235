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
	"io"

	"github.com/pkg/errors"
)

// Every failure returned by a Decoder, Encoder, File or FileOut wraps one of
// these. Test for them with errors.Is.
var (
	// ErrHeaderParse is returned for a malformed header line, an unknown
	// type token or a header with no end_header line.
	ErrHeaderParse = errors.New("ply: malformed header")
	// ErrUnsupportedType is returned when a schema names a Type outside
	// the eight recognized kinds.
	ErrUnsupportedType = errors.New("ply: unsupported type")
	// ErrTruncatedData is returned when the data section ends before every
	// declared instance has been read.
	ErrTruncatedData = errors.New("ply: truncated data")
	// ErrValueDecode is returned when an ASCII token is not a literal of
	// the declared type, or a list length is negative.
	ErrValueDecode = errors.New("ply: invalid value")
	// ErrMissingCallback is returned by an Encoder when an element of the
	// schema has no write callback.
	ErrMissingCallback = errors.New("ply: missing write callback")
	// ErrListOverflow is returned by an Encoder when a list is longer than
	// its count type can represent.
	ErrListOverflow = errors.New("ply: list too long for count type")
)

func unsupportedType(t Type) error {
	return errors.Wrapf(ErrUnsupportedType, "type tag %d", int(t))
}

// truncated maps the end-of-stream errors of the body readers to
// ErrTruncatedData and passes anything else through.
func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncatedData
	}
	return err
}
