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
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

func compressed(filename string) bool {
	return strings.HasSuffix(filename, ".gz")
}

// withReader opens filename, gunzipping it if needed, and hands the stream
// to fn. The file is closed on every path.
func withReader(filename string, fn func(io.Reader) error) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	var r io.Reader = file
	if compressed(filename) {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return errors.Wrapf(err, "%s", filename)
		}
		defer zr.Close()
		r = zr
	}
	if err := fn(r); err != nil {
		return errors.Wrapf(err, "%s", filename)
	}
	return nil
}

// withWriter creates filename, gzipping it if needed, and hands the stream
// to fn. Close errors are reported when fn succeeded.
func withWriter(filename string, fn func(io.Writer) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "%s", filename)
		}
	}()
	var w io.Writer = file
	if compressed(filename) {
		zw := gzip.NewWriter(file)
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = errors.Wrapf(cerr, "%s", filename)
			}
		}()
		w = zw
	}
	if err := fn(w); err != nil {
		return errors.Wrapf(err, "%s", filename)
	}
	return nil
}

// TranscodeFile is Transcode between two named files. Either name may end
// in .gz.
func TranscodeFile(dst string, format Format, src string, opts ...Option) error {
	return withReader(src, func(r io.Reader) error {
		return withWriter(dst, func(w io.Writer) error {
			return Transcode(w, format, r, opts...)
		})
	})
}
