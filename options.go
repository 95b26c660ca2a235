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

import "go.uber.org/zap"

type options struct {
	logger    *zap.Logger
	countType Type
}

// Option configures a Decoder, Encoder, File or FileOut.
type Option func(*options)

// WithLogger sets the logger progress is reported to. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithListCountType sets the type an Encoder writes list lengths as for
// properties whose CountType is zero.
func WithListCountType(t Type) Option {
	return func(o *options) { o.countType = t }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), countType: DefaultCountType}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
