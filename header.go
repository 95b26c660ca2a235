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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	magic     = "ply"
	version   = "1.0"
	endHeader = "end_header"
)

// headerParser reads header lines one at a time. It reads exactly up to and
// including the end_header newline so a binary body following it is left
// untouched in r.
type headerParser struct {
	r      *bufio.Reader
	line   int
	header Header
	format bool
}

func parseHeader(r *bufio.Reader) (*Header, error) {
	p := &headerParser{r: r}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return &p.header, nil
}

func (p *headerParser) fail(format string, args ...interface{}) error {
	return errors.Wrapf(ErrHeaderParse, "line %d: %s", p.line, fmt.Sprintf(format, args...))
}

// next returns the next line with its line terminator removed.
func (p *headerParser) next() (string, error) {
	s, err := p.r.ReadString('\n')
	if err == io.EOF && s == "" {
		return "", p.fail("missing %s", endHeader)
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	p.line++
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *headerParser) parse() error {
	first, err := p.next()
	if err != nil {
		return err
	}
	if strings.TrimSpace(first) != magic {
		return p.fail("expected %q, got %q", magic, first)
	}
	for {
		line, err := p.next()
		if err != nil {
			return err
		}
		keyword, rest := splitKeyword(line)
		switch keyword {
		case "":
		case "comment":
			p.header.Comments = append(p.header.Comments, rest)
		case "obj_info":
			p.header.ObjInfo = append(p.header.ObjInfo, rest)
		case "format":
			if err := p.parseFormat(rest); err != nil {
				return err
			}
		case "element":
			if err := p.parseElement(rest); err != nil {
				return err
			}
		case "property":
			if err := p.parseProperty(rest); err != nil {
				return err
			}
		case endHeader:
			return p.finish()
		default:
			return p.fail("unexpected line %q", line)
		}
	}
}

func (p *headerParser) parseFormat(rest string) error {
	if p.format {
		return p.fail("duplicate format line")
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return p.fail("expected 'format <encoding> <version>'")
	}
	f, err := ParseFormat(fields[0])
	if err != nil {
		return p.fail("%v", err)
	}
	p.header.Format, p.header.Version, p.format = f, fields[1], true
	return nil
}

func (p *headerParser) parseElement(rest string) error {
	if !p.format {
		return p.fail("element before format line")
	}
	if err := p.closeElement(); err != nil {
		return err
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return p.fail("expected 'element <name> <count>'")
	}
	name := fields[0]
	if _, dup := p.header.Elements.Find(name); dup {
		return p.fail("duplicate element %q", name)
	}
	n, err := strconv.ParseUint(fields[1], 10, 31)
	if err != nil {
		return p.fail("invalid count %q for element %q", fields[1], name)
	}
	p.header.Elements = append(p.header.Elements, Element{Name: name, Size: int(n)})
	return nil
}

func (p *headerParser) parseProperty(rest string) error {
	if len(p.header.Elements) == 0 {
		return p.fail("property before any element")
	}
	fields := strings.Fields(rest)
	var prop Property
	switch {
	case len(fields) == 2 && fields[0] != "list":
		t, err := ParseType(fields[0])
		if err != nil {
			return p.fail("%v", err)
		}
		prop = Property{Name: fields[1], Type: t}
	case len(fields) == 4 && fields[0] == "list":
		ct, err := ParseType(fields[1])
		if err != nil {
			return p.fail("%v", err)
		}
		if ct.isFloat() {
			return p.fail("list count type %s is not an integer type", ct)
		}
		t, err := ParseType(fields[2])
		if err != nil {
			return p.fail("%v", err)
		}
		prop = Property{Name: fields[3], Type: t, IsList: true, CountType: ct}
	default:
		return p.fail("expected 'property <type> <name>' or 'property list <count-type> <type> <name>'")
	}
	e := &p.header.Elements[len(p.header.Elements)-1]
	e.Properties = append(e.Properties, prop)
	return nil
}

// closeElement checks the element being declared got at least one property.
func (p *headerParser) closeElement() error {
	if n := len(p.header.Elements); n > 0 && len(p.header.Elements[n-1].Properties) == 0 {
		return p.fail("element %q has no properties", p.header.Elements[n-1].Name)
	}
	return nil
}

func (p *headerParser) finish() error {
	if !p.format {
		return p.fail("missing format line")
	}
	if len(p.header.Elements) == 0 {
		return p.fail("no elements declared")
	}
	return p.closeElement()
}

func splitKeyword(line string) (string, string) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return line[:i], strings.TrimLeft(line[i+1:], " \t")
}

// writeHeader emits h. List properties without a count type use countType.
func writeHeader(w io.Writer, h *Header, countType Type) error {
	bw := &errWriter{w: w}
	bw.printf("%s\n", magic)
	v := h.Version
	if v == "" {
		v = version
	}
	bw.printf("format %s %s\n", h.Format, v)
	for _, c := range h.Comments {
		bw.printf("comment %s\n", c)
	}
	for _, o := range h.ObjInfo {
		bw.printf("obj_info %s\n", o)
	}
	for _, e := range h.Elements {
		bw.printf("element %s %d\n", e.Name, e.Size)
		for _, p := range e.Properties {
			if p.IsList {
				ct := p.CountType
				if ct == 0 {
					ct = countType
				}
				bw.printf("property list %s %s %s\n", ct, p.Type, p.Name)
			} else {
				bw.printf("property %s %s\n", p.Type, p.Name)
			}
		}
	}
	bw.printf("%s\n", endHeader)
	return bw.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}
