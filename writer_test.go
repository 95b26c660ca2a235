package plyfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func faceDefinition(n int, countType Type) ElementsDefinition {
	return ElementsDefinition{{Name: "face", Size: n, Properties: []Property{
		{Name: "vertex_indices", Type: Int32, IsList: true, CountType: countType},
	}}}
}

func TestEncodeASCII(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, ASCII)
	enc.SetElementsDefinition(ElementsDefinition{
		{Name: "vertex", Size: 2, Properties: []Property{
			{Name: "x", Type: Float32},
			{Name: "flags", Type: Int8},
		}},
		{Name: "face", Size: 1, Properties: []Property{
			{Name: "vertex_indices", Type: Uint32, IsList: true},
		}},
	})
	enc.SetElementWriteCallback("vertex", func(buf *ElementBuffer, i int) error {
		buf.Value(0).SetFloat64(0.5 + float64(i))
		buf.Value(1).SetInt(int32(-i))
		return nil
	})
	enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
		l := buf.List(0)
		l.Resize(3)
		for j := 0; j < 3; j++ {
			l.At(j).SetUint(uint32(j))
		}
		return nil
	})
	if err := enc.Encode(); err != nil {
		t.Fatal(err)
	}
	want := `ply
format ascii 1.0
element vertex 2
property float x
property char flags
element face 1
property list uchar uint vertex_indices
end_header
0.5 0
1.5 -1
3 0 1 2
`
	if got := out.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeBinaryLayout(t *testing.T) {
	for _, test := range []struct {
		format Format
		body   []byte
	}{
		// ushort count 2, int 2, int -1
		{BinaryLittleEndian, []byte{0x02, 0x00, 0x02, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}},
		{BinaryBigEndian, []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x02, 0xff, 0xff, 0xff, 0xff}},
	} {
		t.Run(test.format.String(), func(t *testing.T) {
			var out bytes.Buffer
			enc := NewEncoder(&out, test.format)
			enc.SetElementsDefinition(faceDefinition(1, Uint16))
			enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
				l := buf.List(0)
				l.Resize(2)
				l.At(0).SetInt(2)
				l.At(1).SetInt(-1)
				return nil
			})
			if err := enc.Encode(); err != nil {
				t.Fatal(err)
			}
			raw := out.String()
			body := raw[strings.Index(raw, "end_header\n")+len("end_header\n"):]
			if !bytes.Equal([]byte(body), test.body) {
				t.Errorf("body: got % x, want % x", body, test.body)
			}
		})
	}
}

func TestEncodeMissingCallback(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, BinaryLittleEndian)
	enc.SetElementsDefinition(SetPlyProperties(8, 6))
	enc.SetElementWriteCallback("vertex", func(*ElementBuffer, int) error { return nil })
	if err := enc.Encode(); !isErr(err, ErrMissingCallback) {
		t.Errorf("got %v, want ErrMissingCallback", err)
	}
	if out.Len() != 0 {
		t.Errorf("%d bytes written before failing", out.Len())
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, ASCII)
	enc.SetElementsDefinition(ElementsDefinition{{Name: "v", Size: 1, Properties: []Property{{Name: "x", Type: 0}}}})
	enc.SetElementWriteCallback("v", func(*ElementBuffer, int) error { return nil })
	if err := enc.Encode(); !isErr(err, ErrUnsupportedType) {
		t.Errorf("got %v, want ErrUnsupportedType", err)
	}

	enc = NewEncoder(&out, ASCII, WithListCountType(Float32))
	enc.SetElementsDefinition(faceDefinition(1, 0))
	enc.SetElementWriteCallback("face", func(*ElementBuffer, int) error { return nil })
	if err := enc.Encode(); !isErr(err, ErrUnsupportedType) {
		t.Errorf("float count type: got %v, want ErrUnsupportedType", err)
	}
}

func TestEncodeListOverflow(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, BinaryLittleEndian)
	enc.SetElementsDefinition(faceDefinition(1, 0))
	enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
		buf.List(0).Resize(256)
		return nil
	})
	if err := enc.Encode(); !isErr(err, ErrListOverflow) {
		t.Errorf("got %v, want ErrListOverflow", err)
	}

	out.Reset()
	enc = NewEncoder(&out, BinaryLittleEndian, WithListCountType(Uint16))
	enc.SetElementsDefinition(faceDefinition(1, 0))
	enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
		buf.List(0).Resize(256)
		return nil
	})
	if err := enc.Encode(); err != nil {
		t.Errorf("ushort count type: %v", err)
	}
	if !strings.Contains(out.String(), "property list ushort int vertex_indices\n") {
		t.Errorf("header does not use the configured count type")
	}
}

func TestEncodeConvertsRedefinedLists(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, ASCII)
	enc.SetElementsDefinition(faceDefinition(1, Uint8))
	enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
		l := buf.List(0)
		l.Define(Float64, 2)
		l.At(0).SetFloat64(4.9)
		l.At(1).SetFloat64(-3.2)
		return nil
	})
	if err := enc.Encode(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "end_header\n2 4 -3\n") {
		t.Errorf("got %q", out.String())
	}
}

func TestEncodeCallbackError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	enc := NewEncoder(&out, ASCII)
	enc.SetElementsDefinition(faceDefinition(4, Uint8))
	calls := 0
	enc.SetElementWriteCallback("face", func(buf *ElementBuffer, i int) error {
		calls++
		if i == 1 {
			return boom
		}
		return nil
	})
	err := enc.Encode()
	if !isErr(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("callback called %d times, want 2", calls)
	}
}

func TestEncodeIndexOrder(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out, ASCII)
	enc.SetElementsDefinition(ElementsDefinition{
		{Name: "b", Size: 3, Properties: []Property{{Name: "x", Type: Uint8}}},
		{Name: "a", Size: 0, Properties: []Property{{Name: "x", Type: Uint8}}},
	})
	var seen []int
	// Registration order does not matter, the schema does.
	enc.SetElementWriteCallback("a", func(*ElementBuffer, int) error {
		return errors.New("empty element written")
	})
	enc.SetElementWriteCallback("b", func(buf *ElementBuffer, i int) error {
		seen = append(seen, i)
		buf.Value(0).SetUint(uint32(10 * i))
		return nil
	})
	if err := enc.Encode(); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("indexes: got %v", seen)
	}
	if !strings.HasSuffix(out.String(), "end_header\n0\n10\n20\n") {
		t.Errorf("got %q", out.String())
	}
}

func TestCreateDoesNotTouchFileOnConfigError(t *testing.T) {
	name := t.TempDir() + "/never.ply"
	out := Create(name, ASCII)
	out.SetElementsDefinition(SetPlyProperties(1, 1))
	if err := out.Write(); !isErr(err, ErrMissingCallback) {
		t.Fatalf("got %v, want ErrMissingCallback", err)
	}
	if _, err := Open(name); err == nil {
		t.Errorf("file was created")
	}
}

func TestEncodeRejectsUnwritableHeader(t *testing.T) {
	for _, test := range []struct {
		name  string
		def   ElementsDefinition
		setup func(*Encoder)
	}{
		{"comment newline", faceDefinition(1, Uint8), func(e *Encoder) { e.AddComment("one\nend_header") }},
		{"obj_info carriage return", faceDefinition(1, Uint8), func(e *Encoder) { e.AddObjInfo("a\rb") }},
		{"element name space", ElementsDefinition{{Name: "my face", Size: 1, Properties: []Property{{Name: "x", Type: Uint8}}}}, nil},
		{"empty element name", ElementsDefinition{{Name: "", Size: 1, Properties: []Property{{Name: "x", Type: Uint8}}}}, nil},
		{"property name tab", ElementsDefinition{{Name: "face", Size: 1, Properties: []Property{{Name: "x\ty", Type: Uint8}}}}, nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			enc := NewEncoder(&out, ASCII)
			enc.SetElementsDefinition(test.def)
			for _, el := range test.def {
				enc.SetElementWriteCallback(el.Name, func(*ElementBuffer, int) error { return nil })
			}
			if test.setup != nil {
				test.setup(enc)
			}
			if err := enc.Encode(); err == nil {
				t.Errorf("Encode succeeded, wrote %q", out.String())
			}
			if out.Len() != 0 {
				t.Errorf("%d bytes written before failing", out.Len())
			}
		})
	}
}
