/*
Package layout describes records stored in a memory region with a YAML document, and decodes
or patches those records through the rich memory accessors.

	name: header
	fields:
	  - {name: magic, type: string, offset: 0, length: 4}
	  - {name: version, type: u16, offset: 4}
	  - {name: total, type: u64, offset: 8}

Fields may overlap. Offsets are absolute region indexes.
*/
package layout

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ramkit/ramkit/internal/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type FieldType string

const (
	U8     FieldType = "u8"
	I16    FieldType = "i16"
	U16    FieldType = "u16"
	I32    FieldType = "i32"
	U32    FieldType = "u32"
	I64    FieldType = "i64"
	U64    FieldType = "u64"
	F32    FieldType = "f32"
	F64    FieldType = "f64"
	String FieldType = "string"
	Bytes  FieldType = "bytes"
)

// fixedWidth holds the byte width of every type that does not take a length.
var fixedWidth = map[FieldType]int{
	U8: 1, I16: 2, U16: 2, I32: 4, U32: 4, I64: 8, U64: 8, F32: 4, F64: 8,
}

type (
	FieldSpec struct {
		Name   string    `yaml:"name"`
		Type   FieldType `yaml:"type"`
		Offset int64     `yaml:"offset"`
		Length int       `yaml:"length,omitempty"`
	}

	Layout struct {
		Name   string       `yaml:"name"`
		Fields []*FieldSpec `yaml:"fields"`
	}
)

// Parse reads a YAML layout and validates it without a region size.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	l := &Layout{}
	if err := dec.Decode(l); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "layout: %v", err)
	}
	if err := l.Validate(-1); err != nil {
		return nil, err
	}
	return l, nil
}

func LoadFile(path string) (*Layout, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file, %w", err)
	}
	return Parse(data)
}

// Validate checks field definitions. When size is not negative every field must also fit
// into a region of size bytes.
func (l *Layout) Validate(size int64) error {
	if len(l.Fields) == 0 {
		return errors.Wrapf(errors.ErrInvalidArgument, "layout %q has no fields", l.Name)
	}
	seen := make(map[string]struct{}, len(l.Fields))
	for i, f := range l.Fields {
		if f == nil || f.Name == "" {
			return errors.Wrapf(errors.ErrInvalidArgument, "field #%d has no name", i)
		}
		if _, ok := seen[f.Name]; ok {
			return errors.Wrapf(errors.ErrInvalidArgument, "duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		w, err := f.Width()
		if err != nil {
			return err
		}
		if f.Offset < 0 {
			return errors.Wrapf(errors.ErrInvalidArgument, "field %q has negative offset %d", f.Name, f.Offset)
		}
		if size >= 0 && int64(w) > size-f.Offset {
			return errors.Wrapf(errors.ErrOutOfRange, "field %q [%d, %d) exceeds region of %d bytes", f.Name, f.Offset, f.Offset+int64(w), size)
		}
	}
	return nil
}

// Width returns the number of bytes the field occupies.
func (f *FieldSpec) Width() (int, error) {
	if w, ok := fixedWidth[f.Type]; ok {
		if f.Length != 0 && f.Length != w {
			return 0, errors.Wrapf(errors.ErrInvalidArgument, "field %q: type %s has fixed length %d", f.Name, f.Type, w)
		}
		return w, nil
	}
	switch f.Type {
	case String, Bytes:
		if f.Length <= 0 {
			return 0, errors.Wrapf(errors.ErrInvalidArgument, "field %q: type %s requires a positive length", f.Name, f.Type)
		}
		return f.Length, nil
	}
	return 0, errors.Wrapf(errors.ErrInvalidArgument, "field %q: unknown type %q, expected one of %v", f.Name, f.Type, SupportedTypes())
}

// Field returns the field called name.
func (l *Layout) Field(name string) (*FieldSpec, error) {
	idx := slices.IndexFunc(l.Fields, func(f *FieldSpec) bool { return f.Name == name })
	if idx < 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "field %q in layout %q", name, l.Name)
	}
	return l.Fields[idx], nil
}

// Extent returns the end of the furthest field.
func (l *Layout) Extent() int64 {
	var end int64
	for _, f := range l.Fields {
		w, err := f.Width()
		if err != nil {
			continue
		}
		if e := f.Offset + int64(w); e > end {
			end = e
		}
	}
	return end
}

func SupportedTypes() []string {
	types := make([]string, 0, len(fixedWidth)+2)
	for _, t := range maps.Keys(fixedWidth) {
		types = append(types, string(t))
	}
	types = append(types, string(String), string(Bytes))
	slices.Sort(types)
	return types
}
