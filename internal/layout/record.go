package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/pkg/memory"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
	FormatText Format = "text"
)

type (
	// Field is a decoded value. Value holds the Go type returned by the matching memory
	// accessor; bytes fields are hexutil.Bytes.
	Field struct {
		Name  string    `json:"name" yaml:"name" cbor:"name"`
		Type  FieldType `json:"type" yaml:"type" cbor:"type"`
		Value any       `json:"value" yaml:"value" cbor:"value"`
	}

	Record struct {
		Layout string  `json:"layout" yaml:"layout" cbor:"layout"`
		Source string  `json:"source,omitempty" yaml:"source,omitempty" cbor:"source,omitempty"`
		Fields []Field `json:"fields" yaml:"fields" cbor:"fields"`
	}
)

// Decode reads every field from mem in layout order.
func (l *Layout) Decode(mem memory.RichReadOnly) (*Record, error) {
	if mem == nil {
		return nil, errors.Wrap(errors.ErrNullArgument, "region is nil")
	}
	if err := l.Validate(mem.Size()); err != nil {
		return nil, err
	}
	rec := &Record{Layout: l.Name, Fields: make([]Field, 0, len(l.Fields))}
	for _, f := range l.Fields {
		v, err := decodeField(mem, f)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding field %q", f.Name)
		}
		rec.Fields = append(rec.Fields, Field{Name: f.Name, Type: f.Type, Value: v})
	}
	return rec, nil
}

func decodeField(mem memory.RichReadOnly, f *FieldSpec) (any, error) {
	switch f.Type {
	case U8:
		return mem.Uint8At(f.Offset)
	case I16:
		return mem.Int16At(f.Offset)
	case U16:
		return mem.Uint16At(f.Offset)
	case I32:
		return mem.Int32At(f.Offset)
	case U32:
		return mem.Uint32At(f.Offset)
	case I64:
		return mem.Int64At(f.Offset)
	case U64:
		return mem.Uint64At(f.Offset)
	case F32:
		return mem.Float32At(f.Offset)
	case F64:
		return mem.Float64At(f.Offset)
	case String:
		return mem.StringAt(f.Offset, f.Length)
	case Bytes:
		b, err := mem.BytesAt(f.Offset, f.Length)
		return hexutil.Bytes(b), err
	}
	_, err := f.Width()
	return nil, err
}

// Encode serializes the record in the given format.
func (r *Record) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatCBOR:
		return cbor.Marshal(r)
	case FormatText:
		return r.text()
	}
	return nil, errors.Wrapf(errors.ErrInvalidArgument, "unknown format %q", format)
}

func (r *Record) text() ([]byte, error) {
	var buf bytes.Buffer
	if r.Source != "" {
		fmt.Fprintf(&buf, "%s (%s)\n", r.Source, r.Layout)
	} else {
		fmt.Fprintf(&buf, "%s\n", r.Layout)
	}
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, f := range r.Fields {
		fmt.Fprintf(w, "  %s\t%s\t%v\n", f.Name, f.Type, formatValue(f.Value))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatValue(v any) any {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return v
}
