package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// DecodeJSON reads one JSON value from r, keeping mapping key order and
// number literals as written. A repeated key is reported as malformed.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec, nil)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return Value{}, errors.New("json: trailing data after document")
		}
		return Value{}, fmt.Errorf("json: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder, p Path) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("json: at %s: %w", p, err)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeJSONValue(dec, p.Index(len(items)))
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("json: at %s: %w", p, err)
			}
			return Seq(items...), nil
		case '{':
			m := NewMap()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("json: at %s: %w", p, err)
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("json: at %s: unexpected key %v", p, kt)
				}
				if _, exists := m.Get(key); exists {
					return Value{}, malformed(p, "duplicate key %q", key)
				}
				item, err := decodeJSONValue(dec, p.Key(key))
				if err != nil {
					return Value{}, err
				}
				m.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("json: at %s: %w", p, err)
			}
			return Object(m), nil
		}
	}
	return Value{}, fmt.Errorf("json: at %s: unexpected token %v", p, tok)
}

// EncodeJSON writes v as JSON indented with indent (compact when empty),
// followed by a newline. Non-ASCII text is written as is and HTML characters
// are not escaped. v is validated first.
func EncodeJSON(w io.Writer, v Value, indent string) error {
	if err := Validate(v); err != nil {
		return err
	}
	var buf bytes.Buffer
	writeJSON(&buf, v)
	out := buf.Bytes()
	if indent != "" {
		var ind bytes.Buffer
		if err := json.Indent(&ind, out, "", indent); err != nil {
			return fmt.Errorf("json: indent: %w", err)
		}
		out = ind.Bytes()
	}
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writeJSON(&buf, v)
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dv, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*v = dv
	return nil
}

func writeJSON(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.text)
	case KindString:
		writeJSONString(buf, v.text)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, item)
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.m.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, e.Key)
			buf.WriteByte(':')
			writeJSON(buf, e.Value)
		}
		buf.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

// writeJSONString quotes s escaping only what JSON requires. Invalid UTF-8
// is replaced with U+FFFD like encoding/json does.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\t':
				buf.WriteString(`\t`)
			case c < 0x20:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xf])
			default:
				buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(`\ufffd`)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
