package leads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxDepth mirrors the nesting limit of encoding/json.
const maxDepth = 10000

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON document. Unlike map[string]any it keeps object
// members in document order, which the extractor relies on.
type Value struct {
	Kind Kind
	Bool bool
	// Text holds string contents, or the literal text of a number.
	Text    string
	Items   []Value
	Members []Member
}

// Lookup returns the member value stored under key. It reports false when v
// is not an object or has no such member.
func (v Value) Lookup(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Str returns the contents of a string value.
func (v Value) Str() (string, bool) {
	if v.Kind != String {
		return "", false
	}
	return v.Text, true
}

// Decode parses a single JSON document. Duplicate object keys keep the
// position of their first occurrence and the value of their last.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedPayload)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, errors.New("exceeded max depth")
	}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeArray(dec, depth)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return Value{Kind: String, Text: t}, nil
	case json.Number:
		return Value{Kind: Number, Text: t.String()}, nil
	case bool:
		return Value{Kind: Bool, Bool: t}, nil
	case nil:
		return Value{Kind: Null}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	v := Value{Kind: Object}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		member, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		if i, dup := index[key]; dup {
			v.Members[i].Value = member
			continue
		}
		index[key] = len(v.Members)
		v.Members = append(v.Members, Member{Key: key, Value: member})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	v := Value{Kind: Array}
	for dec.More() {
		item, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}
