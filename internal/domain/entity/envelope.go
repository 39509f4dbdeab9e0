package entity

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// renderAPI keeps <, > and & readable in diagnostic output.
var renderAPI = sonic.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

var ErrInvalidJSON = errors.New("invalid json")

// Envelope wraps an arbitrary decoded JSON value returned by the external
// workflow. Every accessor is total: a missing key, a wrong type or an
// out of range index yields an empty Envelope instead of a panic.
type Envelope struct {
	value any
}

// NewEnvelope wraps an already decoded value. Objects given as
// map[string]any have no document order, so Keys sorts them.
func NewEnvelope(v any) Envelope {
	return Envelope{value: v}
}

// ParseEnvelope decodes a JSON document and remembers the order object keys
// appear in.
func ParseEnvelope(data []byte) (Envelope, error) {
	if !sonic.Valid(data) {
		return Envelope{}, ErrInvalidJSON
	}
	root, err := sonic.Get(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if err := root.LoadAll(); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	v, err := fromNode(&root)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return Envelope{value: v}, nil
}

// object is a JSON object in document order.
type object struct {
	keys   []string
	fields map[string]any
}

func (o *object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range o.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := renderAPI.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := renderAPI.Marshal(o.fields[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

func fromNode(n *ast.Node) (any, error) {
	switch n.TypeSafe() {
	case ast.V_OBJECT:
		it, err := n.Properties()
		if err != nil {
			return nil, err
		}
		obj := &object{fields: make(map[string]any)}
		var p ast.Pair
		for it.Next(&p) {
			v, err := fromNode(&p.Value)
			if err != nil {
				return nil, err
			}
			if _, dup := obj.fields[p.Key]; !dup {
				obj.keys = append(obj.keys, p.Key)
			}
			obj.fields[p.Key] = v
		}
		return obj, nil
	case ast.V_ARRAY:
		it, err := n.Values()
		if err != nil {
			return nil, err
		}
		list := make([]any, 0)
		var c ast.Node
		for it.Next(&c) {
			v, err := fromNode(&c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case ast.V_STRING:
		return n.String()
	case ast.V_NUMBER:
		return n.Float64()
	case ast.V_TRUE:
		return true, nil
	case ast.V_FALSE:
		return false, nil
	case ast.V_NULL:
		return nil, nil
	default:
		return n.Interface()
	}
}

// Raw returns the held value with objects as map[string]any.
func (e Envelope) Raw() any {
	return plain(e.value)
}

func plain(v any) any {
	switch t := v.(type) {
	case *object:
		m := make(map[string]any, len(t.fields))
		for k, fv := range t.fields {
			m[k] = plain(fv)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// IsZero reports whether nothing (or JSON null) is held.
func (e Envelope) IsZero() bool {
	return e.value == nil
}

// Has reports whether the object holds key with a non-null value.
func (e Envelope) Has(key string) bool {
	return !e.Field(key).IsZero()
}

func (e Envelope) Field(key string) Envelope {
	switch obj := e.value.(type) {
	case *object:
		return Envelope{value: obj.fields[key]}
	case map[string]any:
		return Envelope{value: obj[key]}
	default:
		return Envelope{}
	}
}

// Path follows a chain of object keys.
func (e Envelope) Path(keys ...string) Envelope {
	cur := e
	for _, k := range keys {
		cur = cur.Field(k)
	}
	return cur
}

func (e Envelope) Index(i int) Envelope {
	list, ok := e.value.([]any)
	if !ok || i < 0 || i >= len(list) {
		return Envelope{}
	}
	return Envelope{value: list[i]}
}

// List returns the elements when the value is a JSON array.
func (e Envelope) List() ([]Envelope, bool) {
	list, ok := e.value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Envelope, len(list))
	for i, v := range list {
		out[i] = Envelope{value: v}
	}
	return out, true
}

// IsObject reports whether the value is a JSON object.
func (e Envelope) IsObject() bool {
	switch e.value.(type) {
	case *object, map[string]any:
		return true
	default:
		return false
	}
}

// Keys returns object keys in document order for parsed envelopes and in
// sorted order for plain maps.
func (e Envelope) Keys() []string {
	if obj, ok := e.value.(*object); ok {
		return append([]string(nil), obj.keys...)
	}
	obj, ok := e.value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text returns the value when it is a JSON string, otherwise "".
func (e Envelope) Text() string {
	s, _ := e.value.(string)
	return s
}

// String renders any value: strings verbatim, everything else as JSON.
func (e Envelope) String() string {
	switch v := e.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	b, err := renderAPI.Marshal(e.value)
	if err != nil {
		return ""
	}
	return string(b)
}
